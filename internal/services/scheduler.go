package services

import (
	"context"
	"log"
	"sync"
	"time"
)

// RefreshScheduler runs slot refreshes on a fixed interval until stopped
type RefreshScheduler struct {
	slots    SlotServiceInterface
	interval time.Duration

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewRefreshScheduler creates a scheduler; a non-positive interval disables it
func NewRefreshScheduler(slots SlotServiceInterface, interval time.Duration) *RefreshScheduler {
	return &RefreshScheduler{slots: slots, interval: interval}
}

// Start runs one refresh immediately and then one per interval
func (s *RefreshScheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		log.Printf("Slot refresh scheduler disabled")
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

func (s *RefreshScheduler) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *RefreshScheduler) refresh(ctx context.Context) {
	if _, err := s.slots.Refresh(ctx); err != nil && ctx.Err() == nil {
		log.Printf("Warning: scheduled slot refresh failed: %v", err)
	}
}

// Stop cancels the scheduler and waits for an in-flight refresh to finish
func (s *RefreshScheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}
