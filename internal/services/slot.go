package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"bookit-platform/internal/clock"
	"bookit-platform/internal/models"
)

// SlotService generates and retires availability slots
type SlotService struct {
	experiences ExperienceRepositoryInterface
	slots       SlotRepositoryInterface
	clock       clock.Clock
	location    *time.Location
	schedule    models.SlotSchedule

	// mu serializes refreshes and guards rng
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSlotService creates a new slot service
func NewSlotService(
	experiences ExperienceRepositoryInterface,
	slots SlotRepositoryInterface,
	clk clock.Clock,
	location *time.Location,
	schedule models.SlotSchedule,
) *SlotService {
	if location == nil {
		location = time.UTC
	}
	return &SlotService{
		experiences: experiences,
		slots:       slots,
		clock:       clk,
		location:    location,
		schedule:    schedule,
		rng:         rand.New(rand.NewSource(clk.Now().UnixNano())),
	}
}

// SetRand replaces the source used for randomized booked counts
func (s *SlotService) SetRand(rng *rand.Rand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = rng
}

// Refresh retires slots that started before today and fills the rolling
// window for every experience. Delete and insert share one transaction and
// existing (experience, start) pairs are left alone, so repeated runs on the
// same day are no-ops.
func (s *SlotService) Refresh(ctx context.Context) (*models.RefreshSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := models.StartOfDay(s.clock.Now(), s.location)

	experienceIDs, err := s.experiences.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not fetch experiences: %w", err)
	}

	slots := GenerateSlots(today, experienceIDs, s.schedule, s.rng)

	deleted, created, err := s.slots.RefreshWindow(ctx, today, slots)
	if err != nil {
		return nil, fmt.Errorf("could not refresh slots: %w", err)
	}

	summary := &models.RefreshSummary{
		SlotsCreated:         created,
		SlotsDeleted:         deleted,
		ExperiencesProcessed: len(experienceIDs),
	}
	log.Printf("Refreshed slots: %d created, %d expired removed, %d experiences",
		summary.SlotsCreated, summary.SlotsDeleted, summary.ExperiencesProcessed)

	return summary, nil
}

// GenerateSlots builds the schedule's slots for each experience starting at
// today. rng is only used when the schedule randomizes booked counts.
func GenerateSlots(today time.Time, experienceIDs []string, schedule models.SlotSchedule, rng *rand.Rand) []*models.Slot {
	slots := make([]*models.Slot, 0, len(experienceIDs)*schedule.SlotsPerExperience())

	for day := 0; day < schedule.Days; day++ {
		date := today.AddDate(0, 0, day)
		for _, experienceID := range experienceIDs {
			for _, window := range schedule.Windows {
				slot := &models.Slot{
					ExperienceID: experienceID,
					StartTime:    atHour(date, window.StartHour),
					EndTime:      atHour(date, window.EndHour),
					TotalSpots:   schedule.Capacity,
				}
				if schedule.RandomizeBooked && rng != nil {
					slot.SpotsBooked = randomBooked(rng, window, schedule.Capacity)
				}
				slots = append(slots, slot)
			}
		}
	}

	return slots
}

// atHour returns the wall clock hour on date's day in date's location
func atHour(date time.Time, hour int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, date.Location())
}

// randomBooked draws an initial booked count in [MinBooked, MaxBooked],
// clamped to the slot capacity
func randomBooked(rng *rand.Rand, window models.SlotWindow, capacity int) int {
	lo, hi := window.MinBooked, window.MaxBooked
	if hi > capacity {
		hi = capacity
	}
	if lo < 0 {
		lo = 0
	}
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
