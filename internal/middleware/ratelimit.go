package middleware

import (
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"
)

// RateLimiter is a sliding window limiter keyed by client IP
type RateLimiter struct {
	attempts    map[string][]time.Time
	mutex       sync.Mutex
	maxAttempts int
	window      time.Duration
	now         func() time.Time
	stop        chan struct{}
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(maxAttempts int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		attempts:    make(map[string][]time.Time),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
		stop:        make(chan struct{}),
	}

	// Start cleanup goroutine
	go rl.cleanup()

	return rl
}

// Allow records an attempt for key and reports whether it is within the limit
func (rl *RateLimiter) Allow(key string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	valid := rl.prune(rl.attempts[key], now)
	if len(valid) >= rl.maxAttempts {
		rl.attempts[key] = valid
		return false
	}

	rl.attempts[key] = append(valid, now)
	return true
}

// RetryAfter returns how long key must wait for its oldest attempt to expire
func (rl *RateLimiter) RetryAfter(key string) time.Duration {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	valid := rl.prune(rl.attempts[key], now)
	if len(valid) < rl.maxAttempts {
		return 0
	}
	return valid[0].Add(rl.window).Sub(now)
}

func (rl *RateLimiter) prune(attempts []time.Time, now time.Time) []time.Time {
	cutoff := now.Add(-rl.window)
	var valid []time.Time
	for _, attempt := range attempts {
		if attempt.After(cutoff) {
			valid = append(valid, attempt)
		}
	}
	return valid
}

// cleanup removes old entries periodically
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mutex.Lock()
			now := rl.now()
			for key, attempts := range rl.attempts {
				if valid := rl.prune(attempts, now); len(valid) == 0 {
					delete(rl.attempts, key)
				} else {
					rl.attempts[key] = valid
				}
			}
			rl.mutex.Unlock()
		}
	}
}

// Close stops the cleanup goroutine
func (rl *RateLimiter) Close() {
	close(rl.stop)
}

// RateLimit limits requests per client IP and answers 429 once the limit is hit
func RateLimit(rateLimiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getClientIP(r)

			if !rateLimiter.Allow(ip) {
				wait := rateLimiter.RetryAfter(ip)
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(math.Ceil(wait.Seconds()))))
				writeJSONError(w, http.StatusTooManyRequests, "Too many attempts. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
