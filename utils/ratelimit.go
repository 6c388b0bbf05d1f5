package utils

import (
	"math/rand"
	"sync"
	"time"
)

// RateLimiter enforces a randomized minimum delay between consecutive
// remote-affecting browser actions. Call Wait before every navigation,
// click or search that reaches the remote service.
type RateLimiter struct {
	minDelay time.Duration
	maxDelay time.Duration

	mu         sync.Mutex
	lastAction time.Time
}

// NewRateLimiter creates a RateLimiter with the given delay band.
// If max < min, max is clamped to min.
func NewRateLimiter(min, max time.Duration) *RateLimiter {
	if max < min {
		max = min
	}
	return &RateLimiter{minDelay: min, maxDelay: max}
}

// Wait blocks until a randomly chosen duration in [minDelay, maxDelay] has
// elapsed since the previous call returned. The first call never blocks.
func (r *RateLimiter) Wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.lastAction.IsZero() {
		delay := r.randomDelay()
		elapsed := time.Since(r.lastAction)
		if elapsed < delay {
			time.Sleep(delay - elapsed)
		}
	}
	r.lastAction = time.Now()
}

func (r *RateLimiter) randomDelay() time.Duration {
	if r.maxDelay <= r.minDelay {
		return r.minDelay
	}
	return r.minDelay + time.Duration(rand.Int63n(int64(r.maxDelay-r.minDelay)))
}
