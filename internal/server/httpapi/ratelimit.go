package httpapi

import (
	"sync"
	"time"
)

// rateDecision reports whether a request may proceed and when the current
// window ends (used for the Retry-After header).
type rateDecision struct {
	allowed   bool
	count     int
	windowEnd time.Time
}

// RateLimiter bounds login attempts per client key within a fixed window.
type RateLimiter interface {
	Allow(key string, limit int, window time.Duration) rateDecision
	Close()
}

type memoryWindow struct {
	count     int
	windowEnd time.Time
}

// memoryRateLimiter is the in-process fallback used when no Redis address is
// configured. Counters are fixed-window, per key.
type memoryRateLimiter struct {
	mu      sync.Mutex
	windows map[string]*memoryWindow
	now     func() time.Time
}

// NewMemoryRateLimiter constructs an in-process rate limiter.
func NewMemoryRateLimiter() RateLimiter {
	return &memoryRateLimiter{
		windows: make(map[string]*memoryWindow),
		now:     time.Now,
	}
}

func (rl *memoryRateLimiter) Allow(key string, limit int, window time.Duration) rateDecision {
	if limit <= 0 {
		return rateDecision{allowed: true}
	}
	if window <= 0 {
		window = time.Minute
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.After(w.windowEnd) {
		w = &memoryWindow{windowEnd: now.Add(window)}
		rl.windows[key] = w
	}
	w.count++

	return rateDecision{
		allowed:   w.count <= limit,
		count:     w.count,
		windowEnd: w.windowEnd,
	}
}

func (rl *memoryRateLimiter) Close() {}
