package ratelimit

import (
	"sync"
	"time"
)

type entry struct {
	attempts  int
	resetTime time.Time
}

// Limiter counts attempts per (identity, action) pair inside fixed windows.
// State is in-process only: a restart clears every counter, and instances do
// not share state. It throttles best-effort, it is not a hard guarantee.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

func New() *Limiter {
	return &Limiter{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// NewWithClock builds a limiter with a custom clock, used by tests to
// simulate window expiry.
func NewWithClock(now func() time.Time) *Limiter {
	return &Limiter{
		entries: make(map[string]*entry),
		now:     now,
	}
}

// Allow records an attempt for identity+action and reports whether it fits
// in the current window. The window is fixed from the first attempt, not
// sliding. The first call after expiry resets the counter.
func (l *Limiter) Allow(identity string, action string, maxAttempts int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.cleanup(now)

	key := identity + ":" + action
	e, ok := l.entries[key]
	if !ok || now.After(e.resetTime) {
		l.entries[key] = &entry{attempts: 1, resetTime: now.Add(window)}
		return true
	}

	e.attempts++
	return e.attempts <= maxAttempts
}

// cleanup drops expired entries. It runs opportunistically on each call
// rather than on a timer, so stale entries survive quiet periods until the
// next request of any kind.
func (l *Limiter) cleanup(now time.Time) {
	for key, e := range l.entries {
		if now.After(e.resetTime) {
			delete(l.entries, key)
		}
	}
}
