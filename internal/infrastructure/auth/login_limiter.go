package auth

import (
	"math"
	"sync"
	"time"
)

// LoginLimiter throttles failed login attempts per source address using a
// sliding window held in process memory. Successful logins never count
// against the limit; state resets on restart and is not shared across
// instances.
type LoginLimiter struct {
	mu        sync.Mutex
	failures  map[string][]time.Time
	limit     int
	window    time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// NewLoginLimiter creates a limiter allowing limit failures per window
func NewLoginLimiter(limit int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		failures:  make(map[string][]time.Time),
		limit:     limit,
		window:    window,
		now:       time.Now,
		lastSweep: time.Now(),
	}
}

// Allow reports whether the source address may attempt another login
func (l *LoginLimiter) Allow(addr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pruneLocked(addr)) < l.limit
}

// RecordFailure counts one failed attempt against the source address
func (l *LoginLimiter) RecordFailure(addr string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweepLocked()
	l.failures[addr] = append(l.pruneLocked(addr), l.now())
}

// RetryAfterMinutes estimates how many minutes until the oldest counted
// failure slides out of the window, rounded up and never below one
func (l *LoginLimiter) RetryAfterMinutes(addr string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.pruneLocked(addr)
	if len(recent) < l.limit {
		return 0
	}
	remaining := l.window - l.now().Sub(recent[0])
	minutes := int(math.Ceil(remaining.Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// pruneLocked drops attempts older than the window. Callers must hold l.mu.
func (l *LoginLimiter) pruneLocked(addr string) []time.Time {
	cutoff := l.now().Add(-l.window)
	attempts := l.failures[addr]
	for len(attempts) > 0 && attempts[0].Before(cutoff) {
		attempts = attempts[1:]
	}
	if len(attempts) == 0 {
		delete(l.failures, addr)
	} else {
		l.failures[addr] = attempts
	}
	return attempts
}

// sweepLocked drops addresses whose attempts have all expired, at most once
// per window so a failure burst does not rescan the whole map. Callers must
// hold l.mu. Keeps memory bounded without a background goroutine.
func (l *LoginLimiter) sweepLocked() {
	if l.now().Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = l.now()
	cutoff := l.now().Add(-l.window)
	for addr, attempts := range l.failures {
		if len(attempts) == 0 || attempts[len(attempts)-1].Before(cutoff) {
			delete(l.failures, addr)
		}
	}
}
