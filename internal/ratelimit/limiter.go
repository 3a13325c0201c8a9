package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter bounds submission attempts per client identity within a time
// window. Implementations are best-effort abuse deterrents, not hard
// quotas.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

type windowEntry struct {
	count       int
	windowStart time.Time
}

// FixedWindow is an in-memory fixed-window limiter. Counters are
// per-process; deployments running several instances multiply the
// effective limit accordingly (use the Redis limiter for a shared one).
type FixedWindow struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	max     int
	window  time.Duration
	now     func() time.Time
}

// NewFixedWindow creates a limiter allowing max requests per key within
// each window.
func NewFixedWindow(max int, window time.Duration) *FixedWindow {
	l := &FixedWindow{
		entries: make(map[string]*windowEntry),
		max:     max,
		window:  window,
		now:     time.Now,
	}
	// Periodically evict stale entries to prevent memory growth.
	go l.cleanup()
	return l
}

// Allow reports whether a request from key fits in the current window.
// The first request of a window resets the counter to 1.
func (l *FixedWindow) Allow(_ context.Context, key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok || now.Sub(e.windowStart) > l.window {
		l.entries[key] = &windowEntry{count: 1, windowStart: now}
		return true
	}

	e.count++
	return e.count <= l.max
}

func (l *FixedWindow) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		l.mu.Lock()
		cutoff := l.now().Add(-2 * l.window)
		for key, e := range l.entries {
			if e.windowStart.Before(cutoff) {
				delete(l.entries, key)
			}
		}
		l.mu.Unlock()
	}
}

var _ Limiter = (*FixedWindow)(nil)
