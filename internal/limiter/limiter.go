package limiter

import (
	"context"
	"sync"
	"time"
)

// Limiter throttles requests per originating client address. It is a
// best-effort cost and abuse guard, not a precise quota system.
type Limiter interface {
	// Admit reports whether the client may proceed. A non-nil error means
	// the limiter backend itself failed; callers fail open in that case.
	Admit(ctx context.Context, clientKey string) (bool, error)
}

// Ensure implementation satisfies the interface
var _ Limiter = (*MemoryLimiter)(nil)

type windowEntry struct {
	windowStart time.Time
	count       int
}

// MemoryLimiter is a per-process fixed-window limiter. Entries are never
// garbage-collected; they are bounded by the set of client addresses seen
// during the process lifetime.
type MemoryLimiter struct {
	window time.Duration
	max    int
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*windowEntry
}

func NewMemoryLimiter(window time.Duration, max int) *MemoryLimiter {
	return &MemoryLimiter{
		window:  window,
		max:     max,
		now:     time.Now,
		entries: make(map[string]*windowEntry),
	}
}

func (l *MemoryLimiter) Admit(_ context.Context, clientKey string) (bool, error) {
	t := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[clientKey]
	if !ok || t.Sub(entry.windowStart) > l.window {
		l.entries[clientKey] = &windowEntry{windowStart: t, count: 1}
		return true, nil
	}
	if entry.count >= l.max {
		return false, nil
	}
	entry.count++
	return true, nil
}
