package core

import (
	"context"
	"sync"
	"time"
)

// CooldownTracker is a keyed minimum-interval gate. Not a precise rate
// limiter; it only compares the last-used timestamp with wall-clock time.
type CooldownTracker struct {
	mu   sync.Mutex
	last map[string]time.Time
}

func NewCooldownTracker() *CooldownTracker {
	return &CooldownTracker{last: make(map[string]time.Time)}
}

// Ready reports whether key may fire again, and if not, how long remains.
// A ready check consumes the slot (the timestamp is updated).
func (t *CooldownTracker) Ready(key string, min time.Duration) (bool, time.Duration) {
	if min <= 0 {
		return true, 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	if used, ok := t.last[key]; ok {
		if remaining := min - now.Sub(used); remaining > 0 {
			return false, remaining
		}
	}
	t.last[key] = now
	return true, 0
}

// Sweep drops entries older than maxAge.
func (t *CooldownTracker) Sweep(maxAge time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	for key, used := range t.last {
		if used.Before(cutoff) {
			delete(t.last, key)
		}
	}
}

// RunCooldownSweeper clears stale cooldown entries every minute until ctx is
// done. Call from main.
func RunCooldownSweeper(ctx context.Context, t *CooldownTracker) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Sweep(10 * time.Minute)
		}
	}
}
