package utils

import (
	"context"
	"sync"
	"time"
)

// RevocationList holds ids of logged-out tokens until they expire.
type RevocationList struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

func NewRevocationList() *RevocationList {
	return &RevocationList{entries: make(map[string]time.Time)}
}

func (rl *RevocationList) Revoke(id string, until time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.entries[id] = until
}

func (rl *RevocationList) IsRevoked(id string) bool {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	until, ok := rl.entries[id]
	return ok && time.Now().Before(until)
}

func (rl *RevocationList) Len() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return len(rl.entries)
}

// Sweep drops entries whose token has expired.
func (rl *RevocationList) Sweep(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for id, until := range rl.entries {
		if now.After(until) {
			delete(rl.entries, id)
		}
	}
}

// StartSweeper runs Sweep every interval until ctx is done.
func (rl *RevocationList) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				rl.Sweep(now)
			case <-ctx.Done():
				return
			}
		}
	}()
}
