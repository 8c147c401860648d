package storage

import (
	"sync"
	"time"
)

// CooldownGate enforces per-user, per-command trailing windows: at most N
// uses within the last W. It keeps raw use timestamps so the window is
// exact, not bucketed. A use at time t blocks the (N+1)th attempt strictly
// inside (t, t+W) and admits an attempt at t+W or later.
type CooldownGate struct {
	mu   sync.Mutex
	hits map[string][]time.Time
}

func newCooldownGate() *CooldownGate {
	return &CooldownGate{hits: make(map[string][]time.Time)}
}

// Allow records a use for userID+command if fewer than maxUses fall within
// the trailing window ending at now, and reports whether it was admitted.
// Rejected attempts are not recorded and do not extend the window.
func (g *CooldownGate) Allow(userID, command string, maxUses int, window time.Duration, now time.Time) bool {
	if maxUses <= 0 || window <= 0 {
		return true
	}
	key := userID + "\x00" + command
	cutoff := now.Add(-window)

	g.mu.Lock()
	defer g.mu.Unlock()

	kept := g.hits[key][:0]
	for _, t := range g.hits[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) >= maxUses {
		g.hits[key] = kept
		return false
	}
	g.hits[key] = append(kept, now)
	return true
}

// Sweep drops entries whose every timestamp is older than an hour before
// now and returns how many keys were removed. Windows in use are never
// touched, so a sweep can never admit a blocked user early.
func (g *CooldownGate) Sweep(now time.Time) int {
	cutoff := now.Add(-time.Hour)

	g.mu.Lock()
	defer g.mu.Unlock()

	removed := 0
	for key, stamps := range g.hits {
		stale := true
		for _, t := range stamps {
			if t.After(cutoff) {
				stale = false
				break
			}
		}
		if stale {
			delete(g.hits, key)
			removed++
		}
	}
	return removed
}
