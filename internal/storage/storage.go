// Package storage keeps the bot's ephemeral runtime state: scheduled
// reminders, timeout bookkeeping, mood logs and per-user cooldown windows.
// Everything lives in memory and is gone on restart.
package storage

import (
	"log"
	"sync"
	"time"
)

// Store bundles the in-memory stores behind one handle.
type Store struct {
	Mutes     *MuteStore
	Reminders *ReminderStore
	Moods     *MoodStore
	Cooldowns *CooldownGate

	closeOnce sync.Once
	done      chan struct{}
}

// New returns an empty store.
func New() *Store {
	done := make(chan struct{})
	return &Store{
		Mutes:     newMuteStore(),
		Reminders: newReminderStore(done),
		Moods:     newMoodStore(),
		Cooldowns: newCooldownGate(),
		done:      done,
	}
}

// Close stops reminder timers and background sweeps. Pending reminders are
// dropped without firing.
func (s *Store) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// RunCooldownCleaner sweeps expired cooldown entries every interval until
// the store is closed. Run it in its own goroutine.
func (s *Store) RunCooldownCleaner(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if n := s.Cooldowns.Sweep(time.Now()); n > 0 {
				log.Printf("[INFO] Cooldown sweep removed %d stale entries", n)
			}
		}
	}
}
