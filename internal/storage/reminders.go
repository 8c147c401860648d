package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Reminder is one pending delivery.
type Reminder struct {
	ID        string
	OwnerID   string
	ChannelID string
	Message   string
	Due       time.Time
}

// ReminderStore schedules reminders on per-reminder timers. Each reminder
// fires exactly once; closing the parent Store cancels everything pending.
type ReminderStore struct {
	mu      sync.Mutex
	pending map[string]*reminderEntry
	done    chan struct{}
}

type reminderEntry struct {
	reminder Reminder
	timer    *time.Timer
}

func newReminderStore(done chan struct{}) *ReminderStore {
	return &ReminderStore{
		pending: make(map[string]*reminderEntry),
		done:    done,
	}
}

// Schedule registers a reminder that fires after delay by calling deliver
// from its own goroutine. Delivery happens at most once; a reminder pending
// when the store closes is dropped silently.
func (s *ReminderStore) Schedule(ownerID, channelID, message string, delay time.Duration, deliver func(Reminder)) Reminder {
	rem := Reminder{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		ChannelID: channelID,
		Message:   message,
		Due:       time.Now().Add(delay),
	}

	entry := &reminderEntry{reminder: rem}
	entry.timer = time.AfterFunc(delay, func() {
		select {
		case <-s.done:
			return
		default:
		}
		if s.remove(rem.ID) {
			deliver(rem)
		}
	})

	s.mu.Lock()
	s.pending[rem.ID] = entry
	s.mu.Unlock()
	return rem
}

// Cancel stops a pending reminder and reports whether it was still pending.
func (s *ReminderStore) Cancel(id string) bool {
	s.mu.Lock()
	entry, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
	}
	s.mu.Unlock()
	if ok {
		entry.timer.Stop()
	}
	return ok
}

// Outstanding returns the owner's pending reminders, oldest due first.
func (s *ReminderStore) Outstanding(ownerID string) []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Reminder
	for _, entry := range s.pending {
		if entry.reminder.OwnerID == ownerID {
			out = append(out, entry.reminder)
		}
	}
	sortRemindersByDue(out)
	return out
}

func (s *ReminderStore) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[id]; !ok {
		return false
	}
	delete(s.pending, id)
	return true
}

func sortRemindersByDue(rs []Reminder) {
	for i := 1; i < len(rs); i++ {
		for j := i; j > 0 && rs[j].Due.Before(rs[j-1].Due); j-- {
			rs[j], rs[j-1] = rs[j-1], rs[j]
		}
	}
}
