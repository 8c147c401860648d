package storage

import (
	"sync"
	"time"
)

// MoodEntry is one logged check-in.
type MoodEntry struct {
	Score int // 1..10
	Note  string
	At    time.Time
}

// MoodStore keeps a bounded per-user mood history, newest last.
type MoodStore struct {
	mu      sync.Mutex
	entries map[string][]MoodEntry
}

const moodHistoryLimit = 30

func newMoodStore() *MoodStore {
	return &MoodStore{entries: make(map[string][]MoodEntry)}
}

// Log appends an entry for the user, evicting the oldest past the limit.
func (s *MoodStore) Log(userID string, score int, note string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := append(s.entries[userID], MoodEntry{Score: score, Note: note, At: time.Now()})
	if len(list) > moodHistoryLimit {
		list = list[len(list)-moodHistoryLimit:]
	}
	s.entries[userID] = list
}

// History returns a copy of the user's entries, oldest first.
func (s *MoodStore) History(userID string) []MoodEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.entries[userID]
	out := make([]MoodEntry, len(list))
	copy(out, list)
	return out
}

// Average returns the mean score over the user's history, and whether any
// entries exist.
func (s *MoodStore) Average(userID string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.entries[userID]
	if len(list) == 0 {
		return 0, false
	}
	sum := 0
	for _, e := range list {
		sum += e.Score
	}
	return float64(sum) / float64(len(list)), true
}
