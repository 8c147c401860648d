package storage

import (
	"sync"
	"time"
)

// MuteRecord remembers who timed out whom and until when. It is local
// bookkeeping for display; the platform owns the actual enforcement and is
// never reconciled against.
type MuteRecord struct {
	GuildID     string
	UserID      string
	ModeratorID string
	Reason      string
	Until       time.Time
}

// MuteStore tracks active timeouts per guild+user.
type MuteStore struct {
	mu    sync.Mutex
	mutes map[string]MuteRecord
}

func newMuteStore() *MuteStore {
	return &MuteStore{mutes: make(map[string]MuteRecord)}
}

func muteKey(guildID, userID string) string {
	return guildID + "\x00" + userID
}

// Set records a timeout, replacing any previous record for the same member.
func (s *MuteStore) Set(rec MuteRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mutes[muteKey(rec.GuildID, rec.UserID)] = rec
}

// Get returns the record for a member, if one exists and has not lapsed.
func (s *MuteStore) Get(guildID, userID string) (MuteRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.mutes[muteKey(guildID, userID)]
	if !ok || time.Now().After(rec.Until) {
		return MuteRecord{}, false
	}
	return rec, true
}

// Clear removes the record for a member and reports whether one existed.
func (s *MuteStore) Clear(guildID, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := muteKey(guildID, userID)
	_, ok := s.mutes[key]
	delete(s.mutes, key)
	return ok
}
