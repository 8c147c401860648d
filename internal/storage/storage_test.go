package storage

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderFiresExactlyOnce(t *testing.T) {
	store := New()
	defer store.Close()

	fired := make(chan Reminder, 2)
	rem := store.Reminders.Schedule("u1", "c1", "drink water", 10*time.Millisecond, func(r Reminder) {
		fired <- r
	})

	select {
	case got := <-fired:
		assert.Equal(t, rem.ID, got.ID)
		assert.Equal(t, "drink water", got.Message)
	case <-time.After(time.Second):
		t.Fatal("reminder never fired")
	}

	select {
	case <-fired:
		t.Fatal("reminder fired twice")
	case <-time.After(50 * time.Millisecond):
	}

	// Once delivered it is no longer pending.
	assert.Empty(t, store.Reminders.Outstanding("u1"))
	assert.False(t, store.Reminders.Cancel(rem.ID))
}

func TestReminderCancel(t *testing.T) {
	store := New()
	defer store.Close()

	var fired atomic.Int32
	rem := store.Reminders.Schedule("u1", "c1", "never", 20*time.Millisecond, func(Reminder) {
		fired.Add(1)
	})

	require.True(t, store.Reminders.Cancel(rem.ID))
	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, fired.Load())
	assert.Empty(t, store.Reminders.Outstanding("u1"))
}

func TestReminderOutstandingSortedByDue(t *testing.T) {
	store := New()
	defer store.Close()

	deliver := func(Reminder) {}
	store.Reminders.Schedule("u1", "c1", "third", time.Hour*3, deliver)
	store.Reminders.Schedule("u1", "c1", "first", time.Hour, deliver)
	store.Reminders.Schedule("u1", "c1", "second", time.Hour*2, deliver)
	store.Reminders.Schedule("other", "c1", "not yours", time.Hour, deliver)

	out := store.Reminders.Outstanding("u1")
	require.Len(t, out, 3)
	assert.Equal(t, "first", out[0].Message)
	assert.Equal(t, "second", out[1].Message)
	assert.Equal(t, "third", out[2].Message)
}

func TestCloseDropsPendingReminders(t *testing.T) {
	store := New()

	var fired atomic.Int32
	store.Reminders.Schedule("u1", "c1", "late", 20*time.Millisecond, func(Reminder) {
		fired.Add(1)
	})

	store.Close()
	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, fired.Load())

	// Close is idempotent.
	store.Close()
}

func TestMoodHistoryBounded(t *testing.T) {
	store := New()
	defer store.Close()

	for i := 1; i <= 35; i++ {
		store.Moods.Log("u1", (i%10)+1, "")
	}

	hist := store.Moods.History("u1")
	require.Len(t, hist, 30)
	// Oldest entries were evicted: the first survivor is log #6.
	assert.Equal(t, (6%10)+1, hist[0].Score)
}

func TestMoodAverage(t *testing.T) {
	store := New()
	defer store.Close()

	_, ok := store.Moods.Average("nobody")
	assert.False(t, ok)

	store.Moods.Log("u1", 4, "meh")
	store.Moods.Log("u1", 8, "good coffee")
	avg, ok := store.Moods.Average("u1")
	require.True(t, ok)
	assert.InDelta(t, 6.0, avg, 0.0001)
}

func TestMuteRecordLapsesOnExpiry(t *testing.T) {
	store := New()
	defer store.Close()

	store.Mutes.Set(MuteRecord{
		GuildID: "g1", UserID: "u1", ModeratorID: "mod",
		Reason: "spamming", Until: time.Now().Add(time.Hour),
	})

	rec, ok := store.Mutes.Get("g1", "u1")
	require.True(t, ok)
	assert.Equal(t, "spamming", rec.Reason)

	// A lapsed record reads as absent.
	store.Mutes.Set(MuteRecord{
		GuildID: "g1", UserID: "u2", Until: time.Now().Add(-time.Second),
	})
	_, ok = store.Mutes.Get("g1", "u2")
	assert.False(t, ok)

	assert.True(t, store.Mutes.Clear("g1", "u1"))
	assert.False(t, store.Mutes.Clear("g1", "u1"))
	_, ok = store.Mutes.Get("g1", "u1")
	assert.False(t, ok)
}
