package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepeatRunsImmediatelyThenOnTicks(t *testing.T) {
	m := NewManager()
	defer m.StopAll()

	var runs atomic.Int32
	err := m.Repeat(context.Background(), "ticker", 15*time.Millisecond, func(context.Context) {
		runs.Add(1)
	})
	require.NoError(t, err)

	deadline := time.Now().Add(time.Second)
	for runs.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assert.GreaterOrEqual(t, runs.Load(), int32(3))
}

func TestRepeatRejectsDuplicateNames(t *testing.T) {
	m := NewManager()
	defer m.StopAll()

	require.NoError(t, m.Repeat(context.Background(), "facts", time.Hour, func(context.Context) {}))
	err := m.Repeat(context.Background(), "facts", time.Hour, func(context.Context) {})
	assert.Error(t, err)
}

func TestRepeatRejectsBadInterval(t *testing.T) {
	m := NewManager()
	assert.Error(t, m.Repeat(context.Background(), "broken", 0, func(context.Context) {}))
}

func TestStopAllWaitsForJobs(t *testing.T) {
	m := NewManager()

	var runs atomic.Int32
	require.NoError(t, m.Repeat(context.Background(), "a", 10*time.Millisecond, func(context.Context) {
		runs.Add(1)
	}))
	require.NoError(t, m.Repeat(context.Background(), "b", 10*time.Millisecond, func(context.Context) {
		runs.Add(1)
	}))

	time.Sleep(30 * time.Millisecond)
	m.StopAll()

	after := runs.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, runs.Load(), "no runs after StopAll returns")
	assert.Empty(t, m.Running())
}

func TestParentCancelStopsJob(t *testing.T) {
	m := NewManager()
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, m.Repeat(ctx, "child", 10*time.Millisecond, func(context.Context) {}))
	cancel()

	deadline := time.Now().Add(time.Second)
	for len(m.Running()) > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assert.Empty(t, m.Running())
}

func TestStopByName(t *testing.T) {
	m := NewManager()
	defer m.StopAll()

	require.NoError(t, m.Repeat(context.Background(), "wellness", time.Hour, func(context.Context) {}))
	assert.True(t, m.Stop("wellness"))
	assert.False(t, m.Stop("never-existed"))
}
