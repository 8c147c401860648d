package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCooldownGateTrailingWindow(t *testing.T) {
	g := newCooldownGate()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	window := time.Minute

	assert.True(t, g.Allow("u1", "weather", 2, window, base))
	assert.True(t, g.Allow("u1", "weather", 2, window, base.Add(10*time.Second)))

	// Third use strictly inside the window is blocked.
	assert.False(t, g.Allow("u1", "weather", 2, window, base.Add(59*time.Second)))

	// At exactly base+window the first use has aged out.
	assert.True(t, g.Allow("u1", "weather", 2, window, base.Add(window)))
}

func TestCooldownGateRejectionsDoNotExtend(t *testing.T) {
	g := newCooldownGate()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	window := time.Minute

	assert.True(t, g.Allow("u1", "shorten", 1, window, base))

	// Hammering while blocked must not push the window forward.
	for i := 1; i < 60; i++ {
		assert.False(t, g.Allow("u1", "shorten", 1, window, base.Add(time.Duration(i)*time.Second)))
	}
	assert.True(t, g.Allow("u1", "shorten", 1, window, base.Add(window)))
}

func TestCooldownGateKeysAreIndependent(t *testing.T) {
	g := newCooldownGate()
	now := time.Now()

	assert.True(t, g.Allow("u1", "weather", 1, time.Minute, now))
	assert.False(t, g.Allow("u1", "weather", 1, time.Minute, now))

	// Different user, same command.
	assert.True(t, g.Allow("u2", "weather", 1, time.Minute, now))
	// Same user, different command.
	assert.True(t, g.Allow("u1", "shorten", 1, time.Minute, now))
}

func TestCooldownGateZeroConfigAlwaysAllows(t *testing.T) {
	g := newCooldownGate()
	now := time.Now()
	assert.True(t, g.Allow("u1", "x", 0, time.Minute, now))
	assert.True(t, g.Allow("u1", "x", 1, 0, now))
}

func TestCooldownSweepDropsOnlyStaleKeys(t *testing.T) {
	g := newCooldownGate()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	g.Allow("stale", "weather", 3, time.Minute, base)
	g.Allow("fresh", "weather", 3, time.Minute, base.Add(2*time.Hour))

	removed := g.Sweep(base.Add(2 * time.Hour))
	assert.Equal(t, 1, removed)

	// The fresh key kept its record: a second sweep finds nothing and the
	// blocked state survives.
	assert.Equal(t, 0, g.Sweep(base.Add(2*time.Hour)))
	assert.False(t, g.Allow("fresh", "weather", 1, time.Hour, base.Add(2*time.Hour+time.Minute)))
}
