package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "test-token")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "test-token", cfg.DiscordToken)
	assert.Equal(t, "!", cfg.Prefix)
	assert.Equal(t, "coffee-facts", cfg.FactsChannel)
	assert.Equal(t, 6*time.Hour, cfg.FactsInterval)
	assert.Equal(t, "wellness", cfg.WellnessChannel)
	assert.Equal(t, 12*time.Hour, cfg.WellnessInterval)
}

func TestNewOverrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("BOT_PREFIX", "?")
	t.Setenv("FACTS_CHANNEL", "beans")
	t.Setenv("FACTS_INTERVAL", "30m")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "?", cfg.Prefix)
	assert.Equal(t, "beans", cfg.FactsChannel)
	assert.Equal(t, 30*time.Minute, cfg.FactsInterval)
}

func TestNewRequiresToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "placeholder") // register cleanup, then drop it
	os.Unsetenv("DISCORD_TOKEN")

	_, err := New()
	assert.Error(t, err)
}
