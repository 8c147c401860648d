package wellness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCrisisRegionAliases(t *testing.T) {
	cases := map[string]string{
		"us":            "US",
		"USA":           "US",
		"united states": "US",
		"america":       "US",
		"uk":            "UK",
		"gb":            "UK",
		"britain":       "UK",
		"ca":            "CANADA",
		"canada":        "CANADA",
		"au":            "AUSTRALIA",
		"aus":           "AUSTRALIA",
		"in":            "INDIA",
		" india ":       "INDIA",
	}
	for token, want := range cases {
		got, ok := ResolveCrisisRegion(token)
		require.True(t, ok, "token %q should resolve", token)
		assert.Equal(t, want, got, token)
	}
}

func TestResolveCrisisRegionUnknown(t *testing.T) {
	for _, token := range []string{"", "mars", "EU", "narnia"} {
		_, ok := ResolveCrisisRegion(token)
		assert.False(t, ok, token)
	}
}

func TestCrisisResourcesHaveLines(t *testing.T) {
	for region, lines := range crisisResources {
		assert.NotEmpty(t, lines, region)
		for _, line := range lines {
			assert.NotEmpty(t, line.service, region)
			assert.NotEmpty(t, line.contact, region)
		}
	}
}

func TestRandomAffirmationNonEmpty(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		a := RandomAffirmation()
		require.NotEmpty(t, a)
		seen[a] = true
	}
	assert.Greater(t, len(seen), 1, "affirmations should vary")
}

func TestCommandsRegisterCleanly(t *testing.T) {
	cmds := Commands()
	require.NotEmpty(t, cmds)
	names := make(map[string]bool)
	for _, c := range cmds {
		assert.NotEmpty(t, c.Name)
		assert.NotNil(t, c.Run, c.Name)
		assert.False(t, names[c.Name], "duplicate name %s", c.Name)
		names[c.Name] = true
	}
}
