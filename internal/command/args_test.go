package command

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"10s", 10 * time.Second},
		{"5m", 5 * time.Minute},
		{"1h", time.Hour},
		{"2d", 48 * time.Hour},
		{"2D", 48 * time.Hour},
	}
	for _, tc := range cases {
		got, err := ParseDuration(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseDurationRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "10", "s", "10w", "ten seconds", "1h30m", "-5m", "5 m"} {
		_, err := ParseDuration(in)
		var usage *UsageError
		assert.ErrorAs(t, err, &usage, in)
	}
}

func TestParseDice(t *testing.T) {
	rolls, sides, err := ParseDice("2d6")
	require.NoError(t, err)
	assert.Equal(t, 2, rolls)
	assert.Equal(t, 6, sides)

	rolls, sides, err = ParseDice("1D20")
	require.NoError(t, err)
	assert.Equal(t, 1, rolls)
	assert.Equal(t, 20, sides)
}

func TestParseDiceRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "d6", "2d", "xd6", "2dY", "0d6", "2d0", "2d6d8", "-1d6"} {
		_, _, err := ParseDice(in)
		var usage *UsageError
		assert.ErrorAs(t, err, &usage, in)
	}
}

func TestSplitChoices(t *testing.T) {
	assert.Equal(t, []string{"tea", "coffee", "water"}, SplitChoices(" tea , coffee,water "))
	assert.Nil(t, SplitChoices(" , ,"))
}
