package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var raceTokens = []string{"🅰️", "🅱️", "🅲️", "🅳️"}

func TestRaceOwnerAnswerWins(t *testing.T) {
	r := NewRace("m1", "owner", raceTokens, time.Second)
	r.Offer("owner", "🅱️")

	outcome, token := r.Wait(context.Background())
	assert.Equal(t, Answered, outcome)
	assert.Equal(t, "🅱️", token)
	assert.Equal(t, Resolved, r.State())
}

func TestRaceIgnoresNonOwnerAndUnknownTokens(t *testing.T) {
	r := NewRace("m1", "owner", raceTokens, 80*time.Millisecond)

	r.Offer("bystander", "🅰️")
	r.Offer("owner", "🍕")

	outcome, token := r.Wait(context.Background())
	assert.Equal(t, TimedOut, outcome)
	assert.Empty(t, token)
	assert.Equal(t, Expired, r.State())
}

func TestRaceFirstOfferSticks(t *testing.T) {
	r := NewRace("m1", "owner", raceTokens, time.Second)
	r.Offer("owner", "🅰️")
	r.Offer("owner", "🅳️")

	outcome, token := r.Wait(context.Background())
	assert.Equal(t, Answered, outcome)
	assert.Equal(t, "🅰️", token)
}

func TestRaceTokensMatchCaseInsensitively(t *testing.T) {
	r := NewRace("m1", "owner", []string{"Alpha", "Beta"}, time.Second)
	r.Offer("owner", "  alpha ")

	outcome, token := r.Wait(context.Background())
	assert.Equal(t, Answered, outcome)
	assert.Equal(t, "Alpha", token, "the canonical token comes back, not the offered spelling")
}

func TestRaceLateOfferIsNoOp(t *testing.T) {
	r := NewRace("m1", "owner", raceTokens, 20*time.Millisecond)

	outcome, _ := r.Wait(context.Background())
	require.Equal(t, TimedOut, outcome)

	// The race already settled; a late answer changes nothing.
	r.Offer("owner", "🅰️")
	assert.Equal(t, Expired, r.State())
}

func TestRaceCancelledByContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRace("m1", "owner", raceTokens, time.Minute)

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	outcome, token := r.Wait(ctx)
	assert.Equal(t, Cancelled, outcome)
	assert.Empty(t, token)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestRaceOfferNeverBlocks(t *testing.T) {
	r := NewRace("m1", "owner", raceTokens, time.Second)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			r.Offer("owner", "🅰️")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Offer blocked")
	}
}
