package fun

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurora9161/mochabot/internal/session"
)

func TestTriviaQuestionsAreWellFormed(t *testing.T) {
	require.NotEmpty(t, triviaQuestions)
	for _, q := range triviaQuestions {
		assert.NotEmpty(t, q.question)
		require.Len(t, q.options, 4, q.question)

		found := false
		for _, opt := range q.options {
			if opt == q.answer {
				found = true
				break
			}
		}
		assert.True(t, found, "answer %q missing from options of %q", q.answer, q.question)
	}
}

func TestEightBallAnswerPool(t *testing.T) {
	assert.Len(t, eightBallAnswers, 20)
}

func TestOptionMarkersUsePrimarySet(t *testing.T) {
	var added []string
	markers := addOptionMarkers(
		func(emoji string) error {
			added = append(added, emoji)
			return nil
		},
		func() error {
			t.Fatal("clear must not run when every marker sticks")
			return nil
		},
		4,
	)

	assert.Equal(t, triviaMarkers[:4], markers)
	assert.Equal(t, triviaMarkers[:4], added)
}

func TestOptionMarkersFallBackWhenPrimaryRejected(t *testing.T) {
	var added []string
	cleared := 0
	markers := addOptionMarkers(
		func(emoji string) error {
			if emoji == triviaMarkers[1] {
				return errors.New("Unknown Emoji")
			}
			added = append(added, emoji)
			return nil
		},
		func() error {
			cleared++
			added = nil
			return nil
		},
		4,
	)

	assert.Equal(t, triviaFallbackMarkers[:4], markers)
	assert.Equal(t, 1, cleared)
	assert.Equal(t, triviaFallbackMarkers[:4], added, "the round restarts on the alternate set")

	// A race built on the returned set accepts the alternate tokens.
	race := session.NewRace("m1", "u1", markers, 50*time.Millisecond)
	race.Offer("u1", triviaFallbackMarkers[2])
	outcome, token := race.Wait(context.Background())
	assert.Equal(t, session.Answered, outcome)
	assert.Equal(t, triviaFallbackMarkers[2], token)
}

func TestCommandsRegisterCleanly(t *testing.T) {
	cmds := Commands()
	require.NotEmpty(t, cmds)
	for _, c := range cmds {
		assert.NotEmpty(t, c.Name)
		assert.NotNil(t, c.Run, c.Name)
	}
}
