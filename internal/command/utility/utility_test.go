package utility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuoted(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{`best drink? tea coffee`, []string{"best", "drink?", "tea", "coffee"}},
		{`"Best drink?" Tea Coffee`, []string{"Best drink?", "Tea", "Coffee"}},
		{`"Movie night?" "The Matrix" "Spirited Away" Alien`, []string{"Movie night?", "The Matrix", "Spirited Away", "Alien"}},
		{`  spaced   out  `, []string{"spaced", "out"}},
		{``, nil},
		{`""`, nil},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, parseQuoted(tc.in), tc.in)
	}
}

func TestParseQuotedUnterminatedQuote(t *testing.T) {
	// A dangling quote swallows the rest of the tail as one token.
	assert.Equal(t, []string{"q", "a b"}, parseQuoted(`q "a b`))
}

func TestCommandsRegisterCleanly(t *testing.T) {
	cmds := Commands()
	require.NotEmpty(t, cmds)
	for _, c := range cmds {
		assert.NotEmpty(t, c.Name)
		assert.NotNil(t, c.Run, c.Name)
	}
}
