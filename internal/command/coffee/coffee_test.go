package coffee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrewGuidesHaveSteps(t *testing.T) {
	require.NotEmpty(t, brewGuides)
	for name, guide := range brewGuides {
		assert.NotEmpty(t, guide.title, name)
		assert.NotEmpty(t, guide.steps, name)
	}
}

func TestCaffeineTableEntries(t *testing.T) {
	for _, drink := range []string{"espresso", "latte", "americano"} {
		_, ok := caffeineTable[drink]
		assert.True(t, ok, drink)
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Espresso", title("espresso"))
	assert.Equal(t, "Latte", title("Latte"))
	assert.Equal(t, "", title(""))
}

func TestCommandsRegisterCleanly(t *testing.T) {
	cmds := Commands()
	require.NotEmpty(t, cmds)
	for _, c := range cmds {
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Description, c.Name)
		assert.NotNil(t, c.Run, c.Name)
	}
}
