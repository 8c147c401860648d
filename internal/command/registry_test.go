package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCommand(sort int, name string, aliases ...string) *Command {
	return &Command{
		Sort:     sort,
		Name:     name,
		Aliases:  aliases,
		Category: "Test",
		Run:      func(*Context) error { return nil },
	}
}

func TestRegistryResolveCaseFolded(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(testCommand(0, "ping", "p")))

	for _, token := range []string{"ping", "PING", "Ping", "p", "P"} {
		cmd, ok := reg.Resolve(token)
		require.True(t, ok, "token %q should resolve", token)
		assert.Equal(t, "ping", cmd.Name)
	}

	_, ok := reg.Resolve("pong")
	assert.False(t, ok)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(testCommand(0, "brew", "b")))

	err := reg.Register(testCommand(1, "brew"))
	var dup *DuplicateCommandError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "brew", dup.Token)

	// Alias collisions count too, case-insensitively.
	err = reg.Register(testCommand(2, "beans", "B"))
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "b", dup.Token)
}

func TestRegistryRegisterIsAtomic(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(testCommand(0, "brew", "b")))

	// The colliding alias comes last; neither the name nor the earlier
	// alias may survive the failed registration.
	err := reg.Register(testCommand(1, "steep", "st", "b"))
	var dup *DuplicateCommandError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "b", dup.Token)

	_, ok := reg.Resolve("steep")
	assert.False(t, ok)
	_, ok = reg.Resolve("st")
	assert.False(t, ok)

	cmd, ok := reg.Resolve("b")
	require.True(t, ok)
	assert.Equal(t, "brew", cmd.Name)

	// The tokens stay free for a clean registration.
	require.NoError(t, reg.Register(testCommand(2, "steep", "st")))
}

func TestRegistryRejectsSelfCollision(t *testing.T) {
	reg := NewRegistry()

	err := reg.Register(testCommand(0, "latte", "LATTE"))
	var dup *DuplicateCommandError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "latte", dup.Token)

	_, ok := reg.Resolve("latte")
	assert.False(t, ok)
}

func TestMustRegisterPanicsOnCollision(t *testing.T) {
	reg := NewRegistry()
	assert.Panics(t, func() {
		reg.MustRegister(testCommand(0, "kick"), testCommand(1, "kick"))
	})
}

func TestRegistryAllSortedAndDeduped(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(
		testCommand(2, "charlie", "c"),
		testCommand(1, "bravo"),
		testCommand(1, "alpha"),
	)

	all := reg.All()
	require.Len(t, all, 3)
	assert.Equal(t, "alpha", all[0].Name)
	assert.Equal(t, "bravo", all[1].Name)
	assert.Equal(t, "charlie", all[2].Name)
}

func TestRegistryCategories(t *testing.T) {
	reg := NewRegistry()
	a := testCommand(0, "help")
	a.Category = "General"
	b := testCommand(100, "coffee")
	b.Category = "Coffee"
	c := testCommand(1, "ping")
	c.Category = "General"
	reg.MustRegister(a, b, c)

	groups := reg.Categories()
	require.Len(t, groups, 2)
	assert.Equal(t, "General", groups[0].Name)
	assert.Len(t, groups[0].Commands, 2)
	assert.Equal(t, "Coffee", groups[1].Name)
	assert.Len(t, groups[1].Commands, 1)
}
