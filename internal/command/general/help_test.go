package general

import (
	"fmt"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurora9161/mochabot/internal/command"
)

func testRegistry(t *testing.T) *command.Registry {
	t.Helper()
	reg := command.NewRegistry()
	reg.MustRegister(Commands()...)
	reg.MustRegister(&command.Command{
		Sort: 100, Name: "coffee", Category: "Coffee", Emoji: "☕",
		Description: "Random coffee fact",
		Run:         func(*command.Context) error { return nil },
	})
	return reg
}

func TestParsePanelCustomID(t *testing.T) {
	id, page, ok := ParsePanelCustomID("help:abc-123:2")
	require.True(t, ok)
	assert.Equal(t, "abc-123", id)
	assert.Equal(t, 2, page)
}

func TestParsePanelCustomIDRejectsForeignIDs(t *testing.T) {
	for _, customID := range []string{"", "help", "help:abc", "poll:abc:2", "help:abc:two", "help:abc:2:extra"} {
		_, _, ok := ParsePanelCustomID(customID)
		assert.False(t, ok, customID)
	}
}

func TestPanelComponentsRoundTripThroughParse(t *testing.T) {
	rows := PanelComponents("sess-1", 1, 3)
	require.Len(t, rows, 1)
	row, ok := rows[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 3)

	for _, c := range row.Components {
		btn, ok := c.(discordgo.Button)
		require.True(t, ok)
		id, page, parsed := ParsePanelCustomID(btn.CustomID)
		require.True(t, parsed, btn.CustomID)
		assert.Equal(t, "sess-1", id)
		assert.GreaterOrEqual(t, page, 0)
		assert.Less(t, page, 3)
	}
}

func TestPanelComponentsEdgeButtonsDisabled(t *testing.T) {
	first := PanelComponents("s", 0, 3)[0].(discordgo.ActionsRow)
	assert.True(t, first.Components[0].(discordgo.Button).Disabled, "Prev is dead on the first page")
	assert.False(t, first.Components[2].(discordgo.Button).Disabled)

	last := PanelComponents("s", 2, 3)[0].(discordgo.ActionsRow)
	assert.False(t, last.Components[0].(discordgo.Button).Disabled)
	assert.True(t, last.Components[2].(discordgo.Button).Disabled, "Next is dead on the last page")
}

func TestDisabledPanelComponents(t *testing.T) {
	row := DisabledPanelComponents("s", 1, 3)[0].(discordgo.ActionsRow)
	for _, c := range row.Components {
		assert.True(t, c.(discordgo.Button).Disabled)
	}
}

func TestPanelPagesCountsCategories(t *testing.T) {
	reg := testRegistry(t)
	// One home page plus General and Coffee.
	assert.Equal(t, 3, PanelPages(reg))
}

func TestPanelEmbedHomeAndCategoryPages(t *testing.T) {
	reg := testRegistry(t)

	home := PanelEmbed(reg, "!", 0)
	assert.Contains(t, home.Title, "Command Guide")
	assert.Contains(t, home.Description, "General")
	assert.Contains(t, home.Description, "Coffee")

	coffeePage := PanelEmbed(reg, "!", 2)
	assert.Contains(t, coffeePage.Title, "Coffee")
	assert.Contains(t, coffeePage.Description, "`!coffee`")
	assert.Contains(t, coffeePage.Footer.Text, fmt.Sprintf("Page 3 of %d", PanelPages(reg)))

	// Out-of-range pages render the home overview.
	assert.Equal(t, home.Title, PanelEmbed(reg, "!", 99).Title)
}
