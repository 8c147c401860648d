package moderation

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurora9161/mochabot/internal/command"
)

func testContext(args ...string) *command.Context {
	return &command.Context{
		Message: &discordgo.MessageCreate{Message: &discordgo.Message{
			GuildID: "g1",
			Author:  &discordgo.User{ID: "mod-1", Username: "ModUser"},
		}},
		Args: args,
	}
}

func TestReasonFrom(t *testing.T) {
	assert.Equal(t, "spamming the café", reasonFrom(testContext("@target", "spamming", "the", "café"), 1))
	assert.Equal(t, "No reason provided", reasonFrom(testContext("@target"), 1))
}

func TestAuditReason(t *testing.T) {
	assert.Equal(t, "ModUser: spamming", auditReason(testContext(), "spamming"))
}

// hierarchySession backs a session with one guild holding a role ladder,
// the invoking moderator, the guild owner and the bot itself.
func hierarchySession(t *testing.T) *discordgo.Session {
	t.Helper()
	st := discordgo.NewState()
	st.User = &discordgo.User{ID: "bot-1", Username: "MochaBot"}
	require.NoError(t, st.GuildAdd(&discordgo.Guild{
		ID:      "g1",
		OwnerID: "owner-1",
		Roles: []*discordgo.Role{
			{ID: "r-barista", Position: 1},
			{ID: "r-mod", Position: 3},
			{ID: "r-bot", Position: 4},
			{ID: "r-admin", Position: 5},
		},
	}))
	for _, m := range []*discordgo.Member{
		{GuildID: "g1", User: &discordgo.User{ID: "mod-1", Username: "ModUser"}, Roles: []string{"r-mod"}},
		{GuildID: "g1", User: &discordgo.User{ID: "owner-1", Username: "Owner"}, Roles: []string{"r-barista"}},
		{GuildID: "g1", User: &discordgo.User{ID: "bot-1", Username: "MochaBot"}, Roles: []string{"r-bot"}},
	} {
		require.NoError(t, st.MemberAdd(m))
	}
	return &discordgo.Session{State: st}
}

func hierarchyContext(t *testing.T, authorID string) *command.Context {
	t.Helper()
	return &command.Context{
		Session: hierarchySession(t),
		Message: &discordgo.MessageCreate{Message: &discordgo.Message{
			GuildID: "g1",
			Author:  &discordgo.User{ID: authorID, Username: authorID},
		}},
	}
}

func guildMember(id string, roles ...string) *discordgo.Member {
	return &discordgo.Member{User: &discordgo.User{ID: id, Username: id}, Roles: roles}
}

func TestCheckTargetRoleHierarchy(t *testing.T) {
	ctx := hierarchyContext(t, "mod-1")

	var denied *command.PermissionError
	err := checkTarget(ctx, guildMember("t-1", "r-mod"), "kick")
	require.ErrorAs(t, err, &denied, "equal top role must be denied")
	assert.Contains(t, denied.Msg, "higher or equal role")

	err = checkTarget(ctx, guildMember("t-2", "r-admin"), "ban")
	require.ErrorAs(t, err, &denied, "higher top role must be denied")

	assert.NoError(t, checkTarget(ctx, guildMember("t-3", "r-barista"), "timeout"))
	assert.NoError(t, checkTarget(ctx, guildMember("t-4"), "kick"), "roleless targets rank below the moderator")
}

func TestCheckTargetSelfAndBot(t *testing.T) {
	ctx := hierarchyContext(t, "mod-1")

	var denied *command.PermissionError
	require.ErrorAs(t, checkTarget(ctx, guildMember("mod-1", "r-barista"), "kick"), &denied)
	assert.Contains(t, denied.Msg, "yourself")

	require.ErrorAs(t, checkTarget(ctx, guildMember("bot-1", "r-bot"), "ban"), &denied)
	assert.Contains(t, denied.Msg, "myself")
}

func TestCheckTargetGuildOwnerBypass(t *testing.T) {
	ctx := hierarchyContext(t, "owner-1")

	// The owner outranks everyone regardless of their own roles.
	assert.NoError(t, checkTarget(ctx, guildMember("t-1", "r-mod"), "kick"))

	// The bot-side rule still applies even for the owner.
	var denied *command.PermissionError
	require.ErrorAs(t, checkTarget(ctx, guildMember("t-2", "r-admin"), "timeout"), &denied)
	assert.Contains(t, denied.Msg, "than me")
}

func TestTopRolePosition(t *testing.T) {
	guild := &discordgo.Guild{Roles: []*discordgo.Role{
		{ID: "r-low", Position: 1},
		{ID: "r-high", Position: 5},
		{ID: "r-mid", Position: 3},
	}}

	assert.Equal(t, 5, topRolePosition(guild, &discordgo.Member{Roles: []string{"r-low", "r-high"}}))
	assert.Equal(t, 3, topRolePosition(guild, &discordgo.Member{Roles: []string{"r-mid"}}))
	assert.Equal(t, -1, topRolePosition(guild, &discordgo.Member{}), "roleless members rank below everyone")
	assert.Equal(t, -1, topRolePosition(guild, &discordgo.Member{Roles: []string{"r-unknown"}}))
}

func TestCommandsDeclareGuardRails(t *testing.T) {
	cmds := Commands()
	require.NotEmpty(t, cmds)
	for _, c := range cmds {
		assert.True(t, c.GuildOnly, "%s must be guild-only", c.Name)
		assert.NotEmpty(t, c.UserPermissions, "%s must require user permissions", c.Name)
		if c.Name != "warn" { // warn only DMs, the bot needs no channel power
			assert.NotEmpty(t, c.BotPermissions, "%s must declare bot permissions", c.Name)
		}
		assert.NotNil(t, c.Run, c.Name)
	}
}
