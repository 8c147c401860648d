// Package moderation provides the server-management command group: kick,
// ban, timeouts, bulk delete, slowmode, warnings and channel lockdown.
package moderation

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/aurora9161/mochabot/internal/command"
	"github.com/aurora9161/mochabot/internal/storage"
)

const categoryName = "Moderation"

const (
	minTimeout = time.Minute
	maxTimeout = 28 * 24 * time.Hour

	minClear = 1
	maxClear = 100

	maxSlowmode = 21600

	maxBanDeleteDays = 7
)

var mentionRegex = regexp.MustCompile(`^<@!?(\d+)>$`)

// Commands returns the moderation command set.
func Commands() []*command.Command {
	return []*command.Command{
		{
			Sort: 400, Name: "kick", Category: categoryName, Emoji: "🔒",
			Description:     "Kick a member from the server",
			Usage:           "kick <@user> [reason...]",
			GuildOnly:       true,
			UserPermissions: []int64{discordgo.PermissionKickMembers},
			BotPermissions:  []int64{discordgo.PermissionKickMembers},
			Run:             runKick,
		},
		{
			Sort: 401, Name: "ban", Category: categoryName, Emoji: "🔒",
			Description:     "Ban a member from the server",
			Usage:           "ban <@user> [deleteDays] [reason...]",
			GuildOnly:       true,
			UserPermissions: []int64{discordgo.PermissionBanMembers},
			BotPermissions:  []int64{discordgo.PermissionBanMembers},
			Run:             runBan,
		},
		{
			Sort: 402, Name: "unban", Category: categoryName, Emoji: "🔓",
			Description:     "Unban a user by ID",
			Usage:           "unban <userID> [reason...]",
			GuildOnly:       true,
			UserPermissions: []int64{discordgo.PermissionBanMembers},
			BotPermissions:  []int64{discordgo.PermissionBanMembers},
			Run:             runUnban,
		},
		{
			Sort: 403, Name: "timeout", Aliases: []string{"mute"}, Category: categoryName, Emoji: "🔇",
			Description:     "Timeout a member",
			Usage:           "timeout <@user> <duration> [reason...]",
			GuildOnly:       true,
			UserPermissions: []int64{discordgo.PermissionModerateMembers},
			BotPermissions:  []int64{discordgo.PermissionModerateMembers},
			Run:             runTimeout,
		},
		{
			Sort: 404, Name: "untimeout", Aliases: []string{"unmute"}, Category: categoryName, Emoji: "🔊",
			Description:     "Remove a member's timeout",
			Usage:           "untimeout <@user> [reason...]",
			GuildOnly:       true,
			UserPermissions: []int64{discordgo.PermissionModerateMembers},
			BotPermissions:  []int64{discordgo.PermissionModerateMembers},
			Run:             runUntimeout,
		},
		{
			Sort: 405, Name: "clear", Aliases: []string{"purge"}, Category: categoryName, Emoji: "🧹",
			Description:     "Clear messages from the channel",
			Usage:           "clear [amount]",
			GuildOnly:       true,
			UserPermissions: []int64{discordgo.PermissionManageMessages},
			BotPermissions:  []int64{discordgo.PermissionManageMessages},
			Run:             runClear,
		},
		{
			Sort: 406, Name: "slowmode", Category: categoryName, Emoji: "🐌",
			Description:     "Set channel slowmode",
			Usage:           "slowmode [seconds]",
			GuildOnly:       true,
			UserPermissions: []int64{discordgo.PermissionManageChannels},
			BotPermissions:  []int64{discordgo.PermissionManageChannels},
			Run:             runSlowmode,
		},
		{
			Sort: 407, Name: "warn", Category: categoryName, Emoji: "⚠️",
			Description:     "Warn a member via DM",
			Usage:           "warn <@user> [reason...]",
			GuildOnly:       true,
			UserPermissions: []int64{discordgo.PermissionManageMessages},
			Run:             runWarn,
		},
		{
			Sort: 408, Name: "lockdown", Category: categoryName, Emoji: "🔒",
			Description:     "Lock or unlock the current channel",
			Usage:           "lockdown [lock|unlock|toggle]",
			GuildOnly:       true,
			UserPermissions: []int64{discordgo.PermissionManageChannels},
			BotPermissions:  []int64{discordgo.PermissionManageChannels},
			Run:             runLockdown,
		},
	}
}

// resolveMember finds the target member from the first argument, a mention
// or raw ID.
func resolveMember(ctx *command.Context, arg string) (*discordgo.Member, error) {
	id := arg
	if m := mentionRegex.FindStringSubmatch(arg); m != nil {
		id = m[1]
	}
	member, err := ctx.Session.State.Member(ctx.Message.GuildID, id)
	if err != nil {
		member, err = ctx.Session.GuildMember(ctx.Message.GuildID, id)
	}
	if err != nil || member == nil || member.User == nil {
		return nil, command.Usagef("I couldn't find that member! Mention them or pass their ID.")
	}
	return member, nil
}

// checkTarget enforces self, bot and role-hierarchy rules before any state
// is touched. Guild owners bypass the actor-side hierarchy rule.
func checkTarget(ctx *command.Context, target *discordgo.Member, verb string) error {
	if target.User.ID == ctx.AuthorID() {
		return command.Deniedf("You cannot %s yourself!", verb)
	}
	botID := ""
	if ctx.Session.State != nil && ctx.Session.State.User != nil {
		botID = ctx.Session.State.User.ID
	}
	if target.User.ID == botID {
		return command.Deniedf("I cannot %s myself!", verb)
	}

	guild, err := ctx.Session.State.Guild(ctx.Message.GuildID)
	if err != nil {
		return fmt.Errorf("fetch guild: %w", err)
	}

	actor, err := resolveMember(ctx, ctx.AuthorID())
	if err != nil {
		return err
	}
	if guild.OwnerID != ctx.AuthorID() && topRolePosition(guild, target) >= topRolePosition(guild, actor) {
		return command.Deniedf("You cannot %s someone with a higher or equal role!", verb)
	}

	if botID != "" {
		if botMember, err := ctx.Session.State.Member(guild.ID, botID); err == nil {
			if topRolePosition(guild, target) >= topRolePosition(guild, botMember) {
				return command.Deniedf("I cannot %s someone with a higher or equal role than me!", verb)
			}
		}
	}
	return nil
}

func topRolePosition(guild *discordgo.Guild, member *discordgo.Member) int {
	top := -1
	for _, roleID := range member.Roles {
		for _, role := range guild.Roles {
			if role.ID == roleID && role.Position > top {
				top = role.Position
			}
		}
	}
	return top
}

// dmEmbed tries to DM a user. Failures are expected (DMs closed) and only
// logged.
func dmEmbed(s *discordgo.Session, userID string, embed *discordgo.MessageEmbed) {
	ch, err := s.UserChannelCreate(userID)
	if err != nil {
		log.Println("[WARN] Could not open DM channel:", err)
		return
	}
	if _, err := s.ChannelMessageSendEmbed(ch.ID, embed); err != nil {
		log.Println("[WARN] Could not deliver DM:", err)
	}
}

func reasonFrom(ctx *command.Context, from int) string {
	if r := ctx.Rest(from); r != "" {
		return r
	}
	return "No reason provided"
}

func auditReason(ctx *command.Context, reason string) string {
	return ctx.AuthorName() + ": " + reason
}

func runKick(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		return command.Usagef("Tell me who to kick!")
	}
	target, err := resolveMember(ctx, ctx.Args[0])
	if err != nil {
		return err
	}
	if err := checkTarget(ctx, target, "kick"); err != nil {
		return err
	}
	reason := reasonFrom(ctx, 1)

	guildName := ctx.Message.GuildID
	if guild, err := ctx.Session.State.Guild(ctx.Message.GuildID); err == nil {
		guildName = guild.Name
	}
	dmEmbed(ctx.Session, target.User.ID, &discordgo.MessageEmbed{
		Title:       "📄 You have been kicked",
		Description: fmt.Sprintf("You were kicked from **%s**", guildName),
		Color:       0xFF6B00,
		Timestamp:   command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Reason", Value: reason},
			{Name: "Moderator", Value: ctx.AuthorName()},
		},
	})

	if err := ctx.Session.GuildMemberDeleteWithReason(ctx.Message.GuildID, target.User.ID, auditReason(ctx, reason)); err != nil {
		return fmt.Errorf("kick member: %w", err)
	}

	_, err = ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "✅ Member Kicked",
		Description: fmt.Sprintf("**%s** has been kicked from the server", target.User.Username),
		Color:       0xFF6B00,
		Timestamp:   command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Reason", Value: reason},
			{Name: "Moderator", Value: ctx.Message.Author.Mention(), Inline: true},
		},
	})
	return err
}

func runBan(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		return command.Usagef("Tell me who to ban!")
	}
	target, err := resolveMember(ctx, ctx.Args[0])
	if err != nil {
		return err
	}
	if err := checkTarget(ctx, target, "ban"); err != nil {
		return err
	}

	deleteDays := 0
	reasonStart := 1
	if len(ctx.Args) > 1 {
		if n, err := strconv.Atoi(ctx.Args[1]); err == nil {
			deleteDays = n
			reasonStart = 2
		}
	}
	if deleteDays < 0 || deleteDays > maxBanDeleteDays {
		return command.Usagef("Delete days must be between 0 and %d!", maxBanDeleteDays)
	}
	reason := reasonFrom(ctx, reasonStart)

	guildName := ctx.Message.GuildID
	if guild, err := ctx.Session.State.Guild(ctx.Message.GuildID); err == nil {
		guildName = guild.Name
	}
	dmEmbed(ctx.Session, target.User.ID, &discordgo.MessageEmbed{
		Title:       "🚫 You have been banned",
		Description: fmt.Sprintf("You were banned from **%s**", guildName),
		Color:       0xFF0000,
		Timestamp:   command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Reason", Value: reason},
			{Name: "Moderator", Value: ctx.AuthorName()},
		},
	})

	if err := ctx.Session.GuildBanCreateWithReason(ctx.Message.GuildID, target.User.ID, auditReason(ctx, reason), deleteDays); err != nil {
		return fmt.Errorf("ban member: %w", err)
	}

	_, err = ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "✅ Member Banned",
		Description: fmt.Sprintf("**%s** has been banned from the server", target.User.Username),
		Color:       0xFF0000,
		Timestamp:   command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Reason", Value: reason},
			{Name: "Moderator", Value: ctx.Message.Author.Mention(), Inline: true},
			{Name: "Messages Deleted", Value: fmt.Sprintf("%d days", deleteDays), Inline: true},
		},
	})
	return err
}

func runUnban(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		return command.Usagef("Pass the ID of the user to unban!")
	}
	userID := ctx.Args[0]
	if m := mentionRegex.FindStringSubmatch(userID); m != nil {
		userID = m[1]
	}
	user, err := ctx.Session.User(userID)
	if err != nil {
		return command.Usagef("Invalid user ID or user not found!")
	}
	reason := reasonFrom(ctx, 1)

	if err := ctx.Session.GuildBanDelete(ctx.Message.GuildID, user.ID); err != nil {
		return fmt.Errorf("unban user: %w", err)
	}

	_, err = ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "✅ User Unbanned",
		Description: fmt.Sprintf("**%s** has been unbanned from the server", user.Username),
		Color:       0x00FF00,
		Timestamp:   command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Reason", Value: reason},
			{Name: "Moderator", Value: ctx.Message.Author.Mention(), Inline: true},
		},
	})
	return err
}

func runTimeout(ctx *command.Context) error {
	if len(ctx.Args) < 2 {
		return command.Usagef("Tell me who to timeout and for how long!")
	}
	target, err := resolveMember(ctx, ctx.Args[0])
	if err != nil {
		return err
	}
	if err := checkTarget(ctx, target, "timeout"); err != nil {
		return err
	}

	duration, err := command.ParseDuration(ctx.Args[1])
	if err != nil {
		return err
	}
	if duration < minTimeout {
		return command.Usagef("Minimum timeout duration is 1 minute!")
	}
	if duration > maxTimeout {
		return command.Usagef("Maximum timeout duration is 28 days!")
	}
	reason := reasonFrom(ctx, 2)

	until := time.Now().UTC().Add(duration)
	if err := ctx.Session.GuildMemberTimeout(ctx.Message.GuildID, target.User.ID, &until); err != nil {
		return fmt.Errorf("timeout member: %w", err)
	}

	ctx.Store.Mutes.Set(storage.MuteRecord{
		GuildID:     ctx.Message.GuildID,
		UserID:      target.User.ID,
		ModeratorID: ctx.AuthorID(),
		Reason:      reason,
		Until:       until,
	})

	_, err = ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "✅ Member Timed Out",
		Description: fmt.Sprintf("**%s** has been timed out", target.User.Username),
		Color:       0xFFA500,
		Timestamp:   command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Duration", Value: ctx.Args[1], Inline: true},
			{Name: "Until", Value: fmt.Sprintf("<t:%d:R>", until.Unix()), Inline: true},
			{Name: "Reason", Value: reason},
			{Name: "Moderator", Value: ctx.Message.Author.Mention(), Inline: true},
		},
	})
	return err
}

func runUntimeout(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		return command.Usagef("Tell me whose timeout to remove!")
	}
	target, err := resolveMember(ctx, ctx.Args[0])
	if err != nil {
		return err
	}
	reason := reasonFrom(ctx, 1)

	if err := ctx.Session.GuildMemberTimeout(ctx.Message.GuildID, target.User.ID, nil); err != nil {
		return fmt.Errorf("remove timeout: %w", err)
	}
	ctx.Store.Mutes.Clear(ctx.Message.GuildID, target.User.ID)

	_, err = ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "✅ Timeout Removed",
		Description: fmt.Sprintf("**%s** is no longer timed out", target.User.Username),
		Color:       0x00FF00,
		Timestamp:   command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Reason", Value: reason},
			{Name: "Moderator", Value: ctx.Message.Author.Mention(), Inline: true},
		},
	})
	return err
}

func runClear(ctx *command.Context) error {
	amount := 10
	if len(ctx.Args) > 0 {
		n, err := strconv.Atoi(ctx.Args[0])
		if err != nil {
			return command.Usagef("Amount must be a number!")
		}
		amount = n
	}
	if amount < minClear {
		return command.Usagef("Amount must be at least 1!")
	}
	if amount > maxClear {
		return command.Usagef("Maximum amount is %d messages!", maxClear)
	}

	// +1 to include the command message itself.
	messages, err := ctx.Session.ChannelMessages(ctx.Message.ChannelID, amount+1, "", "", "")
	if err != nil {
		return fmt.Errorf("list messages: %w", err)
	}
	ids := make([]string, 0, len(messages))
	for _, msg := range messages {
		ids = append(ids, msg.ID)
	}
	if err := ctx.Session.ChannelMessagesBulkDelete(ctx.Message.ChannelID, ids); err != nil {
		return fmt.Errorf("bulk delete: %w", err)
	}

	deleted := len(ids) - 1
	if deleted < 0 {
		deleted = 0
	}
	temp, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "✅ Messages Cleared",
		Description: fmt.Sprintf("Deleted **%d** messages", deleted),
		Color:       command.EmbedColor,
		Timestamp:   command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Moderator", Value: ctx.Message.Author.Mention(), Inline: true},
			{Name: "Channel", Value: "<#" + ctx.Message.ChannelID + ">", Inline: true},
		},
	})
	if err != nil {
		return err
	}

	// Confirmation self-destructs so the channel stays clean.
	time.AfterFunc(5*time.Second, func() {
		if err := ctx.Session.ChannelMessageDelete(temp.ChannelID, temp.ID); err != nil {
			log.Println("[WARN] Could not delete clear confirmation:", err)
		}
	})
	return nil
}

func runSlowmode(ctx *command.Context) error {
	seconds := 0
	if len(ctx.Args) > 0 {
		n, err := strconv.Atoi(ctx.Args[0])
		if err != nil {
			return command.Usagef("Seconds must be a number!")
		}
		seconds = n
	}
	if seconds < 0 || seconds > maxSlowmode {
		return command.Usagef("Slowmode must be between 0 and %d seconds (6 hours)!", maxSlowmode)
	}

	if _, err := ctx.Session.ChannelEditComplex(ctx.Message.ChannelID, &discordgo.ChannelEdit{
		RateLimitPerUser: &seconds,
	}); err != nil {
		return fmt.Errorf("edit channel: %w", err)
	}

	description := fmt.Sprintf("Slowmode set to **%d seconds**", seconds)
	color := 0xFFA500
	if seconds == 0 {
		description = "Slowmode has been **disabled**"
		color = 0x00FF00
	}

	_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "✅ Slowmode Updated",
		Description: description,
		Color:       color,
		Timestamp:   command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Moderator", Value: ctx.Message.Author.Mention(), Inline: true},
			{Name: "Channel", Value: "<#" + ctx.Message.ChannelID + ">", Inline: true},
		},
	})
	return err
}

func runWarn(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		return command.Usagef("Tell me who to warn!")
	}
	target, err := resolveMember(ctx, ctx.Args[0])
	if err != nil {
		return err
	}
	if target.User.ID == ctx.AuthorID() {
		return command.Deniedf("You cannot warn yourself!")
	}
	if ctx.Session.State != nil && ctx.Session.State.User != nil && target.User.ID == ctx.Session.State.User.ID {
		return command.Deniedf("I cannot warn myself!")
	}
	reason := reasonFrom(ctx, 1)

	guildName := ctx.Message.GuildID
	if guild, err := ctx.Session.State.Guild(ctx.Message.GuildID); err == nil {
		guildName = guild.Name
	}

	delivered := true
	ch, err := ctx.Session.UserChannelCreate(target.User.ID)
	if err == nil {
		_, err = ctx.Session.ChannelMessageSendEmbed(ch.ID, &discordgo.MessageEmbed{
			Title:       "⚠️ Warning Received",
			Description: fmt.Sprintf("You have received a warning in **%s**", guildName),
			Color:       0xFFFF00,
			Timestamp:   command.NowTimestamp(),
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Reason", Value: reason},
				{Name: "Moderator", Value: ctx.AuthorName()},
			},
			Footer: &discordgo.MessageEmbedFooter{Text: "Please follow the server rules to avoid further action"},
		})
	}
	if err != nil {
		delivered = false
	}

	title := "✅ Warning Sent"
	description := fmt.Sprintf("**%s** has been warned", target.User.Username)
	if !delivered {
		title = "⚠️ Warning Issued (DM Failed)"
		description = fmt.Sprintf("**%s** has been warned (could not send DM)", target.User.Username)
	}

	_, err = ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       0xFFFF00,
		Timestamp:   command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Reason", Value: reason},
			{Name: "Moderator", Value: ctx.Message.Author.Mention(), Inline: true},
		},
	})
	return err
}

func runLockdown(ctx *command.Context) error {
	action := "toggle"
	if len(ctx.Args) > 0 {
		action = strings.ToLower(ctx.Args[0])
	}
	if action != "lock" && action != "unlock" && action != "toggle" {
		return command.Usagef("Invalid action! Use: lock, unlock, or toggle")
	}

	channel, err := ctx.Session.Channel(ctx.Message.ChannelID)
	if err != nil {
		return fmt.Errorf("fetch channel: %w", err)
	}

	// The @everyone role shares the guild's ID.
	everyoneID := ctx.Message.GuildID
	var allow, deny int64
	for _, ow := range channel.PermissionOverwrites {
		if ow.ID == everyoneID && ow.Type == discordgo.PermissionOverwriteTypeRole {
			allow, deny = ow.Allow, ow.Deny
			break
		}
	}

	locked := deny&discordgo.PermissionSendMessages != 0
	if action == "toggle" {
		if locked {
			action = "unlock"
		} else {
			action = "lock"
		}
	}

	var embed *discordgo.MessageEmbed
	if action == "lock" {
		deny |= discordgo.PermissionSendMessages
		allow &^= discordgo.PermissionSendMessages
		embed = &discordgo.MessageEmbed{
			Title:       "🔒 Channel Locked",
			Description: "This channel has been locked. Only moderators can send messages.",
			Color:       0xFF0000,
			Timestamp:   command.NowTimestamp(),
		}
	} else {
		deny &^= discordgo.PermissionSendMessages
		embed = &discordgo.MessageEmbed{
			Title:       "🔓 Channel Unlocked",
			Description: "This channel has been unlocked. Everyone can send messages again.",
			Color:       0x00FF00,
			Timestamp:   command.NowTimestamp(),
		}
	}

	if err := ctx.Session.ChannelPermissionSet(channel.ID, everyoneID, discordgo.PermissionOverwriteTypeRole, allow, deny); err != nil {
		return fmt.Errorf("set channel permissions: %w", err)
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Moderator", Value: ctx.Message.Author.Mention(), Inline: true},
	}
	_, err = ctx.ReplyEmbed(embed)
	return err
}
