// Package general provides everyday commands: ping, bot and server
// information, user lookups, avatars and the interactive help panel.
package general

import (
	"fmt"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/aurora9161/mochabot/internal/command"
	"github.com/aurora9161/mochabot/internal/version"
)

const categoryName = "General"

var startTime = time.Now()

var mentionRegex = regexp.MustCompile(`^<@!?(\d+)>$`)

// Commands returns the general command set.
func Commands() []*command.Command {
	return []*command.Command{
		{
			Sort: 0, Name: "help", Category: categoryName, Emoji: "🔧",
			Description: "Show the interactive command guide",
			Usage:       "help [command]",
			Run:         runHelp,
		},
		{
			Sort: 1, Name: "ping", Category: categoryName, Emoji: "🏓",
			Description: "Check the bot's latency",
			Run:         runPing,
		},
		{
			Sort: 2, Name: "info", Aliases: []string{"botinfo", "about"}, Category: categoryName, Emoji: "☕",
			Description: "Get information about the bot",
			Run:         runInfo,
		},
		{
			Sort: 3, Name: "serverinfo", Aliases: []string{"guildinfo", "si"}, Category: categoryName, Emoji: "🏠",
			Description: "Get information about the current server",
			GuildOnly:   true,
			Run:         runServerInfo,
		},
		{
			Sort: 4, Name: "userinfo", Aliases: []string{"whois", "ui"}, Category: categoryName, Emoji: "👤",
			Description: "Get information about a user",
			Usage:       "userinfo [@user]",
			Run:         runUserInfo,
		},
		{
			Sort: 5, Name: "avatar", Aliases: []string{"av", "pfp"}, Category: categoryName, Emoji: "🖼️",
			Description: "Display a user's avatar",
			Usage:       "avatar [@user]",
			Run:         runAvatar,
		},
	}
}

func runPing(ctx *command.Context) error {
	start := time.Now()
	msg, err := ctx.Session.ChannelMessageSend(ctx.Message.ChannelID, "⏳ Pinging...")
	if err != nil {
		return err
	}
	responseMs := float64(time.Since(start).Microseconds()) / 1000
	apiMs := float64(ctx.Session.HeartbeatLatency().Microseconds()) / 1000

	var status string
	switch {
	case apiMs < 100:
		status = "🟢 Excellent"
	case apiMs < 200:
		status = "🟡 Good"
	case apiMs < 300:
		status = "🟠 Fair"
	default:
		status = "🔴 Poor"
	}

	embed := &discordgo.MessageEmbed{
		Title:     "🏓 Pong!",
		Color:     command.EmbedColor,
		Timestamp: command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📡 API Latency", Value: fmt.Sprintf("`%.2fms`", apiMs), Inline: true},
			{Name: "⏱️ Response Time", Value: fmt.Sprintf("`%.2fms`", responseMs), Inline: true},
			{Name: "📊 Status", Value: status, Inline: true},
		},
	}
	_, err = ctx.Session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:      msg.ID,
		Channel: msg.ChannelID,
		Content: new(string),
		Embeds:  &[]*discordgo.MessageEmbed{embed},
	})
	return err
}

func runInfo(ctx *command.Context) error {
	uptime := time.Since(startTime).Round(time.Second)
	hours := int(uptime.Hours())
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	guildCount := 0
	if ctx.Session.State != nil {
		guildCount = len(ctx.Session.State.Guilds)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "☕ " + version.AppName + " Information",
		Description: "Your friendly coffee-themed Discord companion!",
		Color:       command.EmbedColor,
		Timestamp:   command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🏠 Servers", Value: fmt.Sprintf("`%d`", guildCount), Inline: true},
			{Name: "📝 Commands", Value: fmt.Sprintf("`%d`", len(ctx.Registry.All())), Inline: true},
			{Name: "🏷️ Version", Value: "`" + version.AppVersion + "`", Inline: true},
			{Name: "⏱️ Uptime", Value: fmt.Sprintf("`%dh %dm %ds`", hours, minutes, seconds), Inline: true},
			{Name: "🐹 Go", Value: "`" + runtime.Version() + "`", Inline: true},
			{Name: "📡 Latency", Value: fmt.Sprintf("`%dms`", ctx.Session.HeartbeatLatency().Milliseconds()), Inline: true},
			{Name: "🔗 Links", Value: "[GitHub](https://github.com/aurora9161/mochabot)"},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Created by aurora9161 • Made with ☕ and ❤️"},
	}
	if ctx.Session.State != nil && ctx.Session.State.User != nil {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: ctx.Session.State.User.AvatarURL("256")}
	}

	_, err := ctx.ReplyEmbed(embed)
	return err
}

func runServerInfo(ctx *command.Context) error {
	guild, err := ctx.Session.State.Guild(ctx.Message.GuildID)
	if err != nil {
		guild, err = ctx.Session.Guild(ctx.Message.GuildID)
		if err != nil {
			return fmt.Errorf("fetch guild: %w", err)
		}
	}

	desc := guild.Description
	if desc == "" {
		desc = "No description set"
	}

	textChannels, voiceChannels, categories := 0, 0, 0
	for _, ch := range guild.Channels {
		switch ch.Type {
		case discordgo.ChannelTypeGuildText:
			textChannels++
		case discordgo.ChannelTypeGuildVoice:
			voiceChannels++
		case discordgo.ChannelTypeGuildCategory:
			categories++
		}
	}

	created, _ := discordgo.SnowflakeTimestamp(guild.ID)

	embed := &discordgo.MessageEmbed{
		Title:       "🏠 " + guild.Name,
		Description: desc,
		Color:       command.EmbedColor,
		Timestamp:   command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🎯 Server ID", Value: "`" + guild.ID + "`", Inline: true},
			{Name: "👑 Owner", Value: "<@" + guild.OwnerID + ">", Inline: true},
			{Name: "📅 Created", Value: fmt.Sprintf("<t:%d:R>", created.Unix()), Inline: true},
			{Name: "👥 Total Members", Value: fmt.Sprintf("`%d`", guild.MemberCount), Inline: true},
			{Name: "💬 Text Channels", Value: fmt.Sprintf("`%d`", textChannels), Inline: true},
			{Name: "🔊 Voice Channels", Value: fmt.Sprintf("`%d`", voiceChannels), Inline: true},
			{Name: "📂 Categories", Value: fmt.Sprintf("`%d`", categories), Inline: true},
			{Name: "🚀 Boost Level", Value: fmt.Sprintf("`Level %d`", guild.PremiumTier), Inline: true},
			{Name: "🗺️ Roles", Value: fmt.Sprintf("`%d`", len(guild.Roles)), Inline: true},
		},
	}
	if guild.Icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: guild.IconURL("256")}
	}
	if len(guild.Features) > 0 {
		shown := guild.Features
		more := ""
		if len(shown) > 5 {
			more = fmt.Sprintf("\n• and %d more...", len(shown)-5)
			shown = shown[:5]
		}
		var lines []string
		for _, f := range shown {
			lines = append(lines, "• "+featureName(string(f)))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "✨ Features", Value: strings.Join(lines, "\n") + more,
		})
	}

	_, err = ctx.ReplyEmbed(embed)
	return err
}

func featureName(raw string) string {
	words := strings.Split(strings.ToLower(raw), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func runUserInfo(ctx *command.Context) error {
	user, member, err := resolveTarget(ctx)
	if err != nil {
		return err
	}

	isBot := "No"
	if user.Bot {
		isBot = "Yes"
	}
	created, _ := discordgo.SnowflakeTimestamp(user.ID)

	displayName := user.Username
	if member != nil && member.Nick != "" {
		displayName = member.Nick
	}

	embed := &discordgo.MessageEmbed{
		Title:     "👤 " + displayName,
		Color:     command.EmbedColor,
		Timestamp: command.NowTimestamp(),
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: user.AvatarURL("256")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🎯 User ID", Value: "`" + user.ID + "`", Inline: true},
			{Name: "📝 Username", Value: "`" + user.Username + "`", Inline: true},
			{Name: "🤖 Bot", Value: isBot, Inline: true},
			{Name: "📅 Account Created", Value: fmt.Sprintf("<t:%d:R>", created.Unix()), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Requested by " + ctx.AuthorName()},
	}

	if member != nil {
		if joined := member.JoinedAt; !joined.IsZero() {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name: "🏠 Joined Server", Value: fmt.Sprintf("<t:%d:R>", joined.Unix()), Inline: true,
			})
		}
		if len(member.Roles) > 0 {
			mentions := make([]string, 0, len(member.Roles))
			for _, id := range member.Roles {
				mentions = append(mentions, "<@&"+id+">")
			}
			shown := mentions
			more := ""
			if len(shown) > 10 {
				more = fmt.Sprintf(" and %d more...", len(shown)-10)
				shown = shown[:10]
			}
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  fmt.Sprintf("🗺️ Roles (%d)", len(mentions)),
				Value: strings.Join(shown, ", ") + more,
			})
		}
	}

	_, err = ctx.ReplyEmbed(embed)
	return err
}

func runAvatar(ctx *command.Context) error {
	user, member, err := resolveTarget(ctx)
	if err != nil {
		return err
	}

	displayName := user.Username
	if member != nil && member.Nick != "" {
		displayName = member.Nick
	}

	_, err = ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:     "🖼️ " + displayName + "'s Avatar",
		Color:     command.EmbedColor,
		Timestamp: command.NowTimestamp(),
		Image:     &discordgo.MessageEmbedImage{URL: user.AvatarURL("1024")},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Requested by " + ctx.AuthorName()},
	})
	return err
}

// resolveTarget finds the user a command is aimed at: the first mention,
// a raw ID argument, or the invoker when no argument was given.
func resolveTarget(ctx *command.Context) (*discordgo.User, *discordgo.Member, error) {
	if len(ctx.Args) == 0 {
		return ctx.Message.Author, ctx.Message.Member, nil
	}

	id := ctx.Args[0]
	if m := mentionRegex.FindStringSubmatch(id); m != nil {
		id = m[1]
	}

	var member *discordgo.Member
	if ctx.Message.GuildID != "" {
		if mem, err := ctx.Session.State.Member(ctx.Message.GuildID, id); err == nil {
			member = mem
		} else if mem, err := ctx.Session.GuildMember(ctx.Message.GuildID, id); err == nil {
			member = mem
		}
	}
	if member != nil && member.User != nil {
		return member.User, member, nil
	}

	user, err := ctx.Session.User(id)
	if err != nil {
		return nil, nil, command.Usagef("I couldn't find that user! Mention them or pass their ID.")
	}
	return user, nil, nil
}
