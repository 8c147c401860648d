package general

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/aurora9161/mochabot/internal/command"
	"github.com/aurora9161/mochabot/internal/session"
	"github.com/aurora9161/mochabot/internal/version"
)

// PanelCustomIDPrefix tags help-panel component custom IDs so the
// interaction handler can route clicks. Format: help:<sessionID>:<page>.
const PanelCustomIDPrefix = "help"

// ParsePanelCustomID splits a help-panel custom ID into session ID and
// target page.
func ParsePanelCustomID(customID string) (sessionID string, page int, ok bool) {
	parts := strings.Split(customID, ":")
	if len(parts) != 3 || parts[0] != PanelCustomIDPrefix {
		return "", 0, false
	}
	if _, err := fmt.Sscanf(parts[2], "%d", &page); err != nil {
		return "", 0, false
	}
	return parts[1], page, true
}

// PanelPages returns the page count for a registry: one home page plus one
// page per category.
func PanelPages(reg *command.Registry) int {
	return 1 + len(reg.Categories())
}

// PanelEmbed renders one help page. Page 0 is the home overview, pages
// 1..N are the categories in display order.
func PanelEmbed(reg *command.Registry, prefix string, page int) *discordgo.MessageEmbed {
	groups := reg.Categories()
	if page <= 0 || page > len(groups) {
		lines := make([]string, 0, len(groups))
		for i, g := range groups {
			lines = append(lines, fmt.Sprintf("%s **%s** — %d commands (page %d)", g.Emoji, g.Name, len(g.Commands), i+1))
		}
		return &discordgo.MessageEmbed{
			Title: "☕ " + version.AppName + " Command Guide",
			Description: "Welcome to the café! Browse the pages below.\n\n" + strings.Join(lines, "\n") +
				fmt.Sprintf("\n\nUse `%shelp <command>` for details on one command.", prefix),
			Color:     command.EmbedColor,
			Timestamp: command.NowTimestamp(),
			Footer:    &discordgo.MessageEmbedFooter{Text: "This menu is yours alone and closes after 3 minutes"},
		}
	}

	g := groups[page-1]
	lines := make([]string, 0, len(g.Commands))
	for _, cmd := range g.Commands {
		entry := fmt.Sprintf("`%s%s` — %s", prefix, cmd.Name, cmd.Description)
		if len(cmd.Aliases) > 0 {
			entry += fmt.Sprintf(" (aliases: %s)", strings.Join(cmd.Aliases, ", "))
		}
		lines = append(lines, entry)
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s %s Commands", g.Emoji, g.Name),
		Description: strings.Join(lines, "\n"),
		Color:       command.EmbedColor,
		Timestamp:   command.NowTimestamp(),
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Page %d of %d", page+1, len(groups)+1)},
	}
}

// PanelComponents builds the navigation row for a live panel.
func PanelComponents(sessionID string, page, pages int) []discordgo.MessageComponent {
	return panelRow(sessionID, page, pages, false)
}

// DisabledPanelComponents renders the same row with every control disabled,
// used when the panel expires.
func DisabledPanelComponents(sessionID string, page, pages int) []discordgo.MessageComponent {
	return panelRow(sessionID, page, pages, true)
}

func panelRow(sessionID string, page, pages int, disabled bool) []discordgo.MessageComponent {
	prev := page - 1
	if prev < 0 {
		prev = 0
	}
	next := page + 1
	if next >= pages {
		next = pages - 1
	}
	customID := func(target int) string {
		return fmt.Sprintf("%s:%s:%d", PanelCustomIDPrefix, sessionID, target)
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label: "◀ Prev", Style: discordgo.SecondaryButton,
				CustomID: customID(prev), Disabled: disabled || page == 0,
			},
			discordgo.Button{
				Label: "🏠 Home", Style: discordgo.PrimaryButton,
				CustomID: customID(0), Disabled: disabled,
			},
			discordgo.Button{
				Label: "Next ▶", Style: discordgo.SecondaryButton,
				CustomID: customID(next), Disabled: disabled || page == pages-1,
			},
		}},
	}
}

func runHelp(ctx *command.Context) error {
	if len(ctx.Args) > 0 {
		return helpForCommand(ctx, ctx.Args[0])
	}

	pages := PanelPages(ctx.Registry)
	embed := PanelEmbed(ctx.Registry, ctx.Prefix, 0)

	// The session ID rides in the component custom IDs, so the panel has
	// to exist before the message is sent.
	panel := session.NewPanel(ctx.AuthorID(), pages, func(p *session.Panel) {
		expirePanel(ctx, p)
	})
	ctx.Sessions.TrackPanel(panel)

	msg, err := ctx.Session.ChannelMessageSendComplex(ctx.Message.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: PanelComponents(panel.ID, 0, pages),
	})
	if err != nil {
		panel.Stop()
		ctx.Sessions.DropPanel(panel.ID)
		return err
	}
	ctx.Sessions.SetPanelMessage(panel.ID, msg.ChannelID, msg.ID)
	return nil
}

// expirePanel disables the panel's controls in place. Edit failures are
// swallowed: the message may be gone or permissions lost.
func expirePanel(ctx *command.Context, p *session.Panel) {
	defer ctx.Sessions.DropPanel(p.ID)
	channelID, messageID, ok := ctx.Sessions.PanelMessage(p.ID)
	if !ok {
		return
	}
	embed := PanelEmbed(ctx.Registry, ctx.Prefix, p.Page())
	components := DisabledPanelComponents(p.ID, p.Page(), p.Pages())
	_, _ = ctx.Session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         messageID,
		Channel:    channelID,
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})
}

func helpForCommand(ctx *command.Context, token string) error {
	cmd, ok := ctx.Registry.Resolve(token)
	if !ok {
		return command.Usagef("I don't know a command called `%s`.", token)
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Category", Value: cmd.Category, Inline: true},
	}
	if len(cmd.Aliases) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Aliases", Value: strings.Join(cmd.Aliases, ", "), Inline: true,
		})
	}
	if cmd.Usage != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Usage", Value: fmt.Sprintf("`%s%s`", ctx.Prefix, cmd.Usage),
		})
	}
	if cmd.Cooldown != nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Cooldown", Value: fmt.Sprintf("%d use(s) per %s", cmd.Cooldown.MaxUses, cmd.Cooldown.Window),
		})
	}

	_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       cmd.DisplayEmoji() + " " + ctx.Prefix + cmd.Name,
		Description: cmd.Description,
		Color:       command.EmbedColor,
		Timestamp:   command.NowTimestamp(),
		Fields:      fields,
	})
	return err
}
