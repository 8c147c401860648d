package command

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/aurora9161/mochabot/internal/content"
	"github.com/aurora9161/mochabot/internal/scanner"
	"github.com/aurora9161/mochabot/internal/session"
	"github.com/aurora9161/mochabot/internal/storage"
)

// PermissionNames maps the permission bits commands require to display
// names for denial notices.
var PermissionNames = map[int64]string{
	discordgo.PermissionKickMembers:     "Kick Members",
	discordgo.PermissionBanMembers:      "Ban Members",
	discordgo.PermissionModerateMembers: "Moderate Members",
	discordgo.PermissionManageMessages:  "Manage Messages",
	discordgo.PermissionManageChannels:  "Manage Channels",
}

// Dispatcher routes inbound messages to command handlers: prefix stripping,
// case-folded resolution, permission and cooldown gates, and the error
// backstop that keeps a faulty handler from taking down the event loop.
//
// The function fields default to live discordgo calls and exist so tests
// can substitute fakes.
type Dispatcher struct {
	Registry *Registry
	Prefix   string
	SelfID   string

	Store    *storage.Store
	Content  *content.Client
	Sessions *session.Manager
	Scanner  *scanner.Scanner

	Now    func() time.Time
	Notify func(s *discordgo.Session, channelID, text string)
	Perms  func(s *discordgo.Session, userID, channelID string) (int64, error)
}

// NewDispatcher wires a dispatcher with live defaults.
func NewDispatcher(reg *Registry, prefix string) *Dispatcher {
	return &Dispatcher{
		Registry: reg,
		Prefix:   prefix,
		Now:      time.Now,
		Notify: func(s *discordgo.Session, channelID, text string) {
			if _, err := s.ChannelMessageSend(channelID, text); err != nil {
				log.Println("[WARN] Failed to send notice:", err)
			}
		},
		Perms: func(s *discordgo.Session, userID, channelID string) (int64, error) {
			return s.UserChannelPermissions(userID, channelID)
		},
	}
}

// Dispatch processes one inbound message end to end. It never panics and
// never returns an error: every failure mode ends in a channel notice, a
// log line, or a deliberate no-op.
func (d *Dispatcher) Dispatch(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == d.selfID(s) || m.Author.Bot {
		return
	}

	if !strings.HasPrefix(m.Content, d.Prefix) {
		if d.Scanner != nil {
			d.Scanner.Scan(s, m)
		}
		return
	}

	fields := strings.Fields(strings.TrimPrefix(m.Content, d.Prefix))
	if len(fields) == 0 {
		return
	}
	token, args := fields[0], fields[1:]

	cmd, ok := d.Registry.Resolve(token)
	if !ok {
		// Unknown command is a deliberate no-op, not an error.
		return
	}

	if cmd.GuildOnly && m.GuildID == "" {
		d.Notify(s, m.ChannelID, "❌ This command can only be used in servers!")
		return
	}

	if !d.checkUserPermissions(s, m, cmd) {
		return
	}
	if !d.checkBotPermissions(s, m, cmd) {
		return
	}

	if cmd.Cooldown != nil && d.Store != nil {
		if !d.Store.Cooldowns.Allow(m.Author.ID, cmd.Name, cmd.Cooldown.MaxUses, cmd.Cooldown.Window, d.Now()) {
			d.Notify(s, m.ChannelID, fmt.Sprintf("⏳ Easy on the caffeine! `%s%s` allows %d use(s) per %s.",
				d.Prefix, cmd.Name, cmd.Cooldown.MaxUses, cmd.Cooldown.Window))
			return
		}
	}

	ctx := &Context{
		Session:  s,
		Message:  m,
		Args:     args,
		Prefix:   d.Prefix,
		Store:    d.Store,
		Content:  d.Content,
		Sessions: d.Sessions,
		Registry: d.Registry,
	}
	d.invoke(s, m, cmd, ctx)
}

// invoke runs the handler behind the recover/classify boundary.
func (d *Dispatcher) invoke(s *discordgo.Session, m *discordgo.MessageCreate, cmd *Command, ctx *Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERR] Command %s panicked: %v", cmd.Name, r)
			d.Notify(s, m.ChannelID, "❌ Something went wrong while brewing that command.")
		}
	}()

	err := cmd.Run(ctx)
	if err == nil {
		return
	}

	var usage *UsageError
	var denied *PermissionError
	switch {
	case errors.As(err, &usage):
		text := "❌ " + usage.Msg
		if cmd.Usage != "" {
			text += fmt.Sprintf("\nUsage: `%s%s`", d.Prefix, cmd.Usage)
		}
		d.Notify(s, m.ChannelID, text)
	case errors.As(err, &denied):
		d.Notify(s, m.ChannelID, "❌ "+denied.Msg)
	default:
		log.Printf("[ERR] Command %s failed: %v", cmd.Name, err)
		d.Notify(s, m.ChannelID, "❌ Something went wrong while brewing that command.")
	}
}

func (d *Dispatcher) checkUserPermissions(s *discordgo.Session, m *discordgo.MessageCreate, cmd *Command) bool {
	if len(cmd.UserPermissions) == 0 || m.GuildID == "" {
		return true
	}

	perms, err := d.Perms(s, m.Author.ID, m.ChannelID)
	if err != nil {
		log.Println("[WARN] Failed to resolve user permissions:", err)
		d.Notify(s, m.ChannelID, "❌ Something went wrong while brewing that command.")
		return false
	}
	if perms&discordgo.PermissionAdministrator != 0 {
		return true
	}

	var missing []string
	for _, p := range cmd.UserPermissions {
		if perms&p == 0 {
			missing = append(missing, permissionName(p))
		}
	}
	if len(missing) > 0 {
		d.Notify(s, m.ChannelID, fmt.Sprintf("❌ You need the following permissions to use this command: `%s`",
			strings.Join(missing, "`, `")))
		return false
	}
	return true
}

func (d *Dispatcher) checkBotPermissions(s *discordgo.Session, m *discordgo.MessageCreate, cmd *Command) bool {
	if len(cmd.BotPermissions) == 0 || m.GuildID == "" {
		return true
	}

	perms, err := d.Perms(s, d.selfID(s), m.ChannelID)
	if err != nil {
		log.Println("[WARN] Failed to resolve bot permissions:", err)
		d.Notify(s, m.ChannelID, "❌ Something went wrong while brewing that command.")
		return false
	}

	var missing []string
	for _, p := range cmd.BotPermissions {
		if perms&p == 0 {
			missing = append(missing, permissionName(p))
		}
	}
	if len(missing) > 0 {
		d.Notify(s, m.ChannelID, fmt.Sprintf("❌ I need the following permissions in this channel: `%s`",
			strings.Join(missing, "`, `")))
		return false
	}
	return true
}

func (d *Dispatcher) selfID(s *discordgo.Session) string {
	if d.SelfID != "" {
		return d.SelfID
	}
	if s != nil && s.State != nil && s.State.User != nil {
		return s.State.User.ID
	}
	return ""
}

func permissionName(p int64) string {
	if name := PermissionNames[p]; name != "" {
		return name
	}
	return fmt.Sprintf("0x%x", p)
}
