// Package command holds the prefix-command core: the command descriptor,
// the case-insensitive registry, and the dispatcher that turns inbound
// messages into handler invocations. How commands reach Discord (session
// wiring, intents, event routing) lives in internal/bot.
package command

import (
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/aurora9161/mochabot/internal/content"
	"github.com/aurora9161/mochabot/internal/session"
	"github.com/aurora9161/mochabot/internal/storage"
)

// EmbedColor is the coffee-brown accent used by most reply embeds.
const EmbedColor = 0x8B4513

// Cooldown limits a command to MaxUses invocations per user within a
// trailing Window.
type Cooldown struct {
	Window  time.Duration
	MaxUses int
}

// Command describes one textual command: identity, access requirements and
// the handler. Descriptors are registered once at startup and never mutated
// afterwards.
type Command struct {
	Sort        int
	Name        string
	Aliases     []string
	Description string
	Category    string
	Emoji       string // optional; DisplayEmoji falls back to a default
	Usage       string // argument signature shown in usage notices, e.g. "remind <duration> <message>"

	GuildOnly       bool
	UserPermissions []int64 // all required; administrators bypass
	BotPermissions  []int64 // all required for the bot itself
	Cooldown        *Cooldown

	Run func(ctx *Context) error
}

// DisplayEmoji returns the command's emoji, or a default marker.
func (c *Command) DisplayEmoji() string {
	if c.Emoji == "" {
		return "📋"
	}
	return c.Emoji
}

// Context carries everything a handler may touch for one invocation. It is
// built by the dispatcher per message and discarded when the handler
// returns.
type Context struct {
	Session *discordgo.Session
	Message *discordgo.MessageCreate
	Args    []string
	Prefix  string

	Store    *storage.Store
	Content  *content.Client
	Sessions *session.Manager
	Registry *Registry
}

// ReplyEmbed sends an embed to the invoking channel.
func (c *Context) ReplyEmbed(embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	return c.Session.ChannelMessageSendEmbed(c.Message.ChannelID, embed)
}

// ReplyText sends a plain text message to the invoking channel.
func (c *Context) ReplyText(text string) error {
	_, err := c.Session.ChannelMessageSend(c.Message.ChannelID, text)
	return err
}

// Rest joins Args[from:] back into the free-text tail.
func (c *Context) Rest(from int) string {
	if from >= len(c.Args) {
		return ""
	}
	return strings.Join(c.Args[from:], " ")
}

// AuthorID returns the invoking user's ID.
func (c *Context) AuthorID() string {
	return c.Message.Author.ID
}

// AuthorName returns the invoking user's display name.
func (c *Context) AuthorName() string {
	if c.Message.Member != nil && c.Message.Member.Nick != "" {
		return c.Message.Member.Nick
	}
	return c.Message.Author.Username
}

// NowTimestamp formats the current time the way discordgo embeds expect.
func NowTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
