// Package bot wires the command core to Discord: session setup, gateway
// event routing, welcome messages, presence and the periodic broadcasts.
package bot

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/bwmarrin/discordgo"

	"github.com/aurora9161/mochabot/internal/command"
	"github.com/aurora9161/mochabot/internal/command/general"
	"github.com/aurora9161/mochabot/internal/config"
	"github.com/aurora9161/mochabot/internal/content"
	"github.com/aurora9161/mochabot/internal/scanner"
	"github.com/aurora9161/mochabot/internal/schedule"
	"github.com/aurora9161/mochabot/internal/session"
	"github.com/aurora9161/mochabot/internal/storage"
	"github.com/aurora9161/mochabot/internal/version"
)

// Bot owns the Discord session and every runtime subsystem.
type Bot struct {
	cfg     *config.Config
	session *discordgo.Session

	registry   *command.Registry
	dispatcher *command.Dispatcher
	store      *storage.Store
	sessions   *session.Manager
	jobs       *schedule.Manager
}

// New builds a bot from config. The gateway is not opened yet.
func New(cfg *config.Config) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent
	dg.StateEnabled = true

	reg := command.NewRegistry()
	registerAllCommands(reg)

	store := storage.New()
	sessions := session.NewManager()

	dispatcher := command.NewDispatcher(reg, cfg.Prefix)
	dispatcher.Store = store
	dispatcher.Content = content.New(cfg.OpenWeatherAPIKey)
	dispatcher.Sessions = sessions
	dispatcher.Scanner = scanner.New()

	b := &Bot{
		cfg:        cfg,
		session:    dg,
		registry:   reg,
		dispatcher: dispatcher,
		store:      store,
		sessions:   sessions,
		jobs:       schedule.NewManager(),
	}

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onMessageReactionAdd)
	dg.AddHandler(b.onInteractionCreate)
	dg.AddHandler(b.onGuildMemberAdd)

	return b, nil
}

// Start opens the gateway and launches the background work. It returns
// once connected; Stop tears everything down.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}

	go b.store.RunCooldownCleaner(cooldownSweepInterval)

	if err := b.jobs.Repeat(ctx, "coffee-facts", b.cfg.FactsInterval, b.broadcastCoffeeFact); err != nil {
		return err
	}
	if err := b.jobs.Repeat(ctx, "wellness", b.cfg.WellnessInterval, b.broadcastWellness); err != nil {
		return err
	}
	return nil
}

// Stop cancels jobs, expires live sessions and closes the gateway.
func (b *Bot) Stop() {
	b.jobs.StopAll()
	b.sessions.Shutdown()
	b.store.Close()
	if err := b.session.Close(); err != nil {
		log.Println("[WARN] Error closing gateway:", err)
	}
	log.Println("[DONE] " + version.AppName + " has gone to sleep")
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("[INFO] ☕ %s has brewed up and is ready to serve!", r.User.Username)
	log.Printf("[INFO] Connected to %d servers", len(r.Guilds))

	status := fmt.Sprintf("coffee brewing in %d servers | %shelp", len(r.Guilds), b.cfg.Prefix)
	if err := s.UpdateWatchStatus(0, status); err != nil {
		log.Println("[WARN] Failed to set presence:", err)
	}
}

// onMessageCreate hands every message to the dispatcher on its own
// goroutine so blocking handlers (trivia) never stall the event stream.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	go b.dispatcher.Dispatch(s, m)
}

func (b *Bot) onMessageReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if s.State != nil && s.State.User != nil && r.UserID == s.State.User.ID {
		return
	}
	b.sessions.OfferAll(r.MessageID, r.UserID, r.Emoji.APIName())
}

// onInteractionCreate routes help-panel button clicks. Clicks from anyone
// but the panel owner, or on an ended panel, are acknowledged without any
// visible effect.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	sessionID, page, ok := general.ParsePanelCustomID(i.MessageComponentData().CustomID)
	if !ok {
		return
	}

	ack := func() {
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredMessageUpdate,
		}); err != nil {
			log.Println("[WARN] Failed to ack interaction:", err)
		}
	}

	panel, found := b.sessions.Panel(sessionID)
	if !found {
		ack()
		return
	}

	userID := ""
	if i.Member != nil && i.Member.User != nil {
		userID = i.Member.User.ID
	} else if i.User != nil {
		userID = i.User.ID
	}

	newPage, err := panel.Click(userID, page)
	if err != nil {
		ack()
		return
	}

	embed := general.PanelEmbed(b.registry, b.cfg.Prefix, newPage)
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: general.PanelComponents(panel.ID, newPage, panel.Pages()),
		},
	}); err != nil {
		log.Println("[WARN] Failed to update help panel:", err)
	}
}

var welcomeMessages = []string{
	"☕ Welcome to the coffee house, %s! Grab a cup and stay awhile!",
	"🌟 %s just joined our café! Welcome aboard!",
	"☕ A new coffee enthusiast has arrived! Welcome, %s!",
	"🎉 Welcome %s! The coffee is fresh and the community is warm!",
}

var welcomeChannelNames = []string{"welcome", "general", "lobby", "café", "coffee-house"}

func (b *Bot) onGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	guild, err := s.State.Guild(m.GuildID)
	if err != nil {
		return
	}

	channel := findChannelByName(guild, welcomeChannelNames...)
	if channel == nil {
		return
	}

	text := fmt.Sprintf(welcomeMessages[rand.Intn(len(welcomeMessages))], m.User.Mention())
	embed := &discordgo.MessageEmbed{
		Title:       "☕ Welcome to the Coffee House!",
		Description: text,
		Color:       command.EmbedColor,
		Timestamp:   command.NowTimestamp(),
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: m.User.AvatarURL("256")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🎯 Get Started", Value: fmt.Sprintf("Use `%shelp` to see what I can do!", b.cfg.Prefix)},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Member #%d", guild.MemberCount)},
	}
	if _, err := s.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
		log.Println("[WARN] Failed to send welcome message:", err)
	}
}

// findChannelByName returns the guild's first text channel matching any of
// the names, in the order the names are given.
func findChannelByName(guild *discordgo.Guild, names ...string) *discordgo.Channel {
	for _, name := range names {
		for _, ch := range guild.Channels {
			if ch.Type == discordgo.ChannelTypeGuildText && ch.Name == name {
				return ch
			}
		}
	}
	return nil
}
