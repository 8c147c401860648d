package bot

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/aurora9161/mochabot/internal/command"
	"github.com/aurora9161/mochabot/internal/command/wellness"
	"github.com/aurora9161/mochabot/internal/version"
)

const cooldownSweepInterval = time.Minute

var broadcastFacts = []string{
	"☕ Coffee is the world's second-most traded commodity after oil!",
	"☕ The word 'coffee' comes from the Arabic word 'qahwah'!",
	"☕ Finland consumes the most coffee per capita in the world!",
	"☕ Coffee beans are actually seeds of coffee cherries!",
	"☕ The most expensive coffee in the world comes from civet droppings!",
	"☕ Coffee was originally discovered by goats in Ethiopia!",
	"☕ Instant coffee was invented in 1901!",
	"☕ A coffee tree can live for over 100 years!",
}

// broadcastCoffeeFact posts a random fact to every guild that carries the
// opt-in facts channel. Guilds without one are skipped silently.
func (b *Bot) broadcastCoffeeFact(ctx context.Context) {
	embed := &discordgo.MessageEmbed{
		Title:       "☕ Daily Coffee Fact",
		Description: broadcastFacts[rand.Intn(len(broadcastFacts))],
		Color:       command.EmbedColor,
		Timestamp:   command.NowTimestamp(),
		Footer:      &discordgo.MessageEmbedFooter{Text: version.AppName + " Coffee Facts"},
	}
	b.broadcastToChannel(ctx, b.cfg.FactsChannel, embed)
}

// broadcastWellness posts an affirmation to every guild that carries the
// opt-in wellness channel.
func (b *Bot) broadcastWellness(ctx context.Context) {
	embed := &discordgo.MessageEmbed{
		Title:       "🌟 Wellness Reminder",
		Description: "*\"" + wellness.RandomAffirmation() + "\"*",
		Color:       0x87CEEB,
		Timestamp:   command.NowTimestamp(),
		Footer:      &discordgo.MessageEmbedFooter{Text: "Take a moment for yourself today 💙"},
	}
	b.broadcastToChannel(ctx, b.cfg.WellnessChannel, embed)
}

func (b *Bot) broadcastToChannel(ctx context.Context, channelName string, embed *discordgo.MessageEmbed) {
	if b.session.State == nil {
		return
	}
	for _, guild := range b.session.State.Guilds {
		select {
		case <-ctx.Done():
			return
		default:
		}
		channel := findChannelByName(guild, channelName)
		if channel == nil {
			continue
		}
		if _, err := b.session.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
			log.Printf("[WARN] Broadcast to #%s in %s failed: %v", channelName, guild.ID, err)
		}
	}
}
