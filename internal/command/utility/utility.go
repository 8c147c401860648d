// Package utility provides productivity commands: polls, reminders,
// weather, QR codes, link shortening, encoding helpers and timestamps.
package utility

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/aurora9161/mochabot/internal/command"
	"github.com/aurora9161/mochabot/internal/content"
	"github.com/aurora9161/mochabot/internal/storage"
)

const categoryName = "Utility"

const (
	minPollOptions = 2
	maxPollOptions = 10

	minRemind = 10 * time.Second
	maxRemind = 90 * 24 * time.Hour
)

var pollEmojis = []string{"🇦", "🇧", "🇨", "🇩", "🇪", "🇫", "🇬", "🇭", "🇮", "🇯"}

var translateLanguages = map[string]string{
	"es": "Spanish", "fr": "French", "de": "German", "it": "Italian",
	"pt": "Portuguese", "ru": "Russian", "ja": "Japanese", "ko": "Korean",
	"zh": "Chinese", "ar": "Arabic", "hi": "Hindi", "nl": "Dutch",
}

// Commands returns the utility command set.
func Commands() []*command.Command {
	return []*command.Command{
		{
			Sort: 500, Name: "poll", Category: categoryName, Emoji: "📊",
			Description: "Create a poll with up to 10 options",
			Usage:       `poll "question" "option 1" "option 2" ...`,
			Run:         runPoll,
		},
		{
			Sort: 501, Name: "remind", Aliases: []string{"reminder"}, Category: categoryName, Emoji: "⏰",
			Description: "Set a reminder",
			Usage:       "remind <duration> <message>",
			Run:         runRemind,
		},
		{
			Sort: 502, Name: "weather", Category: categoryName, Emoji: "⛅",
			Description: "Get weather information for a city",
			Usage:       "weather <city>",
			Cooldown:    &command.Cooldown{Window: time.Minute, MaxUses: 5},
			Run:         runWeather,
		},
		{
			Sort: 503, Name: "translate", Category: categoryName, Emoji: "🌍",
			Description: "Translate text to another language",
			Usage:       "translate <lang> <text>",
			Run:         runTranslate,
		},
		{
			Sort: 504, Name: "qr", Category: categoryName, Emoji: "📱",
			Description: "Generate a QR code for text or a URL",
			Usage:       "qr <text>",
			Run:         runQR,
		},
		{
			Sort: 505, Name: "shorten", Category: categoryName, Emoji: "🔗",
			Description: "Shorten a long URL",
			Usage:       "shorten <url>",
			Cooldown:    &command.Cooldown{Window: time.Minute, MaxUses: 5},
			Run:         runShorten,
		},
		{
			Sort: 506, Name: "base64", Category: categoryName, Emoji: "🔐",
			Description: "Encode or decode base64 text",
			Usage:       "base64 <encode|decode> <text>",
			Run:         runBase64,
		},
		{
			Sort: 507, Name: "hash", Category: categoryName, Emoji: "🔒",
			Description: "Generate a hash of text",
			Usage:       "hash <md5|sha1|sha256|sha512> <text>",
			Run:         runHash,
		},
		{
			Sort: 508, Name: "timestamp", Aliases: []string{"time"}, Category: categoryName, Emoji: "🕒",
			Description: "Get the current timestamp or convert one",
			Usage:       "timestamp [unix]",
			Run:         runTimestamp,
		},
		{
			Sort: 509, Name: "color", Category: categoryName, Emoji: "🎨",
			Description: "Display information about a hex color",
			Usage:       "color <#RRGGBB>",
			Run:         runColor,
		},
	}
}

// parseQuoted splits a tail into tokens, treating double-quoted runs as one
// token so poll questions and options can contain spaces.
func parseQuoted(tail string) []string {
	var out []string
	var cur strings.Builder
	inQuote := false
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, r := range tail {
		switch {
		case r == '"':
			if inQuote {
				flush()
			}
			inQuote = !inQuote
		case r == ' ' && !inQuote:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}

func runPoll(ctx *command.Context) error {
	parts := parseQuoted(ctx.Rest(0))
	if len(parts) < 1+minPollOptions {
		return command.Usagef("Please provide a question and at least 2 options for the poll!")
	}
	question, options := parts[0], parts[1:]
	if len(options) > maxPollOptions {
		return command.Usagef("Maximum %d options allowed!", maxPollOptions)
	}

	var lines []string
	for i, opt := range options {
		lines = append(lines, pollEmojis[i]+" "+opt)
	}

	msg, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "📊 Poll",
		Description: "**" + question + "**",
		Color:       command.EmbedColor,
		Timestamp:   command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Options", Value: strings.Join(lines, "\n")},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Poll created by " + ctx.AuthorName()},
	})
	if err != nil {
		return err
	}
	for i := range options {
		if err := ctx.Session.MessageReactionAdd(msg.ChannelID, msg.ID, pollEmojis[i]); err != nil {
			return err
		}
	}
	return nil
}

func runRemind(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		return listReminders(ctx)
	}
	if len(ctx.Args) < 2 {
		return command.Usagef("Tell me when and what to remind you about!")
	}

	delay, err := command.ParseDuration(ctx.Args[0])
	if err != nil {
		return err
	}
	if delay < minRemind {
		return command.Usagef("Minimum reminder time is 10 seconds!")
	}
	if delay > maxRemind {
		return command.Usagef("Maximum reminder time is 90 days!")
	}
	message := ctx.Rest(1)

	s := ctx.Session
	authorMention := ctx.Message.Author.Mention()
	authorID := ctx.AuthorID()
	rem := ctx.Store.Reminders.Schedule(authorID, ctx.Message.ChannelID, message, delay, func(r storage.Reminder) {
		embed := &discordgo.MessageEmbed{
			Title:       "⏰ Reminder!",
			Description: fmt.Sprintf("%s, you asked me to remind you about:\n\n**%s**", authorMention, r.Message),
			Color:       command.EmbedColor,
			Timestamp:   command.NowTimestamp(),
		}
		if _, err := s.ChannelMessageSendEmbed(r.ChannelID, embed); err == nil {
			return
		}
		// Channel gone or unwritable, fall back to a DM.
		ch, err := s.UserChannelCreate(r.OwnerID)
		if err != nil {
			log.Println("[WARN] Could not deliver reminder:", err)
			return
		}
		if _, err := s.ChannelMessageSendEmbed(ch.ID, embed); err != nil {
			log.Println("[WARN] Could not deliver reminder DM:", err)
		}
	})

	_, err = ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title: "⏰ Reminder Set",
		Description: fmt.Sprintf("I'll remind you about: **%s**\n\nTime: <t:%d:R>",
			message, rem.Due.Unix()),
		Color:     command.EmbedColor,
		Timestamp: command.NowTimestamp(),
	})
	return err
}

func listReminders(ctx *command.Context) error {
	pending := ctx.Store.Reminders.Outstanding(ctx.AuthorID())
	if len(pending) == 0 {
		return ctx.ReplyText(fmt.Sprintf("You have no pending reminders. Set one with `%sremind <duration> <message>`.", ctx.Prefix))
	}
	lines := make([]string, len(pending))
	for i, r := range pending {
		lines[i] = fmt.Sprintf("• **%s** — <t:%d:R>", r.Message, r.Due.Unix())
	}
	_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "⏰ Your Pending Reminders",
		Description: strings.Join(lines, "\n"),
		Color:       command.EmbedColor,
		Timestamp:   command.NowTimestamp(),
	})
	return err
}

func runWeather(ctx *command.Context) error {
	city := ctx.Rest(0)
	if city == "" {
		return command.Usagef("Tell me which city to look up!")
	}

	w, err := ctx.Content.CurrentWeather(context.Background(), city)
	switch {
	case errors.Is(err, content.ErrNoAPIKey):
		_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
			Title:       "⛅ Weather Service Unavailable",
			Description: "Weather API key not configured. Please contact the bot owner.",
			Color:       command.EmbedColor,
		})
		return err
	case errors.Is(err, content.ErrCityNotFound):
		return command.Usagef("City not found! Please check the spelling.")
	case err != nil:
		return fmt.Errorf("fetch weather: %w", err)
	}

	_, err = ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:     "⛅ Weather in " + w.City,
		Color:     command.EmbedColor,
		Timestamp: command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🌡️ Temperature", Value: fmt.Sprintf("%.1f°C", w.TempC), Inline: true},
			{Name: "🤔 Feels Like", Value: fmt.Sprintf("%.1f°C", w.FeelsLikeC), Inline: true},
			{Name: "💧 Humidity", Value: fmt.Sprintf("%d%%", w.Humidity), Inline: true},
			{Name: "☁️ Condition", Value: titleWords(w.Description), Inline: true},
			{Name: "💨 Wind Speed", Value: fmt.Sprintf("%.1f m/s", w.WindSpeed), Inline: true},
		},
	})
	return err
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func runTranslate(ctx *command.Context) error {
	if len(ctx.Args) < 2 {
		return command.Usagef("Tell me the target language and the text!")
	}
	lang := strings.ToLower(ctx.Args[0])
	name, ok := translateLanguages[lang]
	if !ok {
		codes := make([]string, 0, len(translateLanguages))
		for code := range translateLanguages {
			codes = append(codes, code)
		}
		return command.Usagef("Unsupported language! Available: %s", strings.Join(codes, ", "))
	}

	_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🌍 Translation Service",
		Description: "Translation service not configured. Please use an online translator.",
		Color:       command.EmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Original Text", Value: ctx.Rest(1)},
			{Name: "Target Language", Value: name},
			{Name: "Recommendation", Value: "Try Google Translate or DeepL for accurate translations"},
		},
	})
	return err
}

func runQR(ctx *command.Context) error {
	text := ctx.Rest(0)
	if text == "" {
		return command.Usagef("Tell me what to encode!")
	}

	shown := text
	if len(shown) > 100 {
		shown = shown[:100] + "..."
	}

	_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "📱 QR Code Generated",
		Description: fmt.Sprintf("QR Code for: **%s**", shown),
		Color:       command.EmbedColor,
		Timestamp:   command.NowTimestamp(),
		Image:       &discordgo.MessageEmbedImage{URL: content.QRImageURL(text)},
		Footer:      &discordgo.MessageEmbedFooter{Text: "Scan with your phone camera or QR code app"},
	})
	return err
}

func runShorten(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		return command.Usagef("Pass the URL to shorten!")
	}
	target := ctx.Args[0]
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = "https://" + target
	}

	short, err := ctx.Content.Shorten(context.Background(), target)
	if err != nil {
		return fmt.Errorf("shorten url: %w", err)
	}

	_, err = ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:     "🔗 URL Shortener",
		Color:     command.EmbedColor,
		Timestamp: command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Original URL", Value: target},
			{Name: "Short URL", Value: short},
		},
	})
	return err
}

func runBase64(ctx *command.Context) error {
	if len(ctx.Args) < 2 {
		return command.Usagef("Tell me whether to encode or decode, then the text!")
	}
	action := strings.ToLower(ctx.Args[0])
	text := ctx.Rest(1)

	var result, title string
	switch action {
	case "encode":
		result = base64.StdEncoding.EncodeToString([]byte(text))
		title = "Base64 Encoded"
	case "decode":
		raw, err := base64.StdEncoding.DecodeString(text)
		if err != nil {
			return command.Usagef("Invalid base64 string!")
		}
		result = string(raw)
		title = "Base64 Decoded"
	default:
		return command.Usagef("Invalid action! Use `encode` or `decode`")
	}

	embed := &discordgo.MessageEmbed{
		Title:     "🔐 " + title,
		Color:     command.EmbedColor,
		Timestamp: command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Input", Value: codeBlock(text, 500)},
			{Name: "Output", Value: codeBlock(result, 500)},
		},
	}
	if len(result) > 500 {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Output truncated due to length"}
	}

	_, err := ctx.ReplyEmbed(embed)
	return err
}

func runHash(ctx *command.Context) error {
	if len(ctx.Args) < 2 {
		return command.Usagef("Tell me the algorithm and the text!")
	}
	algorithm := strings.ToLower(ctx.Args[0])
	text := ctx.Rest(1)

	var sum []byte
	switch algorithm {
	case "md5":
		h := md5.Sum([]byte(text))
		sum = h[:]
	case "sha1":
		h := sha1.Sum([]byte(text))
		sum = h[:]
	case "sha256":
		h := sha256.Sum256([]byte(text))
		sum = h[:]
	case "sha512":
		h := sha512.Sum512([]byte(text))
		sum = h[:]
	default:
		return command.Usagef("Unsupported algorithm! Available: `md5`, `sha1`, `sha256`, `sha512`")
	}

	_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:     "🔒 " + strings.ToUpper(algorithm) + " Hash",
		Color:     command.EmbedColor,
		Timestamp: command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Input", Value: codeBlock(text, 200)},
			{Name: "Hash", Value: codeBlock(hex.EncodeToString(sum), 500)},
		},
	})
	return err
}

func codeBlock(s string, limit int) string {
	if len(s) > limit {
		s = s[:limit]
	}
	return "```" + s + "```"
}

func runTimestamp(ctx *command.Context) error {
	unix := time.Now().UTC().Unix()
	title := "🕒 Current Timestamp"
	if len(ctx.Args) > 0 {
		n, err := strconv.ParseInt(ctx.Args[0], 10, 64)
		if err != nil || n < 0 {
			return command.Usagef("Invalid timestamp! Please provide a valid Unix timestamp.")
		}
		unix = n
		title = "🕒 Timestamp Converter"
	}

	readable := time.Unix(unix, 0).UTC().Format("2006-01-02 15:04:05 UTC")
	_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:     title,
		Color:     command.EmbedColor,
		Timestamp: command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Unix Timestamp", Value: fmt.Sprint(unix)},
			{Name: "Readable Time", Value: readable},
			{Name: "Discord Format", Value: fmt.Sprintf("<t:%d>", unix)},
			{Name: "Relative Format", Value: fmt.Sprintf("<t:%d:R>", unix)},
		},
	})
	return err
}

func runColor(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		return command.Usagef("Pass a hex color code!")
	}
	code := strings.TrimPrefix(ctx.Args[0], "#")
	if len(code) != 6 {
		return command.Usagef("Invalid hex color code! Use format: #RRGGBB or RRGGBB")
	}
	value, err := strconv.ParseInt(code, 16, 32)
	if err != nil {
		return command.Usagef("Invalid hex color code! Use format: #RRGGBB or RRGGBB")
	}

	r := (value >> 16) & 0xFF
	g := (value >> 8) & 0xFF
	b := value & 0xFF

	_, err = ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:     "🎨 Color: #" + strings.ToUpper(code),
		Color:     int(value),
		Timestamp: command.NowTimestamp(),
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: content.ColorImageURL(code)},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Hex", Value: "#" + strings.ToUpper(code), Inline: true},
			{Name: "RGB", Value: fmt.Sprintf("rgb(%d, %d, %d)", r, g, b), Inline: true},
			{Name: "Decimal", Value: fmt.Sprint(value), Inline: true},
		},
	})
	return err
}
