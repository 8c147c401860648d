// Package fun provides the entertainment command group: jokes, dice, the
// magic 8-ball, rock paper scissors and the reaction trivia game.
package fun

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/aurora9161/mochabot/internal/command"
	"github.com/aurora9161/mochabot/internal/content"
	"github.com/aurora9161/mochabot/internal/session"
)

const categoryName = "Fun"

const (
	maxDiceRolls = 20
	maxDiceSides = 100
	minChoices   = 2
	maxChoices   = 20
)

var jokes = []struct {
	setup     string
	punchline string
}{
	{"Why did the coffee file a police report?", "It got mugged!"},
	{"How does Moses make coffee?", "Hebrews it!"},
	{"What do you call sad coffee?", "Depresso!"},
	{"Why don't coffee beans ever get speeding tickets?", "Because they know how to espresso themselves!"},
	{"What's the best thing about Switzerland?", "I don't know, but their flag is a big plus... unlike their coffee prices!"},
	{"How do you know if someone's a coffee addict?", "Don't worry, they'll tell you... repeatedly!"},
	{"What did the coffee say to the cream?", "You make me whole milk!"},
	{"Why do coffee lovers prefer dark roast?", "Because light roast is too mainstream!"},
	{"What's a coffee's favorite spell?", "Espresso Patronum!"},
	{"Why did the hipster burn his tongue?", "He drank his coffee before it was cool!"},
}

var eightBallAnswers = []string{
	"☕ It is certain",
	"☕ Without a doubt",
	"☕ Yes definitely",
	"☕ You may rely on it",
	"☕ As I see it, yes",
	"☕ Most likely",
	"☕ Outlook good",
	"☕ Yes",
	"☕ Signs point to yes",
	"☕ Reply hazy, try again after coffee",
	"☕ Ask again later when you're caffeinated",
	"☕ Better not tell you now",
	"☕ Cannot predict now without more coffee",
	"☕ Concentrate and ask again",
	"☕ Don't count on it",
	"☕ My reply is no",
	"☕ My sources say no",
	"☕ Outlook not so good",
	"☕ Very doubtful",
	"☕ The coffee grounds say no",
}

var fallbackQuotes = []content.Quote{
	{Content: "The only way to do great work is to love what you do.", Author: "Steve Jobs"},
	{Content: "Innovation distinguishes between a leader and a follower.", Author: "Steve Jobs"},
	{Content: "Stay hungry, stay foolish.", Author: "Steve Jobs"},
	{Content: "Life is what happens to you while you're busy making other plans.", Author: "John Lennon"},
	{Content: "The future belongs to those who believe in the beauty of their dreams.", Author: "Eleanor Roosevelt"},
}

type triviaQuestion struct {
	question    string
	options     []string
	answer      string
	explanation string
}

var triviaQuestions = []triviaQuestion{
	{
		question:    "Which country is the largest producer of coffee in the world?",
		options:     []string{"Colombia", "Brazil", "Vietnam", "Ethiopia"},
		answer:      "Brazil",
		explanation: "Brazil produces about 40% of the world's coffee!",
	},
	{
		question:    "What does \"espresso\" mean in Italian?",
		options:     []string{"Fast coffee", "Pressed out", "Strong drink", "Black gold"},
		answer:      "Pressed out",
		explanation: "Espresso comes from the Italian word meaning \"pressed out\"!",
	},
	{
		question:    "Which animal is said to have discovered coffee?",
		options:     []string{"Cats", "Goats", "Birds", "Monkeys"},
		answer:      "Goats",
		explanation: "Legend says a goat herder in Ethiopia discovered coffee when his goats became energetic after eating coffee berries!",
	},
	{
		question:    "What is the most expensive coffee in the world made from?",
		options:     []string{"Gold flakes", "Rare beans", "Civet droppings", "Volcanic soil"},
		answer:      "Civet droppings",
		explanation: "Kopi Luwak coffee is made from beans that have been eaten and excreted by civets!",
	},
	{
		question:    "Which country consumes the most coffee per capita?",
		options:     []string{"United States", "Italy", "Finland", "Turkey"},
		answer:      "Finland",
		explanation: "Finland consumes about 12kg of coffee per person per year!",
	},
	{
		question:    "What temperature should water be for brewing coffee?",
		options:     []string{"180°F (82°C)", "195-205°F (90-96°C)", "212°F (100°C)", "175°F (79°C)"},
		answer:      "195-205°F (90-96°C)",
		explanation: "The optimal brewing temperature is just below boiling point for best extraction!",
	},
	{
		question:    "How much caffeine does an average cup of coffee contain?",
		options:     []string{"50mg", "95mg", "150mg", "200mg"},
		answer:      "95mg",
		explanation: "An 8oz cup of coffee typically contains about 95mg of caffeine!",
	},
	{
		question:    "What is a \"shot\" in coffee terms?",
		options:     []string{"1 tablespoon of coffee", "1 ounce of espresso", "1 cup of coffee", "1 teaspoon of sugar"},
		answer:      "1 ounce of espresso",
		explanation: "A shot refers to approximately 1 ounce of espresso extracted in 25-30 seconds!",
	},
}

var (
	triviaMarkers         = []string{"🅰️", "🅱️", "🅲️", "🅳️"}
	triviaFallbackMarkers = []string{"🇦", "🇧", "🇨", "🇩"}
)

// Commands returns the fun command set.
func Commands() []*command.Command {
	return []*command.Command{
		{
			Sort: 200, Name: "joke", Category: categoryName, Emoji: "🎉",
			Description: "Get a random coffee joke",
			Run:         runJoke,
		},
		{
			Sort: 201, Name: "8ball", Aliases: []string{"eightball"}, Category: categoryName, Emoji: "🎱",
			Description: "Ask the magic coffee ball a question",
			Usage:       "8ball <question>",
			Run:         runEightBall,
		},
		{
			Sort: 202, Name: "roll", Category: categoryName, Emoji: "🎲",
			Description: "Roll dice in NdN format",
			Usage:       "roll [NdN]",
			Run:         runRoll,
		},
		{
			Sort: 203, Name: "flip", Aliases: []string{"coin"}, Category: categoryName, Emoji: "🪙",
			Description: "Flip a coin",
			Run:         runFlip,
		},
		{
			Sort: 204, Name: "choose", Aliases: []string{"pick"}, Category: categoryName, Emoji: "🎯",
			Description: "Choose between comma-separated options",
			Usage:       "choose <option1, option2, ...>",
			Run:         runChoose,
		},
		{
			Sort: 205, Name: "rps", Category: categoryName, Emoji: "✊",
			Description: "Play Rock Paper Scissors",
			Usage:       "rps <rock|paper|scissors>",
			Run:         runRPS,
		},
		{
			Sort: 206, Name: "inspire", Category: categoryName, Emoji: "💬",
			Description: "Get an inspirational quote",
			Run:         runInspire,
		},
		{
			Sort: 207, Name: "trivia", Category: categoryName, Emoji: "☕",
			Description: "Answer a coffee trivia question",
			Run:         runTrivia,
		},
	}
}

func runJoke(ctx *command.Context) error {
	j := jokes[rand.Intn(len(jokes))]
	msg, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:     "😂 Coffee Joke",
		Color:     command.EmbedColor,
		Timestamp: command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Setup", Value: j.setup},
			{Name: "Punchline", Value: j.punchline},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Hope that gave you a good laugh! ☕😄"},
	})
	if err != nil {
		return err
	}
	return ctx.Session.MessageReactionAdd(msg.ChannelID, msg.ID, "😂")
}

func runEightBall(ctx *command.Context) error {
	question := ctx.Rest(0)
	if question == "" {
		return command.Usagef("Ask me a question!")
	}
	answer := eightBallAnswers[rand.Intn(len(eightBallAnswers))]
	_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:     "🎱 Magic Coffee Ball",
		Color:     command.EmbedColor,
		Timestamp: command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Question", Value: fmt.Sprintf("%q", question)},
			{Name: "Answer", Value: answer},
		},
	})
	return err
}

func runRoll(ctx *command.Context) error {
	notation := "1d6"
	if len(ctx.Args) > 0 {
		notation = ctx.Args[0]
	}
	rolls, sides, err := command.ParseDice(notation)
	if err != nil {
		return err
	}
	if rolls > maxDiceRolls {
		return command.Usagef("Too many dice! Maximum is %d.", maxDiceRolls)
	}
	if sides > maxDiceSides {
		return command.Usagef("Dice too large! Maximum is %d sides.", maxDiceSides)
	}

	results := make([]string, rolls)
	total := 0
	for i := range results {
		v := 1 + rand.Intn(sides)
		total += v
		results[i] = fmt.Sprint(v)
	}

	resultLine := strings.Join(results, ", ")
	if rolls > 10 {
		resultLine = fmt.Sprintf("%d dice rolled", rolls)
	}

	_, err = ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:     fmt.Sprintf("🎲 Rolling %s", notation),
		Color:     command.EmbedColor,
		Timestamp: command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Results", Value: resultLine},
			{Name: "Total", Value: fmt.Sprint(total)},
		},
	})
	return err
}

func runFlip(ctx *command.Context) error {
	result := "Heads"
	if rand.Intn(2) == 1 {
		result = "Tails"
	}
	_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🪙 Coin Flip Result",
		Description: fmt.Sprintf("**%s!**", result),
		Color:       command.EmbedColor,
		Timestamp:   command.NowTimestamp(),
	})
	return err
}

func runChoose(ctx *command.Context) error {
	choices := command.SplitChoices(ctx.Rest(0))
	if len(choices) < minChoices {
		return command.Usagef("Please provide at least 2 choices separated by commas!")
	}
	if len(choices) > maxChoices {
		return command.Usagef("Too many choices! Maximum is %d.", maxChoices)
	}

	chosen := choices[rand.Intn(len(choices))]
	quoted := make([]string, len(choices))
	for i, c := range choices {
		quoted[i] = "`" + c + "`"
	}

	_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🎯 Choice Selector",
		Description: fmt.Sprintf("I choose: **%s**", chosen),
		Color:       command.EmbedColor,
		Timestamp:   command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Options", Value: strings.Join(quoted, ", ")},
		},
	})
	return err
}

var rpsEmojis = map[string]string{
	"rock":     "🪨",
	"paper":    "📄",
	"scissors": "✂️",
}

var rpsBeats = map[string]string{
	"rock":     "scissors",
	"paper":    "rock",
	"scissors": "paper",
}

func runRPS(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
			Title:       "✊ Rock Paper Scissors",
			Description: "Choose: `rock`, `paper`, or `scissors`",
			Color:       command.EmbedColor,
		})
		return err
	}

	choice := strings.ToLower(ctx.Args[0])
	if _, ok := rpsEmojis[choice]; !ok {
		return command.Usagef("Invalid choice! Choose rock, paper, or scissors.")
	}

	options := []string{"rock", "paper", "scissors"}
	botChoice := options[rand.Intn(len(options))]

	var result string
	var color int
	switch {
	case choice == botChoice:
		result, color = "It's a tie!", 0xFFFF00
	case rpsBeats[choice] == botChoice:
		result, color = "You win! 🎉", 0x00FF00
	default:
		result, color = "I win! 🤖", 0xFF0000
	}

	_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:     "✊ Rock Paper Scissors",
		Color:     color,
		Timestamp: command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Your Choice", Value: rpsEmojis[choice] + " " + title(choice), Inline: true},
			{Name: "My Choice", Value: rpsEmojis[botChoice] + " " + title(botChoice), Inline: true},
			{Name: "Result", Value: result},
		},
	})
	return err
}

func runInspire(ctx *command.Context) error {
	q, err := ctx.Content.RandomQuote(context.Background())
	if err != nil {
		q = fallbackQuotes[rand.Intn(len(fallbackQuotes))]
	}
	_, err = ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "💬 Inspirational Quote",
		Description: fmt.Sprintf("*\"%s\"*\n\n— %s", q.Content, q.Author),
		Color:       command.EmbedColor,
		Timestamp:   command.NowTimestamp(),
	})
	return err
}

// runTrivia blocks for up to the race timeout; the event loop keeps
// processing other messages because handlers run on their own goroutines.
func runTrivia(ctx *command.Context) error {
	q := triviaQuestions[rand.Intn(len(triviaQuestions))]

	lines := make([]string, len(q.options))
	for i, opt := range q.options {
		lines[i] = fmt.Sprintf("%c. %s", 'A'+i, opt)
	}

	msg, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "☕ Coffee Trivia",
		Description: q.question,
		Color:       command.EmbedColor,
		Timestamp:   command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Options", Value: strings.Join(lines, "\n")},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "React with A, B, C, or D to answer! (30 seconds)"},
	})
	if err != nil {
		return err
	}

	markers := addOptionMarkers(
		func(emoji string) error { return ctx.Session.MessageReactionAdd(msg.ChannelID, msg.ID, emoji) },
		func() error { return ctx.Session.MessageReactionsRemoveAll(msg.ChannelID, msg.ID) },
		len(q.options),
	)

	race := session.NewRace(msg.ID, ctx.AuthorID(), markers, session.RaceTimeout)
	ctx.Sessions.TrackRace(race)
	defer ctx.Sessions.DropRace(msg.ID)

	outcome, token := race.Wait(context.Background())
	switch outcome {
	case session.Answered:
		picked := q.options[markerIndex(markers, token)]
		return sendTriviaVerdict(ctx, q, picked)
	case session.TimedOut:
		_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
			Title: "⏰ Time's Up!",
			Description: fmt.Sprintf("No answer received in time.\n\nThe correct answer was **%s**.\n\n💡 %s",
				q.answer, q.explanation),
			Color:     0xFFFF00,
			Timestamp: command.NowTimestamp(),
			Footer:    &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Try again with %strivia - you've got this!", ctx.Prefix)},
		})
		return err
	default:
		return nil
	}
}

// addOptionMarkers reacts with the primary marker set, falling back to
// regional indicators if the platform rejects a glyph partway. The react
// and clear operations are passed in, like the dispatcher's notify hook.
func addOptionMarkers(react func(emoji string) error, clear func() error, n int) []string {
	markers := triviaMarkers[:n]
	for _, emoji := range markers {
		if err := react(emoji); err != nil {
			log.Println("[WARN] Primary trivia markers rejected, falling back:", err)
			if err := clear(); err != nil {
				log.Println("[WARN] Failed to clear trivia reactions:", err)
			}
			markers = triviaFallbackMarkers[:n]
			for _, fb := range markers {
				if err := react(fb); err != nil {
					log.Println("[WARN] Failed to add fallback trivia marker:", err)
				}
			}
			break
		}
	}
	return markers
}

func markerIndex(markers []string, token string) int {
	for i, m := range markers {
		if m == token {
			return i
		}
	}
	return 0
}

func sendTriviaVerdict(ctx *command.Context, q triviaQuestion, picked string) error {
	if picked == q.answer {
		_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
			Title:       "✅ Correct!",
			Description: fmt.Sprintf("**%s** is the right answer!\n\n💡 %s", q.answer, q.explanation),
			Color:       0x00FF00,
			Timestamp:   command.NowTimestamp(),
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Your Answer", Value: "✅ " + picked, Inline: true},
			},
			Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Thanks for playing! Try another round with %strivia", ctx.Prefix)},
		})
		return err
	}
	_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "❌ Incorrect!",
		Description: fmt.Sprintf("The correct answer was **%s**.\n\n💡 %s", q.answer, q.explanation),
		Color:       0xFF0000,
		Timestamp:   command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Your Answer", Value: "❌ " + picked, Inline: true},
			{Name: "Correct Answer", Value: "✅ " + q.answer, Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Thanks for playing! Try another round with %strivia", ctx.Prefix)},
	})
	return err
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
