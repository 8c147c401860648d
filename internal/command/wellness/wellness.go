// Package wellness provides the mental health command group: affirmations,
// breathing and grounding exercises, mood tracking, crisis resources and
// self-care suggestions.
package wellness

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/aurora9161/mochabot/internal/command"
)

const categoryName = "Wellness"

var affirmations = []string{
	"You are stronger than you think.",
	"Every small step counts towards your wellbeing.",
	"You deserve love and kindness, especially from yourself.",
	"It's okay to not be okay sometimes.",
	"Your feelings are valid and important.",
	"You have overcome challenges before, and you can do it again.",
	"Taking care of your mental health is a sign of strength.",
	"You are worthy of happiness and peace.",
	"Progress, not perfection, is what matters.",
	"You are not alone in your struggles.",
	"Your mental health matters as much as your physical health.",
	"It's brave to ask for help when you need it.",
	"You are capable of creating positive change in your life.",
	"Your journey is unique and valuable.",
	"You have the power to choose how you respond to challenges.",
}

type exercise struct {
	name        string
	description string
	steps       []string
}

var breathingExercises = []exercise{
	{
		name:        "4-7-8 Breathing",
		description: "Inhale for 4, hold for 7, exhale for 8",
		steps: []string{
			"Sit comfortably and close your eyes",
			"Inhale through your nose for 4 counts",
			"Hold your breath for 7 counts",
			"Exhale through your mouth for 8 counts",
			"Repeat 3-4 times",
		},
	},
	{
		name:        "Box Breathing",
		description: "Equal counts for inhale, hold, exhale, hold",
		steps: []string{
			"Inhale for 4 counts",
			"Hold for 4 counts",
			"Exhale for 4 counts",
			"Hold empty for 4 counts",
			"Repeat 5-10 times",
		},
	},
	{
		name:        "Belly Breathing",
		description: "Deep diaphragmatic breathing",
		steps: []string{
			"Place one hand on chest, one on belly",
			"Breathe slowly through your nose",
			"Feel your belly rise more than your chest",
			"Exhale slowly through pursed lips",
			"Continue for 5-10 minutes",
		},
	},
}

var groundingTechniques = []exercise{
	{
		name:        "5-4-3-2-1 Technique",
		description: "Use your senses to ground yourself",
		steps: []string{
			"5 things you can see",
			"4 things you can touch",
			"3 things you can hear",
			"2 things you can smell",
			"1 thing you can taste",
		},
	},
	{
		name:        "Progressive Muscle Relaxation",
		description: "Tense and relax muscle groups",
		steps: []string{
			"Start with your toes, tense for 5 seconds",
			"Release and notice the relaxation",
			"Move up through each muscle group",
			"Finish with your face and scalp",
			"Breathe deeply throughout",
		},
	},
	{
		name:        "Mindful Observation",
		description: "Focus completely on one object",
		steps: []string{
			"Choose an object near you",
			"Observe its color, texture, shape",
			"Notice how light hits it",
			"Focus only on this object for 2-3 minutes",
			"Let other thoughts pass without judgment",
		},
	},
}

type crisisLine struct {
	service string
	contact string
}

var crisisResources = map[string][]crisisLine{
	"US": {
		{"National Suicide Prevention Lifeline", "988"},
		{"Crisis Text Line", "Text HOME to 741741"},
		{"SAMHSA National Helpline", "1-800-662-4357"},
	},
	"UK": {
		{"Samaritans", "116 123"},
		{"Crisis Text Line UK", "Text SHOUT to 85258"},
		{"NHS 111", "111"},
	},
	"CANADA": {
		{"Talk Suicide Canada", "1-833-456-4566"},
		{"Crisis Text Line Canada", "Text TALK to 686868"},
	},
	"AUSTRALIA": {
		{"Lifeline", "13 11 14"},
		{"Kids Helpline", "1800 55 1800"},
	},
	"INDIA": {
		{"Vandrevala Foundation", "1860-2662-345"},
		{"AASRA", "91-9820466726"},
	},
}

// crisisAliases folds common country spellings onto the canonical keys so
// "usa" and "US" return identical resource lists.
var crisisAliases = map[string]string{
	"USA":           "US",
	"UNITED STATES": "US",
	"AMERICA":       "US",
	"GB":            "UK",
	"BRITAIN":       "UK",
	"CA":            "CANADA",
	"AU":            "AUSTRALIA",
	"AUS":           "AUSTRALIA",
	"IN":            "INDIA",
}

var selfCareActivities = map[string][]string{
	"physical": {
		"Take a warm bath or shower",
		"Go for a gentle walk outside",
		"Do some light stretching",
		"Practice yoga or meditation",
		"Get enough sleep tonight",
		"Drink a glass of water",
		"Eat a nourishing meal",
		"Dance to your favorite music",
	},
	"emotional": {
		"Write in a journal",
		"Call someone you care about",
		"Practice gratitude",
		"Allow yourself to cry if needed",
		"Listen to calming music",
		"Watch a comfort movie",
		"Practice self-compassion",
		"Set a boundary you need",
	},
	"mental": {
		"Take breaks from social media",
		"Read a book you enjoy",
		"Practice a hobby you love",
		"Learn something new",
		"Organize a small space",
		"Do a puzzle or brain game",
		"Limit news consumption",
		"Practice mindfulness",
	},
	"social": {
		"Reach out to a friend",
		"Join a support group",
		"Spend time with pets",
		"Video call family",
		"Write a thank you note",
		"Volunteer for a cause you care about",
		"Join an online community",
		"Practice active listening",
	},
}

var moodEmojis = [11]string{"", "😢", "😞", "😔", "🙁", "😐", "🙂", "😊", "😄", "😁", "🤩"}

var moodColors = [11]int{0,
	0x8B0000, 0xDC143C, 0xFF4500, 0xFF8C00, 0xFFD700,
	0xADFF2F, 0x32CD32, 0x00FF7F, 0x00CED1, 0x9370DB,
}

// Commands returns the wellness command set.
func Commands() []*command.Command {
	return []*command.Command{
		{
			Sort: 300, Name: "affirmation", Aliases: []string{"affirm"}, Category: categoryName, Emoji: "🌟",
			Description: "Get a positive affirmation",
			Run:         runAffirmation,
		},
		{
			Sort: 301, Name: "breathe", Category: categoryName, Emoji: "🫁",
			Description: "Get a guided breathing exercise",
			Usage:       "breathe [exercise]",
			Run:         runBreathe,
		},
		{
			Sort: 302, Name: "ground", Aliases: []string{"grounding"}, Category: categoryName, Emoji: "🌱",
			Description: "Get a grounding technique for anxiety",
			Usage:       "ground [technique]",
			Run:         runGround,
		},
		{
			Sort: 303, Name: "mood", Category: categoryName, Emoji: "📊",
			Description: "Log and track your current mood",
			Usage:       "mood [1-10] [notes...]",
			Run:         runMood,
		},
		{
			Sort: 304, Name: "crisis", Category: categoryName, Emoji: "🆘",
			Description: "Get emergency mental health resources",
			Usage:       "crisis [country]",
			Run:         runCrisis,
		},
		{
			Sort: 305, Name: "checkin", Category: categoryName, Emoji: "🌅",
			Description: "Daily mental health check-in",
			Run:         runCheckin,
		},
		{
			Sort: 306, Name: "selfcare", Aliases: []string{"care"}, Category: categoryName, Emoji: "💆",
			Description: "Get self-care suggestions",
			Usage:       "selfcare [physical|emotional|mental|social]",
			Run:         runSelfCare,
		},
		{
			Sort: 307, Name: "therapy", Category: categoryName, Emoji: "🛋️",
			Description: "Information about therapy and mental health support",
			Run:         runTherapy,
		},
	}
}

// RandomAffirmation picks one affirmation, for the periodic wellness
// broadcast as well as the affirmation command.
func RandomAffirmation() string {
	return affirmations[rand.Intn(len(affirmations))]
}

func runAffirmation(ctx *command.Context) error {
	text := RandomAffirmation()
	msg, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🌟 Daily Affirmation",
		Description: fmt.Sprintf("*\"%s\"*", text),
		Color:       0x87CEEB,
		Timestamp:   command.NowTimestamp(),
		Footer:      &discordgo.MessageEmbedFooter{Text: "Remember: You matter and you are valued ❤️"},
	})
	if err != nil {
		return err
	}
	for _, emoji := range []string{"❤️", "🌟"} {
		if err := ctx.Session.MessageReactionAdd(msg.ChannelID, msg.ID, emoji); err != nil {
			return err
		}
	}
	return nil
}

func runBreathe(ctx *command.Context) error {
	ex, err := pickExercise(breathingExercises, ctx.Rest(0))
	if err != nil {
		return err
	}

	steps := make([]string, len(ex.steps))
	for i, s := range ex.steps {
		steps[i] = fmt.Sprintf("%d. %s", i+1, s)
	}

	_, err = ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🫁 " + ex.name,
		Description: ex.description,
		Color:       0x98FB98,
		Timestamp:   command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Steps", Value: strings.Join(steps, "\n")},
			{Name: "💡 Tip", Value: "Find a quiet, comfortable space. Take your time and don't rush."},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Breathe at your own pace. You're doing great! 🌸"},
	})
	return err
}

func runGround(ctx *command.Context) error {
	tech, err := pickExercise(groundingTechniques, ctx.Rest(0))
	if err != nil {
		return err
	}

	steps := make([]string, len(tech.steps))
	for i, s := range tech.steps {
		steps[i] = "• " + s
	}

	_, err = ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🌱 " + tech.name,
		Description: tech.description,
		Color:       0xDDA0DD,
		Timestamp:   command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "How to Practice", Value: strings.Join(steps, "\n")},
			{Name: "🎯 Purpose", Value: "Grounding helps bring you back to the present moment when feeling overwhelmed."},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Take it slow. You're safe in this moment. 🕊️"},
	})
	return err
}

// pickExercise matches a name fragment case-insensitively, or picks a
// random exercise when the query is empty.
func pickExercise(list []exercise, query string) (exercise, error) {
	if query == "" {
		return list[rand.Intn(len(list))], nil
	}
	folded := strings.ToLower(query)
	for _, ex := range list {
		if strings.Contains(strings.ToLower(ex.name), folded) {
			return ex, nil
		}
	}
	names := make([]string, len(list))
	for i, ex := range list {
		names[i] = ex.name
	}
	return exercise{}, command.Usagef("Exercise not found! Available: %s", strings.Join(names, ", "))
}

func runMood(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		return moodGuide(ctx)
	}

	level, err := strconv.Atoi(ctx.Args[0])
	if err != nil {
		return command.Usagef("Mood level must be a number between 1 and 10!")
	}
	if level < 1 || level > 10 {
		return command.Usagef("Mood level must be between 1 and 10!")
	}
	notes := ctx.Rest(1)

	ctx.Store.Moods.Log(ctx.AuthorID(), level, notes)

	embed := &discordgo.MessageEmbed{
		Title:       moodEmojis[level] + " Mood Logged",
		Description: fmt.Sprintf("You rated your mood as **%d/10**", level),
		Color:       moodColors[level],
		Timestamp:   command.NowTimestamp(),
		Footer:      &discordgo.MessageEmbedFooter{Text: "Logged by " + ctx.AuthorName() + " | Your feelings matter"},
	}
	if notes != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Notes", Value: notes})
	}

	switch {
	case level <= 3:
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "💙 Remember",
			Value: "It's okay to have difficult days. Consider reaching out to someone you trust or using the `" +
				ctx.Prefix + "crisis` command if you need immediate support.",
		})
	case level <= 5:
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "🌱 Suggestion",
			Value: fmt.Sprintf("Try a `%sbreathe` exercise or `%saffirmation` to help lift your spirits.", ctx.Prefix, ctx.Prefix),
		})
	default:
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "🌟 Great!",
			Value: "I'm glad you're feeling good! Remember this feeling for tougher days.",
		})
	}

	if avg, ok := ctx.Store.Moods.Average(ctx.AuthorID()); ok {
		entries := len(ctx.Store.Moods.History(ctx.AuthorID()))
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "📈 Your Trend",
			Value: fmt.Sprintf("Average **%.1f/10** over your last %d check-in(s)", avg, entries),
		})
	}

	_, err = ctx.ReplyEmbed(embed)
	return err
}

func moodGuide(ctx *command.Context) error {
	_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "📊 Mood Tracking",
		Description: "Track your daily mood to identify patterns and triggers.",
		Color:       0xFFB6C1,
		Timestamp:   command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "How to Use",
				Value: fmt.Sprintf("`%smood <1-10> [optional notes]`\n\nExample: `%smood 7 Had a good day at work`",
					ctx.Prefix, ctx.Prefix),
			},
			{
				Name:  "Mood Scale",
				Value: "1-2: Very Low 😞\n3-4: Low 😔\n5-6: Neutral 😐\n7-8: Good 😊\n9-10: Great 😄",
			},
			{
				Name:  "💡 Benefits",
				Value: "• Identify patterns\n• Track progress\n• Recognize triggers\n• Share with therapist",
			},
		},
	})
	return err
}

// ResolveCrisisRegion folds a user-supplied country token onto a canonical
// resource key, if one exists.
func ResolveCrisisRegion(token string) (string, bool) {
	folded := strings.ToUpper(strings.TrimSpace(token))
	if alias, ok := crisisAliases[folded]; ok {
		folded = alias
	}
	_, ok := crisisResources[folded]
	return folded, ok
}

func runCrisis(ctx *command.Context) error {
	region := "US"
	if len(ctx.Args) > 0 {
		region = ctx.Rest(0)
	}

	var embed *discordgo.MessageEmbed
	if canonical, ok := ResolveCrisisRegion(region); ok {
		embed = &discordgo.MessageEmbed{
			Title:       "🆘 Crisis Resources - " + canonical,
			Description: "**If you are in immediate danger, call emergency services (911, 999, 112)**",
			Color:       0xFF0000,
			Timestamp:   command.NowTimestamp(),
		}
		for _, line := range crisisResources[canonical] {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name: "📞 " + line.service, Value: "**" + line.contact + "**",
			})
		}
	} else {
		regions := make([]string, 0, len(crisisResources))
		for name := range crisisResources {
			regions = append(regions, name)
		}
		sort.Strings(regions)
		embed = &discordgo.MessageEmbed{
			Title: "🆘 Crisis Resources",
			Description: fmt.Sprintf("Available countries: %s\nUse `%scrisis <country>` for specific resources.",
				strings.Join(regions, ", "), ctx.Prefix),
			Color:     0xFF0000,
			Timestamp: command.NowTimestamp(),
		}
	}

	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{
			Name:  "💙 Remember",
			Value: "You are not alone. There are people who want to help you through this difficult time.",
		},
		&discordgo.MessageEmbedField{
			Name:  "🌟 You Matter",
			Value: "Your life has value. Tomorrow can be different. Please reach out.",
		},
	)
	embed.Footer = &discordgo.MessageEmbedFooter{Text: "Crisis resources are available 24/7 | You deserve support"}

	_, err := ctx.ReplyEmbed(embed)
	return err
}

func runCheckin(ctx *command.Context) error {
	questions := []string{
		"❤️ How is your heart feeling today?",
		"🧠 How is your mind feeling today?",
		"💪 How is your body feeling today?",
		"🤝 How are your relationships today?",
		"🎯 What's one thing you're grateful for?",
	}

	msg, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🌅 Daily Check-In",
		Description: "Take a moment to reflect on how you're doing today.",
		Color:       0xFFA07A,
		Timestamp:   command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Reflection Questions", Value: strings.Join(questions, "\n")},
			{Name: "💡 How to Use", Value: "Take a few minutes to think about these questions. You don't need to answer them here - just reflect personally."},
			{Name: "🌱 Daily Practice", Value: "Regular check-ins help you stay aware of your mental health and catch issues early."},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Self-awareness is the first step to self-care 🌸"},
	})
	if err != nil {
		return err
	}
	for _, emoji := range []string{"💝", "🌱", "✨"} {
		if err := ctx.Session.MessageReactionAdd(msg.ChannelID, msg.ID, emoji); err != nil {
			return err
		}
	}
	return nil
}

func runSelfCare(ctx *command.Context) error {
	embed := &discordgo.MessageEmbed{
		Color:     0x98FB98,
		Timestamp: command.NowTimestamp(),
		Footer:    &discordgo.MessageEmbedFooter{Text: "Small acts of self-care make a big difference 🌺"},
	}

	if len(ctx.Args) > 0 {
		category := strings.ToLower(ctx.Args[0])
		activities, ok := selfCareActivities[category]
		if !ok {
			names := make([]string, 0, len(selfCareActivities))
			for name := range selfCareActivities {
				names = append(names, name)
			}
			sort.Strings(names)
			return command.Usagef("Category not found! Available: %s", strings.Join(names, ", "))
		}

		picks := sampleStrings(activities, 5)
		for i, p := range picks {
			picks[i] = "• " + p
		}
		embed.Title = "💆 " + strings.ToUpper(category[:1]) + category[1:] + " Self-Care"
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Try one of these:", Value: strings.Join(picks, "\n"),
		})
	} else {
		var all []string
		for _, list := range selfCareActivities {
			all = append(all, list...)
		}
		embed.Title = "💆 Self-Care Suggestion"
		embed.Description = "✨ " + all[rand.Intn(len(all))]
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "💝 Remember",
		Value: "Self-care isn't selfish - it's necessary. You deserve care and kindness.",
	})

	_, err := ctx.ReplyEmbed(embed)
	return err
}

func sampleStrings(list []string, n int) []string {
	if n > len(list) {
		n = len(list)
	}
	perm := rand.Perm(len(list))
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = list[perm[i]]
	}
	return out
}

func runTherapy(ctx *command.Context) error {
	_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🛋️ Therapy & Mental Health Support",
		Description: "Professional mental health support can be incredibly helpful.",
		Color:       0x9370DB,
		Timestamp:   command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "🔍 Finding a Therapist",
				Value: "• Psychology Today directory\n• Your insurance provider's website\n• Local community health centers\n" +
					"• University counseling centers\n• Employee assistance programs",
			},
			{
				Name:  "💻 Online Therapy Options",
				Value: "• BetterHelp\n• Talkspace\n• MDLIVE\n• Amwell\n• 7 Cups (peer support)",
			},
			{
				Name: "💰 Affordable Options",
				Value: "• Community mental health centers\n• Sliding scale fee therapists\n• Support groups\n" +
					"• Crisis text lines\n• Mental health apps",
			},
			{
				Name: "🌟 What to Expect",
				Value: "Therapy is a safe space to explore your thoughts and feelings with a trained professional. " +
					"It's okay to shop around for the right fit!",
			},
			{
				Name:  "💙 Remember",
				Value: "Seeking therapy is a sign of strength, not weakness. You deserve support and care.",
			},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Your mental health is just as important as your physical health 💚"},
	})
	return err
}
