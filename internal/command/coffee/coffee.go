// Package coffee provides the coffee-themed command group: drink
// suggestions, brewing guides, facts, quotes and the caffeine table.
package coffee

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/aurora9161/mochabot/internal/command"
)

const categoryName = "Coffee"

var coffeeTypes = []string{
	"Espresso", "Americano", "Latte", "Cappuccino", "Macchiato",
	"Mocha", "Flat White", "Cortado", "Gibraltar", "Breve",
	"Affogato", "Red Eye", "Black Eye", "Dripped Eye",
	"Romano", "Con Panna", "Frappé", "Cold Brew", "Nitro Coffee",
}

var coffeeDescriptions = map[string]string{
	"Espresso":   "A concentrated coffee served in small, strong shots.",
	"Americano":  "Espresso diluted with hot water, similar to drip coffee.",
	"Latte":      "Espresso with steamed milk and a small amount of foam.",
	"Cappuccino": "Equal parts espresso, steamed milk, and milk foam.",
	"Macchiato":  "Espresso \"marked\" with a dollop of foamed milk.",
	"Mocha":      "Espresso with chocolate syrup and steamed milk.",
	"Flat White": "Espresso with steamed milk and minimal foam.",
	"Cortado":    "Equal parts espresso and warm milk with no foam.",
	"Cold Brew":  "Coffee steeped in cold water for 12-24 hours.",
	"Affogato":   "A shot of espresso poured over vanilla ice cream.",
}

var coffeeFacts = []string{
	"Coffee is the world's second-most traded commodity after oil!",
	"The word 'coffee' comes from the Arabic word 'qahwah'!",
	"Finland consumes the most coffee per capita in the world!",
	"Coffee beans are actually seeds of coffee cherries!",
	"The most expensive coffee in the world comes from civet droppings!",
	"Coffee was originally discovered by goats in Ethiopia!",
	"Instant coffee was invented in 1901!",
	"A coffee tree can live for over 100 years!",
	"Brazil produces about 40% of the world's coffee!",
	"The first webcam was created to monitor a coffee pot at Cambridge University!",
	"Coffee can help you burn fat and boost your metabolism!",
	"Dark roast coffee has less caffeine than light roast!",
	"Espresso means 'pressed out' in Italian!",
	"The French press was actually invented by an Italian designer!",
	"Coffee grounds can be used as fertilizer for plants!",
}

var brewingTips = []string{
	"Use a 1:15 to 1:17 ratio of coffee to water for pour-over methods.",
	"Water temperature should be between 195-205°F (90-96°C) for optimal extraction.",
	"Grind your coffee beans just before brewing for maximum freshness.",
	"Use filtered water to avoid off-flavors from chlorine or minerals.",
	"Pre-heat your brewing equipment to maintain consistent temperature.",
	"Bloom your coffee for 30-45 seconds when using pour-over methods.",
	"Store coffee beans in an airtight container away from light and heat.",
	"Clean your coffee equipment regularly to prevent oil buildup.",
	"Experiment with different grind sizes to find your perfect cup.",
	"Don't over-extract - brewing time affects taste significantly!",
}

type brewGuide struct {
	title string
	steps []string
	tip   string
}

var brewGuides = map[string]brewGuide{
	"espresso": {
		title: "Espresso Brewing Guide",
		steps: []string{
			"1. Use finely ground coffee (18-20g)",
			"2. Tamp evenly with 30lbs of pressure",
			"3. Extract for 25-30 seconds",
			"4. Aim for 1:2 ratio (coffee to liquid)",
		},
		tip: "Look for honey-colored crema on top!",
	},
	"pourover": {
		title: "Pour-Over Brewing Guide",
		steps: []string{
			"1. Use medium-fine grind (22-25g)",
			"2. Rinse filter with hot water",
			"3. Bloom coffee for 30-45 seconds",
			"4. Pour in circular motions over 3-4 minutes",
		},
		tip: "Keep water temperature at 200°F (93°C)",
	},
	"french": {
		title: "French Press Brewing Guide",
		steps: []string{
			"1. Use coarse grind (30g coffee)",
			"2. Add hot water (500ml)",
			"3. Stir gently and steep for 4 minutes",
			"4. Press plunger down slowly",
		},
		tip: "Don't over-steep or it will become bitter!",
	},
	"coldbrew": {
		title: "Cold Brew Brewing Guide",
		steps: []string{
			"1. Use coarse grind (1:4 ratio)",
			"2. Mix coffee with cold water",
			"3. Steep for 12-24 hours",
			"4. Strain through fine filter",
		},
		tip: "Concentrate can be stored for up to 2 weeks!",
	},
}

type caffeineInfo struct {
	amount      string
	serving     string
	description string
}

var caffeineTable = map[string]caffeineInfo{
	"espresso":    {"63mg", "1 shot (1 oz)", "The base for many coffee drinks"},
	"americano":   {"63mg", "8 oz", "Espresso with hot water"},
	"latte":       {"63mg", "12 oz", "Espresso with steamed milk"},
	"cappuccino":  {"63mg", "6 oz", "Equal parts espresso, milk, and foam"},
	"drip":        {"95mg", "8 oz", "Regular brewed coffee"},
	"coldbrew":    {"100-200mg", "8 oz", "Cold-steeped concentrate"},
	"frappuccino": {"95mg", "12 oz", "Blended coffee drink"},
	"tea":         {"25-50mg", "8 oz", "Black tea"},
	"greentea":    {"25-35mg", "8 oz", "Green tea"},
	"cola":        {"34mg", "12 oz", "Coca-Cola"},
	"energydrink": {"80-150mg", "8 oz", "Typical energy drink"},
}

var coffeeQuotes = []struct {
	text   string
	author string
}{
	{"Coffee is a language in itself.", "Jackie Chan"},
	{"I have measured out my life with coffee spoons.", "T.S. Eliot"},
	{"Coffee first. Schemes later.", "Leanna Renee Hieber"},
	{"Life is too short for bad coffee.", "Unknown"},
	{"Coffee is the fuel of the apocalypse.", "Kurt Cobain"},
	{"Behind every successful person is a substantial amount of coffee.", "Unknown"},
	{"Coffee smells like freshly ground heaven.", "Jessi Lane Adams"},
	{"I'd rather take coffee than compliments right now.", "Louisa May Alcott"},
	{"Coffee is my love language.", "Unknown"},
	{"Espresso yourself!", "Unknown"},
}

// Commands returns the coffee command set.
func Commands() []*command.Command {
	return []*command.Command{
		{
			Sort: 100, Name: "coffee", Category: categoryName, Emoji: "☕",
			Description: "Get a random coffee type suggestion",
			Run:         runCoffee,
		},
		{
			Sort: 101, Name: "brew", Category: categoryName, Emoji: "☕",
			Description: "Get brewing tips and instructions",
			Usage:       "brew [espresso|pourover|french|coldbrew]",
			Run:         runBrew,
		},
		{
			Sort: 102, Name: "coffeefact", Aliases: []string{"fact"}, Category: categoryName, Emoji: "☕",
			Description: "Get a random coffee fact",
			Run:         runCoffeeFact,
		},
		{
			Sort: 103, Name: "coffeequote", Aliases: []string{"quote"}, Category: categoryName, Emoji: "☕",
			Description: "Get an inspirational coffee quote",
			Run:         runCoffeeQuote,
		},
		{
			Sort: 104, Name: "caffeine", Category: categoryName, Emoji: "⚡",
			Description: "Check caffeine content in various drinks",
			Usage:       "caffeine [drink]",
			Run:         runCaffeine,
		},
		{
			Sort: 105, Name: "coffeeshop", Aliases: []string{"shop"}, Category: categoryName, Emoji: "☕",
			Description: "Get coffee shop recommendations and tips",
			Run:         runCoffeeShop,
		},
		{
			Sort: 106, Name: "coffeeimage", Category: categoryName, Emoji: "📷",
			Description: "Get a random coffee image",
			Run:         runCoffeeImage,
		},
	}
}

func runCoffee(ctx *command.Context) error {
	kind := coffeeTypes[rand.Intn(len(coffeeTypes))]
	desc := coffeeDescriptions[kind]
	if desc == "" {
		desc = "A delicious coffee variety!"
	}

	difficulty := []string{"Beginner", "Intermediate", "Advanced"}[rand.Intn(3)]
	strength := []string{"🟢 Mild", "🟡 Medium", "🟠 Strong", "🔴 Very Strong"}[rand.Intn(4)]
	stars := strings.Repeat("⭐", 4+rand.Intn(2))

	embed := &discordgo.MessageEmbed{
		Title:       "☕ Today's Coffee Suggestion: " + kind,
		Description: desc,
		Color:       command.EmbedColor,
		Timestamp:   command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🎯 Difficulty", Value: difficulty, Inline: true},
			{Name: "💪 Strength", Value: strength, Inline: true},
			{Name: "✨ Rating", Value: stars, Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Enjoy your coffee! ☕"},
	}

	msg, err := ctx.ReplyEmbed(embed)
	if err != nil {
		return err
	}
	for _, emoji := range []string{"☕", "🥤", "🍫"} {
		if err := ctx.Session.MessageReactionAdd(msg.ChannelID, msg.ID, emoji); err != nil {
			return err
		}
	}
	return nil
}

func runBrew(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		tip := brewingTips[rand.Intn(len(brewingTips))]
		_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
			Title:       "☕ Coffee Brewing Tip",
			Description: tip,
			Color:       command.EmbedColor,
			Timestamp:   command.NowTimestamp(),
			Footer: &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("Use %sbrew <method> for specific guides (espresso, pourover, french, coldbrew)", ctx.Prefix),
			},
		})
		return err
	}

	method := strings.ToLower(ctx.Args[0])
	guide, ok := brewGuides[method]
	if !ok {
		names := make([]string, 0, len(brewGuides))
		for name := range brewGuides {
			names = append(names, name)
		}
		sort.Strings(names)
		return command.Usagef("Unknown brewing method! Available methods: `%s`", strings.Join(names, ", "))
	}

	_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:     "☕ " + guide.title,
		Color:     command.EmbedColor,
		Timestamp: command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📄 Steps", Value: strings.Join(guide.steps, "\n")},
			{Name: "💡 Pro Tip", Value: guide.tip},
		},
	})
	return err
}

func runCoffeeFact(ctx *command.Context) error {
	fact := coffeeFacts[rand.Intn(len(coffeeFacts))]
	msg, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "☕ Coffee Fact",
		Description: fact,
		Color:       command.EmbedColor,
		Timestamp:   command.NowTimestamp(),
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Coffee fact #%d", 1+rand.Intn(100))},
	})
	if err != nil {
		return err
	}
	return ctx.Session.MessageReactionAdd(msg.ChannelID, msg.ID, "☕")
}

func runCoffeeQuote(ctx *command.Context) error {
	q := coffeeQuotes[rand.Intn(len(coffeeQuotes))]
	_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "☕ Coffee Quote of the Moment",
		Description: fmt.Sprintf("*\"%s\"*\n\n— %s", q.text, q.author),
		Color:       command.EmbedColor,
		Timestamp:   command.NowTimestamp(),
	})
	return err
}

func runCaffeine(ctx *command.Context) error {
	if len(ctx.Args) > 0 {
		drink := strings.ToLower(strings.NewReplacer(" ", "", "_", "").Replace(ctx.Rest(0)))
		info, ok := caffeineTable[drink]
		if !ok {
			names := make([]string, 0, len(caffeineTable))
			for name := range caffeineTable {
				names = append(names, displayDrink(name))
			}
			sort.Strings(names)
			return command.Usagef("Unknown drink! Available options: `%s`", strings.Join(names, ", "))
		}

		_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
			Title:     "☕ Caffeine Content: " + title(drink),
			Color:     command.EmbedColor,
			Timestamp: command.NowTimestamp(),
			Fields: []*discordgo.MessageEmbedField{
				{Name: "⚡ Caffeine Amount", Value: info.amount, Inline: true},
				{Name: "🥤 Serving Size", Value: info.serving, Inline: true},
				{Name: "📝 Description", Value: info.description},
				{Name: "⚠️ Daily Limit", Value: "FDA recommends max 400mg caffeine per day for healthy adults"},
			},
		})
		return err
	}

	coffeeDrinks := []string{"espresso", "americano", "latte", "cappuccino", "drip", "coldbrew"}
	otherDrinks := []string{"tea", "greentea", "cola", "energydrink"}

	var coffeeLines, otherLines []string
	for _, d := range coffeeDrinks {
		info := caffeineTable[d]
		coffeeLines = append(coffeeLines, fmt.Sprintf("**%s**: %s per %s", displayDrink(d), info.amount, info.serving))
	}
	for _, d := range otherDrinks {
		info := caffeineTable[d]
		otherLines = append(otherLines, fmt.Sprintf("**%s**: %s per %s", displayDrink(d), info.amount, info.serving))
	}

	_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "⚡ Caffeine Content Guide",
		Description: "Approximate caffeine content in popular drinks",
		Color:       command.EmbedColor,
		Timestamp:   command.NowTimestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "☕ Coffee Drinks", Value: strings.Join(coffeeLines, "\n"), Inline: true},
			{Name: "🥤 Other Drinks", Value: strings.Join(otherLines, "\n"), Inline: true},
			{Name: "⚠️ Safety Note", Value: "FDA recommends max **400mg** caffeine per day for healthy adults"},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Use %scaffeine <drink> for detailed info", ctx.Prefix)},
	})
	return err
}

func displayDrink(key string) string {
	switch key {
	case "greentea":
		return "Green Tea"
	case "coldbrew":
		return "Cold Brew"
	case "energydrink":
		return "Energy Drink"
	case "drip":
		return "Drip Coffee"
	default:
		return title(key)
	}
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func runCoffeeShop(ctx *command.Context) error {
	type chain struct {
		name      string
		specialty string
		proTip    string
		rating    string
	}
	chains := []chain{
		{"Starbucks", "Frappuccinos & Seasonal Drinks", "Try the Pike Place Roast for classic coffee", "⭐⭐⭐⭐"},
		{"Dunkin'", "Iced Coffee & Donuts", "Their cold brew is surprisingly good", "⭐⭐⭐⭐"},
		{"Blue Bottle", "Single-Origin Pour Overs", "Perfect for coffee purists", "⭐⭐⭐⭐⭐"},
		{"Peet's Coffee", "Dark Roasts & Espresso", "Try their Major Dickason's Blend", "⭐⭐⭐⭐"},
		{"Local Roasters", "Fresh Roasted Beans", "Support local businesses!", "⭐⭐⭐⭐⭐"},
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(chains)+1)
	for _, c := range chains {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s %s", c.rating, c.name),
			Value: fmt.Sprintf("**Specialty**: %s\n**Pro Tip**: %s", c.specialty, c.proTip),
		})
	}
	fields = append(fields, &discordgo.MessageEmbedField{
		Name: "💡 General Tips",
		Value: "• Ask about single-origin options\n• Try pour-over for best flavor\n" +
			"• Don't be afraid to ask questions\n• Support local roasters when possible",
	})

	_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "☕ Coffee Shop Guide",
		Description: "Popular coffee chains and what makes them special",
		Color:       command.EmbedColor,
		Timestamp:   command.NowTimestamp(),
		Fields:      fields,
	})
	return err
}

func runCoffeeImage(ctx *command.Context) error {
	imageURL, err := ctx.Content.CoffeeImage(context.Background())
	if err != nil {
		return ctx.ReplyText("❌ Failed to fetch coffee image. The API might be down.")
	}
	_, err = ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:     "☕ Random Coffee Image",
		Color:     command.EmbedColor,
		Timestamp: command.NowTimestamp(),
		Image:     &discordgo.MessageEmbedImage{URL: imageURL},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Powered by Coffee API"},
	})
	return err
}
