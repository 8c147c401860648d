// Package scanner watches non-command chatter for fixed keyword sets and
// occasionally reacts or replies. Sets are checked in priority order, the
// crisis vocabulary before ordinary coffee talk, and the first match wins.
package scanner

import (
	"log"
	"math/rand"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Set names which vocabulary matched.
type Set int

const (
	CrisisSet Set = iota
	CoffeeSet
)

type vocabulary struct {
	set     Set
	words   []string
	emoji   string
	reactN  int // react on a 1-in-reactN draw
	replyN  int // of those, also reply on a 1-in-replyN draw
	replies []string
}

// vocabularies in priority order; the first whose words match suppresses
// the rest.
var vocabularies = []vocabulary{
	{
		set: CrisisSet,
		words: []string{
			"suicide", "suicidal", "kill myself", "end my life",
			"self harm", "self-harm", "want to die", "don't want to live",
		},
		emoji:  "💙",
		reactN: 1,
		replyN: 1,
		replies: []string{
			"💙 Hey, I noticed you might be going through a tough time. You matter, and support is out there. " +
				"Try the crisis command for hotlines and resources, or reach out to someone you trust. " +
				"You don't have to face this alone.",
		},
	},
	{
		set: CoffeeSet,
		words: []string{
			"coffee", "café", "espresso", "latte", "cappuccino", "mocha", "brew",
		},
		emoji:  "☕",
		reactN: 20,
		replyN: 5,
		replies: []string{
			"☕ Did someone mention coffee? I'm all ears!",
			"☕ Mmm, coffee talk! My favorite topic!",
			"☕ Nothing beats a good cup of joe!",
			"☕ Coffee is the fuel of productivity!",
		},
	},
}

// Hit describes what the scanner decided to do for one message: always a
// reaction, sometimes a reply on top.
type Hit struct {
	Set   Set
	Emoji string
	Reply string // empty when the reply draw missed
}

// Scanner evaluates plain chatter. Roll and Pick are injectable so tests
// can pin the dice; Roll(n) reports a 1-in-n hit.
type Scanner struct {
	Roll func(n int) bool
	Pick func(n int) int
}

// New returns a scanner with live random draws.
func New() *Scanner {
	return &Scanner{
		Roll: func(n int) bool { return rand.Intn(n) == 0 },
		Pick: rand.Intn,
	}
}

// Evaluate inspects content and returns what to do, or nil for no action.
func (sc *Scanner) Evaluate(content string) *Hit {
	folded := strings.ToLower(content)

	for _, v := range vocabularies {
		if !matchesAny(folded, v.words) {
			continue
		}
		// First matching set wins even when its draws miss.
		if !sc.Roll(v.reactN) {
			return nil
		}
		hit := &Hit{Set: v.set, Emoji: v.emoji}
		if sc.Roll(v.replyN) {
			hit.Reply = v.replies[sc.Pick(len(v.replies))]
		}
		return hit
	}
	return nil
}

// Scan evaluates a live message and performs the chosen actions.
func (sc *Scanner) Scan(s *discordgo.Session, m *discordgo.MessageCreate) {
	hit := sc.Evaluate(m.Content)
	if hit == nil {
		return
	}
	if err := s.MessageReactionAdd(m.ChannelID, m.ID, hit.Emoji); err != nil {
		log.Println("[WARN] Failed to add scanner reaction:", err)
	}
	if hit.Reply == "" {
		return
	}
	if _, err := s.ChannelMessageSendReply(m.ChannelID, hit.Reply, m.Reference()); err != nil {
		log.Println("[WARN] Failed to send scanner reply:", err)
	}
}

func matchesAny(folded string, words []string) bool {
	for _, w := range words {
		if strings.Contains(folded, w) {
			return true
		}
	}
	return false
}
