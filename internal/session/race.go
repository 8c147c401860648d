package session

import (
	"context"
	"strings"
	"sync"
	"time"
)

// RaceTimeout is how long a trivia race waits for the owner's answer.
const RaceTimeout = 30 * time.Second

// Outcome is what ended a race.
type Outcome int

const (
	// Answered means the owner picked an option in time.
	Answered Outcome = iota
	// TimedOut means the deadline passed with no qualifying answer.
	TimedOut
	// Cancelled means the surrounding context was cancelled first.
	Cancelled
)

// Race waits a bounded time for the session owner to pick one of a fixed
// set of tokens on a message. Tokens from other users, unknown tokens and
// late offers are dropped without effect. Exactly one of answer or timeout
// settles the race.
type Race struct {
	MessageID string
	OwnerID   string

	valid   map[string]string // folded token -> canonical token
	timeout time.Duration

	mu      sync.Mutex
	state   State
	answers chan string // first qualifying token, buffered
}

// NewRace starts a race on messageID owned by ownerID, accepting the given
// tokens matched case-insensitively.
func NewRace(messageID, ownerID string, tokens []string, timeout time.Duration) *Race {
	valid := make(map[string]string, len(tokens))
	for _, t := range tokens {
		valid[strings.ToLower(strings.TrimSpace(t))] = t
	}
	if timeout <= 0 {
		timeout = RaceTimeout
	}
	return &Race{
		MessageID: messageID,
		OwnerID:   ownerID,
		valid:     valid,
		timeout:   timeout,
		answers:   make(chan string, 1),
	}
}

// Offer submits userID's token. Only the owner's first valid token while
// the race is active counts. Offer never blocks the caller.
func (r *Race) Offer(userID, token string) {
	if userID != r.OwnerID {
		return
	}
	canonical, ok := r.valid[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return
	}
	r.mu.Lock()
	active := r.state == Active
	r.mu.Unlock()
	if !active {
		return
	}
	select {
	case r.answers <- canonical:
	default:
	}
}

// Wait blocks until the race settles and returns the outcome and, for
// Answered, the chosen token. It settles exactly once.
func (r *Race) Wait(ctx context.Context) (Outcome, string) {
	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case token := <-r.answers:
		r.settle(Resolved)
		return Answered, token
	case <-timer.C:
		r.settle(Expired)
		// An answer racing the deadline may already sit in the buffer;
		// the deadline firing first means it loses.
		return TimedOut, ""
	case <-ctx.Done():
		r.settle(Expired)
		return Cancelled, ""
	}
}

// State returns the current lifecycle state.
func (r *Race) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Race) settle(to State) {
	r.mu.Lock()
	if r.state == Active {
		r.state = to
	}
	r.mu.Unlock()
}
