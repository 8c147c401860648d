// Package session holds short-lived interactive exchanges: paged help
// panels bound to their opener, and trivia races that wait a bounded time
// for the first correct answer.
package session

import "errors"

// State is the lifecycle of an interactive session. Transitions are one
// way: Active to Resolved or Active to Expired, never back.
type State int

const (
	Active State = iota
	Resolved
	Expired
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Resolved:
		return "resolved"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

var (
	// ErrNotOwner rejects interaction from anyone but the session opener.
	ErrNotOwner = errors.New("session belongs to another user")
	// ErrSessionEnded rejects interaction with a resolved or expired session.
	ErrSessionEnded = errors.New("session has ended")
)
