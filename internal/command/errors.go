package command

import "fmt"

// UsageError marks malformed arguments. The dispatcher answers with a
// corrective notice and keeps running; it never escapes the handler
// boundary.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// Usagef builds a UsageError.
func Usagef(format string, args ...interface{}) *UsageError {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// PermissionError marks a denied action: the invoker or the bot lacks a
// platform permission, or a role-hierarchy rule blocks the target. No state
// is mutated when it is returned.
type PermissionError struct {
	Msg string
}

func (e *PermissionError) Error() string { return e.Msg }

// Deniedf builds a PermissionError.
func Deniedf(format string, args ...interface{}) *PermissionError {
	return &PermissionError{Msg: fmt.Sprintf(format, args...)}
}

// DuplicateCommandError is returned by Registry.Register when a name or
// alias collides with an already registered token.
type DuplicateCommandError struct {
	Token string
}

func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("command token %q is already registered", e.Token)
}
