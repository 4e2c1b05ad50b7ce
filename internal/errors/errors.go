// Package errors provides sentinel errors and error types for the chess rules engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidCoordinate indicates a column outside A-H or a row outside 1-8.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrInvalidPosition indicates a malformed position text.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidPromotion indicates a promotion to a kind a pawn cannot become.
	ErrInvalidPromotion = errors.New("invalid promotion piece")

	// ErrNoPromotionPending indicates a promotion request with no pawn waiting.
	ErrNoPromotionPending = errors.New("no promotion pending")

	// ErrCorruptSave indicates an unreadable or inconsistent saved game.
	ErrCorruptSave = errors.New("corrupt saved game")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownSession indicates a request for a game session that does not exist.
	ErrUnknownSession = errors.New("unknown game session")

	// ErrSessionLimit indicates the server already runs its maximum number of games.
	ErrSessionLimit = errors.New("game session limit reached")

	// ErrScriptSyntax indicates a malformed replay script line.
	ErrScriptSyntax = errors.New("script syntax error")
)

// PositionError reports a position text that could not be decoded, with the
// offending token. It implements the error interface and supports unwrapping
// via errors.Is() and errors.As().
type PositionError struct {
	Err   error  // The underlying error
	Index int    // 0-based token index (0 is the side token)
	Token string // The token text
}

// Error returns a formatted error message including the token context.
func (e *PositionError) Error() string {
	context := fmt.Sprintf("token %d %q", e.Index, e.Token)
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error.
func (e *PositionError) Unwrap() error {
	return e.Err
}

// CommandError wraps errors with replay context, including the script name,
// line number and command text.
type CommandError struct {
	Err     error  // The underlying error
	Script  string // Script name (if known)
	Line    int    // 1-based line number (0 if not applicable)
	Command string // The command text that failed (if applicable)
}

// Error returns a formatted error message including all available context.
func (e *CommandError) Error() string {
	var parts []string

	if e.Script != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.Script, e.Line))
		} else {
			parts = append(parts, e.Script)
		}
	} else if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d", e.Line))
	}

	if e.Command != "" {
		parts = append(parts, fmt.Sprintf("command %q", e.Command))
	}

	context := strings.Join(parts, ", ")
	switch {
	case e.Err == nil:
		return context
	case context == "":
		return e.Err.Error()
	default:
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the CommandError wrapper.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
