package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors_Wrapping verifies wrapped sentinel errors can still be detected
func TestSentinelErrors_Wrapping(t *testing.T) {
	sentinels := []error{
		ErrInvalidCoordinate,
		ErrInvalidPosition,
		ErrInvalidFEN,
		ErrIllegalMove,
		ErrInvalidPromotion,
		ErrNoPromotionPending,
		ErrCorruptSave,
		ErrInvalidConfig,
		ErrUnknownSession,
		ErrSessionLimit,
		ErrScriptSyntax,
	}

	for _, sentinel := range sentinels {
		t.Run(sentinel.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", sentinel)
			if !errors.Is(wrapped, sentinel) {
				t.Errorf("errors.Is(wrapped, %v) = false, want true", sentinel)
			}
		})
	}
}

// TestPositionError_Error verifies the token context appears in the message
func TestPositionError_Error(t *testing.T) {
	err := &PositionError{Err: ErrInvalidPosition, Index: 3, Token: "XZ9"}

	msg := err.Error()
	for _, s := range []string{"token 3", "XZ9", "invalid position"} {
		if !containsIgnoreCase(msg, s) {
			t.Errorf("PositionError.Error() = %q, should contain %q", msg, s)
		}
	}
}

// TestPositionError_As verifies that errors.As works through further wrapping
func TestPositionError_As(t *testing.T) {
	wrapped := fmt.Errorf("import failed: %w", &PositionError{Err: ErrInvalidCoordinate, Index: 2, Token: "KI1"})

	var posErr *PositionError
	if !errors.As(wrapped, &posErr) {
		t.Fatal("errors.As() could not extract PositionError")
	}
	if posErr.Index != 2 {
		t.Errorf("posErr.Index = %d, want 2", posErr.Index)
	}
	if !errors.Is(wrapped, ErrInvalidCoordinate) {
		t.Error("errors.Is(wrapped, ErrInvalidCoordinate) = false, want true")
	}
}

// TestCommandError_Error verifies the error message format
func TestCommandError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *CommandError
		contains []string
	}{
		{
			name: "full context",
			err: &CommandError{
				Err:     ErrScriptSyntax,
				Script:  "castle.txt",
				Line:    7,
				Command: "move E1",
			},
			contains: []string{"castle.txt:7", "move E1", "script syntax error"},
		},
		{
			name:     "line only",
			err:      &CommandError{Err: ErrIllegalMove, Line: 3},
			contains: []string{"line 3", "illegal move"},
		},
		{
			name:     "no context",
			err:      &CommandError{Err: ErrIllegalMove},
			contains: []string{"illegal move"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsIgnoreCase(msg, s) {
					t.Errorf("CommandError.Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

// TestCommandError_Unwrap verifies that CommandError properly implements Unwrap
func TestCommandError_Unwrap(t *testing.T) {
	cmdErr := &CommandError{Err: ErrInvalidPromotion, Script: "promo.txt"}

	if !errors.Is(errors.Unwrap(cmdErr), ErrInvalidPromotion) {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(cmdErr), ErrInvalidPromotion)
	}
	if !errors.Is(cmdErr, ErrInvalidPromotion) {
		t.Error("errors.Is(cmdErr, ErrInvalidPromotion) = false, want true")
	}
}

// TestWrap verifies the Wrap helper function
func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrCorruptSave, "opening game.sav")

	if !errors.Is(wrapped, ErrCorruptSave) {
		t.Error("Wrap should preserve the underlying error")
	}
	if !containsIgnoreCase(wrapped.Error(), "opening game.sav") {
		t.Errorf("Wrap should include context, got %q", wrapped.Error())
	}
	if Wrap(nil, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

// TestWrapf verifies the Wrapf helper function
func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrIllegalMove, "move %d in script %s", 15, "mate.txt")

	if !errors.Is(wrapped, ErrIllegalMove) {
		t.Error("Wrapf should preserve the underlying error")
	}
	if !containsIgnoreCase(wrapped.Error(), "move 15") {
		t.Errorf("Wrapf should include formatted context, got %q", wrapped.Error())
	}
}

// containsIgnoreCase checks if s contains substr (case-insensitive).
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
