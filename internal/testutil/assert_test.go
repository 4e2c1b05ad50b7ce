package testutil

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	chesserrors "github.com/lgbarn/chess-rules-go/internal/errors"
)

// recorder captures failures instead of failing the running test. Only
// Helper and Error are ever called by the assertions.
type recorder struct {
	testing.TB
	failures []string
}

func (r *recorder) Helper() {}

func (r *recorder) Error(args ...interface{}) {
	r.failures = append(r.failures, fmt.Sprint(args...))
}

func grid(marks map[string]chess.MoveResult) engine.Grid {
	var g engine.Grid
	for s, r := range marks {
		g.Set(Sq(s), r)
	}
	return g
}

func TestAssertions(t *testing.T) {
	wrapped := fmt.Errorf("token 3: %w", chesserrors.ErrInvalidPosition)

	tests := []struct {
		name   string
		assert func(tb testing.TB)
		fails  bool
		substr string
	}{
		{"equal", func(tb testing.TB) { AssertEqual(tb, []int{1, 2}, []int{1, 2}) }, false, ""},
		{"not equal", func(tb testing.TB) { AssertEqual(tb, "BLACK", "WHITE") }, true, "-want +got"},
		{"result", func(tb testing.TB) { AssertResult(tb, chess.Take, chess.Take) }, false, ""},
		{"wrong result", func(tb testing.TB) { AssertResult(tb, chess.None, chess.EnPassant) }, true, "move result = none, want enpassant"},
		{"targets", func(tb testing.TB) {
			AssertTargets(tb, grid(map[string]chess.MoveResult{"E3": chess.Move, "D3": chess.Take}),
				map[string]chess.MoveResult{"d3": chess.Take, "e3": chess.Move})
		}, false, ""},
		{"missing target", func(tb testing.TB) {
			AssertTargets(tb, grid(map[string]chess.MoveResult{"E3": chess.Move}),
				map[string]chess.MoveResult{"E3": chess.Move, "E4": chess.Move})
		}, true, "E4=move"},
		{"wrong marker", func(tb testing.TB) {
			AssertTargets(tb, grid(map[string]chess.MoveResult{"D5": chess.Take}),
				map[string]chess.MoveResult{"D5": chess.EnPassant})
		}, true, "D5=enpassant"},
		{"empty grid", func(tb testing.TB) { AssertTargets(tb, engine.Grid{}, nil) }, false, ""},
		{"no error", func(tb testing.TB) { AssertNoError(tb, nil) }, false, ""},
		{"unexpected error", func(tb testing.TB) { AssertNoError(tb, wrapped) }, true, "unexpected error"},
		{"error", func(tb testing.TB) { AssertError(tb, wrapped) }, false, ""},
		{"missing error", func(tb testing.TB) { AssertError(tb, nil) }, true, "expected error"},
		{"error is", func(tb testing.TB) { AssertErrorIs(tb, wrapped, chesserrors.ErrInvalidPosition) }, false, ""},
		{"error is not", func(tb testing.TB) { AssertErrorIs(tb, wrapped, chesserrors.ErrCorruptSave) }, true, "does not wrap"},
		{"contains", func(tb testing.TB) { AssertContains(tb, "WHITE,KE1*", "KE1") }, false, ""},
		{"does not contain", func(tb testing.TB) { AssertContains(tb, "WHITE,KE1*", "kE8") }, true, "does not contain"},
		{"true", func(tb testing.TB) { AssertTrue(tb, true) }, false, ""},
		{"false", func(tb testing.TB) { AssertFalse(tb, false) }, false, ""},
		{"not true", func(tb testing.TB) { AssertTrue(tb, false) }, true, "expected true"},
		{"not false", func(tb testing.TB) { AssertFalse(tb, true) }, true, "expected false"},
		{"nil", func(tb testing.TB) { AssertNil(tb, (*engine.Board)(nil)) }, false, ""},
		{"not nil", func(tb testing.TB) { AssertNil(tb, engine.NewBoard()) }, true, "expected nil"},
		{"non-nil", func(tb testing.TB) { AssertNotNil(tb, engine.NewBoard()) }, false, ""},
		{"nil slice", func(tb testing.TB) { AssertNotNil(tb, []engine.Piece(nil)) }, true, "non-nil"},
		{"message prefix", func(tb testing.TB) { AssertResult(tb, chess.None, chess.Move, "move %s", "E2-E4") }, true, "move E2-E4: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			tt.assert(rec)
			if got := len(rec.failures) > 0; got != tt.fails {
				t.Fatalf("failed = %v, want %v (%v)", got, tt.fails, rec.failures)
			}
			if tt.fails && !strings.Contains(rec.failures[0], tt.substr) {
				t.Errorf("failure %q does not mention %q", rec.failures[0], tt.substr)
			}
		})
	}
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"empty", nil, ""},
		{"plain", []interface{}{"after castling"}, "after castling"},
		{"format", []interface{}{"move %d of %s", 3, "fool's mate"}, "move 3 of fool's mate"},
		{"non-string", []interface{}{chess.Black}, "Black"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMessage(tt.args...); got != tt.want {
				t.Errorf("formatMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsNil(t *testing.T) {
	var piece engine.Piece
	var err error = (*chesserrors.PositionError)(nil)
	if !isNil(nil) || !isNil(piece) || !isNil(err) {
		t.Error("isNil() = false for a nil value")
	}
	if isNil(chess.None) || isNil(errors.New("x")) {
		t.Error("isNil() = true for a non-nil value")
	}
}
