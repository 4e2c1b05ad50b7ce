// Package testutil provides shared test utilities for the chess-rules-go project.
// These utilities reduce code duplication across test files and provide
// consistent test setup helpers.
package testutil

import (
	"strings"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/game"
)

// Sq parses a coordinate literal such as "E2". It panics on a malformed
// literal, which is a bug in the test itself.
func Sq(s string) chess.Square {
	return chess.MustSquare(s)
}

// ParseTestGame starts a game from position text, or returns nil if the
// text does not parse. Use this for tests where parse failure is an
// acceptable outcome.
func ParseTestGame(position string, opts ...game.Option) *game.Game {
	g, err := game.NewFromPosition(position, "", "", opts...)
	if err != nil {
		return nil
	}
	return g
}

// MustGame starts a game from position text.
// It calls t.Fatal if the position does not parse.
func MustGame(t *testing.T, position string, opts ...game.Option) *game.Game {
	t.Helper()
	g, err := game.NewFromPosition(position, "", "", opts...)
	if err != nil {
		t.Fatalf("failed to parse test position %q: %v", position, err)
	}
	return g
}

// MustPlay plays moves written as "E2-E4" and fails the test on the first
// malformed or rejected move. It returns the result of the last move.
func MustPlay(t *testing.T, g *game.Game, moves ...string) chess.MoveResult {
	t.Helper()
	res := chess.None
	for _, m := range moves {
		from, to, ok := strings.Cut(m, "-")
		if !ok {
			t.Fatalf("malformed test move %q, want FROM-TO", m)
		}
		res = g.MovePiece(Sq(from), Sq(to))
		if res == chess.None {
			t.Fatalf("move %s rejected in position %s", m, g.Position())
		}
	}
	return res
}
