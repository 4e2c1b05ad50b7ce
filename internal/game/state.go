package game

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// State is a complete, independent copy of a game. It shares nothing with
// the game it was taken from and serialises to JSON.
type State struct {
	Board     engine.BoardState      `json:"board"`
	Active    chess.Side             `json:"active"`
	Names     [2]string              `json:"names"`
	Captured  [2][]engine.PieceState `json:"captured"`
	Promotion bool                   `json:"promotionPending,omitempty"`
}

// State returns a snapshot of the game.
func (g *Game) State() State {
	st := State{
		Board:     g.board.State(),
		Active:    g.active,
		Names:     g.names,
		Promotion: g.promotion,
	}
	for side, pieces := range g.captured {
		st.Captured[side] = make([]engine.PieceState, len(pieces))
		for i, p := range pieces {
			st.Captured[side][i] = p.State()
		}
	}
	return st
}

// FromState rebuilds a game from a snapshot.
func FromState(st State, opts ...Option) (*Game, error) {
	if st.Active != chess.White && st.Active != chess.Black {
		return nil, fmt.Errorf("active side %d: %w", st.Active, errors.ErrInvalidPosition)
	}
	board, err := engine.BoardFromState(st.Board)
	if err != nil {
		return nil, err
	}
	g := newGame(board, st.Active, st.Names[chess.White], st.Names[chess.Black], opts)
	g.promotion = st.Promotion
	for side, pieces := range st.Captured {
		for _, ps := range pieces {
			g.captured[side] = append(g.captured[side], engine.PieceFromState(ps))
		}
	}
	return g, nil
}
