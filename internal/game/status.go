package game

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// IsInCheck returns true if the king of side is attacked.
func (g *Game) IsInCheck(side chess.Side) bool {
	return engine.IsInCheck(g.board, side)
}

// HasLegalMove reports whether side has any move that keeps its king safe.
func (g *Game) HasLegalMove(side chess.Side) bool {
	return engine.HasLegalMove(g.board, side)
}

// IsCheckmate returns true if the active side is in check and no move of any
// of its pieces, king or otherwise, resolves the check.
func (g *Game) IsCheckmate() bool {
	return g.IsInCheck(g.active) && !g.HasLegalMove(g.active)
}
