package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// PromotionPending reports whether a pawn is waiting on its last rank for
// Promote.
func (g *Game) PromotionPending() bool { return g.promotion }

// Promote replaces the pawn that just reached its last rank with a piece of
// kind. The pawn must be the last piece moved and belong to the side that is
// not active.
func (g *Game) Promote(kind chess.PieceKind) error {
	if !chess.CanPromoteTo(kind) {
		return fmt.Errorf("promote to %s: %w", kind, errors.ErrInvalidPromotion)
	}
	i := g.board.LastMovedIndex()
	if i < 0 {
		return errors.ErrNoPromotionPending
	}
	pawn := g.board.LastMoved()
	if pawn.Kind() != chess.Pawn || pawn.Side() == g.active ||
		pawn.Square().Rank != chess.PromotionRank(pawn.Side()) {
		return errors.ErrNoPromotionPending
	}

	g.board.RemovePieceAt(i)
	g.board.AddPiece(engine.NewPiece(kind, pawn.Side(), pawn.Square(), false))
	g.promotion = false

	g.logger.Info("promotion",
		zap.Stringer("side", pawn.Side()),
		zap.Stringer("square", pawn.Square()),
		zap.Stringer("kind", kind),
	)
	return nil
}
