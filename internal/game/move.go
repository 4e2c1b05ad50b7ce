package game

import (
	"go.uber.org/zap"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// MovePiece plays a move for the active side and returns its result. None
// means the move was rejected and nothing changed: the origin is empty or
// holds an opposing piece, the piece cannot reach to, the move would leave
// the mover's king attacked, or a promotion is still pending.
//
// A Promote result flips the turn like any other move, but further moves are
// refused until Promote has been called.
func (g *Game) MovePiece(from, to chess.Square) chess.MoveResult {
	if g.promotion || !from.Valid() || !to.Valid() {
		return chess.None
	}
	p := g.board.PieceAt(from)
	if p == nil || p.Side() != g.active {
		return chess.None
	}
	if res, safe := engine.TryMove(g.board, from, to); res == chess.None || !safe {
		g.logger.Debug("move rejected",
			zap.Stringer("side", g.active),
			zap.Stringer("from", from),
			zap.Stringer("to", to),
		)
		return chess.None
	}

	victim := engine.EnemyIndexAt(g.board, to, g.active)
	res := g.board.MovePiece(from, to)
	if victim >= 0 {
		g.capture(g.board.RemovePieceAt(victim))
	}

	g.logger.Info("move",
		zap.Stringer("side", g.active),
		zap.String("piece", p.Name()),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Stringer("result", res),
	)

	g.active = g.active.Opposite()
	if res == chess.Promote {
		g.promotion = true
	}
	return res
}

// capture adds a taken piece to the active side's score.
func (g *Game) capture(taken engine.Piece) {
	if taken == nil {
		return
	}
	g.captured[g.active] = append(g.captured[g.active], taken)
	g.logger.Info(g.active.String()+" took "+string(taken.Code()),
		zap.Stringer("side", g.active),
		zap.String("piece", taken.Name()),
		zap.Stringer("square", taken.Square()),
	)
}

// Move is an origin and destination pair.
type Move struct {
	From chess.Square `json:"from"`
	To   chess.Square `json:"to"`
}

// LegalMoves lists every move the active side may play, piece by piece in
// board order.
func (g *Game) LegalMoves() []Move {
	if g.promotion {
		return nil
	}
	var moves []Move
	for _, p := range g.board.Pieces() {
		if p.Side() != g.active {
			continue
		}
		safe := engine.SafeTargets(g.board, p.Square())
		for _, to := range safe.Targets() {
			moves = append(moves, Move{From: p.Square(), To: to})
		}
	}
	return moves
}
