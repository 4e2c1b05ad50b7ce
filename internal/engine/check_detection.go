package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// IsInCheck returns true if the king of side stands on a square attacked by
// the other side. A board without that king is never in check.
func IsInCheck(b *Board, side chess.Side) bool {
	king := b.king(side)
	if king == nil {
		return false
	}
	return b.IsAttacked(king.Square(), side)
}

// EnemyIndexAt returns the index of a piece on sq that does not belong to
// side, or -1. Moving onto an own piece (castling) never captures.
func EnemyIndexAt(b *Board, sq chess.Square, side chess.Side) int {
	i := b.IndexAt(sq)
	if i < 0 || b.pieces[i].Side() == side {
		return -1
	}
	return i
}

// TryMove plays from-to on a copy of b, removing any captured piece, and
// reports the result and whether the mover's king is left safe. b is not
// modified.
func TryMove(b *Board, from, to chess.Square) (chess.MoveResult, bool) {
	p := b.pieceAt(from)
	if p == nil {
		return chess.None, false
	}
	side := p.Side()
	sim := b.Clone()
	victim := EnemyIndexAt(sim, to, side)
	res := sim.MovePiece(from, to)
	if res == chess.None {
		return chess.None, false
	}
	if victim >= 0 {
		sim.RemovePieceAt(victim)
	}
	return res, !IsInCheck(sim, side)
}

// SafeTargets returns the targets of the piece on from that do not leave its
// own king in check.
func SafeTargets(b *Board, from chess.Square) Grid {
	var safe Grid
	all := b.LegalTargets(from)
	for _, to := range all.Targets() {
		if _, ok := TryMove(b, from, to); ok {
			safe.Set(to, all.At(to))
		}
	}
	return safe
}

// HasLegalMove reports whether side has at least one move that does not
// leave its king in check.
func HasLegalMove(b *Board, side chess.Side) bool {
	for _, p := range b.pieces {
		if p.Side() != side {
			continue
		}
		targets := p.LegalTargets(b)
		for _, to := range targets.Targets() {
			if _, ok := TryMove(b, p.Square(), to); ok {
				return true
			}
		}
	}
	return false
}
