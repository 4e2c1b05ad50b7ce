package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// King moves one square in any direction. Castling is requested by moving
// the king onto the square of its own unmoved rook.
type King struct {
	pieceBase
	moved bool
}

func (k *King) Unmoved() bool { return !k.moved }

func (k *King) LegalTargets(b *Board) Grid {
	g := slide(b, k.sq, k.side, queenDirs, 1)
	for _, c := range castlings {
		if k.canCastle(b, c) {
			g.Set(chess.Square{Col: c.rookCol, Rank: k.sq.Rank}, chess.Move)
		}
	}
	return g
}

// Attacks never includes castling, so two kings can build threat maps
// without consulting each other.
func (k *King) Attacks(b *Board) Grid { return reach(b, k.sq, queenDirs, 1) }

func (k *King) ApplyMove(to chess.Square, b *Board) chess.MoveResult {
	res := k.LegalTargets(b).At(to)
	if res == chess.None {
		return chess.None
	}
	if rook, ok := b.pieceAt(to).(*Rook); ok && rook.side == k.side {
		return k.castle(rook)
	}
	k.sq = to
	k.moved = true
	return res
}

func (k *King) State() PieceState {
	st := k.pieceBase.State()
	st.Moved = k.moved
	return st
}

func (k *King) clone() Piece { c := *k; return &c }
