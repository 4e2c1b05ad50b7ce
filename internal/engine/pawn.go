package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// Pawn advances one square, two from its starting rank, and captures
// diagonally. An en passant target is marked on the enemy pawn's own square.
type Pawn struct {
	pieceBase
	firstMove bool // may still advance two squares
	doubled   bool // advanced two squares on the last move
}

func (p *Pawn) Unmoved() bool { return p.firstMove }

// Doubled reports whether the pawn just advanced two squares.
func (p *Pawn) Doubled() bool { return p.doubled }

func (p *Pawn) LegalTargets(b *Board) Grid {
	var g Grid
	dir := chess.Forward(p.side)

	steps := 1
	if p.firstMove {
		steps = 2
	}
	sq := p.sq
	for i := 0; i < steps; i++ {
		next, ok := sq.Offset(0, dir)
		if !ok || b.pieceAt(next) != nil {
			break
		}
		g.Set(next, chess.Move)
		sq = next
	}

	for _, dc := range []int{-1, 1} {
		if diag, ok := p.sq.Offset(dc, dir); ok {
			if target := b.pieceAt(diag); target != nil && target.Side() != p.side {
				g.Set(diag, chess.Take)
			}
		}
		if beside, ok := p.sq.Offset(dc, 0); ok && p.canTakeEnPassant(b, beside) {
			g.Set(beside, chess.EnPassant)
		}
	}
	return g
}

// canTakeEnPassant reports whether the pawn on sq is an enemy pawn that
// advanced two squares on the very last move, with the square behind it free.
func (p *Pawn) canTakeEnPassant(b *Board, sq chess.Square) bool {
	victim, ok := b.pieceAt(sq).(*Pawn)
	if !ok || victim.side == p.side || !victim.doubled || b.lastMoved != Piece(victim) {
		return false
	}
	landing, ok := sq.Offset(0, chess.Forward(p.side))
	return ok && b.pieceAt(landing) == nil
}

// Attacks covers only the two forward diagonals.
func (p *Pawn) Attacks(b *Board) Grid {
	var g Grid
	for _, dc := range []int{-1, 1} {
		if diag, ok := p.sq.Offset(dc, chess.Forward(p.side)); ok {
			g.Set(diag, chess.Take)
		}
	}
	return g
}

// ApplyMove returns Promote instead of the plain result when the pawn
// reaches its last rank.
func (p *Pawn) ApplyMove(to chess.Square, b *Board) chess.MoveResult {
	res := p.LegalTargets(b).At(to)
	if res == chess.None {
		return chess.None
	}
	from := p.sq
	if res == chess.EnPassant {
		to, _ = to.Offset(0, chess.Forward(p.side))
	}
	p.sq = to
	p.firstMove = false
	p.doubled = abs(int(to.Rank)-int(from.Rank)) == 2
	if to.Rank == chess.PromotionRank(p.side) {
		return chess.Promote
	}
	return res
}

func (p *Pawn) State() PieceState {
	st := p.pieceBase.State()
	st.FirstMove = p.firstMove
	st.Doubled = p.doubled
	return st
}

func (p *Pawn) clone() Piece { c := *p; return &c }
