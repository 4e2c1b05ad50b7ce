package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// Piece is one chess piece on a board. The set of implementations is closed:
// King, Queen, Rook, Bishop, Knight and Pawn.
type Piece interface {
	Kind() chess.PieceKind
	Side() chess.Side
	Square() chess.Square
	// Code is the display letter, upper case for White.
	Code() byte
	Name() string
	// Unmoved reports the marker carried by the position text: a king or rook
	// that has never moved, or a pawn that may still advance two squares.
	Unmoved() bool
	// LegalTargets marks each square the piece may move to, ignoring whether
	// the move leaves its own king in check.
	LegalTargets(b *Board) Grid
	// Attacks marks each square the piece threatens with Take.
	Attacks(b *Board) Grid
	// ApplyMove moves the piece if to is one of its targets. Captured pieces
	// are left on the board for the caller to remove.
	ApplyMove(to chess.Square, b *Board) chess.MoveResult
	// State returns a plain copy of the piece for persistence.
	State() PieceState

	clone() Piece
}

// PieceState is the serialisable form of a piece.
type PieceState struct {
	Kind      chess.PieceKind `json:"kind"`
	Side      chess.Side      `json:"side"`
	Square    chess.Square    `json:"square"`
	Moved     bool            `json:"moved,omitempty"`
	FirstMove bool            `json:"firstMove,omitempty"`
	Doubled   bool            `json:"doubled,omitempty"`
}

// NewPiece creates a piece. unmoved carries the position text marker: it
// clears the moved flag of a king or rook and grants a pawn its double step.
// A pawn standing on its starting rank always keeps the double step.
func NewPiece(kind chess.PieceKind, side chess.Side, sq chess.Square, unmoved bool) Piece {
	base := pieceBase{kind: kind, side: side, sq: sq}
	switch kind {
	case chess.King:
		return &King{pieceBase: base, moved: !unmoved}
	case chess.Queen:
		return &Queen{pieceBase: base}
	case chess.Rook:
		return &Rook{pieceBase: base, moved: !unmoved}
	case chess.Bishop:
		return &Bishop{pieceBase: base}
	case chess.Knight:
		return &Knight{pieceBase: base}
	default:
		return &Pawn{pieceBase: base, firstMove: unmoved || sq.Rank == chess.PawnRank(side)}
	}
}

// PieceFromState rebuilds a piece from its saved form.
func PieceFromState(st PieceState) Piece {
	base := pieceBase{kind: st.Kind, side: st.Side, sq: st.Square}
	switch st.Kind {
	case chess.King:
		return &King{pieceBase: base, moved: st.Moved}
	case chess.Queen:
		return &Queen{pieceBase: base}
	case chess.Rook:
		return &Rook{pieceBase: base, moved: st.Moved}
	case chess.Bishop:
		return &Bishop{pieceBase: base}
	case chess.Knight:
		return &Knight{pieceBase: base}
	default:
		return &Pawn{pieceBase: base, firstMove: st.FirstMove, doubled: st.Doubled}
	}
}

// pieceBase holds the fields every piece has.
type pieceBase struct {
	kind chess.PieceKind
	side chess.Side
	sq   chess.Square
}

func (p *pieceBase) Kind() chess.PieceKind { return p.kind }
func (p *pieceBase) Side() chess.Side      { return p.side }
func (p *pieceBase) Square() chess.Square  { return p.sq }
func (p *pieceBase) Code() byte            { return p.kind.Code(p.side) }

// Name returns e.g. "White queen".
func (p *pieceBase) Name() string { return p.side.String() + " " + p.kind.String() }

func (p *pieceBase) Unmoved() bool { return false }

func (p *pieceBase) State() PieceState {
	return PieceState{Kind: p.kind, Side: p.side, Square: p.sq}
}

// step moves the piece when grid allows to.
func (p *pieceBase) step(grid Grid, to chess.Square) chess.MoveResult {
	res := grid.At(to)
	if res != chess.None {
		p.sq = to
	}
	return res
}

// Queen moves any distance in straight or diagonal lines.
type Queen struct{ pieceBase }

func (q *Queen) LegalTargets(b *Board) Grid {
	return slide(b, q.sq, q.side, queenDirs, chess.BoardSize)
}

func (q *Queen) Attacks(b *Board) Grid { return reach(b, q.sq, queenDirs, chess.BoardSize) }

func (q *Queen) ApplyMove(to chess.Square, b *Board) chess.MoveResult {
	return q.step(q.LegalTargets(b), to)
}

func (q *Queen) clone() Piece { c := *q; return &c }

// Rook moves any distance in straight lines and takes part in castling.
type Rook struct {
	pieceBase
	moved bool
}

func (r *Rook) Unmoved() bool { return !r.moved }

func (r *Rook) LegalTargets(b *Board) Grid {
	return slide(b, r.sq, r.side, straightDirs, chess.BoardSize)
}

func (r *Rook) Attacks(b *Board) Grid { return reach(b, r.sq, straightDirs, chess.BoardSize) }

func (r *Rook) ApplyMove(to chess.Square, b *Board) chess.MoveResult {
	res := r.step(r.LegalTargets(b), to)
	if res != chess.None {
		r.moved = true
	}
	return res
}

func (r *Rook) State() PieceState {
	st := r.pieceBase.State()
	st.Moved = r.moved
	return st
}

func (r *Rook) clone() Piece { c := *r; return &c }

// Bishop moves any distance diagonally.
type Bishop struct{ pieceBase }

func (bp *Bishop) LegalTargets(b *Board) Grid {
	return slide(b, bp.sq, bp.side, diagonalDirs, chess.BoardSize)
}

func (bp *Bishop) Attacks(b *Board) Grid { return reach(b, bp.sq, diagonalDirs, chess.BoardSize) }

func (bp *Bishop) ApplyMove(to chess.Square, b *Board) chess.MoveResult {
	return bp.step(bp.LegalTargets(b), to)
}

func (bp *Bishop) clone() Piece { c := *bp; return &c }

// Knight jumps in an L shape.
type Knight struct{ pieceBase }

func (n *Knight) LegalTargets(b *Board) Grid { return slide(b, n.sq, n.side, knightJumps, 1) }

func (n *Knight) Attacks(b *Board) Grid { return reach(b, n.sq, knightJumps, 1) }

func (n *Knight) ApplyMove(to chess.Square, b *Board) chess.MoveResult {
	return n.step(n.LegalTargets(b), to)
}

func (n *Knight) clone() Piece { c := *n; return &c }

// ClonePiece returns an independent copy of p, or nil.
func ClonePiece(p Piece) Piece {
	if p == nil {
		return nil
	}
	return p.clone()
}
