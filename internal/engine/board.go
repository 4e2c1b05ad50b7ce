// Package engine implements the chess board, its pieces and their movement
// rules.
package engine

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Board is an ordered collection of pieces. No two pieces share a square.
type Board struct {
	pieces    []Piece
	lastMoved Piece
}

// BoardState is the serialisable form of a board.
type BoardState struct {
	Pieces    []PieceState `json:"pieces"`
	LastMoved int          `json:"lastMoved"`
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Clone returns a deep copy; the last-moved piece is mapped to its copy.
func (b *Board) Clone() *Board {
	c := &Board{pieces: make([]Piece, len(b.pieces))}
	for i, p := range b.pieces {
		c.pieces[i] = p.clone()
		if p == b.lastMoved {
			c.lastMoved = c.pieces[i]
		}
	}
	return c
}

// State returns a serialisable copy of the board.
func (b *Board) State() BoardState {
	st := BoardState{Pieces: make([]PieceState, len(b.pieces)), LastMoved: b.LastMovedIndex()}
	for i, p := range b.pieces {
		st.Pieces[i] = p.State()
	}
	return st
}

// BoardFromState rebuilds a board, rejecting off-board or shared squares.
func BoardFromState(st BoardState) (*Board, error) {
	b := NewBoard()
	for i, ps := range st.Pieces {
		if !ps.Square.Valid() {
			return nil, fmt.Errorf("piece %d: %w", i, errors.ErrInvalidCoordinate)
		}
		if !b.AddPiece(PieceFromState(ps)) {
			return nil, fmt.Errorf("piece %d on occupied square %s: %w", i, ps.Square, errors.ErrInvalidPosition)
		}
	}
	if st.LastMoved >= 0 && st.LastMoved < len(b.pieces) {
		b.lastMoved = b.pieces[st.LastMoved]
	}
	return b, nil
}

// AddPiece appends a piece unless its square is already occupied.
func (b *Board) AddPiece(p Piece) bool {
	if p == nil || b.pieceAt(p.Square()) != nil {
		return false
	}
	b.pieces = append(b.pieces, p)
	return true
}

// RemovePieceAt removes and returns the piece at index i, or nil if i is
// out of range.
func (b *Board) RemovePieceAt(i int) Piece {
	if i < 0 || i >= len(b.pieces) {
		return nil
	}
	p := b.pieces[i]
	b.pieces = append(b.pieces[:i], b.pieces[i+1:]...)
	return p
}

// IndexAt returns the index of the piece on sq, or -1.
func (b *Board) IndexAt(sq chess.Square) int {
	for i, p := range b.pieces {
		if p.Square() == sq {
			return i
		}
	}
	return -1
}

// pieceAt returns the live piece on sq, or nil.
func (b *Board) pieceAt(sq chess.Square) Piece {
	if i := b.IndexAt(sq); i >= 0 {
		return b.pieces[i]
	}
	return nil
}

// PieceAt returns a copy of the piece on sq, or nil. Changing the copy does
// not affect the board.
func (b *Board) PieceAt(sq chess.Square) Piece {
	if p := b.pieceAt(sq); p != nil {
		return p.clone()
	}
	return nil
}

// Pieces returns copies of all pieces in board order.
func (b *Board) Pieces() []Piece {
	out := make([]Piece, len(b.pieces))
	for i, p := range b.pieces {
		out[i] = p.clone()
	}
	return out
}

// Len returns the number of pieces on the board.
func (b *Board) Len() int { return len(b.pieces) }

// king returns the live king of side, or nil.
func (b *Board) king(side chess.Side) Piece {
	for _, p := range b.pieces {
		if p.Kind() == chess.King && p.Side() == side {
			return p
		}
	}
	return nil
}

// King returns a copy of the king of side, or nil.
func (b *Board) King(side chess.Side) Piece {
	if k := b.king(side); k != nil {
		return k.clone()
	}
	return nil
}

// LastMoved returns a copy of the piece moved last, or nil.
func (b *Board) LastMoved() Piece {
	if b.lastMoved == nil {
		return nil
	}
	return b.lastMoved.clone()
}

// LastMovedIndex returns the index of the piece moved last, or -1 when none
// is on the board.
func (b *Board) LastMovedIndex() int {
	for i, p := range b.pieces {
		if p == b.lastMoved {
			return i
		}
	}
	return -1
}

// LegalTargets returns the target grid of the piece on sq.
func (b *Board) LegalTargets(sq chess.Square) Grid {
	if p := b.pieceAt(sq); p != nil {
		return p.LegalTargets(b)
	}
	return Grid{}
}

// MovePiece moves the piece on from to to. The move is checked against the
// piece's own rules only; a captured piece stays on the board.
func (b *Board) MovePiece(from, to chess.Square) chess.MoveResult {
	p := b.pieceAt(from)
	if p == nil || !to.Valid() {
		return chess.None
	}
	res := p.ApplyMove(to, b)
	if res == chess.None {
		return chess.None
	}
	b.lastMoved = p
	for _, other := range b.pieces {
		if pawn, ok := other.(*Pawn); ok && other != p {
			pawn.doubled = false
		}
	}
	return res
}

// OpponentThreatMap marks with Take every square attacked by the side
// opposing side.
func (b *Board) OpponentThreatMap(side chess.Side) Grid {
	var threats Grid
	for _, p := range b.pieces {
		if p.Side() == side {
			continue
		}
		attacks := p.Attacks(b)
		threats.merge(&attacks)
	}
	return threats
}

// IsAttacked reports whether sq is attacked by the opponents of side.
func (b *Board) IsAttacked(sq chess.Square, side chess.Side) bool {
	threats := b.OpponentThreatMap(side)
	return threats.At(sq) == chess.Take
}
