package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// castling describes the king and rook destinations for one corner.
type castling struct {
	rookCol chess.Col
	kingTo  chess.Col
	rookTo  chess.Col
}

// The H corner finishes with the king on G and the rook on F; the A corner
// with the king on C and the rook on B.
var castlings = []castling{
	{rookCol: 'H', kingTo: 'G', rookTo: 'F'},
	{rookCol: 'A', kingTo: 'C', rookTo: 'B'},
}

// castlingFor returns the castling rule for a rook column.
func castlingFor(col chess.Col) (castling, bool) {
	for _, c := range castlings {
		if c.rookCol == col {
			return c, true
		}
	}
	return castling{}, false
}

// castlingRook returns the unmoved friendly rook in the corner of the king's
// rank, or nil.
func (k *King) castlingRook(b *Board, c castling) *Rook {
	rook, ok := b.pieceAt(chess.Square{Col: c.rookCol, Rank: k.sq.Rank}).(*Rook)
	if !ok || rook.side != k.side || rook.moved {
		return nil
	}
	return rook
}

// canCastle reports whether the king may castle towards corner c. Both
// pieces must be unmoved, the squares between them empty, and the king may
// not start in, pass through, or land on an attacked square.
func (k *King) canCastle(b *Board, c castling) bool {
	if k.moved {
		return false
	}
	rook := k.castlingRook(b, c)
	if rook == nil {
		return false
	}
	rank := k.sq.Rank

	step := sign(int(c.rookCol) - int(k.sq.Col))
	for col := int(k.sq.Col) + step; col != int(c.rookCol); col += step {
		if b.pieceAt(chess.Square{Col: chess.Col(col), Rank: rank}) != nil {
			return false
		}
	}
	for _, col := range []chess.Col{c.kingTo, c.rookTo} {
		occupant := b.pieceAt(chess.Square{Col: col, Rank: rank})
		if occupant != nil && occupant != Piece(k) && occupant != Piece(rook) {
			return false
		}
	}

	threats := b.OpponentThreatMap(k.side)
	if threats.At(k.sq) == chess.Take {
		return false
	}
	walk := sign(int(c.kingTo) - int(k.sq.Col))
	for col := int(k.sq.Col); col != int(c.kingTo); {
		col += walk
		if threats.At(chess.Square{Col: chess.Col(col), Rank: rank}) == chess.Take {
			return false
		}
	}
	return true
}

// castle relocates king and rook. The move has already been validated.
func (k *King) castle(rook *Rook) chess.MoveResult {
	c, _ := castlingFor(rook.sq.Col)
	rank := k.sq.Rank
	rook.sq = chess.Square{Col: c.rookTo, Rank: rank}
	rook.moved = true
	k.sq = chess.Square{Col: c.kingTo, Rank: rank}
	k.moved = true
	return chess.Move
}
