package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// Grid marks every square of the board with a move result. It is indexed
// [rank-1][column index].
type Grid [chess.BoardSize][chess.BoardSize]chess.MoveResult

// At returns the marker for a square, None for off-board squares.
func (g Grid) At(sq chess.Square) chess.MoveResult {
	if !sq.Valid() {
		return chess.None
	}
	return g[sq.Rank-1][sq.Col.Index()]
}

// Set marks a square. Off-board squares are ignored.
func (g *Grid) Set(sq chess.Square, r chess.MoveResult) {
	if sq.Valid() {
		g[sq.Rank-1][sq.Col.Index()] = r
	}
}

// Targets lists the squares not marked None, rank by rank from A1.
func (g Grid) Targets() []chess.Square {
	var squares []chess.Square
	for r := 0; r < chess.BoardSize; r++ {
		for c := 0; c < chess.BoardSize; c++ {
			if g[r][c] != chess.None {
				squares = append(squares, chess.Square{Col: chess.FirstCol + chess.Col(c), Rank: chess.Rank(r + 1)})
			}
		}
	}
	return squares
}

// merge marks every Take of other in g.
func (g *Grid) merge(other *Grid) {
	for r := range other {
		for c, v := range other[r] {
			if v == chess.Take {
				g[r][c] = chess.Take
			}
		}
	}
}
