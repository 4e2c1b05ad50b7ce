package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// direction is a column and rank step.
type direction struct{ dc, dr int }

var (
	straightDirs = []direction{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	diagonalDirs = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs    = append(append([]direction{}, straightDirs...), diagonalDirs...)
	knightJumps  = []direction{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
)

// slide walks up to steps squares along each direction from from. Empty
// squares are marked Move; the walk stops at the first occupied square,
// which is marked Take when it holds an enemy of side.
func slide(b *Board, from chess.Square, side chess.Side, dirs []direction, steps int) Grid {
	var g Grid
	for _, d := range dirs {
		sq := from
		for i := 0; i < steps; i++ {
			next, ok := sq.Offset(d.dc, d.dr)
			if !ok {
				break
			}
			sq = next
			occupant := b.pieceAt(sq)
			if occupant == nil {
				g.Set(sq, chess.Move)
				continue
			}
			if occupant.Side() != side {
				g.Set(sq, chess.Take)
			}
			break
		}
	}
	return g
}

// reach is slide for threat maps: every square a piece could capture on is
// marked Take, occupied or not, including the first blocker of either side.
func reach(b *Board, from chess.Square, dirs []direction, steps int) Grid {
	var g Grid
	for _, d := range dirs {
		sq := from
		for i := 0; i < steps; i++ {
			next, ok := sq.Offset(d.dc, d.dr)
			if !ok {
				break
			}
			sq = next
			g.Set(sq, chess.Take)
			if b.pieceAt(sq) != nil {
				break
			}
		}
	}
	return g
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns the sign of x: -1, 0, or 1.
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
