package hashing

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// zobristSeed fixes the key table so fingerprints are stable across runs.
const zobristSeed uint64 = 0x9E3779B97F4A7C15

var (
	pieceKeys   [2][6][64]uint64
	unmovedKeys [64]uint64
	enPassant   [8]uint64
	blackToMove uint64
)

func init() {
	state := zobristSeed
	for side := range pieceKeys {
		for kind := range pieceKeys[side] {
			for sq := range pieceKeys[side][kind] {
				pieceKeys[side][kind][sq] = splitmix64(&state)
			}
		}
	}
	for sq := range unmovedKeys {
		unmovedKeys[sq] = splitmix64(&state)
	}
	for col := range enPassant {
		enPassant[col] = splitmix64(&state)
	}
	blackToMove = splitmix64(&state)
}

// splitmix64 advances state and returns the next pseudo-random value.
func splitmix64(state *uint64) uint64 {
	*state += 0x9E3779B97F4A7C15
	z := *state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// squareIndex maps a square to 0..63.
func squareIndex(sq chess.Square) int {
	return int(sq.Rank-1)*chess.BoardSize + sq.Col.Index()
}

// GenerateZobristHash fingerprints a position: every piece, its unmoved
// marker, the side to move and a pending en passant column. Positions that
// allow different moves hash differently with high probability.
func GenerateZobristHash(side chess.Side, b *engine.Board) uint64 {
	var hash uint64
	for _, p := range b.Pieces() {
		i := squareIndex(p.Square())
		hash ^= pieceKeys[p.Side()][p.Kind()][i]
		if p.Unmoved() {
			hash ^= unmovedKeys[i]
		}
	}
	if pawn, ok := b.LastMoved().(*engine.Pawn); ok && pawn.Doubled() {
		hash ^= enPassant[pawn.Square().Col.Index()]
	}
	if side == chess.Black {
		hash ^= blackToMove
	}
	return hash
}

// WeakHash is a cheap order-independent checksum of piece placement, used as
// a second opinion when two fingerprints collide.
func WeakHash(b *engine.Board) uint32 {
	var sum uint32
	for _, p := range b.Pieces() {
		sum += uint32(p.Code()) * uint32(squareIndex(p.Square())+1)
	}
	return sum
}
