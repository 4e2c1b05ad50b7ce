package hashing

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/engine"
)

var benchFENPositions = map[string]string{
	"Initial":   engine.InitialFEN,
	"Midgame":   "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 1",
	"Endgame":   "8/5k2/8/8/8/8/5K2/4R3 w - - 0 1",
	"EnPassant": "rnbqkbnr/pppp1ppp/8/4pP2/8/8/PPPPP1PP/RNBQKBNR w KQkq e6 0 1",
}

func BenchmarkGenerateZobristHash(b *testing.B) {
	for name, fen := range benchFENPositions {
		b.Run(name, func(b *testing.B) {
			side, board, _ := engine.ParseFEN(fen)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				GenerateZobristHash(side, board)
			}
		})
	}
}

func BenchmarkDuplicateDetector_CheckAndAdd(b *testing.B) {
	side, board, _ := engine.ParseFEN(benchFENPositions["Midgame"])
	sig := Sign(side, board, 8)
	dd := NewDuplicateDetector(false, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dd.CheckAndAdd(sig)
	}
}
