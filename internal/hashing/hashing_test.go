package hashing

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

func mustPosition(t testing.TB, text string) (chess.Side, *engine.Board) {
	t.Helper()
	side, b, err := engine.ParsePosition(text)
	if err != nil {
		t.Fatalf("ParsePosition(%q) error = %v", text, err)
	}
	return side, b
}

func TestZobristHashConsistency(t *testing.T) {
	side, b1 := mustPosition(t, engine.InitialPosition)
	_, b2 := mustPosition(t, engine.InitialPosition)

	if GenerateZobristHash(side, b1) != GenerateZobristHash(side, b2) {
		t.Error("Same position should produce same hash")
	}
	if GenerateZobristHash(side, b1) != GenerateZobristHash(side, b1.Clone()) {
		t.Error("Clone should produce same hash")
	}
}

func TestZobristHashDifferentPositions(t *testing.T) {
	positions := []string{
		"WHITE,KE1,kE8",
		"WHITE,KE1,kE8,PE2",
		"WHITE,KE1,kE8,PE3",
		"WHITE,KE1*,kE8",
		"WHITE,KE1,kE8,pE2",
		"WHITE,KD1,kE8",
	}
	seen := map[uint64]string{}
	for _, pos := range positions {
		side, b := mustPosition(t, pos)
		h := GenerateZobristHash(side, b)
		if other, ok := seen[h]; ok {
			t.Errorf("%q and %q hash to the same value", pos, other)
		}
		seen[h] = pos
	}
}

func TestZobristHashIgnoresPieceOrder(t *testing.T) {
	side, b1 := mustPosition(t, "WHITE,KE1,QD1,kE8")
	_, b2 := mustPosition(t, "WHITE,QD1,kE8,KE1")
	if GenerateZobristHash(side, b1) != GenerateZobristHash(side, b2) {
		t.Error("piece order should not affect the hash")
	}
	if WeakHash(b1) != WeakHash(b2) {
		t.Error("piece order should not affect the weak hash")
	}
}

func TestSideToMoveAffectsHash(t *testing.T) {
	_, b := mustPosition(t, engine.InitialPosition)
	if GenerateZobristHash(chess.White, b) == GenerateZobristHash(chess.Black, b) {
		t.Error("Side to move should affect hash")
	}
}

func TestEnPassantAffectsHash(t *testing.T) {
	_, b := mustPosition(t, "WHITE,KE1,PD2,kE8")
	b.MovePiece(chess.MustSquare("D2"), chess.MustSquare("D4"))
	_, same := mustPosition(t, "BLACK,KE1,PD4,kE8")
	if GenerateZobristHash(chess.Black, b) == GenerateZobristHash(chess.Black, same) {
		t.Error("a pending en passant capture should change the hash")
	}
}

func TestDuplicateDetector(t *testing.T) {
	dd := NewDuplicateDetector(false, 0)
	side, b := mustPosition(t, engine.InitialPosition)

	if dd.CheckAndAdd(Sign(side, b, 0)) {
		t.Error("First game should not be duplicate")
	}
	if !dd.CheckAndAdd(Sign(side, b, 4)) {
		t.Error("Second identical position should be duplicate")
	}
	if dd.DuplicateCount() != 1 {
		t.Errorf("DuplicateCount() = %d, want 1", dd.DuplicateCount())
	}
	if dd.UniqueCount() != 1 {
		t.Errorf("UniqueCount() = %d, want 1", dd.UniqueCount())
	}
}

func TestDuplicateDetectorExactMatch(t *testing.T) {
	dd := NewDuplicateDetector(true, 0)
	side, b := mustPosition(t, engine.InitialPosition)

	dd.CheckAndAdd(Sign(side, b, 0))
	if dd.CheckAndAdd(Sign(side, b, 4)) {
		t.Error("different move counts should not match in exact mode")
	}
	if !dd.CheckAndAdd(Sign(side, b, 4)) {
		t.Error("same move count should match in exact mode")
	}
}

func TestDuplicateDetectorCapacity(t *testing.T) {
	dd := NewDuplicateDetector(false, 1)
	side, b1 := mustPosition(t, "WHITE,KE1,kE8")
	_, b2 := mustPosition(t, "WHITE,KD1,kE8")

	dd.CheckAndAdd(Sign(side, b1, 0))
	if !dd.IsFull() {
		t.Fatal("IsFull() = false at capacity")
	}
	if dd.CheckAndAdd(Sign(side, b2, 0)) {
		t.Error("new position reported as duplicate")
	}
	if dd.CheckAndAdd(Sign(side, b2, 0)) {
		t.Error("position seen while full should not have been stored")
	}
	if !dd.CheckAndAdd(Sign(side, b1, 0)) {
		t.Error("stored position should still be detected when full")
	}
}

func TestDuplicateDetectorReset(t *testing.T) {
	dd := NewDuplicateDetector(false, 0)
	side, b := mustPosition(t, engine.InitialPosition)
	dd.CheckAndAdd(Sign(side, b, 0))
	dd.CheckAndAdd(Sign(side, b, 0))

	dd.Reset()

	if dd.DuplicateCount() != 0 || dd.UniqueCount() != 0 {
		t.Errorf("after Reset() counts = %d/%d, want 0/0", dd.DuplicateCount(), dd.UniqueCount())
	}
	if dd.CheckAndAdd(Sign(side, b, 0)) {
		t.Error("After reset, game should not be duplicate")
	}
}
