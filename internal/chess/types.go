// Package chess provides the value types shared by the rules engine.
package chess

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Side represents one of the two competing players.
type Side int

const (
	White Side = iota // First side, moves up the board
	Black             // Second side, moves down the board
)

// String returns the string representation of a side.
func (s Side) String() string {
	if s == Black {
		return "Black"
	}
	return "White"
}

// Token returns the upper-case token used by the position text format.
func (s Side) Token() string {
	return strings.ToUpper(s.String())
}

// Opposite returns the opposite side.
func (s Side) Opposite() Side {
	if s == White {
		return Black
	}
	return White
}

// ParseSide converts a side token to a Side. WHITE/FIRST and BLACK/SECOND
// are accepted in any case.
func ParseSide(token string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "WHITE", "FIRST":
		return White, nil
	case "BLACK", "SECOND":
		return Black, nil
	}
	return White, fmt.Errorf("unknown side %q: %w", token, errors.ErrInvalidPosition)
}

// Forward returns +1 for White, -1 for Black (pawn direction).
func Forward(side Side) int {
	if side == White {
		return 1
	}
	return -1
}

// HomeRank returns the back rank of a side.
func HomeRank(side Side) Rank {
	if side == White {
		return FirstRank
	}
	return LastRank
}

// PawnRank returns the rank a side's pawns start on.
func PawnRank(side Side) Rank {
	if side == White {
		return FirstRank + 1
	}
	return LastRank - 1
}

// PromotionRank returns the farthest rank for a side's pawns.
func PromotionRank(side Side) Rank {
	return HomeRank(side.Opposite())
}

// PieceKind represents the type of a chess piece.
type PieceKind int

const (
	King PieceKind = iota
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// AllKinds lists every piece kind in declaration order.
var AllKinds = []PieceKind{King, Queen, Rook, Bishop, Knight, Pawn}

// String returns the lower-case name of a piece kind.
func (k PieceKind) String() string {
	names := []string{"king", "queen", "rook", "bishop", "knight", "pawn"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// Letter returns the upper-case letter of a piece kind.
func (k PieceKind) Letter() byte {
	letters := []byte{'K', 'Q', 'R', 'B', 'N', 'P'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// Code returns the display code of a piece: upper case for White, lower
// case for Black.
func (k PieceKind) Code(side Side) byte {
	letter := k.Letter()
	if side == Black {
		return letter + ('a' - 'A')
	}
	return letter
}

// ParsePieceKind converts a piece letter (either case) to a PieceKind.
func ParsePieceKind(c byte) (PieceKind, bool) {
	switch c {
	case 'K', 'k':
		return King, true
	case 'Q', 'q':
		return Queen, true
	case 'R', 'r':
		return Rook, true
	case 'B', 'b':
		return Bishop, true
	case 'N', 'n':
		return Knight, true
	case 'P', 'p':
		return Pawn, true
	}
	return King, false
}

// ParsePieceName accepts either a single letter or a full piece name
// ("Queen", "q", "knight").
func ParsePieceName(s string) (PieceKind, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		return ParsePieceKind(s[0])
	}
	for _, k := range AllKinds {
		if strings.EqualFold(s, k.String()) {
			return k, true
		}
	}
	return King, false
}

// CanPromoteTo reports whether a pawn may be replaced by a piece of kind k.
func CanPromoteTo(k PieceKind) bool {
	switch k {
	case Queen, Rook, Bishop, Knight:
		return true
	default:
		return false
	}
}

// MoveResult classifies the outcome of a move request, and doubles as the
// per-square marker of a target grid.
type MoveResult int

const (
	None MoveResult = iota
	Move
	Take
	EnPassant
	Promote
)

// String returns the lower-case name of a move result.
func (r MoveResult) String() string {
	switch r {
	case Move:
		return "move"
	case Take:
		return "take"
	case EnPassant:
		return "enpassant"
	case Promote:
		return "promote"
	default:
		return "none"
	}
}

// ParseMoveResult converts a name produced by String back to a MoveResult.
func ParseMoveResult(s string) (MoveResult, bool) {
	for r := None; r <= Promote; r++ {
		if strings.EqualFold(s, r.String()) {
			return r, true
		}
	}
	return None, false
}

// MarshalText encodes the side as its position token.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.Token()), nil
}

// UnmarshalText decodes a side token.
func (s *Side) UnmarshalText(text []byte) error {
	side, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = side
	return nil
}

// MarshalText encodes the kind as its letter.
func (k PieceKind) MarshalText() ([]byte, error) {
	return []byte{k.Letter()}, nil
}

// UnmarshalText decodes a piece letter or name.
func (k *PieceKind) UnmarshalText(text []byte) error {
	kind, ok := ParsePieceName(string(text))
	if !ok {
		return fmt.Errorf("unknown piece %q: %w", text, errors.ErrInvalidPosition)
	}
	*k = kind
	return nil
}
