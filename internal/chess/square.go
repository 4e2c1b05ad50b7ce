package chess

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Rank represents a board row, 1 to 8.
type Rank int

// Col represents a board column, 'A' to 'H'.
type Col byte

// Constants for board dimensions and coordinates.
const (
	BoardSize = 8

	FirstRank Rank = 1
	LastRank  Rank = BoardSize
	FirstCol  Col  = 'A'
	LastCol   Col  = FirstCol + BoardSize - 1
)

// Valid reports whether the rank is on the board.
func (r Rank) Valid() bool { return r >= FirstRank && r <= LastRank }

// Valid reports whether the column is on the board.
func (c Col) Valid() bool { return c >= FirstCol && c <= LastCol }

// Index returns the zero-based column index.
func (c Col) Index() int { return int(c - FirstCol) }

// Square is a board coordinate.
type Square struct {
	Col  Col
	Rank Rank
}

// NewSquare builds a square, accepting lower-case columns.
func NewSquare(col byte, rank int) (Square, error) {
	sq := Square{Col: Col(upper(col)), Rank: Rank(rank)}
	if !sq.Valid() {
		return Square{}, fmt.Errorf("%c%d: %w", col, rank, errors.ErrInvalidCoordinate)
	}
	return sq, nil
}

// MustSquare is NewSquare for literals known to be valid.
func MustSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

// ParseSquare parses a two character coordinate such as "E2" or "e2".
func ParseSquare(s string) (Square, error) {
	s = strings.TrimSpace(s)
	if len(s) != 2 || s[1] < '1' || s[1] > '8' {
		return Square{}, fmt.Errorf("%q: %w", s, errors.ErrInvalidCoordinate)
	}
	return NewSquare(s[0], int(s[1]-'0'))
}

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool {
	return s.Col.Valid() && s.Rank.Valid()
}

// Offset returns the square dc columns and dr ranks away, and false if it
// falls off the board.
func (s Square) Offset(dc, dr int) (Square, bool) {
	n := Square{Col: Col(int(s.Col) + dc), Rank: Rank(int(s.Rank) + dr)}
	return n, n.Valid()
}

// String returns the coordinate as column letter and rank digit.
func (s Square) String() string {
	return fmt.Sprintf("%c%d", s.Col, s.Rank)
}

// upper converts an ASCII letter to upper case.
func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// MarshalText encodes the square as its coordinate string.
func (s Square) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a coordinate string.
func (s *Square) UnmarshalText(text []byte) error {
	sq, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*s = sq
	return nil
}
