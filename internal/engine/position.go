package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// UnmovedMarker follows a piece token whose piece has not moved yet.
const UnmovedMarker = '*'

// InitialPosition is the standard starting layout in position text form.
const InitialPosition = "WHITE," +
	"RA1*,NB1,BC1,QD1,KE1*,BF1,NG1,RH1*," +
	"PA2*,PB2*,PC2*,PD2*,PE2*,PF2*,PG2*,PH2*," +
	"pA7*,pB7*,pC7*,pD7*,pE7*,pF7*,pG7*,pH7*," +
	"rA8*,nB8,bC8,qD8,kE8*,bF8,nG8,rH8*"

// ParsePosition reads position text: a side token, a ',' or ':' separator,
// then comma separated piece tokens such as "KE1*" or "pd7". Empty tokens
// are skipped.
func ParsePosition(text string) (chess.Side, *Board, error) {
	text = strings.TrimSpace(text)
	sep := strings.IndexAny(text, ",:")
	head, rest := text, ""
	if sep >= 0 {
		head, rest = text[:sep], text[sep+1:]
	}
	side, err := chess.ParseSide(head)
	if err != nil {
		return chess.White, nil, &errors.PositionError{Err: err, Index: 0, Token: head}
	}

	b := NewBoard()
	if rest == "" {
		return side, b, nil
	}
	for i, raw := range strings.Split(rest, ",") {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		p, err := ParsePiece(token)
		if err != nil {
			return chess.White, nil, &errors.PositionError{Err: err, Index: i + 1, Token: token}
		}
		if !b.AddPiece(p) {
			return chess.White, nil, &errors.PositionError{
				Err:   fmt.Errorf("square %s already occupied: %w", p.Square(), errors.ErrInvalidPosition),
				Index: i + 1,
				Token: token,
			}
		}
	}
	return side, b, nil
}

// ParsePiece reads a single piece token: a piece letter whose case gives the
// side, a column, a rank and an optional unmoved marker.
func ParsePiece(token string) (Piece, error) {
	unmoved := strings.HasSuffix(token, string(UnmovedMarker))
	body := strings.TrimSuffix(token, string(UnmovedMarker))
	if len(body) != 3 {
		return nil, fmt.Errorf("malformed piece %q: %w", token, errors.ErrInvalidPosition)
	}
	kind, ok := chess.ParsePieceKind(body[0])
	if !ok {
		return nil, fmt.Errorf("unknown piece letter %q: %w", body[0], errors.ErrInvalidPosition)
	}
	side := chess.White
	if body[0] >= 'a' && body[0] <= 'z' {
		side = chess.Black
	}
	sq, err := chess.ParseSquare(body[1:])
	if err != nil {
		return nil, err
	}
	return NewPiece(kind, side, sq, unmoved), nil
}

// EncodePiece writes the token for a piece. Only kings, rooks and pawns ever
// carry the unmoved marker.
func EncodePiece(p Piece) string {
	token := string(p.Code()) + p.Square().String()
	if p.Unmoved() {
		token += string(UnmovedMarker)
	}
	return token
}

// EncodePosition writes position text for a board in board order.
func EncodePosition(side chess.Side, b *Board) string {
	var sb strings.Builder
	sb.WriteString(side.Token())
	for _, p := range b.pieces {
		sb.WriteByte(',')
		sb.WriteString(EncodePiece(p))
	}
	return sb.String()
}
