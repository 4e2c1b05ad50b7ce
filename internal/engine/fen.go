package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ToFEN converts a board and the side to move to a FEN string. Move clocks
// are not tracked and are always written as "0 1".
func ToFEN(side chess.Side, b *Board) string {
	var sb strings.Builder

	writePiecePositions(&sb, b)
	sb.WriteByte(' ')
	if side == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	writeCastlingRights(&sb, b)
	sb.WriteByte(' ')
	writeEnPassant(&sb, b)
	sb.WriteString(" 0 1")

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, b *Board) {
	for rank := chess.LastRank; rank >= chess.FirstRank; rank-- {
		emptyCount := 0
		for col := chess.FirstCol; col <= chess.LastCol; col++ {
			p := b.pieceAt(chess.Square{Col: col, Rank: rank})
			if p == nil {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(p.Code())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > chess.FirstRank {
			sb.WriteByte('/')
		}
	}
}

// writeCastlingRights derives castling availability from the unmoved kings
// and rooks on their home ranks.
func writeCastlingRights(sb *strings.Builder, b *Board) {
	hasCastling := false
	for _, side := range []chess.Side{chess.White, chess.Black} {
		king, ok := b.king(side).(*King)
		if !ok || king.moved || king.sq.Rank != chess.HomeRank(side) {
			continue
		}
		for _, c := range castlings {
			if king.castlingRook(b, c) == nil {
				continue
			}
			letter := chess.King.Code(side)
			if c.rookCol == 'A' {
				letter = chess.Queen.Code(side)
			}
			sb.WriteByte(letter)
			hasCastling = true
		}
	}
	if !hasCastling {
		sb.WriteByte('-')
	}
}

// writeEnPassant writes the square behind a pawn that just advanced two.
func writeEnPassant(sb *strings.Builder, b *Board) {
	if pawn, ok := b.lastMoved.(*Pawn); ok && pawn.doubled {
		if behind, ok := pawn.sq.Offset(0, -chess.Forward(pawn.side)); ok {
			sb.WriteString(strings.ToLower(behind.String()))
			return
		}
	}
	sb.WriteByte('-')
}

// ParseFEN creates a board from a FEN string. Castling rights mark the
// matching king and rook unmoved; an en passant square marks the pawn in
// front of it as having just advanced two squares.
func ParseFEN(fen string) (chess.Side, *Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return chess.White, nil, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	b := NewBoard()
	if err := parsePiecePositions(b, parts[0]); err != nil {
		return chess.White, nil, err
	}

	side := chess.White
	if len(parts) > 1 {
		switch parts[1] {
		case "w":
		case "b":
			side = chess.Black
		default:
			return chess.White, nil, fmt.Errorf("invalid side to move %q: %w", parts[1], errors.ErrInvalidFEN)
		}
	}
	if len(parts) > 2 {
		parseCastlingRights(b, parts[2])
	}
	if len(parts) > 3 {
		if err := parseEnPassant(b, parts[3], side); err != nil {
			return chess.White, nil, err
		}
	}
	return side, b, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(b *Board, positions string) error {
	rank := chess.LastRank
	col := chess.FirstCol

	for _, c := range positions {
		switch {
		case c == '/':
			rank--
			col = chess.FirstCol
		case c >= '1' && c <= '8':
			col += chess.Col(c - '0')
		default:
			kind, ok := chess.ParsePieceKind(byte(c))
			if !ok {
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}
			sq := chess.Square{Col: col, Rank: rank}
			if !sq.Valid() {
				return fmt.Errorf("position out of bounds: %w", errors.ErrInvalidFEN)
			}
			side := chess.White
			if c >= 'a' && c <= 'z' {
				side = chess.Black
			}
			// Kings and rooks start as moved; castling rights clear the flag.
			b.AddPiece(NewPiece(kind, side, sq, false))
			col++
		}
	}
	return nil
}

// parseCastlingRights marks the kings and corner rooks named by the field.
func parseCastlingRights(b *Board, field string) {
	for _, c := range field {
		side := chess.White
		if c >= 'a' && c <= 'z' {
			side = chess.Black
		}
		rank := chess.HomeRank(side)
		var rookCol chess.Col
		switch c {
		case 'K', 'k':
			rookCol = 'H'
		case 'Q', 'q':
			rookCol = 'A'
		default:
			continue
		}
		king, ok := b.king(side).(*King)
		if !ok || king.sq.Rank != rank {
			continue
		}
		if rook, ok := b.pieceAt(chess.Square{Col: rookCol, Rank: rank}).(*Rook); ok && rook.side == side {
			king.moved = false
			rook.moved = false
		}
	}
}

// parseEnPassant marks the pawn that can be taken en passant.
func parseEnPassant(b *Board, field string, side chess.Side) error {
	if field == "-" {
		return nil
	}
	target, err := chess.ParseSquare(field)
	if err != nil {
		return fmt.Errorf("invalid en passant square %q: %w", field, errors.ErrInvalidFEN)
	}
	victimSq, ok := target.Offset(0, -chess.Forward(side))
	if !ok {
		return fmt.Errorf("invalid en passant square %q: %w", field, errors.ErrInvalidFEN)
	}
	if pawn, ok := b.pieceAt(victimSq).(*Pawn); ok && pawn.side != side {
		pawn.doubled = true
		b.lastMoved = pawn
	}
	return nil
}
