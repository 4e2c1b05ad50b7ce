// Package game runs a chess game: turn order, self-check prevention,
// captures, promotion and checkmate detection on top of the engine board.
package game

import (
	"go.uber.org/zap"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// Default player names used when a name is left blank.
const (
	DefaultWhiteName = "Player 1"
	DefaultBlackName = "Player 2"
)

// Game is one chess game between two named players.
type Game struct {
	board     *engine.Board
	active    chess.Side
	names     [2]string
	captured  [2][]engine.Piece
	promotion bool
	logger    *zap.Logger
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger that receives capture and move records.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New starts a game from the standard initial position.
func New(white, black string, opts ...Option) *Game {
	g, err := NewFromPosition(engine.InitialPosition, white, black, opts...)
	if err != nil {
		panic("initial position does not parse: " + err.Error())
	}
	return g
}

// NewFromPosition starts a game from position text.
func NewFromPosition(text, white, black string, opts ...Option) (*Game, error) {
	side, board, err := engine.ParsePosition(text)
	if err != nil {
		return nil, err
	}
	return newGame(board, side, white, black, opts), nil
}

// NewFromFEN starts a game from a FEN string.
func NewFromFEN(fen, white, black string, opts ...Option) (*Game, error) {
	side, board, err := engine.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return newGame(board, side, white, black, opts), nil
}

func newGame(board *engine.Board, side chess.Side, white, black string, opts []Option) *Game {
	g := &Game{
		board:  board,
		active: side,
		names:  [2]string{defaultName(white, DefaultWhiteName), defaultName(black, DefaultBlackName)},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func defaultName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

// ActiveSide returns the side to move.
func (g *Game) ActiveSide() chess.Side { return g.active }

// PlayerName returns the name of a side's player.
func (g *Game) PlayerName(side chess.Side) string { return g.names[side] }

// SetPlayerNames renames the players. Blank names fall back to the defaults.
func (g *Game) SetPlayerNames(white, black string) {
	g.names = [2]string{defaultName(white, DefaultWhiteName), defaultName(black, DefaultBlackName)}
}

// PieceAt returns a copy of the piece on sq, or nil.
func (g *Game) PieceAt(sq chess.Square) engine.Piece { return g.board.PieceAt(sq) }

// Pieces returns copies of every piece in board order.
func (g *Game) Pieces() []engine.Piece { return g.board.Pieces() }

// LegalTargets returns the raw target grid of the piece on sq. Targets that
// would leave the mover's king in check are included.
func (g *Game) LegalTargets(sq chess.Square) engine.Grid { return g.board.LegalTargets(sq) }

// SafeTargets returns the targets of the piece on sq that MovePiece would
// accept, or an empty grid when it is not that piece's turn.
func (g *Game) SafeTargets(sq chess.Square) engine.Grid {
	p := g.board.PieceAt(sq)
	if p == nil || p.Side() != g.active || g.promotion {
		return engine.Grid{}
	}
	return engine.SafeTargets(g.board, sq)
}

// Captured returns copies of the pieces side has taken, in capture order.
func (g *Game) Captured(side chess.Side) []engine.Piece {
	out := make([]engine.Piece, len(g.captured[side]))
	for i, p := range g.captured[side] {
		out[i] = engine.ClonePiece(p)
	}
	return out
}

// Score returns the codes of the pieces side has taken, e.g. "qp".
func (g *Game) Score(side chess.Side) string {
	codes := make([]byte, len(g.captured[side]))
	for i, p := range g.captured[side] {
		codes[i] = p.Code()
	}
	return string(codes)
}

// Position returns the position text of the game.
func (g *Game) Position() string { return engine.EncodePosition(g.active, g.board) }

// FEN returns the game as a FEN string.
func (g *Game) FEN() string { return engine.ToFEN(g.active, g.board) }

// Board returns an independent copy of the board.
func (g *Game) Board() *engine.Board { return g.board.Clone() }
