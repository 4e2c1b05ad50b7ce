package manager

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/hashing"
)

// View is a read-only picture of the current game for rendering.
type View struct {
	Pieces           []engine.PieceState `json:"pieces"`
	Active           chess.Side          `json:"active"`
	White            string              `json:"white"`
	Black            string              `json:"black"`
	WhiteScore       string              `json:"whiteScore"`
	BlackScore       string              `json:"blackScore"`
	Check            bool                `json:"check"`
	Checkmate        bool                `json:"checkmate"`
	PromotionPending bool                `json:"promotionPending"`
	Position         string              `json:"position"`
	FEN              string              `json:"fen"`
	Fingerprint      string              `json:"fingerprint"`
	CanUndo          bool                `json:"canUndo"`
	CanRedo          bool                `json:"canRedo"`
}

// View describes the current game.
func (m *Manager) View() View {
	g := m.game
	board := g.Board()
	pieces := board.Pieces()
	v := View{
		Pieces:           make([]engine.PieceState, len(pieces)),
		Active:           g.ActiveSide(),
		White:            g.PlayerName(chess.White),
		Black:            g.PlayerName(chess.Black),
		WhiteScore:       g.Score(chess.White),
		BlackScore:       g.Score(chess.Black),
		Check:            g.IsInCheck(g.ActiveSide()),
		Checkmate:        g.IsCheckmate(),
		PromotionPending: g.PromotionPending(),
		Position:         g.Position(),
		FEN:              g.FEN(),
		Fingerprint:      fmt.Sprintf("%016x", hashing.GenerateZobristHash(g.ActiveSide(), board)),
		CanUndo:          m.CanUndo(),
		CanRedo:          m.CanRedo(),
	}
	for i, p := range pieces {
		v.Pieces[i] = p.State()
	}
	return v
}
