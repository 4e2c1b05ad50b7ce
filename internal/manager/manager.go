// Package manager is the command surface of a chess game: it owns the
// current game, its undo history and its subscribers, and publishes a
// notification for every change. A Manager is not safe for concurrent use;
// callers that share one serialise access themselves.
package manager

import (
	"go.uber.org/zap"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/events"
	"github.com/lgbarn/chess-rules-go/internal/game"
	"github.com/lgbarn/chess-rules-go/internal/history"
)

// Manager runs one game at a time.
type Manager struct {
	game    *game.Game
	history *history.History[game.State]
	bus     *events.Bus
	logger  *zap.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used by the manager and every game it runs.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithBus publishes notifications on bus instead of a private one.
func WithBus(bus *events.Bus) Option {
	return func(m *Manager) {
		if bus != nil {
			m.bus = bus
		}
	}
}

// New returns a manager holding a game in the initial position with
// default player names.
func New(opts ...Option) *Manager {
	m := &Manager{
		bus:    events.NewBus(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.game = game.New("", "", m.gameOptions()...)
	m.history = history.New[game.State](snapshotter{m})
	return m
}

func (m *Manager) gameOptions() []game.Option {
	return []game.Option{game.WithLogger(m.logger)}
}

// snapshotter exposes the current game to the undo history.
type snapshotter struct{ m *Manager }

func (s snapshotter) Save() game.State { return s.m.game.State() }

func (s snapshotter) Restore(st game.State) error {
	g, err := game.FromState(st, s.m.gameOptions()...)
	if err != nil {
		return err
	}
	s.m.game = g
	return nil
}

// Subscribe registers h for notifications of kind k. The returned function
// cancels the subscription.
func (m *Manager) Subscribe(k events.Kind, h events.Handler) func() {
	return m.bus.Subscribe(k, h)
}

// Bus returns the bus notifications are published on.
func (m *Manager) Bus() *events.Bus { return m.bus }

func (m *Manager) publish(kinds ...events.Kind) {
	for _, k := range kinds {
		m.bus.Publish(events.Event{Kind: k, Side: m.game.ActiveSide()})
	}
}

// replace installs a new game, clears the history and tells subscribers.
func (m *Manager) replace(g *game.Game) {
	m.game = g
	m.history.Reset()
	m.publish(events.GameChanged, events.PlayerChanged)
	m.publishOutcome()
}

// publishOutcome announces a pending promotion or a checkmate.
func (m *Manager) publishOutcome() {
	switch {
	case m.game.PromotionPending():
		m.publish(events.PromotionPending)
	case m.game.IsCheckmate():
		m.logger.Info("checkmate",
			zap.Stringer("loser", m.game.ActiveSide()),
			zap.String("player", m.game.PlayerName(m.game.ActiveSide())),
		)
		m.publish(events.Checkmate)
	}
}

// NewGame starts a game from the initial position. Blank names fall back to
// the defaults.
func (m *Manager) NewGame(white, black string) {
	g := game.New(white, black, m.gameOptions()...)
	m.logger.Info("new game",
		zap.String("white", g.PlayerName(chess.White)),
		zap.String("black", g.PlayerName(chess.Black)),
	)
	m.replace(g)
}

// SetPlayers renames the players of the current game without touching the
// position or the history.
func (m *Manager) SetPlayers(white, black string) {
	m.game.SetPlayerNames(white, black)
	m.publish(events.PlayerChanged)
}

// MovePiece plays a move for the side to move. The state before a
// successful move becomes undoable; a rejected move changes nothing.
func (m *Manager) MovePiece(from, to chess.Square) chess.MoveResult {
	before := m.game.State()
	res := m.game.MovePiece(from, to)
	if res == chess.None {
		m.publish(events.GameChanged)
		return res
	}
	m.history.CommitSnapshot(before)
	m.publish(events.GameChanged, events.PlayerChanged)
	m.publishOutcome()
	return res
}

// Promote replaces the pawn waiting on its last rank.
func (m *Manager) Promote(kind chess.PieceKind) error {
	if err := m.game.Promote(kind); err != nil {
		return err
	}
	m.publish(events.GameChanged)
	m.publishOutcome()
	return nil
}

// Undo restores the state before the last move. It reports false when there
// is nothing to undo.
func (m *Manager) Undo() bool {
	if !m.history.Undo() {
		return false
	}
	m.logger.Debug("undo")
	m.publish(events.GameChanged, events.PlayerChanged)
	m.publishOutcome()
	return true
}

// Redo reapplies the last undone move.
func (m *Manager) Redo() bool {
	if !m.history.Redo() {
		return false
	}
	m.logger.Debug("redo")
	m.publish(events.GameChanged, events.PlayerChanged)
	m.publishOutcome()
	return true
}

// CanUndo reports whether Undo would do anything.
func (m *Manager) CanUndo() bool { return m.history.CanUndo() }

// CanRedo reports whether Redo would do anything.
func (m *Manager) CanRedo() bool { return m.history.CanRedo() }

// ActiveSide returns the side to move.
func (m *Manager) ActiveSide() chess.Side { return m.game.ActiveSide() }

// PlayerName returns the name of a side's player.
func (m *Manager) PlayerName(side chess.Side) string { return m.game.PlayerName(side) }

// Score returns the codes of the pieces side has taken.
func (m *Manager) Score(side chess.Side) string { return m.game.Score(side) }

// Captured returns copies of the pieces side has taken.
func (m *Manager) Captured(side chess.Side) []engine.Piece { return m.game.Captured(side) }

// PieceAt returns a copy of the piece on sq, or nil.
func (m *Manager) PieceAt(sq chess.Square) engine.Piece { return m.game.PieceAt(sq) }

// LegalTargets returns the raw target grid of the piece on sq.
func (m *Manager) LegalTargets(sq chess.Square) engine.Grid { return m.game.LegalTargets(sq) }

// SafeTargets returns the targets MovePiece would accept for the piece on sq.
func (m *Manager) SafeTargets(sq chess.Square) engine.Grid { return m.game.SafeTargets(sq) }

// IsInCheck returns true if the king of side is attacked.
func (m *Manager) IsInCheck(side chess.Side) bool { return m.game.IsInCheck(side) }

// IsCheckmate returns true if the side to move is mated.
func (m *Manager) IsCheckmate() bool { return m.game.IsCheckmate() }

// PromotionPending reports whether Promote must be called before the next move.
func (m *Manager) PromotionPending() bool { return m.game.PromotionPending() }

// Position returns the position text of the current game.
func (m *Manager) Position() string { return m.game.Position() }

// FEN returns the current game as a FEN string.
func (m *Manager) FEN() string { return m.game.FEN() }

// Board returns an independent copy of the current board.
func (m *Manager) Board() *engine.Board { return m.game.Board() }

// State returns a snapshot of the current game.
func (m *Manager) State() game.State { return m.game.State() }
