package manager

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/game"
	"github.com/lgbarn/chess-rules-go/internal/persist"
)

// maxPositionSize bounds an imported position text.
const maxPositionSize = 64 << 10

// Open replaces the current game with one saved by Save. On failure the
// current game is kept.
func (m *Manager) Open(r io.Reader) error {
	g, err := persist.LoadGame(r, m.gameOptions()...)
	if err != nil {
		return err
	}
	m.logger.Info("game opened")
	m.replace(g)
	return nil
}

// OpenFile is Open reading from a file.
func (m *Manager) OpenFile(path string) error {
	st, err := persist.LoadFile(path)
	if err != nil {
		return err
	}
	g, err := game.FromState(st, m.gameOptions()...)
	if err != nil {
		return fmt.Errorf("open %s: %v: %w", path, err, errors.ErrCorruptSave)
	}
	m.logger.Info("game opened", zap.String("path", path))
	m.replace(g)
	return nil
}

// Save writes the complete current game to w.
func (m *Manager) Save(w io.Writer) error {
	return persist.Save(w, m.game.State())
}

// SaveFile writes the current game to path, replacing it atomically.
func (m *Manager) SaveFile(path string) error {
	if err := persist.SaveFile(path, m.game.State()); err != nil {
		return err
	}
	m.logger.Info("game saved", zap.String("path", path))
	return nil
}

// ImportPosition replaces the current game with one set up from position
// text. On failure the current game is kept.
func (m *Manager) ImportPosition(r io.Reader, white, black string) error {
	data, err := io.ReadAll(io.LimitReader(r, maxPositionSize+1))
	if err != nil {
		return errors.Wrap(err, "read position")
	}
	if len(data) > maxPositionSize {
		return fmt.Errorf("position longer than %d bytes: %w", maxPositionSize, errors.ErrInvalidPosition)
	}
	text := strings.TrimSpace(string(data))
	g, err := game.NewFromPosition(text, white, black, m.gameOptions()...)
	if err != nil {
		return err
	}
	m.logger.Info("position imported", zap.String("position", text))
	m.replace(g)
	return nil
}

// ImportFEN replaces the current game with one set up from a FEN string.
// Only the placement, side to move, castling and en passant fields matter.
func (m *Manager) ImportFEN(fen, white, black string) error {
	g, err := game.NewFromFEN(strings.TrimSpace(fen), white, black, m.gameOptions()...)
	if err != nil {
		return err
	}
	m.logger.Info("FEN imported", zap.String("fen", fen))
	m.replace(g)
	return nil
}

// ImportFile is ImportPosition reading from a file.
func (m *Manager) ImportFile(path, white, black string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "import %s", path)
	}
	defer f.Close()
	return errors.Wrapf(m.ImportPosition(f, white, black), "import %s", path)
}

// ExportPosition writes the position text of the current game to w,
// followed by a newline.
func (m *Manager) ExportPosition(w io.Writer) error {
	_, err := io.WriteString(w, m.game.Position()+"\n")
	return err
}

// ExportFile writes the position text to path.
func (m *Manager) ExportFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "export %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)
	if err := m.ExportPosition(w); err != nil {
		return err
	}
	return w.Flush()
}
