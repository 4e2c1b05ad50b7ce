// Package persist saves and loads complete games.
//
// A save file is a short magic header followed by a zstd frame holding the
// JSON encoding of a game.State. The format is private to this package;
// callers only rely on Save and Load round-tripping.
package persist

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/game"
)

// Magic identifies a save file and its format version.
const Magic = "CHESSAV1"

// maxStateSize bounds the decompressed state; a real game is a few KB.
const maxStateSize = 1 << 20

// Save writes st to w.
func Save(w io.Writer, st game.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return errors.Wrap(err, "encode state")
	}
	if _, err := io.WriteString(w, Magic); err != nil {
		return err
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Load reads a state written by Save. Any malformed input is reported as
// ErrCorruptSave.
func Load(r io.Reader) (game.State, error) {
	var st game.State
	br := bufio.NewReader(r)

	header := make([]byte, len(Magic))
	if _, err := io.ReadFull(br, header); err != nil || string(header) != Magic {
		return st, fmt.Errorf("missing header: %w", errors.ErrCorruptSave)
	}

	dec, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1), zstd.WithDecoderMaxMemory(maxStateSize))
	if err != nil {
		return st, fmt.Errorf("decompress: %v: %w", err, errors.ErrCorruptSave)
	}
	defer dec.Close()

	var buf bytes.Buffer
	n, err := buf.ReadFrom(io.LimitReader(dec, maxStateSize+1))
	if err != nil {
		return st, fmt.Errorf("decompress: %v: %w", err, errors.ErrCorruptSave)
	}
	if n > maxStateSize {
		return st, fmt.Errorf("state larger than %d bytes: %w", maxStateSize, errors.ErrCorruptSave)
	}
	if err := json.Unmarshal(buf.Bytes(), &st); err != nil {
		return st, fmt.Errorf("decode state: %v: %w", err, errors.ErrCorruptSave)
	}
	return st, nil
}

// LoadGame reads a saved state and rebuilds the game from it.
func LoadGame(r io.Reader, opts ...game.Option) (*game.Game, error) {
	st, err := Load(r)
	if err != nil {
		return nil, err
	}
	g, err := game.FromState(st, opts...)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, errors.ErrCorruptSave)
	}
	return g, nil
}

// SaveFile writes st to path. The file is replaced atomically: on failure
// any previous content of path is left untouched.
func SaveFile(path string, st game.State) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if err = Save(w, st); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	if err = w.Flush(); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	return os.Rename(tmp.Name(), path)
}

// LoadFile reads a state saved with SaveFile.
func LoadFile(path string) (game.State, error) {
	f, err := os.Open(path)
	if err != nil {
		return game.State{}, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	st, err := Load(f)
	if err != nil {
		return st, errors.Wrapf(err, "load %s", path)
	}
	return st, nil
}
