package config

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/game"
)

// MaxNameLength bounds a player display name.
const MaxNameLength = 64

// PlayerConfig holds the default player names for new games.
type PlayerConfig struct {
	White string
	Black string
}

// NewPlayerConfig creates a PlayerConfig with the standard names.
func NewPlayerConfig() *PlayerConfig {
	return &PlayerConfig{
		White: game.DefaultWhiteName,
		Black: game.DefaultBlackName,
	}
}

// Validate checks that the names fit on a score sheet.
func (p *PlayerConfig) Validate() error {
	for _, name := range []string{p.White, p.Black} {
		if len(name) > MaxNameLength {
			return fmt.Errorf("player name longer than %d bytes: %w", MaxNameLength, errors.ErrInvalidConfig)
		}
	}
	return nil
}
