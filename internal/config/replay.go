package config

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// ReplayConfig holds settings for batch replay of command scripts.
type ReplayConfig struct {
	// Workers is the number of scripts replayed at once; 0 uses every CPU
	Workers int

	// BufferSize is the depth of the work and result queues; 0 derives it
	// from Workers
	BufferSize int

	// StopOnError ends a script at its first failing command
	StopOnError bool

	// ReportDuplicates marks scripts whose final position was already
	// reached by an earlier script
	ReportDuplicates bool

	// ExactDuplicates also requires the same number of moves
	ExactDuplicates bool

	// MaxPositions caps the remembered final positions; 0 means unlimited
	MaxPositions int
}

// NewReplayConfig creates a ReplayConfig with default values.
func NewReplayConfig() *ReplayConfig {
	return &ReplayConfig{
		StopOnError:      true,
		ReportDuplicates: true,
	}
}

// Validate checks that the counts are not negative.
func (r *ReplayConfig) Validate() error {
	if r.Workers < 0 || r.BufferSize < 0 || r.MaxPositions < 0 {
		return fmt.Errorf("workers (%d), buffer (%d) and max positions (%d) must not be negative: %w",
			r.Workers, r.BufferSize, r.MaxPositions, errors.ErrInvalidConfig)
	}
	return nil
}
