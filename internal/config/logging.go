package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error
	Level string

	// Development switches to the human readable console encoder
	Development bool

	// OutputPaths lists log sinks; defaults to stderr
	OutputPaths []string
}

// NewLogConfig creates a LogConfig logging info and above to stderr.
func NewLogConfig() *LogConfig {
	return &LogConfig{
		Level:       "info",
		OutputPaths: []string{"stderr"},
	}
}

// Validate checks that the level name is known.
func (l *LogConfig) Validate() error {
	if _, err := zapcore.ParseLevel(l.Level); err != nil {
		return fmt.Errorf("log level %q: %w", l.Level, errors.ErrInvalidConfig)
	}
	if len(l.OutputPaths) == 0 {
		return fmt.Errorf("no log output paths: %w", errors.ErrInvalidConfig)
	}
	return nil
}

// Build creates the logger described by the configuration.
func (l *LogConfig) Build() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", l.Level, errors.ErrInvalidConfig)
	}
	zc := zap.NewProductionConfig()
	if l.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = l.OutputPaths
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}
