package config

import (
	"fmt"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// ServerConfig holds settings for the HTTP and WebSocket server.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080"
	Addr string

	// AllowOrigins is the CORS origin list, comma separated
	AllowOrigins string

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers
	ReadBufferSize  int
	WriteBufferSize int

	// MaxSessions caps concurrent games; 0 means unlimited
	MaxSessions int

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:            ":8080",
		AllowOrigins:    "*",
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Validate checks that the server configuration is usable.
func (s *ServerConfig) Validate() error {
	switch {
	case s.Addr == "":
		return fmt.Errorf("empty listen address: %w", errors.ErrInvalidConfig)
	case s.ReadBufferSize <= 0 || s.WriteBufferSize <= 0:
		return fmt.Errorf("websocket buffers (%d, %d) must be positive: %w",
			s.ReadBufferSize, s.WriteBufferSize, errors.ErrInvalidConfig)
	case s.MaxSessions < 0:
		return fmt.Errorf("max sessions (%d) is negative: %w", s.MaxSessions, errors.ErrInvalidConfig)
	case s.ShutdownTimeout < 0:
		return fmt.Errorf("shutdown timeout (%s) is negative: %w", s.ShutdownTimeout, errors.ErrInvalidConfig)
	}
	return nil
}
