// Package config provides configuration for the chess-rules-go binaries.
package config

import "fmt"

// Config holds all program configuration. Each concern lives in its own
// sub-config with its own defaults and validation.
type Config struct {
	Players *PlayerConfig
	Server  *ServerConfig
	Log     *LogConfig
	Replay  *ReplayConfig
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Players: NewPlayerConfig(),
		Server:  NewServerConfig(),
		Log:     NewLogConfig(),
		Replay:  NewReplayConfig(),
	}
}

// Validate checks every sub-config and returns the first problem found.
func (c *Config) Validate() error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"players", c.Players.Validate},
		{"server", c.Server.Validate},
		{"log", c.Log.Validate},
		{"replay", c.Replay.Validate},
	}
	for _, check := range checks {
		if err := check.fn(); err != nil {
			return fmt.Errorf("%s: %w", check.name, err)
		}
	}
	return nil
}
