package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithPlayers sets the default player names. Blank names keep the defaults.
func (b *ConfigBuilder) WithPlayers(white, black string) *ConfigBuilder {
	if white != "" {
		b.cfg.Players.White = white
	}
	if black != "" {
		b.cfg.Players.Black = black
	}
	return b
}

// WithAddr sets the server listen address.
func (b *ConfigBuilder) WithAddr(addr string) *ConfigBuilder {
	b.cfg.Server.Addr = addr
	return b
}

// WithAllowOrigins sets the CORS origin list.
func (b *ConfigBuilder) WithAllowOrigins(origins string) *ConfigBuilder {
	b.cfg.Server.AllowOrigins = origins
	return b
}

// WithWebSocketBuffers sets the WebSocket read and write buffer sizes.
func (b *ConfigBuilder) WithWebSocketBuffers(read, write int) *ConfigBuilder {
	b.cfg.Server.ReadBufferSize = read
	b.cfg.Server.WriteBufferSize = write
	return b
}

// WithMaxSessions caps the number of concurrent games.
func (b *ConfigBuilder) WithMaxSessions(n int) *ConfigBuilder {
	b.cfg.Server.MaxSessions = n
	return b
}

// WithShutdownTimeout bounds graceful shutdown.
func (b *ConfigBuilder) WithShutdownTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.Server.ShutdownTimeout = d
	return b
}

// WithLogLevel sets the log level name.
func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.Log.Level = level
	return b
}

// WithDevelopmentLogging switches to the console encoder.
func (b *ConfigBuilder) WithDevelopmentLogging(enabled bool) *ConfigBuilder {
	b.cfg.Log.Development = enabled
	return b
}

// WithWorkers sets the number of replay workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Replay.Workers = n
	return b
}

// WithBufferSize sets the replay queue depth.
func (b *ConfigBuilder) WithBufferSize(n int) *ConfigBuilder {
	b.cfg.Replay.BufferSize = n
	return b
}

// WithStopOnError controls whether a script stops at its first failure.
func (b *ConfigBuilder) WithStopOnError(enabled bool) *ConfigBuilder {
	b.cfg.Replay.StopOnError = enabled
	return b
}

// WithDuplicateDetection controls duplicate final position reporting.
func (b *ConfigBuilder) WithDuplicateDetection(enabled, exact bool, maxPositions int) *ConfigBuilder {
	b.cfg.Replay.ReportDuplicates = enabled
	b.cfg.Replay.ExactDuplicates = exact
	b.cfg.Replay.MaxPositions = maxPositions
	return b
}
