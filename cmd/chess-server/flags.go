// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

var (
	// Listener
	addr         = flag.String("addr", ":8080", "Address to listen on")
	allowOrigins = flag.String("origins", "*", "Comma-separated CORS origins")
	maxSessions  = flag.Int("max-games", 0, "Maximum concurrent games (0 = unlimited)")
	shutdownWait = flag.Duration("shutdown-timeout", 5*time.Second, "Time allowed for graceful shutdown")

	// WebSocket buffers
	wsReadBuffer  = flag.Int("ws-read-buffer", 1024, "WebSocket read buffer size in bytes")
	wsWriteBuffer = flag.Int("ws-write-buffer", 1024, "WebSocket write buffer size in bytes")

	// Players
	whiteName = flag.String("white", "", "Default name of the white player")
	blackName = flag.String("black", "", "Default name of the black player")

	// Logging
	logLevel = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	devLog   = flag.Bool("dev", false, "Human-readable development logging")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(b *config.ConfigBuilder) *config.Config {
	return b.
		WithAddr(*addr).
		WithAllowOrigins(*allowOrigins).
		WithMaxSessions(*maxSessions).
		WithShutdownTimeout(*shutdownWait).
		WithWebSocketBuffers(*wsReadBuffer, *wsWriteBuffer).
		WithPlayers(*whiteName, *blackName).
		WithLogLevel(*logLevel).
		WithDevelopmentLogging(*devLog).
		Build()
}
