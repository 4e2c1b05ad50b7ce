// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

var (
	// Output options
	outputFile   = flag.String("o", "", "Write the JSON report to this file (default: stdout)")
	includeSteps = flag.Bool("steps", false, "Include every command and its result in the report")

	// Replay behaviour
	keepGoing = flag.Bool("k", false, "Keep running a script after a failed command")
	whiteName = flag.String("white", "", "Name of the white player")
	blackName = flag.String("black", "", "Name of the black player")

	// Duplicate detection
	noDuplicates      = flag.Bool("nodups", false, "Don't report scripts ending in an already seen position")
	exactDuplicates   = flag.Bool("exact", false, "Duplicates must also have the same number of moves")
	duplicateCapacity = flag.Int("duplicate-capacity", 0, "Maximum remembered final positions (0 = unlimited)")

	// Performance options
	workers    = flag.Int("workers", 0, "Number of worker threads (0 = auto-detect based on CPU cores)")
	bufferSize = flag.Int("buffer", 0, "Work queue depth (0 = derived from the number of scripts)")

	// Logging
	logLevel = flag.String("log-level", "warn", "Log level: debug, info, warn, error")
	devLog   = flag.Bool("dev", false, "Human-readable development logging")

	// Other options
	quiet   = flag.Bool("s", false, "Silent mode (no summary on stderr)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(b *config.ConfigBuilder) *config.Config {
	return b.
		WithPlayers(*whiteName, *blackName).
		WithWorkers(*workers).
		WithBufferSize(*bufferSize).
		WithStopOnError(!*keepGoing).
		WithDuplicateDetection(!*noDuplicates, *exactDuplicates, *duplicateCapacity).
		WithLogLevel(*logLevel).
		WithDevelopmentLogging(*devLog).
		Build()
}
