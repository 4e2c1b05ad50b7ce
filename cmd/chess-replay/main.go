// chess-replay plays command scripts against fresh games and reports the
// outcome of each as JSON.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/hashing"
	"github.com/lgbarn/chess-rules-go/internal/replay"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

const programVersion = "0.1.0"

// maxBuffer caps the derived work queue depth.
const maxBuffer = 100

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chess-replay version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := applyFlags(config.NewConfigBuilder())
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := cfg.Log.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}

	inputs := loadInputs(flag.Args(), os.Stdin)
	results := replayAll(inputs, cfg, logger)
	rep := buildReport(results, *includeSteps)

	if err := writeReportTo(*outputFile, rep); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !*quiet {
		fmt.Fprintln(os.Stderr, summaryLine(rep.Summary))
	}
	logger.Sync() //nolint:errcheck,gosec // flushing before exit

	if rep.Summary.Failed > 0 {
		os.Exit(1)
	}
}

// input is one script source, parsed or not.
type input struct {
	name   string
	script *replay.Script
	err    error
}

// loadInputs parses every named file, or stdin when no files are given.
// Unreadable or malformed files are kept with their error so they show up
// in the report.
func loadInputs(files []string, stdin io.Reader) []input {
	if len(files) == 0 {
		s, err := replay.Parse("stdin", stdin)
		return []input{{name: "stdin", script: s, err: err}}
	}

	inputs := make([]input, 0, len(files))
	for _, filename := range files {
		inputs = append(inputs, loadFile(filename))
	}
	return inputs
}

func loadFile(filename string) input {
	file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return input{name: filename, err: err}
	}
	defer file.Close() //nolint:errcheck // read-only

	s, err := replay.Parse(filename, file)
	return input{name: filename, script: s, err: err}
}

// replayAll runs every parsed script through a worker pool and returns one
// result per input, in input order.
func replayAll(inputs []input, cfg *config.Config, logger *zap.Logger) []worker.ProcessResult {
	if logger == nil {
		logger = zap.NewNop()
	}
	results := make([]worker.ProcessResult, len(inputs))
	var scripts []*replay.Script
	var origin []int
	for i, in := range inputs {
		if in.err != nil {
			results[i] = worker.ProcessResult{Index: i, Name: in.name, Error: in.err}
			continue
		}
		scripts = append(scripts, in.script)
		origin = append(origin, i)
	}
	if len(scripts) == 0 {
		return results
	}

	rc := cfg.Replay
	var detector *hashing.ThreadSafeDuplicateDetector
	if rc.ReportDuplicates {
		detector = hashing.NewThreadSafeDuplicateDetector(rc.ExactDuplicates, rc.MaxPositions)
	}
	opts := replay.Options{
		White:       cfg.Players.White,
		Black:       cfg.Players.Black,
		StopOnError: rc.StopOnError,
		Logger:      logger,
	}

	numWorkers := rc.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	buffer := rc.BufferSize
	if buffer <= 0 {
		buffer = min(len(scripts), maxBuffer)
	}

	pool := worker.NewPool(numWorkers, buffer, worker.ReplayFunc(opts, detector))
	for _, res := range pool.RunAll(scripts) {
		i := origin[res.Index]
		res.Index = i
		results[i] = res
	}

	if detector != nil {
		if detector.IsFull() {
			logger.Warn("duplicate table full; later positions were not remembered",
				zap.Int("capacity", rc.MaxPositions))
		}
		logger.Debug("replay finished",
			zap.Int("scripts", len(scripts)),
			zap.Int("unique", detector.UniqueCount()),
			zap.Int("duplicates", detector.DuplicateCount()))
	}
	return results
}

// writeReportTo writes rep to the named file, or stdout when name is empty.
func writeReportTo(name string, rep *JSONReport) error {
	if name == "" {
		return writeReport(os.Stdout, rep)
	}
	file, err := os.Create(name) //nolint:gosec // G304: CLI tool writes user-specified files
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if err := writeReport(file, rep); err != nil {
		file.Close() //nolint:errcheck,gosec // already failing
		return err
	}
	return file.Close()
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-replay [options] [script-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Replays chess command scripts and reports each outcome as JSON.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nScript commands:\n")
	fmt.Fprintf(os.Stderr, "  new [white [black]]      start a new game\n")
	fmt.Fprintf(os.Stderr, "  position <text>          import a position in text form\n")
	fmt.Fprintf(os.Stderr, "  fen <fen>                import a FEN position\n")
	fmt.Fprintf(os.Stderr, "  players <white> <black>  rename the players\n")
	fmt.Fprintf(os.Stderr, "  move <from> <to>         move a piece, e.g. move E2 E4\n")
	fmt.Fprintf(os.Stderr, "  promote <Q|R|B|N>        complete a pending promotion\n")
	fmt.Fprintf(os.Stderr, "  undo, redo               step through history\n")
	fmt.Fprintf(os.Stderr, "  expect <subject> <value> assert result, check, checkmate, side,\n")
	fmt.Fprintf(os.Stderr, "                           score, position or fen\n")
}
