package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/replay"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

// JSONScript is the report entry of one script.
type JSONScript struct {
	Name      string        `json:"name"`
	Passed    bool          `json:"passed"`
	Duplicate bool          `json:"duplicate,omitempty"`
	Error     string        `json:"error,omitempty"`
	Moves     int           `json:"moves"`
	Active    chess.Side    `json:"active"`
	Check     bool          `json:"check,omitempty"`
	Checkmate bool          `json:"checkmate,omitempty"`
	Position  string        `json:"position,omitempty"`
	FEN       string        `json:"fen,omitempty"`
	Failures  []string      `json:"failures,omitempty"`
	Steps     []replay.Step `json:"steps,omitempty"`
}

// JSONSummary counts the scripts of a report.
type JSONSummary struct {
	Scripts    int `json:"scripts"`
	Passed     int `json:"passed"`
	Failed     int `json:"failed"`
	Duplicates int `json:"duplicates"`
}

// JSONReport is the document written by chess-replay.
type JSONReport struct {
	Scripts []*JSONScript `json:"scripts"`
	Summary JSONSummary   `json:"summary"`
}

// buildReport converts results, already in input order, into a report.
func buildReport(results []worker.ProcessResult, withSteps bool) *JSONReport {
	rep := &JSONReport{Scripts: make([]*JSONScript, 0, len(results))}
	for _, res := range results {
		js := scriptToJSON(res, withSteps)
		rep.Scripts = append(rep.Scripts, js)

		rep.Summary.Scripts++
		if js.Passed {
			rep.Summary.Passed++
		} else {
			rep.Summary.Failed++
		}
		if js.Duplicate {
			rep.Summary.Duplicates++
		}
	}
	return rep
}

func scriptToJSON(res worker.ProcessResult, withSteps bool) *JSONScript {
	js := &JSONScript{Name: res.Name, Duplicate: res.Duplicate}
	if res.Error != nil {
		js.Error = res.Error.Error()
		return js
	}
	out := res.Outcome
	if out == nil {
		js.Error = "no outcome"
		return js
	}
	js.Passed = out.Passed()
	js.Moves = out.Moves
	js.Active = out.Active
	js.Check = out.Check
	js.Checkmate = out.Checkmate
	js.Position = out.Position
	js.FEN = out.FEN
	js.Failures = out.Failures
	if withSteps {
		js.Steps = out.Steps
	}
	return js
}

// writeReport writes rep as indented JSON.
func writeReport(w io.Writer, rep *JSONReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// summaryLine is the one-line digest printed on stderr.
func summaryLine(s JSONSummary) string {
	return fmt.Sprintf("%d script(s) passed, %d failed, %d duplicate(s) out of %d.",
		s.Passed, s.Failed, s.Duplicates, s.Scripts)
}
