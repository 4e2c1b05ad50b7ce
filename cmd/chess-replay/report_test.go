package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/replay"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

func sampleResults() []worker.ProcessResult {
	return []worker.ProcessResult{
		{Index: 0, Name: "mate", Outcome: &replay.Outcome{
			Name:      "mate",
			Moves:     4,
			Active:    chess.White,
			Check:     true,
			Checkmate: true,
			Position:  "WHITE,...",
			Steps:     []replay.Step{{Line: 1, Command: "move F2 F3", Result: "move"}},
		}},
		{Index: 1, Name: "broken", Error: errors.New("line 1: unknown command")},
		{Index: 2, Name: "again", Duplicate: true, Outcome: &replay.Outcome{Name: "again", Moves: 4}},
		{Index: 3, Name: "wrong", Outcome: &replay.Outcome{
			Name:     "wrong",
			Moves:    1,
			Active:   chess.Black,
			Failures: []string{"wrong:2, command \"expect side white\": expect side: got \"Black\", want \"White\""},
		}},
	}
}

func TestBuildReport(t *testing.T) {
	rep := buildReport(sampleResults(), false)

	testutil.AssertEqual(t, rep.Summary, JSONSummary{Scripts: 4, Passed: 2, Failed: 2, Duplicates: 1})

	names := make([]string, len(rep.Scripts))
	for i, s := range rep.Scripts {
		names[i] = s.Name
	}
	testutil.AssertEqual(t, names, []string{"mate", "broken", "again", "wrong"})

	mate := rep.Scripts[0]
	testutil.AssertTrue(t, mate.Passed)
	testutil.AssertTrue(t, mate.Checkmate)
	testutil.AssertEqual(t, mate.Moves, 4)
	testutil.AssertNil(t, mate.Steps)

	testutil.AssertFalse(t, rep.Scripts[1].Passed)
	testutil.AssertEqual(t, rep.Scripts[1].Error, "line 1: unknown command")
	testutil.AssertTrue(t, rep.Scripts[2].Duplicate)
	testutil.AssertEqual(t, len(rep.Scripts[3].Failures), 1)
}

func TestBuildReportSteps(t *testing.T) {
	rep := buildReport(sampleResults(), true)
	testutil.AssertEqual(t, rep.Scripts[0].Steps, []replay.Step{{Line: 1, Command: "move F2 F3", Result: "move"}})
}

func TestBuildReportMissingOutcome(t *testing.T) {
	rep := buildReport([]worker.ProcessResult{{Name: "lost"}}, false)
	testutil.AssertEqual(t, rep.Scripts[0].Error, "no outcome")
	testutil.AssertEqual(t, rep.Summary.Failed, 1)
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	if err := writeReport(&buf, buildReport(sampleResults(), false)); err != nil {
		t.Fatalf("writeReport() error = %v", err)
	}

	var decoded struct {
		Scripts []struct {
			Name   string `json:"name"`
			Passed bool   `json:"passed"`
			Active string `json:"active"`
		} `json:"scripts"`
		Summary JSONSummary `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("report is not JSON: %v\n%s", err, buf.String())
	}
	testutil.AssertEqual(t, decoded.Summary.Scripts, 4)
	testutil.AssertEqual(t, decoded.Scripts[0].Active, "WHITE")
	testutil.AssertEqual(t, decoded.Scripts[3].Active, "BLACK")
}

func TestSummaryLine(t *testing.T) {
	got := summaryLine(JSONSummary{Scripts: 4, Passed: 2, Failed: 2, Duplicates: 1})
	testutil.AssertEqual(t, got, "2 script(s) passed, 2 failed, 1 duplicate(s) out of 4.")
}
