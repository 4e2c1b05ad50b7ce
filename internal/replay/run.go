package replay

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/hashing"
	"github.com/lgbarn/chess-rules-go/internal/manager"
)

// Step records the effect of one command.
type Step struct {
	Line    int    `json:"line"`
	Command string `json:"command"`
	Result  string `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Outcome is the result of running a script.
type Outcome struct {
	Name      string     `json:"name"`
	Steps     []Step     `json:"steps"`
	Moves     int        `json:"moves"`
	Position  string     `json:"position"`
	FEN       string     `json:"fen"`
	Active    chess.Side `json:"active"`
	Check     bool       `json:"check"`
	Checkmate bool       `json:"checkmate"`
	Failures  []string   `json:"failures,omitempty"`

	// Signature identifies the final position for duplicate detection.
	Signature hashing.GameSignature `json:"-"`
}

// Passed reports whether every command ran and every expectation held.
func (o *Outcome) Passed() bool { return len(o.Failures) == 0 }

// Options control a run.
type Options struct {
	// White and Black name the players of the initial game
	White, Black string

	// StopOnError ends the run at the first failing command
	StopOnError bool

	Logger *zap.Logger
}

// runner holds the state of one run.
type runner struct {
	m     *manager.Manager
	opts  Options
	out   *Outcome
	last  chess.MoveResult
	moves int
}

// Run plays a script against a fresh game that starts in the initial
// position. A rejected move is not a failure; use "expect result none" to
// assert one.
func Run(s *Script, opts Options) *Outcome {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("script", s.Name))

	r := &runner{
		m:    manager.New(manager.WithLogger(logger)),
		opts: opts,
		out:  &Outcome{Name: s.Name},
	}
	if opts.White != "" || opts.Black != "" {
		r.m.NewGame(opts.White, opts.Black)
	}

	for _, cmd := range s.Commands {
		step := Step{Line: cmd.Line, Command: cmd.Text}
		result, err := r.exec(cmd)
		step.Result = result
		if err != nil {
			cerr := &errors.CommandError{Err: err, Script: s.Name, Line: cmd.Line, Command: cmd.Text}
			step.Error = err.Error()
			r.out.Failures = append(r.out.Failures, cerr.Error())
			logger.Debug("command failed", zap.Int("line", cmd.Line), zap.Error(err))
		}
		r.out.Steps = append(r.out.Steps, step)
		if err != nil && opts.StopOnError {
			break
		}
	}

	r.finish()
	return r.out
}

func (r *runner) finish() {
	m := r.m
	r.out.Moves = r.moves
	r.out.Position = m.Position()
	r.out.FEN = m.FEN()
	r.out.Active = m.ActiveSide()
	r.out.Check = m.IsInCheck(m.ActiveSide())
	r.out.Checkmate = m.IsCheckmate()
	r.out.Signature = hashing.Sign(m.ActiveSide(), m.Board(), r.moves)
}

// reset forgets move counting after the game was replaced.
func (r *runner) reset() {
	r.moves = 0
	r.last = chess.None
}

func (r *runner) exec(cmd Command) (string, error) {
	switch cmd.Op {
	case OpNew:
		white, black := argOr(cmd.Args, 0, r.opts.White), argOr(cmd.Args, 1, r.opts.Black)
		r.m.NewGame(white, black)
		r.reset()
		return "", nil

	case OpPosition:
		if err := r.m.ImportPosition(strings.NewReader(cmd.Args[0]), r.m.PlayerName(chess.White), r.m.PlayerName(chess.Black)); err != nil {
			return "", err
		}
		r.reset()
		return "", nil

	case OpFEN:
		if err := r.m.ImportFEN(cmd.Args[0], r.m.PlayerName(chess.White), r.m.PlayerName(chess.Black)); err != nil {
			return "", err
		}
		r.reset()
		return "", nil

	case OpPlayers:
		r.m.SetPlayers(argOr(cmd.Args, 0, ""), argOr(cmd.Args, 1, ""))
		return "", nil

	case OpMove:
		from, err := chess.ParseSquare(cmd.Args[0])
		if err != nil {
			return "", err
		}
		to, err := chess.ParseSquare(cmd.Args[1])
		if err != nil {
			return "", err
		}
		r.last = r.m.MovePiece(from, to)
		if r.last != chess.None {
			r.moves++
		}
		return r.last.String(), nil

	case OpPromote:
		kind, ok := chess.ParsePieceName(cmd.Args[0])
		if !ok {
			return "", fmt.Errorf("unknown piece %q: %w", cmd.Args[0], errors.ErrInvalidPromotion)
		}
		return "", r.m.Promote(kind)

	case OpUndo:
		if !r.m.Undo() {
			return "noop", nil
		}
		r.moves--
		return "ok", nil

	case OpRedo:
		if !r.m.Redo() {
			return "noop", nil
		}
		r.moves++
		return "ok", nil

	case OpExpect:
		return "", r.expect(cmd.Args)
	}
	return "", fmt.Errorf("unknown command %q: %w", cmd.Op, errors.ErrScriptSyntax)
}

func (r *runner) expect(args []string) error {
	subject, want := args[0], args[1]
	var got string
	switch subject {
	case ExpectResult:
		got = r.last.String()
		want = strings.ToLower(want)
	case ExpectCheck:
		got = strconv.FormatBool(r.m.IsInCheck(r.m.ActiveSide()))
		want = strings.ToLower(want)
	case ExpectCheckmate:
		got = strconv.FormatBool(r.m.IsCheckmate())
		want = strings.ToLower(want)
	case ExpectSide:
		side, err := chess.ParseSide(want)
		if err != nil {
			return err
		}
		got, want = r.m.ActiveSide().String(), side.String()
	case ExpectScore:
		side, err := chess.ParseSide(want)
		if err != nil {
			return err
		}
		got, want = r.m.Score(side), args[2]
	case ExpectPosition:
		got = r.m.Position()
	case ExpectFEN:
		got = r.m.FEN()
	}
	if got != want {
		return fmt.Errorf("expect %s: got %q, want %q", subject, got, want)
	}
	return nil
}

func argOr(args []string, i int, fallback string) string {
	if i < len(args) {
		return args[i]
	}
	return fallback
}
