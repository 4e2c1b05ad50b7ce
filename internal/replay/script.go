// Package replay drives a game from a line oriented command script and
// records what happened. It is the batch counterpart of the interactive
// command surface.
//
// A script holds one command per line; text after '#' is a comment:
//
//	position WHITE,KE1*,RH1*,kE8
//	players Alice Bob
//	move E1 H1
//	expect result move
//	expect side black
package replay

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Op names a script command.
type Op string

// Script commands.
const (
	OpNew      Op = "new"
	OpPosition Op = "position"
	OpFEN      Op = "fen"
	OpPlayers  Op = "players"
	OpMove     Op = "move"
	OpPromote  Op = "promote"
	OpUndo     Op = "undo"
	OpRedo     Op = "redo"
	OpExpect   Op = "expect"
)

// Expectation subjects accepted by "expect".
const (
	ExpectResult    = "result"
	ExpectCheck     = "check"
	ExpectCheckmate = "checkmate"
	ExpectSide      = "side"
	ExpectScore     = "score"
	ExpectPosition  = "position"
	ExpectFEN       = "fen"
)

// arity gives the minimum and maximum argument counts of each command;
// -1 means the rest of the line is a single argument.
var arity = map[Op][2]int{
	OpNew:      {0, 2},
	OpPosition: {-1, -1},
	OpFEN:      {-1, -1},
	OpPlayers:  {0, 2},
	OpMove:     {2, 2},
	OpPromote:  {1, 1},
	OpUndo:     {0, 0},
	OpRedo:     {0, 0},
	OpExpect:   {2, -1},
}

// Command is one parsed script line.
type Command struct {
	Line int
	Op   Op
	Args []string
	Text string
}

// Script is a named list of commands.
type Script struct {
	Name     string
	Commands []Command
}

// Parse reads a script. Syntax errors are reported as *errors.CommandError
// wrapping ErrScriptSyntax, with the line they occur on.
func Parse(name string, r io.Reader) (*Script, error) {
	s := &Script{Name: name}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		cmd, err := parseCommand(text)
		if err != nil {
			return nil, &errors.CommandError{Err: err, Script: name, Line: line, Command: text}
		}
		cmd.Line = line
		s.Commands = append(s.Commands, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read script %s", name)
	}
	return s, nil
}

// ParseString is Parse over a string.
func ParseString(name, text string) (*Script, error) {
	return Parse(name, strings.NewReader(text))
}

func parseCommand(text string) (Command, error) {
	fields := strings.Fields(text)
	op := Op(strings.ToLower(fields[0]))
	bounds, ok := arity[op]
	if !ok {
		return Command{}, fmt.Errorf("unknown command %q: %w", fields[0], errors.ErrScriptSyntax)
	}
	cmd := Command{Op: op, Text: text}

	if bounds[0] == -1 {
		rest := strings.TrimSpace(text[len(fields[0]):])
		if rest == "" {
			return Command{}, fmt.Errorf("%s needs an argument: %w", op, errors.ErrScriptSyntax)
		}
		cmd.Args = []string{rest}
		return cmd, nil
	}

	cmd.Args = fields[1:]
	n := len(cmd.Args)
	if n < bounds[0] || (bounds[1] >= 0 && n > bounds[1]) {
		return Command{}, fmt.Errorf("%s takes %s, got %d: %w", op, describeArity(bounds), n, errors.ErrScriptSyntax)
	}
	if op == OpExpect {
		return parseExpect(cmd)
	}
	return cmd, nil
}

// parseExpect checks the subject and joins multi-word values so that
// positions and FEN strings survive as one argument.
func parseExpect(cmd Command) (Command, error) {
	subject := strings.ToLower(cmd.Args[0])
	switch subject {
	case ExpectResult, ExpectCheck, ExpectCheckmate, ExpectSide, ExpectPosition, ExpectFEN:
		cmd.Args = []string{subject, strings.Join(cmd.Args[1:], " ")}
	case ExpectScore:
		if len(cmd.Args) > 3 {
			return Command{}, fmt.Errorf("expect score takes a side and codes: %w", errors.ErrScriptSyntax)
		}
		codes := ""
		if len(cmd.Args) == 3 {
			codes = cmd.Args[2]
		}
		cmd.Args = []string{subject, cmd.Args[1], codes}
	default:
		return Command{}, fmt.Errorf("unknown expectation %q: %w", cmd.Args[0], errors.ErrScriptSyntax)
	}
	return cmd, nil
}

func describeArity(bounds [2]int) string {
	switch {
	case bounds[0] == bounds[1]:
		return fmt.Sprintf("%d arguments", bounds[0])
	case bounds[1] < 0:
		return fmt.Sprintf("at least %d arguments", bounds[0])
	default:
		return fmt.Sprintf("%d to %d arguments", bounds[0], bounds[1])
	}
}
