// Package parser turns an input line into an argument vector plus the
// launch flags the executor needs.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

const (
	flagBackground = '&'
	flagRedirect   = '>'
	flagPipe       = '|'
)

// ErrTooManyArgs is returned when the line tokenizes into more slots
// than the configured argument capacity.
var ErrTooManyArgs = errors.New("too many arguments")

// Command is one parsed input line. When Redirect is set, the target
// filename is the trailing element of Argv; the caller pops it before
// dispatch. When Pipe is set, Argv contains a "|" separator token.
type Command struct {
	Argv       []string
	Background bool
	Redirect   bool
	Pipe       bool
}

// Parse tokenizes line into at most maxArgs slots. The first '&' marks
// the command as background and the first '>' marks output redirection;
// both are lifted out of the line before splitting. A '|' stays in the
// vector as the pipeline separator.
func Parse(line string, maxArgs int) (Command, error) {
	var cmd Command

	if i := strings.IndexByte(line, flagBackground); i >= 0 {
		cmd.Background = true
		line = line[:i] + " " + line[i+1:]
	}

	if i := strings.IndexByte(line, flagRedirect); i >= 0 {
		cmd.Redirect = true
		line = line[:i] + " " + line[i+1:]
	}

	if strings.IndexByte(line, flagPipe) >= 0 {
		cmd.Pipe = true
		line = strings.ReplaceAll(line, string(flagPipe), " | ")
	}

	argv, err := shellquote.Split(line)
	if err != nil {
		return Command{}, fmt.Errorf("error parsing command: %w", err)
	}
	if len(argv) > maxArgs {
		return Command{}, ErrTooManyArgs
	}

	cmd.Argv = argv
	return cmd, nil
}
