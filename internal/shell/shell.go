// Package shell drives the read-prompt loop and dispatches each input
// line to a built-in or to the executor.
package shell

import (
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"golang.org/x/sys/unix"

	"github.com/jakub-maly/Simple-shell/internal/config"
	"github.com/jakub-maly/Simple-shell/internal/execute"
	"github.com/jakub-maly/Simple-shell/internal/history"
	"github.com/jakub-maly/Simple-shell/internal/jobs"
	"github.com/jakub-maly/Simple-shell/internal/parser"
)

// User-visible text formats. The exact bytes matter to anything
// scripting against the shell's output.
const (
	shellPrompt    = "\n>> "
	jobsHeader     = "\nCurrent running jobs:\n[#] cmd\t\tpid\n-----------------------"
	jobsLineFormat = "\n[%d] %s\t%d"
	errorFormat    = "Error: %s"
)

type Shell struct {
	config     *config.Config
	history    *history.History
	table      *jobs.Table
	fg         *jobs.Foreground
	executor   *execute.Executor
	reader     *readline.Instance
	signalChan chan os.Signal
	shellPid   int
}

func New(cfg *config.Config) (*Shell, error) {
	hist, err := history.New(cfg.HistoryFile)
	if err != nil {
		return nil, fmt.Errorf("error initializing history: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      shellPrompt,
		HistoryFile: cfg.HistoryFile,
	})
	if err != nil {
		return nil, fmt.Errorf("error initializing readline: %w", err)
	}

	table := jobs.NewTable(cfg.MaxJobs)
	fg := &jobs.Foreground{}

	return &Shell{
		config:     cfg,
		history:    hist,
		table:      table,
		fg:         fg,
		executor:   execute.New(table, fg),
		reader:     rl,
		signalChan: make(chan os.Signal, 1),
		shellPid:   os.Getpid(),
	}, nil
}

func (s *Shell) Run() {
	s.setupSignalHandling()

	for {
		line, err := s.reader.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		s.history.Add(line)

		if err := s.dispatch(line); err != nil {
			s.printError(err)
		}
	}

	s.teardown()
}

// dispatch parses one input line, arranges output redirection around the
// command, and hands it to a built-in or to the executor.
func (s *Shell) dispatch(line string) error {
	cmd, err := parser.Parse(line, s.config.MaxArgs)
	if err != nil {
		return execute.ErrCommandNotFound
	}

	argv := cmd.Argv
	if len(argv) == 0 {
		return nil
	}

	if cmd.Redirect {
		if len(argv) < 2 {
			return execute.ErrCommandNotFound
		}
		target := argv[len(argv)-1]
		argv = argv[:len(argv)-1]

		restore, err := redirectStdout(target)
		if err != nil {
			return err
		}
		defer restore()
	}

	if ok, err := s.executeBuiltin(argv); ok {
		return err
	}

	if cmd.Pipe {
		return s.executor.LaunchPipeline(argv, cmd.Background)
	}
	return s.executor.Launch(argv, cmd.Background)
}

// redirectStdout points file descriptor 1 at the target file so both
// built-ins and launched children write there, and returns the function
// that puts the saved descriptor back. The target is created if needed
// and written in place, never truncated.
func redirectStdout(target string) (func(), error) {
	stdoutFd := int(os.Stdout.Fd())

	saved, err := unix.Dup(stdoutFd)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		unix.Close(saved)
		return nil, err
	}

	if err := unix.Dup2(int(f.Fd()), stdoutFd); err != nil {
		f.Close()
		unix.Close(saved)
		return nil, err
	}
	f.Close()

	return func() {
		_ = unix.Dup2(saved, stdoutFd)
		_ = unix.Close(saved)
	}, nil
}

func (s *Shell) printError(err error) {
	fmt.Printf(errorFormat, err)
}

// teardown kills every outstanding background job, persists history,
// and releases the terminal.
func (s *Shell) teardown() {
	for _, pid := range s.table.DrainAll() {
		_ = syscall.Kill(pid, syscall.SIGKILL)
	}

	if err := s.history.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving history: %v\n", err)
	}

	s.reader.Close()
}
