// Package execute creates and waits on the OS processes behind external
// commands, for both single commands and two-stage pipelines.
package execute

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/jakub-maly/Simple-shell/internal/jobs"
)

const pipeSeparator = "|"

// User-facing failure text, printed by the caller through the shell's
// error format.
var (
	ErrCommandNotFound = errors.New("Command not found")
	ErrOutOfMemory     = errors.New("Could not allocate sufficient memory for process")
)

// Executor launches processes and registers background ones in the job
// table. The foreground slot is set around every blocking wait so the
// interrupt relay knows which pid an interrupt should target.
type Executor struct {
	table *jobs.Table
	fg    *jobs.Foreground
}

func New(table *jobs.Table, fg *jobs.Foreground) *Executor {
	return &Executor{table: table, fg: fg}
}

// Launch runs a single command with the shell's current standard
// descriptors. Foreground commands block until that exact child exits;
// background commands are registered in the job table under the name
// the user typed. A process-creation failure is fatal to the shell.
func (e *Executor) Launch(argv []string, background bool) error {
	name := argv[0]

	binary, argv, err := resolve(argv)
	if err != nil {
		return err
	}

	pid, err := syscall.ForkExec(binary, argv, &syscall.ProcAttr{
		Env:   os.Environ(),
		Files: []uintptr{os.Stdin.Fd(), os.Stdout.Fd(), os.Stderr.Fd()},
	})
	if err != nil {
		fatalForkFailure(err)
	}

	if !background {
		e.WaitForeground(pid)
		return nil
	}

	if err := e.table.Insert(name, pid); err != nil {
		// Never leave an untracked background process running.
		_ = syscall.Kill(pid, syscall.SIGKILL)
		return ErrOutOfMemory
	}
	return nil
}

// LaunchPipeline runs the two commands either side of the "|" token,
// the first one's stdout feeding the second one's stdin. Both stages
// are started up front and run concurrently; the shell holds neither
// pipe end. In the background case a single job is registered under the
// first command's name with the pid of the second stage, which is the
// process the shell waits on under fg.
func (e *Executor) LaunchPipeline(argv []string, background bool) error {
	left, right, ok := splitPipe(argv)
	if !ok || len(left) == 0 || len(right) == 0 {
		return ErrCommandNotFound
	}
	name := left[0]

	leftBin, left, err := resolve(left)
	if err != nil {
		return err
	}
	rightBin, right, err := resolve(right)
	if err != nil {
		return err
	}

	r, w, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("error creating pipe: %w", err)
	}

	pid1, err := syscall.ForkExec(leftBin, left, &syscall.ProcAttr{
		Env:   os.Environ(),
		Files: []uintptr{os.Stdin.Fd(), w.Fd(), os.Stderr.Fd()},
	})
	if err != nil {
		fatalForkFailure(err)
	}

	pid2, err := syscall.ForkExec(rightBin, right, &syscall.ProcAttr{
		Env:   os.Environ(),
		Files: []uintptr{r.Fd(), os.Stdout.Fd(), os.Stderr.Fd()},
	})
	if err != nil {
		_ = syscall.Kill(pid1, syscall.SIGKILL)
		fatalForkFailure(err)
	}

	// The shell does no I/O through the pipe; the first stage is reaped
	// by the signal relay.
	r.Close()
	w.Close()

	if !background {
		e.WaitForeground(pid2)
		return nil
	}

	if err := e.table.Insert(name, pid2); err != nil {
		_ = syscall.Kill(pid2, syscall.SIGKILL)
		return ErrOutOfMemory
	}
	return nil
}

// WaitForeground blocks until pid exits, with the foreground slot set
// for the duration. The exit status is discarded. A wait that fails
// because the relay already reaped the child counts as done.
func (e *Executor) WaitForeground(pid int) {
	e.fg.Set(pid)
	defer e.fg.Clear()

	var ws syscall.WaitStatus
	for {
		_, err := syscall.Wait4(pid, &ws, 0, nil)
		if err == syscall.EINTR {
			continue
		}
		return
	}
}

// resolve maps the command name to an executable path via the standard
// path search. "wait" and "sleep" are debug stand-ins that both run the
// system sleep binary with the given seconds argument.
func resolve(argv []string) (string, []string, error) {
	name := argv[0]
	if name == "wait" || name == "sleep" {
		argv = append([]string{"sleep"}, argv[1:]...)
		name = "sleep"
	}

	binary, err := exec.LookPath(name)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", nil, ErrCommandNotFound
		}
		return "", nil, err
	}
	return binary, argv, nil
}

func splitPipe(argv []string) (left, right []string, ok bool) {
	for i, arg := range argv {
		if arg == pipeSeparator {
			return argv[:i], argv[i+1:], true
		}
	}
	return nil, nil, false
}

// Process creation failing means the system is out of resources; the
// shell cannot usefully continue.
func fatalForkFailure(err error) {
	fmt.Fprintf(os.Stderr, "process creation failed: %v\n", err)
	os.Exit(1)
}
