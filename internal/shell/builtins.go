package shell

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

var errInvalidJobIndex = errors.New("Invalid process number")

func (s *Shell) executeBuiltin(argv []string) (bool, error) {
	switch argv[0] {
	case "echo":
		s.echo(argv[1:])
		return true, nil
	case "cd":
		return true, s.changeDirectory(argv[1:])
	case "pwd":
		return true, s.printWorkingDirectory()
	case "exit":
		s.exit()
		return true, nil
	case "fg":
		return true, s.foregroundJob(argv[1:])
	case "jobs":
		s.listJobs()
		return true, nil
	case "history":
		return true, s.showHistory()
	default:
		return false, nil
	}
}

// echo prints each argument followed by a space, no trailing newline.
func (s *Shell) echo(words []string) {
	for _, word := range words {
		fmt.Printf("%s ", word)
	}
}

func (s *Shell) changeDirectory(argv []string) error {
	var dir string
	if len(argv) == 0 {
		dir = s.config.HomeDir
	} else {
		dir = argv[0]
	}

	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("cd: %w", err)
	}
	return nil
}

func (s *Shell) printWorkingDirectory() error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	fmt.Printf("%s", dir)
	return nil
}

// exit tears the shell down and terminates the process.
func (s *Shell) exit() {
	s.teardown()
	os.Exit(0)
}

// foregroundJob moves the job at the given display index into the
// foreground and blocks until it exits. The index must come from the
// most recent jobs listing.
func (s *Shell) foregroundJob(argv []string) error {
	if len(argv) == 0 {
		return errInvalidJobIndex
	}

	idx, err := strconv.Atoi(argv[0])
	if err != nil {
		return errInvalidJobIndex
	}

	pid, ok := s.table.TakeByDisplayIndex(idx)
	if !ok {
		return errInvalidJobIndex
	}

	s.executor.WaitForeground(pid)
	return nil
}

func (s *Shell) listJobs() {
	fmt.Print(jobsHeader)
	for _, job := range s.table.Enumerate() {
		fmt.Printf(jobsLineFormat, job.DisplayIndex, job.Name, job.Pid)
	}
}

func (s *Shell) showHistory() error {
	for i, cmd := range s.history.GetAll() {
		fmt.Printf("%d: %s\n", i+1, cmd)
	}
	return nil
}
