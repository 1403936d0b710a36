package shell

import (
	"os/signal"
	"syscall"
)

// setupSignalHandling installs the process-wide handlers once, at the
// start of Run. SIGTSTP is suppressed so the shell itself can never be
// suspended; SIGINT and SIGCHLD are relayed to a dedicated goroutine.
func (s *Shell) setupSignalHandling() {
	signal.Ignore(syscall.SIGTSTP)
	signal.Notify(s.signalChan, syscall.SIGINT, syscall.SIGCHLD)
	go s.handleSignals()
}

func (s *Shell) handleSignals() {
	for sig := range s.signalChan {
		switch sig {
		case syscall.SIGINT:
			s.interruptForeground()
		case syscall.SIGCHLD:
			s.reapChildren()
		}
	}
}

// reapChildren collects every exited child without blocking and drops
// each from the job table. One SIGCHLD can stand for several exits, or
// for none that are still pending by the time we get here.
func (s *Shell) reapChildren() {
	for {
		pid, err := syscall.Wait4(-1, nil, syscall.WNOHANG, nil)
		if pid <= 0 || err != nil {
			break
		}
		s.table.RemoveByPid(pid)
	}
}

// interruptForeground kills the current foreground process, if any.
// The shell's own pid is never a valid target.
func (s *Shell) interruptForeground() {
	pid := s.fg.Get()
	if pid == 0 || pid == s.shellPid {
		return
	}
	_ = syscall.Kill(pid, syscall.SIGKILL)
}
