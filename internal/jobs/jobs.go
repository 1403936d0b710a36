// Package jobs tracks background processes started by the shell.
//
// The table is mutated from two goroutines: the main read loop (inserting
// on background launch, removing via fg) and the signal relay (removing
// reaped children). A single mutex serializes both.
package jobs

import (
	"errors"
	"sync"
)

// ErrTableFull is returned by Insert when the table has reached its
// configured capacity. The caller must not consider the process tracked.
var ErrTableFull = errors.New("job table full")

// Job is one tracked background process. DisplayIndex is assigned by
// Enumerate and is stale after any table mutation; it is -1 until the
// first enumeration.
type Job struct {
	Name         string
	Pid          int
	DisplayIndex int
}

// Table holds background jobs in display order, newest first.
type Table struct {
	mu       sync.Mutex
	jobs     []Job
	capacity int
}

// NewTable returns a table holding at most capacity jobs. A capacity of
// zero or less means unbounded.
func NewTable(capacity int) *Table {
	return &Table{capacity: capacity}
}

// Insert prepends a new record for pid. The name is copied by Go string
// semantics, so the record stays valid after the argument vector that
// produced it is gone.
func (t *Table) Insert(name string, pid int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.capacity > 0 && len(t.jobs) >= t.capacity {
		return ErrTableFull
	}
	t.jobs = append([]Job{{Name: name, Pid: pid, DisplayIndex: -1}}, t.jobs...)
	return nil
}

// RemoveByPid removes the record for pid and reports whether one existed.
func (t *Table) RemoveByPid(pid int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, job := range t.jobs {
		if job.Pid == pid {
			t.jobs = append(t.jobs[:i], t.jobs[i+1:]...)
			return true
		}
	}
	return false
}

// TakeByDisplayIndex removes the record whose index was assigned by the
// most recent Enumerate and returns its pid. Indices from before an
// intervening mutation do not match any record.
func (t *Table) TakeByDisplayIndex(idx int) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, job := range t.jobs {
		if job.DisplayIndex == idx {
			t.jobs = append(t.jobs[:i], t.jobs[i+1:]...)
			return job.Pid, true
		}
	}
	return 0, false
}

// Enumerate renumbers every record in display order starting at 0 and
// returns a snapshot suitable for printing.
func (t *Table) Enumerate() []Job {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Job, len(t.jobs))
	for i := range t.jobs {
		t.jobs[i].DisplayIndex = i
		out[i] = t.jobs[i]
	}
	return out
}

// DrainAll empties the table and returns the pids that were tracked,
// for bulk termination at shell exit.
func (t *Table) DrainAll() []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	pids := make([]int, len(t.jobs))
	for i, job := range t.jobs {
		pids[i] = job.Pid
	}
	t.jobs = nil
	return pids
}

// Len reports the number of tracked jobs.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.jobs)
}

// Foreground is the current-foreground-pid slot. The launchers set it
// around their blocking waits and the SIGINT relay reads it to decide
// which process an interrupt should target.
type Foreground struct {
	mu  sync.Mutex
	pid int
}

// Set records pid as the current foreground process.
func (f *Foreground) Set(pid int) {
	f.mu.Lock()
	f.pid = pid
	f.mu.Unlock()
}

// Clear marks that no foreground process is running.
func (f *Foreground) Clear() {
	f.mu.Lock()
	f.pid = 0
	f.mu.Unlock()
}

// Get returns the current foreground pid, or 0 if none.
func (f *Foreground) Get() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pid
}
