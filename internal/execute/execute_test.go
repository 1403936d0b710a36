package execute

import (
	"os/exec"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jakub-maly/Simple-shell/internal/jobs"
)

func newTestExecutor(capacity int) (*Executor, *jobs.Table) {
	table := jobs.NewTable(capacity)
	return New(table, &jobs.Foreground{}), table
}

func requireBinary(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not on PATH", name)
	}
}

func TestLaunchUnknownCommand(t *testing.T) {
	e, _ := newTestExecutor(0)
	err := e.Launch([]string{"no-such-command-zzz"}, false)
	require.ErrorIs(t, err, ErrCommandNotFound)
}

func TestLaunchForegroundBlocksUntilExit(t *testing.T) {
	requireBinary(t, "sleep")
	e, table := newTestExecutor(0)

	start := time.Now()
	require.NoError(t, e.Launch([]string{"sleep", "1"}, false))

	require.GreaterOrEqual(t, time.Since(start), 900*time.Millisecond)
	require.Equal(t, 0, table.Len(), "foreground command must not be tracked")
}

func TestLaunchBackgroundRegistersOneJob(t *testing.T) {
	requireBinary(t, "sleep")
	e, table := newTestExecutor(0)

	start := time.Now()
	require.NoError(t, e.Launch([]string{"sleep", "30"}, true))
	require.Less(t, time.Since(start), 500*time.Millisecond, "background launch must not block")

	listed := table.Enumerate()
	require.Len(t, listed, 1)
	require.Equal(t, "sleep", listed[0].Name)
	require.Greater(t, listed[0].Pid, 0)

	_ = syscall.Kill(listed[0].Pid, syscall.SIGKILL)
}

func TestLaunchBackgroundKillsChildOnFullTable(t *testing.T) {
	requireBinary(t, "sleep")
	e, table := newTestExecutor(1)

	require.NoError(t, e.Launch([]string{"sleep", "30"}, true))
	err := e.Launch([]string{"sleep", "30"}, true)
	require.ErrorIs(t, err, ErrOutOfMemory)
	require.Equal(t, 1, table.Len())

	for _, pid := range table.DrainAll() {
		_ = syscall.Kill(pid, syscall.SIGKILL)
	}
}

func TestLaunchPipelineForeground(t *testing.T) {
	requireBinary(t, "true")
	e, table := newTestExecutor(0)

	require.NoError(t, e.LaunchPipeline([]string{"true", "|", "true"}, false))
	require.Equal(t, 0, table.Len())
}

func TestLaunchPipelineBackgroundRegistersFirstName(t *testing.T) {
	requireBinary(t, "sleep")
	requireBinary(t, "cat")
	e, table := newTestExecutor(0)

	require.NoError(t, e.LaunchPipeline([]string{"sleep", "2", "|", "cat"}, true))

	listed := table.Enumerate()
	require.Len(t, listed, 1)
	require.Equal(t, "sleep", listed[0].Name)

	_ = syscall.Kill(listed[0].Pid, syscall.SIGKILL)
}

func TestLaunchPipelineMissingSeparator(t *testing.T) {
	e, _ := newTestExecutor(0)
	err := e.LaunchPipeline([]string{"ls", "wc"}, false)
	require.ErrorIs(t, err, ErrCommandNotFound)
}

func TestResolveWaitStandIn(t *testing.T) {
	requireBinary(t, "sleep")

	binary, argv, err := resolve([]string{"wait", "3"})
	require.NoError(t, err)
	require.Equal(t, []string{"sleep", "3"}, argv)
	require.Contains(t, binary, "sleep")
}

func TestSplitPipe(t *testing.T) {
	left, right, ok := splitPipe([]string{"ls", "-l", "|", "wc", "-l"})
	require.True(t, ok)
	require.Equal(t, []string{"ls", "-l"}, left)
	require.Equal(t, []string{"wc", "-l"}, right)

	_, _, ok = splitPipe([]string{"ls"})
	require.False(t, ok)
}
