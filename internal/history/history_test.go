package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddAndGetAll(t *testing.T) {
	h, err := New(filepath.Join(t.TempDir(), "hist"))
	require.NoError(t, err)

	h.Add("echo hi")
	h.Add("jobs")

	require.Equal(t, []string{"echo hi", "jobs"}, h.GetAll())
}

func TestGetAllReturnsCopy(t *testing.T) {
	h, err := New(filepath.Join(t.TempDir(), "hist"))
	require.NoError(t, err)

	h.Add("pwd")
	items := h.GetAll()
	items[0] = "mutated"

	require.Equal(t, []string{"pwd"}, h.GetAll())
}

func TestSaveAndReload(t *testing.T) {
	file := filepath.Join(t.TempDir(), "hist")

	h, err := New(file)
	require.NoError(t, err)
	h.Add("ls | wc")
	h.Add("fg 0")
	require.NoError(t, h.Save())

	reloaded, err := New(file)
	require.NoError(t, err)
	require.Equal(t, []string{"ls | wc", "fg 0"}, reloaded.GetAll())
}
