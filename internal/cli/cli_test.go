package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"cardswap/internal/models"
	"cardswap/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "submissions.json")
	t.Setenv("DOTENV_FILE", filepath.Join(dir, "missing.env"))
	t.Setenv("STORE_FILE", path)

	store, err := repositories.NewJSONFileStore(path)
	require.NoError(t, err)
	for _, s := range []models.Submission{
		{ID: "a1", Name: "Ann", Contact: "ann@example.com", Brand: "Amazon", Value: "50", Timestamp: "2024-05-01T10:00:00.000Z"},
		{ID: "a2", Name: "Bob", Contact: "bob@example.com", Brand: "Steam", Value: "20", Timestamp: "2024-05-01T10:00:01.000Z"},
	} {
		s := s
		require.NoError(t, store.Append(context.Background(), &s))
	}
	return path
}

func run(t *testing.T, args ...string) (string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	RootCmd.SetOut(&stdout)
	RootCmd.SetErr(&stderr)
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetArgs(nil)
	})

	require.NoError(t, RootCmd.ExecuteContext(context.Background()))
	return stdout.String(), stderr.String()
}

func TestExportCommand_Stdout(t *testing.T) {
	path := seedStore(t)

	out, _ := run(t, "export", "--output", "-")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(raw), out)
}

func TestExportCommand_File(t *testing.T) {
	path := seedStore(t)
	target := filepath.Join(t.TempDir(), "export.json")

	run(t, "export", "--output", target)

	want, err := os.ReadFile(path)
	require.NoError(t, err)
	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestListCommand_MostRecentFirst(t *testing.T) {
	seedStore(t)

	out, _ := run(t, "list", "--limit", "0")

	bobAt := bytes.Index([]byte(out), []byte("Bob"))
	annAt := bytes.Index([]byte(out), []byte("Ann"))
	require.NotEqual(t, -1, bobAt)
	require.NotEqual(t, -1, annAt)
	assert.Less(t, bobAt, annAt)
	assert.Contains(t, out, "ID")
}

func TestListCommand_Limit(t *testing.T) {
	seedStore(t)

	out, _ := run(t, "list", "--limit", "1")

	assert.Contains(t, out, "Bob")
	assert.NotContains(t, out, "Ann")
}
