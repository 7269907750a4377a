package repositories

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"cardswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubmission(id, name string) *models.Submission {
	return &models.Submission{
		ID:        id,
		Name:      name,
		Contact:   name + "@example.com",
		Brand:     "Amazon",
		Value:     "50",
		Timestamp: "2024-05-01T10:00:00.000Z",
	}
}

func TestJSONFileStore_InitCreatesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "submissions.json")

	_, err := NewJSONFileStore(path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestJSONFileStore_InitKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submissions.json")
	existing := `[{"id":"abc","name":"A","contact":"a","brand":"b","value":"1","code":"","image":"","timestamp":"2024-01-01T00:00:00.000Z"}]`
	require.NoError(t, os.WriteFile(path, []byte(existing), 0o644))

	store, err := NewJSONFileStore(path)
	require.NoError(t, err)

	list, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "abc", list[0].ID)
}

func TestJSONFileStore_AppendPreservesOrder(t *testing.T) {
	ctx := context.Background()
	store, err := NewJSONFileStore(filepath.Join(t.TempDir(), "submissions.json"))
	require.NoError(t, err)

	require.NoError(t, store.Append(ctx, newSubmission("a1", "first")))
	require.NoError(t, store.Append(ctx, newSubmission("a2", "second")))
	require.NoError(t, store.Append(ctx, newSubmission("a3", "third")))

	list, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Name)
	assert.Equal(t, "second", list[1].Name)
	assert.Equal(t, "third", list[2].Name)
}

func TestJSONFileStore_FileIsIndentedArray(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "submissions.json")
	store, err := NewJSONFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Append(ctx, newSubmission("a1", "Ann")))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("[\n  {\n    \"id\": \"a1\"")), string(raw))
	assert.Contains(t, string(raw), `"code": ""`)
	assert.Contains(t, string(raw), `"image": ""`)
}

func TestJSONFileStore_EmptyFileIsEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submissions.json")
	store, err := NewJSONFileStore(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	list, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestJSONFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submissions.json")
	store, err := NewJSONFileStore(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err = store.ListAll(context.Background())
	assert.Error(t, err)

	err = store.Append(context.Background(), newSubmission("x", "x"))
	assert.Error(t, err)

	raw, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "{not json", string(raw))
}

func TestJSONFileStore_ConcurrentAppendsLoseNothing(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "submissions.json")

	// Два экземпляра на один файл: сериализация через flock, а не только мьютекс
	first, err := NewJSONFileStore(path)
	require.NoError(t, err)
	second, err := NewJSONFileStore(path)
	require.NoError(t, err)

	const perStore = 25
	var wg sync.WaitGroup
	errs := make(chan error, perStore*2)

	for i := 0; i < perStore; i++ {
		for s, store := range []*JSONFileStore{first, second} {
			wg.Add(1)
			go func(store *JSONFileStore, id string) {
				defer wg.Done()
				errs <- store.Append(ctx, newSubmission(id, id))
			}(store, fmt.Sprintf("s%d-%d", s, i))
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	list, err := first.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, perStore*2)

	seen := make(map[string]bool, len(list))
	for _, s := range list {
		assert.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
	}
}

func TestJSONFileStore_ExportIsByteIdentical(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "submissions.json")
	store, err := NewJSONFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Append(ctx, newSubmission("a1", "Ann")))
	require.NoError(t, store.Append(ctx, newSubmission("a2", "Bob")))

	var buf bytes.Buffer
	require.NoError(t, store.Export(ctx, &buf))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, raw, buf.Bytes())
}

func TestJSONFileStore_CancelledContext(t *testing.T) {
	store, err := NewJSONFileStore(filepath.Join(t.TempDir(), "submissions.json"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Append(ctx, newSubmission("a", "a")), context.Canceled)
	_, err = store.ListAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestJSONFileStore_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	store, err := NewJSONFileStore(filepath.Join(dir, "submissions.json"))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(context.Background(), newSubmission(fmt.Sprint(i), "n")))
	}

	matches, err := filepath.Glob(filepath.Join(dir, ".submissions-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
