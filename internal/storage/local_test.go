package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*LocalStorage, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalStorage(Config{BasePath: dir, BaseURL: "/uploads/"})
	require.NoError(t, err)
	return s, dir
}

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s, dir := newTestStorage(t)

	require.NoError(t, s.Save(ctx, "1-card.png", strings.NewReader("image-bytes")))

	onDisk, err := os.ReadFile(filepath.Join(dir, "1-card.png"))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(onDisk))

	rc, err := s.Get(ctx, "1-card.png")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(body))

	size, err := s.GetSize(ctx, "1-card.png")
	require.NoError(t, err)
	assert.Equal(t, int64(len("image-bytes")), size)

	url, err := s.GetURL(ctx, "1-card.png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/1-card.png", url)

	require.NoError(t, s.Delete(ctx, "1-card.png"))
	_, err = s.GetSize(ctx, "1-card.png")
	assert.ErrorIs(t, err, ErrNotFound)

	// Повторное удаление не ошибка
	assert.NoError(t, s.Delete(ctx, "1-card.png"))
}

func TestLocalStorage_NotFound(t *testing.T) {
	s, _ := newTestStorage(t)

	_, err := s.Get(context.Background(), "missing.png")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetSize(context.Background(), "missing.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorage_RejectsPaths(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStorage(t)

	for _, name := range []string{"", ".", "..", "../secret", "a/b.png", `a\b.png`} {
		err := s.Save(ctx, name, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidPath, name)

		_, err = s.Get(ctx, name)
		assert.ErrorIs(t, err, ErrInvalidPath, name)
	}
}

func TestNewStorage_UnknownType(t *testing.T) {
	_, err := NewStorage(Config{Type: "s3"})
	assert.Error(t, err)
}

func TestLocalStorage_GetURL(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStorage(t)

	url, err := s.GetURL(ctx, "1700000000000-card one.png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/1700000000000-card%20one.png", url)

	url, err = s.GetURL(ctx, "1-a?b.png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/1-a%3Fb.png", url)

	_, err = s.GetURL(ctx, "../secret")
	assert.ErrorIs(t, err, ErrInvalidPath)

	cdn, err := NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: "https://cdn.example.com/files/"})
	require.NoError(t, err)
	url, err = cdn.GetURL(ctx, "1-card.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/files/1-card.png", url)
}
