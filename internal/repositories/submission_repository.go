package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"cardswap/internal/models"

	"github.com/gofrs/flock"
)

// SubmissionStore - упорядоченное хранилище заявок (в порядке добавления)
type SubmissionStore interface {
	Append(ctx context.Context, submission *models.Submission) error
	ListAll(ctx context.Context) ([]models.Submission, error)
}

// Exporter выгружает хранилище целиком (для /admin/export)
type Exporter interface {
	Export(ctx context.Context, w io.Writer) error
}

// ============================================
// JSON FILE STORE
// ============================================

// JSONFileStore хранит заявки одним JSON-массивом в файле.
// Запись: read-modify-write под межпроцессной блокировкой (<file>.lock)
// и мьютексом, затем атомарная замена файла через rename.
type JSONFileStore struct {
	path string
	lock *flock.Flock
	mu   sync.Mutex
}

// NewJSONFileStore создает файл с пустым массивом, если его нет
func NewJSONFileStore(path string) (*JSONFileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &JSONFileStore{
		path: path,
		lock: flock.New(path + ".lock"),
	}

	if err := s.withLock(func() error {
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return s.writeLocked(nil)
		}
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize submission store %s: %w", path, err)
	}

	return s, nil
}

// Path возвращает путь к файлу хранилища
func (s *JSONFileStore) Path() string {
	return s.path
}

func (s *JSONFileStore) Append(ctx context.Context, submission *models.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.withLock(func() error {
		submissions, err := s.readLocked()
		if err != nil {
			return err
		}
		submissions = append(submissions, *submission)
		return s.writeLocked(submissions)
	})
}

func (s *JSONFileStore) ListAll(ctx context.Context) ([]models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var submissions []models.Submission
	err := s.withSharedLock(func() error {
		var err error
		submissions, err = s.readLocked()
		return err
	})
	return submissions, err
}

// Export отдает файл хранилища байт в байт
func (s *JSONFileStore) Export(ctx context.Context, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var raw []byte
	if err := s.withSharedLock(func() error {
		var err error
		raw, err = os.ReadFile(s.path)
		return err
	}); err != nil {
		return fmt.Errorf("failed to read submission store: %w", err)
	}

	_, err := w.Write(raw)
	return err
}

func (s *JSONFileStore) withLock(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock submission store: %w", err)
	}
	defer s.lock.Unlock()

	return fn()
}

// withSharedLock: внутри процесса читатели тоже сериализуются мьютексом,
// так как один *flock.Flock не считает вложенные блокировки
func (s *JSONFileStore) withSharedLock(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.RLock(); err != nil {
		return fmt.Errorf("failed to lock submission store: %w", err)
	}
	defer s.lock.Unlock()

	return fn()
}

// readLocked must be protected by file lock
func (s *JSONFileStore) readLocked() ([]models.Submission, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read submission store: %w", err)
	}

	submissions := []models.Submission{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return submissions, nil
	}
	if err := json.Unmarshal(raw, &submissions); err != nil {
		return nil, fmt.Errorf("failed to decode submission store: %w", err)
	}
	return submissions, nil
}

// writeLocked must be protected by file lock
func (s *JSONFileStore) writeLocked(submissions []models.Submission) error {
	if submissions == nil {
		submissions = []models.Submission{}
	}

	raw, err := json.MarshalIndent(submissions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode submissions: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".submissions-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace submission store: %w", err)
	}
	return nil
}
