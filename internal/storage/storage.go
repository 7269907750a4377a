package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrNotFound - файл отсутствует в хранилище
	ErrNotFound = errors.New("storage: file not found")
	// ErrInvalidPath - имя файла содержит разделители каталогов или ссылается за пределы хранилища
	ErrInvalidPath = errors.New("storage: invalid file path")
)

// Storage defines the interface for upload storage operations
type Storage interface {
	// Save stores a file under the given name
	Save(ctx context.Context, name string, reader io.Reader) error

	// Get retrieves a file by name
	Get(ctx context.Context, name string) (io.ReadCloser, error)

	// Delete removes a file, missing files are not an error
	Delete(ctx context.Context, name string) error

	// GetURL returns the public URL for the file
	GetURL(ctx context.Context, name string) (string, error)

	// GetSize returns the size of a file in bytes
	GetSize(ctx context.Context, name string) (int64, error)
}

// Config holds storage configuration
type Config struct {
	Type     string // local
	BasePath string // For local storage
	BaseURL  string // Public URL base
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
