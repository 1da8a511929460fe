package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore accepts uploaded bytes and returns a stable handle for
// later lookup. The only implementation here writes to local disk.
type FileStore interface {
	Save(file multipart.File, originalName string) (string, error)
}

type diskStore struct {
	dir string
}

// NewDiskStore ensures the upload directory exists and returns a store
// writing into it.
func NewDiskStore(dir string) (FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &diskStore{dir: dir}, nil
}

// Save writes the file under a generated name, keeping the original
// extension, and returns the relative path as the handle.
func (s *diskStore) Save(file multipart.File, originalName string) (string, error) {
	name := uuid.NewString() + filepath.Ext(originalName)
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return path, nil
}
