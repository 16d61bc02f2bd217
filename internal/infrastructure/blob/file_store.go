// Package blob provides the BlobStore adapters: a local file (the default,
// single-user setup), Redis and a single-table Postgres KV. The driver is
// selected by configuration; all three persist the same opaque ledger blob.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhoicas/uniform-stock/internal/domain/repository"
)

var _ repository.BlobStore = (*FileStore)(nil)

// FileStore keeps each blob in a file under a base directory, one file per
// key. Writes go through a temp file and rename so a crash mid-write never
// leaves a truncated blob behind.
type FileStore struct {
	dir string
}

// NewFileStore creates the base directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("blob: create dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Load reads the blob for key; absent file means absent key.
func (s *FileStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("blob: read %s: %w", key, err)
	}
	return data, true, nil
}

// Save writes the blob atomically (temp file + rename).
func (s *FileStore) Save(_ context.Context, key string, data []byte) error {
	target := s.path(key)
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("blob: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("blob: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("blob: close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("blob: rename into place: %w", err)
	}
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
