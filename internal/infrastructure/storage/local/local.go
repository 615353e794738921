// Package local stores uploaded assets as plain files in a directory.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"github.com/lllypuk/catmap/internal/infrastructure/storage"
)

const dirPerm = 0o755

// Store writes assets under dir.
type Store struct {
	dir string
}

// New creates the directory if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("storage/local: directory is required")
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("storage/local: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes r into a new file called name. An existing file is replaced.
func (s *Store) Save(ctx context.Context, name, _ string, r io.Reader, _ int64) error {
	if err := storage.ValidateName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dst := filepath.Join(s.dir, name)
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("storage/local: create %s: %w", name, err)
	}

	if _, err = io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("storage/local: write %s: %w", name, err)
	}
	return f.Close()
}

// Open returns the stored file.
func (s *Store) Open(_ context.Context, name string) (*storage.Asset, error) {
	if err := storage.ValidateName(name); err != nil {
		return nil, storage.ErrAssetNotFound
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, storage.ErrAssetNotFound
		}
		return nil, fmt.Errorf("storage/local: open %s: %w", name, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("storage/local: stat %s: %w", name, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &storage.Asset{ReadCloser: f, Size: info.Size(), ContentType: contentType}, nil
}

// Ping checks the directory is still there.
func (s *Store) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("storage/local: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage/local: %s is not a directory", s.dir)
	}
	return nil
}

// Name identifies the driver in health output.
func (s *Store) Name() string {
	return "local"
}
