// Package storage defines the shared types of the uploaded asset stores.
// Drivers live in the local and minio subpackages.
package storage

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/lllypuk/catmap/internal/domain/errs"
)

var (
	// ErrAssetNotFound is returned when no asset exists under the requested name
	ErrAssetNotFound = fmt.Errorf("asset %w", errs.ErrNotFound)

	// ErrInvalidName is returned for empty names or names that escape the store root
	ErrInvalidName = errors.New("invalid asset name")
)

// Asset is an opened stored file. The caller must Close it.
type Asset struct {
	io.ReadCloser

	Size        int64
	ContentType string
}

// ValidateName accepts a single flat file name.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidName
	}
	if strings.ContainsAny(name, `/\`) || path.Clean(name) != name {
		return ErrInvalidName
	}
	return nil
}
