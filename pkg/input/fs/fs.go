// Package fs implements an input source backed by a local directory.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/marmos91/elfdevice/pkg/input"
)

// FSInputSource reads inputs from files under a base directory.
type FSInputSource struct {
	basePath string
}

// NewFSInputSource creates a source rooted at basePath.
//
// The directory must already exist; unlike a store, an input source never
// creates anything on disk.
//
// Parameters:
//   - ctx: Context for cancellation
//   - basePath: Directory holding the puzzle input files
//
// Returns:
//   - *FSInputSource: Initialized source
//   - error: If the context is cancelled or basePath is not a directory
func NewFSInputSource(ctx context.Context, basePath string) (*FSInputSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to access input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path %q is not a directory", basePath)
	}

	return &FSInputSource{basePath: basePath}, nil
}

// Open opens the named file below the base directory.
func (s *FSInputSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.getFilePath(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, input.ErrInputNotFound)
		}
		return nil, fmt.Errorf("failed to open input %s: %w", name, err)
	}
	return f, nil
}

// Close is a no-op for the filesystem source.
func (s *FSInputSource) Close() error {
	return nil
}

// getFilePath maps an input name to a path, rejecting names that would
// leave the base directory.
func (s *FSInputSource) getFilePath(name string) (string, error) {
	local := filepath.FromSlash(name)
	if name == "" || !filepath.IsLocal(local) {
		return "", fmt.Errorf("%q: %w", name, input.ErrInvalidName)
	}
	return filepath.Join(s.basePath, local), nil
}
