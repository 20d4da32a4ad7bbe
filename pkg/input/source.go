// Package input defines where puzzle input files are read from.
//
// A Source resolves a file name (as configured under inputs.files) to a
// readable stream. Implementations live in the subpackages:
//
//   - fs:     files under a local directory
//   - memory: files held in memory (tests, embedded samples)
//   - s3:     objects under a prefix in an S3 bucket
package input

import (
	"context"
	"errors"
	"io"
)

// ErrInputNotFound indicates the named input does not exist in the source.
//
// Implementations wrap it with %w so callers can use errors.Is while still
// seeing the backend-specific detail in the message.
var ErrInputNotFound = errors.New("input not found")

// ErrInvalidName indicates an input name that escapes the source root or is
// otherwise unusable as a key.
var ErrInvalidName = errors.New("invalid input name")

// Source opens puzzle input files by name.
//
// Thread Safety:
// Implementations must be safe for concurrent use.
type Source interface {
	// Open returns a reader for the named input. The caller closes it.
	//
	// Returns an error wrapping ErrInputNotFound when the input does not exist.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Close releases any resources held by the source.
	Close() error
}
