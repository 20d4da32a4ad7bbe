// Package memory implements an in-memory input source.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/marmos91/elfdevice/pkg/input"
)

// MemoryInputSource keeps inputs in a map keyed by name.
type MemoryInputSource struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemoryInputSource creates a source pre-populated with files.
// The map is copied.
func NewMemoryInputSource(files map[string]string) *MemoryInputSource {
	s := &MemoryInputSource{files: make(map[string][]byte, len(files))}
	for name, content := range files {
		s.files[name] = []byte(content)
	}
	return s
}

// Put adds or replaces an input.
func (s *MemoryInputSource) Put(name string, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = append([]byte(nil), content...)
}

// Open returns a reader over a snapshot of the named input.
func (s *MemoryInputSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, ok := s.files[name]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%s: %w", name, input.ErrInputNotFound)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Close drops all inputs.
func (s *MemoryInputSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = make(map[string][]byte)
	return nil
}
