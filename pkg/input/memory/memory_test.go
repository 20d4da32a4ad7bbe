package memory

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/marmos91/elfdevice/pkg/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, s *MemoryInputSource, name string) string {
	t.Helper()
	rc, err := s.Open(context.Background(), name)
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func TestMemoryInputSource(t *testing.T) {
	files := map[string]string{"day01.txt": "1000\n2000\n"}
	s := NewMemoryInputSource(files)

	assert.Equal(t, "1000\n2000\n", readAll(t, s, "day01.txt"))

	// The constructor copies its argument.
	files["day01.txt"] = "changed"
	assert.Equal(t, "1000\n2000\n", readAll(t, s, "day01.txt"))

	buf := []byte("mjqjpqmgbljsphdztnvjfqwrcgsmlb")
	s.Put("day06.txt", buf)
	buf[0] = 'X'
	assert.Equal(t, "mjqjpqmgbljsphdztnvjfqwrcgsmlb", readAll(t, s, "day06.txt"))

	_, err := s.Open(context.Background(), "day02.txt")
	assert.True(t, errors.Is(err, input.ErrInputNotFound))

	require.NoError(t, s.Close())
	_, err = s.Open(context.Background(), "day01.txt")
	assert.True(t, errors.Is(err, input.ErrInputNotFound))
}
