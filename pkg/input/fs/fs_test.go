package fs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/marmos91/elfdevice/pkg/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSInputSource_Open(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "day07"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "day07", "input.txt"), []byte("$ cd /\n"), 0644))

	src, err := NewFSInputSource(ctx, dir)
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	rc, err := src.Open(ctx, "day07/input.txt")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "$ cd /\n", string(data))

	t.Run("Missing", func(t *testing.T) {
		_, err := src.Open(ctx, "nope.txt")
		assert.True(t, errors.Is(err, input.ErrInputNotFound))
	})

	t.Run("EscapingName", func(t *testing.T) {
		for _, name := range []string{"", "../secret", "/etc/passwd"} {
			_, err := src.Open(ctx, name)
			assert.True(t, errors.Is(err, input.ErrInvalidName), "name %q: %v", name, err)
		}
	})

	t.Run("CancelledContext", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := src.Open(cctx, "day07/input.txt")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewFSInputSource_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewFSInputSource(ctx, filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	_, err = NewFSInputSource(ctx, file)
	assert.Error(t, err)
}
