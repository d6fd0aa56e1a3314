package datasource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBytesSource(t *testing.T) {
	src := NewBytesSource("mem", []byte("0123456789"))
	ctx := context.Background()

	size, err := src.Size(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(10), size)
	require.Equal(t, "mem", src.Name())

	t.Run("Interior range", func(t *testing.T) {
		buf, err := src.ReadRange(ctx, 2, 5)
		require.NoError(t, err)
		require.Equal(t, []byte("234"), buf)
	})

	t.Run("Returned slice is a copy", func(t *testing.T) {
		buf, err := src.ReadRange(ctx, 0, 3)
		require.NoError(t, err)
		buf[0] = 'X'

		again, err := src.ReadRange(ctx, 0, 3)
		require.NoError(t, err)
		require.Equal(t, []byte("012"), again)
	})

	t.Run("Range past end", func(t *testing.T) {
		_, err := src.ReadRange(ctx, 5, 11)
		require.Error(t, err)
	})

	t.Run("Inverted range", func(t *testing.T) {
		_, err := src.ReadRange(ctx, 5, 2)
		require.Error(t, err)
	})
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.viz.bin")
	require.NoError(t, os.WriteFile(path, []byte("abcdefgh"), 0o644))

	src, err := OpenFile(path)
	require.NoError(t, err)
	defer src.Close()

	ctx := context.Background()

	size, err := src.Size(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(8), size)
	require.Equal(t, path, src.Name())

	buf, err := src.ReadRange(ctx, 3, 6)
	require.NoError(t, err)
	require.Equal(t, []byte("def"), buf)

	_, err = src.ReadRange(ctx, 0, 100)
	require.Error(t, err)
}

func TestOpenFile_Missing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "nope.viz.bin"))
	require.Error(t, err)
}
