package datasource

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// countingSource tracks how many range fetches reach the backend.
type countingSource struct {
	Source
	fetches atomic.Int64
}

func (c *countingSource) ReadRange(ctx context.Context, start, end uint64) ([]byte, error) {
	c.fetches.Add(1)

	return c.Source.ReadRange(ctx, start, end)
}

func makeBackend(size int) *countingSource {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}

	return &countingSource{Source: NewBytesSource("backend", data)}
}

func TestCachedSource_ReadRange(t *testing.T) {
	ctx := context.Background()

	t.Run("Serves correct bytes across chunk boundaries", func(t *testing.T) {
		backend := makeBackend(1000)
		cache, err := NewChunkCache(16, 64)
		require.NoError(t, err)
		src := NewCachedSource(backend, cache)

		want, err := backend.Source.ReadRange(ctx, 50, 200)
		require.NoError(t, err)

		got, err := src.ReadRange(ctx, 50, 200)
		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("Repeat reads hit the cache", func(t *testing.T) {
		backend := makeBackend(1000)
		cache, err := NewChunkCache(16, 64)
		require.NoError(t, err)
		src := NewCachedSource(backend, cache)

		_, err = src.ReadRange(ctx, 0, 128) // chunks 0 and 1
		require.NoError(t, err)
		first := backend.fetches.Load()
		require.Equal(t, int64(2), first)

		_, err = src.ReadRange(ctx, 10, 120)
		require.NoError(t, err)
		require.Equal(t, first, backend.fetches.Load(), "second read must not refetch")
	})

	t.Run("LRU evicts old chunks", func(t *testing.T) {
		backend := makeBackend(1000)
		cache, err := NewChunkCache(2, 64)
		require.NoError(t, err)
		src := NewCachedSource(backend, cache)

		for _, off := range []uint64{0, 64, 128, 192} {
			_, err = src.ReadRange(ctx, off, off+64)
			require.NoError(t, err)
		}
		require.Equal(t, 2, cache.Len())

		// Chunk 0 was evicted; reading it again refetches.
		before := backend.fetches.Load()
		_, err = src.ReadRange(ctx, 0, 64)
		require.NoError(t, err)
		require.Equal(t, before+1, backend.fetches.Load())
	})

	t.Run("Tail chunk shorter than chunk size", func(t *testing.T) {
		backend := makeBackend(100) // chunk size 64 → tail of 36
		cache, err := NewChunkCache(4, 64)
		require.NoError(t, err)
		src := NewCachedSource(backend, cache)

		want, err := backend.Source.ReadRange(ctx, 90, 100)
		require.NoError(t, err)

		got, err := src.ReadRange(ctx, 90, 100)
		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("Range past end", func(t *testing.T) {
		backend := makeBackend(100)
		cache, err := NewChunkCache(4, 64)
		require.NoError(t, err)
		src := NewCachedSource(backend, cache)

		_, err = src.ReadRange(ctx, 50, 200)
		require.Error(t, err)
	})

	t.Run("Distinct sources do not collide", func(t *testing.T) {
		cache, err := NewChunkCache(16, 64)
		require.NoError(t, err)

		a := NewCachedSource(NewBytesSource("a", []byte{1, 1, 1, 1}), cache)
		b := NewCachedSource(NewBytesSource("b", []byte{2, 2, 2, 2}), cache)

		bufA, err := a.ReadRange(ctx, 0, 4)
		require.NoError(t, err)
		bufB, err := b.ReadRange(ctx, 0, 4)
		require.NoError(t, err)

		require.Equal(t, []byte{1, 1, 1, 1}, bufA)
		require.Equal(t, []byte{2, 2, 2, 2}, bufB)
	})
}

func TestChunkCache_DefaultChunkSize(t *testing.T) {
	cache, err := NewChunkCache(4, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(DefaultChunkSize), cache.chunkSize)
}
