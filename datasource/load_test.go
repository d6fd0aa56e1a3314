package datasource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schedviz/vizsnap/compress"
	"github.com/schedviz/vizsnap/section"
	"github.com/schedviz/vizsnap/snapshot"
)

func encodeTestFile(t *testing.T) []byte {
	t.Helper()

	sd := &snapshot.SnapshotData{
		Config: snapshot.Config{
			Policy: "fifo",
			GPUTypes: []snapshot.GPUType{
				{Name: "v100", Count: 4},
			},
			JobTypes: []snapshot.JobType{
				{ID: 0, Name: "ResNet-18 (batch size 64)", Category: "resnet"},
			},
		},
		Jobs: []section.JobMeta{
			{JobID: 1, TypeID: 0, ScaleFactor: 1},
		},
		Rounds: []snapshot.Round{
			{Round: 0, GPUUsed: []uint16{1}, Allocations: []uint32{1, 0, 0, 0}},
		},
		Queues: [][]uint32{{}},
	}

	data, err := snapshot.Encode(sd)
	require.NoError(t, err)

	return data
}

func TestReadSnapshotFile(t *testing.T) {
	raw := encodeTestFile(t)

	t.Run("Uncompressed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "snap.viz.bin")
		require.NoError(t, os.WriteFile(path, raw, 0o644))

		data, err := ReadSnapshotFile(path)
		require.NoError(t, err)
		require.Equal(t, raw, data)
	})

	for _, typ := range []compress.Type{compress.TypeZstd, compress.TypeS2, compress.TypeLZ4} {
		t.Run("Compressed "+typ.String(), func(t *testing.T) {
			codec, err := compress.GetCodec(typ)
			require.NoError(t, err)
			packed, err := codec.Compress(raw)
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "snap.viz.bin."+typ.String())
			require.NoError(t, os.WriteFile(path, packed, 0o644))

			data, err := ReadSnapshotFile(path)
			require.NoError(t, err)
			require.Equal(t, raw, data)

			_, err = snapshot.Decode(data)
			require.NoError(t, err)
		})
	}

	t.Run("Missing file", func(t *testing.T) {
		_, err := ReadSnapshotFile(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
	})
}

func TestBootstrap(t *testing.T) {
	raw := encodeTestFile(t)
	ctx := context.Background()

	cache, err := NewChunkCache(8, 128)
	require.NoError(t, err)
	src := NewCachedSource(NewBytesSource("snap", raw), cache)

	dec, err := Bootstrap(ctx, src)
	require.NoError(t, err)

	require.Equal(t, uint32(1), dec.Header().RoundCount)
	require.Equal(t, "fifo", dec.Config().Policy)
	require.Len(t, dec.Jobs(), 1)

	// Fetch one round through the decoder's advertised range.
	start, end := dec.RoundByteRange(0, 1)
	buf, err := src.ReadRange(ctx, start, end)
	require.NoError(t, err)

	rounds := dec.DecodeRounds(buf, 0, 1)
	require.Equal(t, []uint32{1, 0, 0, 0}, rounds[0].Allocations)
}

func TestBootstrap_BadHeader(t *testing.T) {
	src := NewBytesSource("junk", make([]byte, 512))

	_, err := Bootstrap(context.Background(), src)
	require.Error(t, err)
}
