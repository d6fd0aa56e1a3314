package compress

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/s2"
	"github.com/stretchr/testify/require"
)

func testPayload() []byte {
	// Zero runs and repeated ids, like a round record section.
	data := make([]byte, 4096)
	for i := 0; i < len(data); i += 16 {
		data[i] = byte(i % 7)
		data[i+1] = 0x42
	}

	return data
}

func TestCodecs_Roundtrip(t *testing.T) {
	payload := testPayload()

	for _, typ := range []Type{TypeNone, TypeZstd, TypeS2, TypeLZ4} {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := GetCodec(typ)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			// Frame output must be sniffable back to its codec.
			require.Equal(t, typ, Detect(compressed))

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, payload, decompressed)
		})
	}
}

func TestDetect(t *testing.T) {
	t.Run("Raw snapshot file", func(t *testing.T) {
		require.Equal(t, TypeNone, Detect([]byte("GPUVIZ01xxxxxxxx")))
	})

	t.Run("Empty buffer", func(t *testing.T) {
		require.Equal(t, TypeNone, Detect(nil))
	})

	t.Run("S2 stream identifier", func(t *testing.T) {
		// s2.NewWriter opens its stream with the "S2sTwO" identifier
		// chunk, not snappy's "sNaPpY"; both must sniff as S2.
		codec := NewS2Compressor()
		compressed, err := codec.Compress(testPayload())
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(compressed, s2Magic))
		require.Equal(t, TypeS2, Detect(compressed))
	})

	t.Run("Snappy-compatible stream", func(t *testing.T) {
		payload := testPayload()

		var buf bytes.Buffer
		w := s2.NewWriter(&buf, s2.WriterSnappyCompat())
		_, err := w.Write(payload)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		compressed := buf.Bytes()
		require.True(t, bytes.HasPrefix(compressed, s2SnappyMagic))
		require.Equal(t, TypeS2, Detect(compressed))

		decompressed, err := NewS2Compressor().Decompress(compressed)
		require.NoError(t, err)
		require.Equal(t, payload, decompressed)
	})
}

func TestGetCodec_Unknown(t *testing.T) {
	_, err := GetCodec(Type(99))
	require.Error(t, err)
}

func TestType_String(t *testing.T) {
	require.Equal(t, "none", TypeNone.String())
	require.Equal(t, "zst", TypeZstd.String())
	require.Equal(t, "s2", TypeS2.String())
	require.Equal(t, "lz4", TypeLZ4.String())
}
