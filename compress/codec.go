// Package compress provides the compression codecs used for snapshot
// files at rest.
//
// The snapshot wire format itself is uncompressed, but files are often
// stored and shipped compressed (.viz.bin.zst and friends). Every codec
// here uses a self-describing frame format, so a whole-file buffer can be
// sniffed by its leading magic bytes and decompressed before decoding;
// see Detect and the datasource package's loader.
package compress

import (
	"bytes"
	"fmt"
)

// Type identifies a compression codec.
type Type uint8

const (
	// TypeNone means the buffer is a raw snapshot file.
	TypeNone Type = iota
	// TypeZstd is Zstandard framed compression.
	TypeZstd
	// TypeS2 is S2 (Snappy-compatible) framed compression.
	TypeS2
	// TypeLZ4 is LZ4 framed compression.
	TypeLZ4
)

// String returns the canonical file-extension-style name of the type.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeZstd:
		return "zst"
	case TypeS2:
		return "s2"
	case TypeLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Codec compresses and decompresses whole snapshot file buffers.
//
// Implementations are stateless values safe for concurrent use. Compress
// output always starts with the codec's frame magic so Detect can
// round-trip it.
type Codec interface {
	// Compress compresses data into a freshly allocated framed buffer.
	Compress(data []byte) ([]byte, error)
	// Decompress decompresses a framed buffer into a freshly allocated
	// slice, or fails if the data is corrupted or not in this codec's
	// format.
	Decompress(data []byte) ([]byte, error)
}

// Frame magics of the supported codecs. An S2 stream opens with the
// "S2sTwO" identifier chunk; s2.NewWriter only emits the "sNaPpY" form in
// snappy-compatibility mode, but such streams are still valid input.
var (
	zstdMagic     = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic      = []byte{0x04, 0x22, 0x4D, 0x18}
	s2Magic       = []byte{0xFF, 0x06, 0x00, 0x00, 0x53, 0x32, 0x73, 0x54, 0x77, 0x4F}
	s2SnappyMagic = []byte{0xFF, 0x06, 0x00, 0x00, 0x73, 0x4E, 0x61, 0x50, 0x70, 0x59}
)

// Detect sniffs the compression codec of a whole-file buffer from its
// leading magic bytes. An uncompressed snapshot file (or anything
// unrecognized) reports TypeNone; the snapshot header's own magic check
// catches genuinely foreign files afterwards.
func Detect(data []byte) Type {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return TypeZstd
	case bytes.HasPrefix(data, lz4Magic):
		return TypeLZ4
	case bytes.HasPrefix(data, s2Magic), bytes.HasPrefix(data, s2SnappyMagic):
		return TypeS2
	default:
		return TypeNone
	}
}

// GetCodec returns the built-in codec for the given type.
func GetCodec(t Type) (Codec, error) {
	switch t {
	case TypeNone:
		return NewNoOpCompressor(), nil
	case TypeZstd:
		return NewZstdCompressor(), nil
	case TypeS2:
		return NewS2Compressor(), nil
	case TypeLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("unsupported compression type: %s", t)
	}
}
