package section

import (
	"github.com/schedviz/vizsnap/endian"
	"github.com/schedviz/vizsnap/errs"
)

// SharingOffsets locates the optional fractional-sharing sections added at
// format version 2. Both offsets are absolute from file start; a zero value
// in either means the encoder omitted the section.
type SharingOffsets struct {
	// DataOffset is the byte offset of the variable-length sharing data
	// section. Offset: 64, Size: 8 bytes.
	DataOffset uint64
	// IndexOffset is the byte offset of the sharing index table
	// (RoundCount u64 entries, relative to DataOffset).
	// Offset: 72, Size: 8 bytes.
	IndexOffset uint64
}

// Header is the fixed-size structure at the start of every snapshot file.
// It is read once and held immutably for the file's lifetime; every later
// decode is parametrized by its counts and offsets.
//
// Versions above CurrentVersion are not an error: the fields known at this
// reader's version decode normally and anything beyond them is ignored.
type Header struct {
	// Version is the format version, >= 1.
	// Offset: 8, Size: 4 bytes.
	Version uint32
	// RoundCount is the number of fixed-size round records.
	// Offset: 12, Size: 4 bytes.
	RoundCount uint32
	// JobCount is the number of 24-byte job table records.
	// Offset: 16, Size: 4 bytes.
	JobCount uint32
	// GPUTypeCount is the number of resource types, max 255.
	// Offset: 20, Size: 1 byte.
	GPUTypeCount uint8
	// TotalUnits is the total allocatable resource-unit count across all
	// types, max 65535. One padding byte follows on the wire.
	// Offset: 21, Size: 2 bytes.
	TotalUnits uint16

	// JobMetaOffset is the byte offset of the job table.
	// Offset: 24, Size: 8 bytes.
	JobMetaOffset uint64
	// RoundsOffset is the byte offset of the round record array.
	// Offset: 32, Size: 8 bytes.
	RoundsOffset uint64
	// QueueOffset is the byte offset of the variable-length queue data
	// section. Queue index entries are relative to it.
	// Offset: 40, Size: 8 bytes.
	QueueOffset uint64
	// QueueIndexOffset is the byte offset of the queue index table
	// (RoundCount u64 entries).
	// Offset: 48, Size: 8 bytes.
	QueueIndexOffset uint64
	// ConfigOffset is the byte offset of the embedded config document,
	// which runs up to JobMetaOffset with trailing NUL padding.
	// Offset: 56, Size: 8 bytes.
	ConfigOffset uint64

	// Sharing holds the v2 section offsets. Zero for v1 files, and
	// possibly zero at v2 when the encoder saw no sharing at all.
	Sharing SharingOffsets
}

// Parse decodes the header from data, which must hold at least the packed
// header bytes for the file's version (a whole HeaderSize prefix always
// suffices). The magic tag is validated first; on mismatch nothing else is
// read and errs.ErrInvalidMagic is returned.
//
// Bounds-checking the decoded offsets against the actual file length is
// the caller's concern, not done here.
func (h *Header) Parse(data []byte, engine endian.EndianEngine) error {
	if len(data) < HeaderPackedSizeV1 {
		return errs.ErrInvalidHeaderSize
	}
	if string(data[0:8]) != Magic {
		return errs.ErrInvalidMagic
	}

	h.Version = engine.Uint32(data[8:12])
	if h.Version == 0 {
		return errs.ErrInvalidVersion
	}

	h.RoundCount = engine.Uint32(data[12:16])
	h.JobCount = engine.Uint32(data[16:20])
	h.GPUTypeCount = data[20]
	h.TotalUnits = engine.Uint16(data[21:23])
	// data[23] is padding

	h.JobMetaOffset = engine.Uint64(data[24:32])
	h.RoundsOffset = engine.Uint64(data[32:40])
	h.QueueOffset = engine.Uint64(data[40:48])
	h.QueueIndexOffset = engine.Uint64(data[48:56])
	h.ConfigOffset = engine.Uint64(data[56:64])

	h.Sharing = SharingOffsets{}
	if h.Version >= VersionV2 {
		if len(data) < HeaderPackedSizeV2 {
			return errs.ErrInvalidHeaderSize
		}
		h.Sharing.DataOffset = engine.Uint64(data[64:72])
		h.Sharing.IndexOffset = engine.Uint64(data[72:80])
	}

	return nil
}

// Bytes serializes the header into a full HeaderSize buffer, zero padded
// past the packed fields. The sharing offsets are written only at
// version >= 2, matching what Parse reads back.
func (h *Header) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, HeaderSize)

	copy(b[0:8], Magic)
	engine.PutUint32(b[8:12], h.Version)
	engine.PutUint32(b[12:16], h.RoundCount)
	engine.PutUint32(b[16:20], h.JobCount)
	b[20] = h.GPUTypeCount
	engine.PutUint16(b[21:23], h.TotalUnits)

	engine.PutUint64(b[24:32], h.JobMetaOffset)
	engine.PutUint64(b[32:40], h.RoundsOffset)
	engine.PutUint64(b[40:48], h.QueueOffset)
	engine.PutUint64(b[48:56], h.QueueIndexOffset)
	engine.PutUint64(b[56:64], h.ConfigOffset)

	if h.Version >= VersionV2 {
		engine.PutUint64(b[64:72], h.Sharing.DataOffset)
		engine.PutUint64(b[72:80], h.Sharing.IndexOffset)
	}

	return b
}

// HasSharing reports whether the file carries a fractional-sharing
// section: version >= 2 and both sharing offsets nonzero. A v2 encoder may
// validly emit zero offsets when no sharing ever occurred.
func (h *Header) HasSharing() bool {
	return h.Version >= VersionV2 && h.Sharing.DataOffset != 0 && h.Sharing.IndexOffset != 0
}

// RoundRecordSize returns the fixed round record size implied by the
// header counts.
func (h *Header) RoundRecordSize() int {
	return RoundRecordSize(int(h.GPUTypeCount), int(h.TotalUnits))
}

// ParseHeader parses a Header from a byte slice.
//
// Parameters:
//   - data: Byte slice starting at file offset 0 (at least the packed
//     header bytes for the file's version)
//   - engine: Endian engine for byte order (little-endian on the wire)
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrInvalidMagic, ErrInvalidHeaderSize or ErrInvalidVersion
func ParseHeader(data []byte, engine endian.EndianEngine) (Header, error) {
	h := Header{}
	if err := h.Parse(data, engine); err != nil {
		return Header{}, err
	}

	return h, nil
}
