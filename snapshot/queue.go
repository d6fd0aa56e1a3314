package snapshot

import (
	"github.com/schedviz/vizsnap/endian"
	"github.com/schedviz/vizsnap/errs"
	"github.com/schedviz/vizsnap/section"
)

// DecodeQueueIndex decodes roundCount consecutive u64 index entries
// starting at offset within data. Each entry is a byte offset relative to
// the queue data section's base; round r's queue lives at
// header.QueueOffset + index[r].
//
// Parameters:
//   - data: Byte slice holding the index table
//   - offset: Byte offset of the first entry within data
//   - roundCount: Number of entries, normally the header's RoundCount
//   - engine: Endian engine for byte order
//
// Returns:
//   - []uint64: Relative section offsets in round order
//   - error: ErrTruncatedSection if data is too short
func DecodeQueueIndex(data []byte, offset, roundCount int, engine endian.EndianEngine) ([]uint64, error) {
	return decodeIndexTable(data, offset, roundCount, engine)
}

func decodeIndexTable(data []byte, offset, roundCount int, engine endian.EndianEngine) ([]uint64, error) {
	if offset < 0 || offset+roundCount*section.IndexEntrySize > len(data) {
		return nil, errs.ErrTruncatedSection
	}

	index := make([]uint64, roundCount)
	for i := range index {
		index[i] = engine.Uint64(data[offset+i*section.IndexEntrySize:])
	}

	return index, nil
}

// DecodeQueueEntry decodes one variable-length queue entry at offset
// within data: a u16 count followed by that many u32 job ids, the jobs
// waiting (arrived but not yet allocated) at that round.
//
// Unlike round records, queue entries are typically decoded from
// separately fetched ranges where a mis-estimated fetch length can fall
// short, so the declared count is checked against the buffer and a
// truncated entry fails with ErrTruncatedSection instead of panicking.
// The source buffer is never modified; decoding the same offset twice
// yields identical results.
//
// Parameters:
//   - data: Byte slice holding queue section bytes
//   - offset: Byte offset of the entry's count prefix within data
//   - engine: Endian engine for byte order
//
// Returns:
//   - []uint32: Waiting job ids, empty (non-nil) when the count is 0
//   - error: ErrTruncatedSection if the count prefix or the declared ids
//     extend past the buffer
func DecodeQueueEntry(data []byte, offset int, engine endian.EndianEngine) ([]uint32, error) {
	if offset < 0 || offset+2 > len(data) {
		return nil, errs.ErrTruncatedSection
	}

	count := int(engine.Uint16(data[offset : offset+2]))
	if offset+2+count*4 > len(data) {
		return nil, errs.ErrTruncatedSection
	}

	ids := make([]uint32, count)
	for i := range ids {
		ids[i] = engine.Uint32(data[offset+2+i*4:])
	}

	return ids, nil
}

// AppendQueueEntry appends one encoded queue entry to buf and returns the
// extended slice. The inverse of DecodeQueueEntry.
func AppendQueueEntry(buf []byte, jobIDs []uint32, engine endian.EndianEngine) []byte {
	buf = engine.AppendUint16(buf, uint16(len(jobIDs))) //nolint:gosec // counts are bounded by the wire width
	for _, id := range jobIDs {
		buf = engine.AppendUint32(buf, id)
	}

	return buf
}

// AppendIndexTable appends an index table (u64 per round) to buf and
// returns the extended slice. Shared by the queue and sharing sections.
func AppendIndexTable(buf []byte, index []uint64, engine endian.EndianEngine) []byte {
	for _, off := range index {
		buf = engine.AppendUint64(buf, off)
	}

	return buf
}
