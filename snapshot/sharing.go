package snapshot

import (
	"github.com/schedviz/vizsnap/endian"
	"github.com/schedviz/vizsnap/errs"
	"github.com/schedviz/vizsnap/section"
)

// SharingEntry is one fixed 18-byte record of the v2 sharing data section:
// a resource unit hosting jobs at quarter granularity. A slot of 0 means
// that quarter-subdivision is idle. The encoder emits an entry only for
// units with mixed occupancy; a unit fully owned by one job appears only
// in the round's allocation array.
type SharingEntry struct {
	// Unit is the flat resource-unit index.
	// Offset: 0, Size: 2 bytes.
	Unit uint16
	// Slots holds the job id occupying each quarter-subdivision.
	// Offset: 2, Size: 16 bytes.
	Slots [4]uint32
}

// SharingMap is a round's reconstructed fractional-allocation view:
// resource-unit index to quarter-slot occupancy. For units it lists, this
// is the authoritative view and must be preferred over the round's dense
// allocation array.
type SharingMap map[uint16][4]uint32

// DecodeSharingIndex decodes roundCount consecutive u64 index entries for
// the sharing data section. Identical shape and semantics to the queue
// index; entries are relative to header.Sharing.DataOffset.
func DecodeSharingIndex(data []byte, offset, roundCount int, engine endian.EndianEngine) ([]uint64, error) {
	return decodeIndexTable(data, offset, roundCount, engine)
}

// DecodeSharingRoundEntries decodes one round's sharing block at offset
// within data: a u16 count of occupied shared units followed by that many
// 18-byte records.
//
// Like queue entries, the declared count is checked against the buffer;
// a truncated block fails with ErrTruncatedSection so the caller can
// degrade to "no sharing data for this round".
//
// Parameters:
//   - data: Byte slice holding sharing section bytes
//   - offset: Byte offset of the block's count prefix within data
//   - engine: Endian engine for byte order
//
// Returns:
//   - SharingMap: Unit index to quarter-slot job ids, nil when the round
//     declares zero entries
//   - error: ErrTruncatedSection if the block extends past the buffer
func DecodeSharingRoundEntries(data []byte, offset int, engine endian.EndianEngine) (SharingMap, error) {
	if offset < 0 || offset+2 > len(data) {
		return nil, errs.ErrTruncatedSection
	}

	count := int(engine.Uint16(data[offset : offset+2]))
	if count == 0 {
		return nil, nil
	}
	if offset+2+count*section.SharingEntrySize > len(data) {
		return nil, errs.ErrTruncatedSection
	}

	m := make(SharingMap, count)
	pos := offset + 2
	for i := 0; i < count; i++ {
		unit := engine.Uint16(data[pos : pos+2])
		var slots [4]uint32
		for s := range slots {
			slots[s] = engine.Uint32(data[pos+2+s*4:])
		}
		m[unit] = slots
		pos += section.SharingEntrySize
	}

	return m, nil
}

// AppendSharingEntries appends one round's encoded sharing block to buf
// and returns the extended slice. Entries should be in ascending unit
// order for byte-stable output.
func AppendSharingEntries(buf []byte, entries []SharingEntry, engine endian.EndianEngine) []byte {
	buf = engine.AppendUint16(buf, uint16(len(entries))) //nolint:gosec // counts are bounded by the wire width
	for _, e := range entries {
		buf = engine.AppendUint16(buf, e.Unit)
		for _, slot := range e.Slots {
			buf = engine.AppendUint32(buf, slot)
		}
	}

	return buf
}
