package section

// Magic is the 8-byte ASCII tag at the start of every snapshot file.
// A mismatch is always a hard decode failure.
const Magic = "GPUVIZ01"

// Format versions understood by this reader. Higher versions still decode
// the fields known here; fields beyond CurrentVersion are ignored.
const (
	// VersionV1 is the original layout: header, config document, job
	// table, round records, queue data, queue index.
	VersionV1 = 1
	// VersionV2 adds the fractional-sharing data and index sections.
	VersionV2 = 2
	// CurrentVersion is the newest layout this reader fully understands.
	CurrentVersion = VersionV2
)

// Offsets and sizes in the snapshot file. All multi-byte integers are
// little-endian and every section starts on an 8-byte boundary.
const (
	// HeaderSize is the reserved header region at the start of the file.
	// Only the first HeaderPackedSizeV2 bytes carry data today; the rest
	// is zero padding for future growth.
	HeaderSize = 256

	// HeaderPackedSizeV1 is the number of meaningful header bytes at
	// version 1: magic(8) + version(4) + roundCount(4) + jobCount(4) +
	// gpuTypeCount(1) + totalUnits(2) + pad(1) + five u64 offsets.
	HeaderPackedSizeV1 = 64

	// HeaderPackedSizeV2 adds the sharing data and sharing index offsets.
	HeaderPackedSizeV2 = HeaderPackedSizeV1 + 16

	// JobMetaSize is the fixed size of one job table record.
	JobMetaSize = 24

	// RoundBaseSize is the byte size of the fixed telemetry fields of a
	// round record, before the per-GPU-type and per-unit arrays:
	// round(4) + simTime(4) + utilization(4) + jobsRunning(2) +
	// jobsQueued(2) + jobsCompleted(4) + avgJCT(4) + completionRate(4).
	RoundBaseSize = 28

	// SharingEntrySize is the fixed size of one sharing record:
	// unitIndex(2) + four u32 job-id quarter slots.
	SharingEntrySize = 18

	// IndexEntrySize is the size of one queue or sharing index entry, a
	// u64 byte offset relative to its section base.
	IndexEntrySize = 8

	// MaxGPUTypes and MaxTotalUnits bound the header count fields by
	// their wire widths (u8 and u16).
	MaxGPUTypes   = 255
	MaxTotalUnits = 65535
)

// Align8 rounds n up to the next multiple of 8. Every section and every
// round record in the file is padded to this boundary.
func Align8(n int) int {
	return (n + 7) &^ 7
}

// RoundRecordSize computes the fixed size of one round record for a file
// with the given GPU-type and total-unit counts:
//
//	Align8(RoundBaseSize + 2*gpuTypeCount + 4*totalUnits)
//
// The value is invariant for a file's lifetime and parametrizes all round
// offset arithmetic, so callers should compute it once from the header.
func RoundRecordSize(gpuTypeCount, totalUnits int) int {
	return Align8(RoundBaseSize + 2*gpuTypeCount + 4*totalUnits)
}
