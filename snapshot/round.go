package snapshot

import (
	"math"
	"unsafe"

	"github.com/schedviz/vizsnap/endian"
	"github.com/schedviz/vizsnap/section"
)

// Round is one decoded scheduling round: its telemetry plus the full
// resource-allocation snapshot at that time-step. Rounds are produced once
// by the simulator and never mutated; decoding always returns freshly
// allocated slices.
type Round struct {
	// Round is the round index.
	Round uint32
	// SimTime is the simulated time in seconds.
	SimTime float32
	// Utilization is the scheduler-defined utilization metric in [0,1].
	Utilization float32
	// JobsRunning is the number of jobs holding resources this round.
	JobsRunning uint16
	// JobsQueued is the number of jobs waiting this round.
	JobsQueued uint16
	// JobsCompleted is the cumulative completed-job count.
	JobsCompleted uint32
	// AvgJCT is the average job completion time so far, in seconds.
	AvgJCT float32
	// CompletionRate is the windowed completion-rate metric.
	CompletionRate float32

	// GPUUsed holds the used-unit count per resource type, in config
	// order. Length always equals the header's GPUTypeCount.
	GPUUsed []uint16
	// Allocations is the dense per-unit allocation array: the job id
	// occupying each resource unit, 0 for idle. Length always equals
	// the header's TotalUnits. When the file has a sharing section, the
	// sharing map is the finer-grained authoritative view for units it
	// lists; this array then shows one of the occupants.
	Allocations []uint32
}

// DecodeRounds decodes count consecutive fixed-size round records starting
// at offset within data.
//
// This is the hot path of the decoder, re-run on every playback scrub, and
// it performs no per-field bounds validation: data MUST hold at least
// count * RoundRecordSize(gpuTypeCount, totalUnits) bytes past offset.
// A shorter buffer is a caller bug and panics with an index range fault; it
// is never reported as a format error.
//
// Parameters:
//   - data: Byte slice holding the round records
//   - offset: Byte offset of the first record within data
//   - count: Number of records to decode
//   - gpuTypeCount: Header's GPU-type count
//   - totalUnits: Header's total resource-unit count
//   - engine: Endian engine for byte order
//
// Returns:
//   - []Round: Decoded rounds in record order
func DecodeRounds(data []byte, offset, count, gpuTypeCount, totalUnits int, engine endian.EndianEngine) []Round {
	recordSize := section.RoundRecordSize(gpuTypeCount, totalUnits)
	rounds := make([]Round, count)
	if count == 0 {
		return rounds
	}

	// Indexing is bounded by len, unlike slicing, so a buffer with spare
	// capacity still faults here instead of decoding past its length.
	_ = data[offset+count*recordSize-1]

	for i := range rounds {
		decodeRound(&rounds[i], data[offset+i*recordSize:], gpuTypeCount, totalUnits, engine)
	}

	return rounds
}

func decodeRound(r *Round, rec []byte, gpuTypeCount, totalUnits int, engine endian.EndianEngine) {
	r.Round = engine.Uint32(rec[0:4])
	r.SimTime = math.Float32frombits(engine.Uint32(rec[4:8]))
	r.Utilization = math.Float32frombits(engine.Uint32(rec[8:12]))
	r.JobsRunning = engine.Uint16(rec[12:14])
	r.JobsQueued = engine.Uint16(rec[14:16])
	r.JobsCompleted = engine.Uint32(rec[16:20])
	r.AvgJCT = math.Float32frombits(engine.Uint32(rec[20:24]))
	r.CompletionRate = math.Float32frombits(engine.Uint32(rec[24:28]))

	pos := section.RoundBaseSize
	r.GPUUsed = make([]uint16, gpuTypeCount)
	for i := range r.GPUUsed {
		r.GPUUsed[i] = engine.Uint16(rec[pos : pos+2])
		pos += 2
	}

	r.Allocations = decodeUint32Slice(rec[pos:pos+4*totalUnits], totalUnits, engine)
}

// decodeUint32Slice decodes n little-endian (per engine) uint32 values.
// When the engine matches the host byte order and the buffer is 4-byte
// aligned the wire bytes are reinterpreted in place and bulk-copied, which
// matters for allocation arrays that can run to tens of thousands of
// entries per round. The alignment check is required: the array starts at
// RoundBaseSize+2*gpuTypeCount into the record, which is not a multiple of
// four when the GPU-type count is odd.
func decodeUint32Slice(data []byte, n int, engine endian.EndianEngine) []uint32 {
	out := make([]uint32, n)
	if n == 0 {
		return out
	}

	if endian.MatchesNative(engine) && uintptr(unsafe.Pointer(&data[0]))%4 == 0 {
		src := unsafe.Slice((*uint32)(unsafe.Pointer(&data[0])), n)
		copy(out, src)

		return out
	}

	for i := range out {
		out[i] = engine.Uint32(data[i*4 : i*4+4])
	}

	return out
}

// WriteToSlice writes the round as one fixed-size record at offset in a
// pre-allocated slice, zero padded to the 8-byte-aligned record size, and
// returns the next write position. The record size is derived from the
// round's own array lengths; the caller is responsible for keeping those
// consistent across all rounds of a file.
func (r *Round) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	recordSize := section.RoundRecordSize(len(r.GPUUsed), len(r.Allocations))

	engine.PutUint32(data[offset:offset+4], r.Round)
	engine.PutUint32(data[offset+4:offset+8], math.Float32bits(r.SimTime))
	engine.PutUint32(data[offset+8:offset+12], math.Float32bits(r.Utilization))
	engine.PutUint16(data[offset+12:offset+14], r.JobsRunning)
	engine.PutUint16(data[offset+14:offset+16], r.JobsQueued)
	engine.PutUint32(data[offset+16:offset+20], r.JobsCompleted)
	engine.PutUint32(data[offset+20:offset+24], math.Float32bits(r.AvgJCT))
	engine.PutUint32(data[offset+24:offset+28], math.Float32bits(r.CompletionRate))

	pos := offset + section.RoundBaseSize
	for _, used := range r.GPUUsed {
		engine.PutUint16(data[pos:pos+2], used)
		pos += 2
	}
	for _, jobID := range r.Allocations {
		engine.PutUint32(data[pos:pos+4], jobID)
		pos += 4
	}
	for pos < offset+recordSize {
		data[pos] = 0
		pos++
	}

	return offset + recordSize
}
