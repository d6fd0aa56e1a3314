package section

import (
	"math"

	"github.com/schedviz/vizsnap/endian"
	"github.com/schedviz/vizsnap/errs"
)

// JobMeta is one fixed 24-byte record of the per-job metadata table. Job
// ids are unique and start at 1; id 0 is the "no job" sentinel used by the
// round allocation arrays and never appears in the table.
type JobMeta struct {
	// JobID is the unique, nonzero job identifier.
	// Offset: 0, Size: 4 bytes.
	JobID uint32
	// TypeID refers to an entry of the config document's job-type
	// catalog. Offset: 4, Size: 2 bytes.
	TypeID uint16
	// ScaleFactor is the number of resource units the job occupies
	// simultaneously. One padding byte follows on the wire.
	// Offset: 6, Size: 1 byte.
	ScaleFactor uint8
	// ArrivalRound is the round the job entered the system.
	// Offset: 8, Size: 4 bytes.
	ArrivalRound uint32
	// CompletionRound is the round the job finished, 0 if it never did.
	// Offset: 12, Size: 4 bytes.
	CompletionRound uint32
	// Duration is the job's completion time in seconds, 0 if not
	// completed. Four padding bytes follow on the wire.
	// Offset: 16, Size: 4 bytes.
	Duration float32
}

// Completed reports whether the job finished within the simulation.
func (j *JobMeta) Completed() bool {
	return j.CompletionRound != 0
}

// Parse decodes one job record from the first JobMetaSize bytes of data.
func (j *JobMeta) Parse(data []byte, engine endian.EndianEngine) error {
	if len(data) < JobMetaSize {
		return errs.ErrInvalidJobTable
	}

	j.JobID = engine.Uint32(data[0:4])
	j.TypeID = engine.Uint16(data[4:6])
	j.ScaleFactor = data[6]
	// data[7] is padding
	j.ArrivalRound = engine.Uint32(data[8:12])
	j.CompletionRound = engine.Uint32(data[12:16])
	j.Duration = math.Float32frombits(engine.Uint32(data[16:20]))
	// data[20:24] is padding

	return nil
}

// WriteToSlice writes the record at offset in a pre-allocated slice and
// returns the next write position (offset + JobMetaSize).
func (j *JobMeta) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	engine.PutUint32(data[offset:offset+4], j.JobID)
	engine.PutUint16(data[offset+4:offset+6], j.TypeID)
	data[offset+6] = j.ScaleFactor
	data[offset+7] = 0
	engine.PutUint32(data[offset+8:offset+12], j.ArrivalRound)
	engine.PutUint32(data[offset+12:offset+16], j.CompletionRound)
	engine.PutUint32(data[offset+16:offset+20], math.Float32bits(j.Duration))
	for i := 20; i < JobMetaSize; i++ {
		data[offset+i] = 0
	}

	return offset + JobMetaSize
}

// ParseJobTable decodes count consecutive job records starting at offset
// within data.
//
// Parameters:
//   - data: Byte slice containing the job table section
//   - offset: Byte offset of the first record within data
//   - count: Number of records, normally the header's JobCount
//   - engine: Endian engine for byte order
//
// Returns:
//   - []JobMeta: Decoded records in file order
//   - error: ErrInvalidJobTable if data is too short
func ParseJobTable(data []byte, offset, count int, engine endian.EndianEngine) ([]JobMeta, error) {
	if offset < 0 || offset+count*JobMetaSize > len(data) {
		return nil, errs.ErrInvalidJobTable
	}

	jobs := make([]JobMeta, count)
	for i := range jobs {
		if err := jobs[i].Parse(data[offset+i*JobMetaSize:], engine); err != nil {
			return nil, err
		}
	}

	return jobs, nil
}

// JobTableByID builds an O(1) lookup map from a decoded job table, keyed
// by job id.
func JobTableByID(jobs []JobMeta) map[uint32]JobMeta {
	m := make(map[uint32]JobMeta, len(jobs))
	for _, j := range jobs {
		m[j.JobID] = j
	}

	return m
}
