package snapshot

import (
	"fmt"
	"sort"

	"github.com/schedviz/vizsnap/endian"
	"github.com/schedviz/vizsnap/section"
)

// SnapshotData is the in-memory form of a complete snapshot file, the
// input to Encode. Queues must have one entry per round; Sharing is nil
// for a version-1 file and otherwise also has one entry per round.
type SnapshotData struct {
	Config  Config
	Jobs    []section.JobMeta
	Rounds  []Round
	Queues  [][]uint32
	Sharing [][]SharingEntry
}

// Version returns the format version the data encodes to: 2 when a
// sharing section is present, 1 otherwise.
func (sd *SnapshotData) Version() uint32 {
	if sd.Sharing != nil {
		return section.VersionV2
	}

	return section.VersionV1
}

// Encode assembles a complete snapshot file, byte-exact with the
// reference encoder's layout:
//
//	header | config | job table | rounds | queue data | queue index
//	[| sharing data | sharing index]
//
// with every section zero padded to an 8-byte boundary. The two index
// tables hold offsets relative to their data section's base, which lets
// this function lay each section out before knowing its final absolute
// placement.
func Encode(sd *SnapshotData) ([]byte, error) {
	engine := endian.GetLittleEndianEngine()

	gpuTypeCount := len(sd.Config.GPUTypes)
	totalUnits := sd.Config.TotalUnits()
	if gpuTypeCount > section.MaxGPUTypes {
		return nil, fmt.Errorf("gpu type count %d exceeds format maximum %d", gpuTypeCount, section.MaxGPUTypes)
	}
	if totalUnits > section.MaxTotalUnits {
		return nil, fmt.Errorf("total unit count %d exceeds format maximum %d", totalUnits, section.MaxTotalUnits)
	}
	if len(sd.Queues) != len(sd.Rounds) {
		return nil, fmt.Errorf("queue count %d does not match round count %d", len(sd.Queues), len(sd.Rounds))
	}
	if sd.Sharing != nil && len(sd.Sharing) != len(sd.Rounds) {
		return nil, fmt.Errorf("sharing count %d does not match round count %d", len(sd.Sharing), len(sd.Rounds))
	}
	for i := range sd.Rounds {
		if len(sd.Rounds[i].GPUUsed) != gpuTypeCount {
			return nil, fmt.Errorf("round %d: gpu used array length %d does not match config", i, len(sd.Rounds[i].GPUUsed))
		}
		if len(sd.Rounds[i].Allocations) != totalUnits {
			return nil, fmt.Errorf("round %d: allocation array length %d does not match config", i, len(sd.Rounds[i].Allocations))
		}
	}

	configDoc, err := EncodeConfig(&sd.Config)
	if err != nil {
		return nil, err
	}

	recordSize := section.RoundRecordSize(gpuTypeCount, totalUnits)

	header := section.Header{
		Version:      sd.Version(),
		RoundCount:   uint32(len(sd.Rounds)), //nolint:gosec // round count is bounded by the wire width
		JobCount:     uint32(len(sd.Jobs)),   //nolint:gosec
		GPUTypeCount: uint8(gpuTypeCount),    //nolint:gosec
		TotalUnits:   uint16(totalUnits),     //nolint:gosec
	}

	header.ConfigOffset = section.HeaderSize
	header.JobMetaOffset = header.ConfigOffset + uint64(section.Align8(len(configDoc)))
	jobTableSize := section.Align8(len(sd.Jobs) * section.JobMetaSize)
	header.RoundsOffset = header.JobMetaOffset + uint64(jobTableSize)
	header.QueueOffset = header.RoundsOffset + uint64(len(sd.Rounds)*recordSize)

	queueData, queueIndex := encodeQueueSection(sd.Queues, engine)
	header.QueueIndexOffset = header.QueueOffset + uint64(section.Align8(len(queueData)))

	var sharingData []byte
	var sharingIndex []uint64
	if sd.Sharing != nil {
		sharingData, sharingIndex = encodeSharingSection(sd.Sharing, engine)
		header.Sharing.DataOffset = header.QueueIndexOffset + uint64(len(queueIndex)*section.IndexEntrySize)
		header.Sharing.IndexOffset = header.Sharing.DataOffset + uint64(section.Align8(len(sharingData)))
	}

	fileSize := int(header.QueueIndexOffset) + len(queueIndex)*section.IndexEntrySize
	if sd.Sharing != nil {
		fileSize = int(header.Sharing.IndexOffset) + len(sharingIndex)*section.IndexEntrySize
	}

	out := make([]byte, 0, fileSize)
	out = append(out, header.Bytes(engine)...)
	out = appendPadded(out, configDoc)

	jobTable := make([]byte, jobTableSize)
	pos := 0
	for i := range sd.Jobs {
		pos = sd.Jobs[i].WriteToSlice(jobTable, pos, engine)
	}
	out = append(out, jobTable...)

	roundBytes := make([]byte, len(sd.Rounds)*recordSize)
	pos = 0
	for i := range sd.Rounds {
		pos = sd.Rounds[i].WriteToSlice(roundBytes, pos, engine)
	}
	out = append(out, roundBytes...)

	out = appendPadded(out, queueData)
	out = AppendIndexTable(out, queueIndex, engine)

	if sd.Sharing != nil {
		out = appendPadded(out, sharingData)
		out = AppendIndexTable(out, sharingIndex, engine)
	}

	return out, nil
}

// encodeQueueSection packs every round's queue entry back to back and
// records each entry's offset relative to the section base.
func encodeQueueSection(queues [][]uint32, engine endian.EndianEngine) (data []byte, index []uint64) {
	index = make([]uint64, 0, len(queues))
	for _, q := range queues {
		index = append(index, uint64(len(data)))
		data = AppendQueueEntry(data, q, engine)
	}

	return data, index
}

// encodeSharingSection packs every round's sharing block back to back,
// entries sorted by unit index for byte-stable output.
func encodeSharingSection(sharing [][]SharingEntry, engine endian.EndianEngine) (data []byte, index []uint64) {
	index = make([]uint64, 0, len(sharing))
	for _, entries := range sharing {
		sorted := make([]SharingEntry, len(entries))
		copy(sorted, entries)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Unit < sorted[j].Unit })

		index = append(index, uint64(len(data)))
		data = AppendSharingEntries(data, sorted, engine)
	}

	return data, index
}

// appendPadded appends chunk to out, zero padded to the next 8-byte
// boundary.
func appendPadded(out, chunk []byte) []byte {
	out = append(out, chunk...)
	for pad := section.Align8(len(chunk)) - len(chunk); pad > 0; pad-- {
		out = append(out, 0)
	}

	return out
}
