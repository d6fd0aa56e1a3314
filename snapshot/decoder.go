package snapshot

import (
	"github.com/schedviz/vizsnap/endian"
	"github.com/schedviz/vizsnap/errs"
	"github.com/schedviz/vizsnap/section"
)

// Decoder is the one state-carrying type of the package. It holds the
// parsed header, config and job table for a loaded file, computes the
// round record size once at construction, and exposes every decode
// operation over caller-supplied buffers.
//
// All held state is read-only after construction and the decode methods
// allocate fresh results, so a Decoder is safe for concurrent use from any
// number of goroutines with no locking. It performs no I/O and no caching;
// fetching and caching byte ranges belongs to the datasource layer.
type Decoder struct {
	header     section.Header
	config     Config
	jobs       []section.JobMeta
	jobsByID   map[uint32]section.JobMeta
	recordSize int
	engine     endian.EndianEngine
}

// New creates a Decoder from a parsed header. Config and job table can be
// attached later with DecodeConfig and DecodeJobTable once their byte
// ranges have been fetched.
func New(header section.Header) *Decoder {
	return &Decoder{
		header:     header,
		recordSize: header.RoundRecordSize(),
		engine:     endian.GetLittleEndianEngine(),
	}
}

// Decode constructs a Decoder from a buffer holding the whole file: it
// parses the header, the config document and the job table in one pass.
// Any failure aborts the load; there is no partial result.
func Decode(data []byte) (*Decoder, error) {
	header, err := section.ParseHeader(data, endian.GetLittleEndianEngine())
	if err != nil {
		return nil, err
	}

	if header.ConfigOffset > header.JobMetaOffset || header.JobMetaOffset > uint64(len(data)) {
		return nil, errs.ErrTruncatedSection
	}

	d := New(header)
	if err := d.DecodeConfig(data[header.ConfigOffset:header.JobMetaOffset]); err != nil {
		return nil, err
	}
	if err := d.DecodeJobTable(data[header.JobMetaOffset:]); err != nil {
		return nil, err
	}

	return d, nil
}

// Header returns the immutable file header.
func (d *Decoder) Header() section.Header {
	return d.header
}

// RecordSize returns the fixed round record size, computed once at
// construction from the header counts.
func (d *Decoder) RecordSize() int {
	return d.recordSize
}

// HasSharing reports whether this file carries the v2 fractional-sharing
// section.
func (d *Decoder) HasSharing() bool {
	return d.header.HasSharing()
}

// DecodeConfig parses the embedded config document from its fetched byte
// range (ConfigByteRange) and attaches it to the decoder.
func (d *Decoder) DecodeConfig(data []byte) error {
	cfg, err := ParseConfig(data)
	if err != nil {
		return err
	}
	d.config = cfg

	return nil
}

// Config returns the attached config document. Zero value before
// DecodeConfig succeeds.
func (d *Decoder) Config() Config {
	return d.config
}

// DecodeJobTable parses the job table from a buffer starting at the
// table's base (JobTableByteRange) and attaches it to the decoder.
func (d *Decoder) DecodeJobTable(data []byte) error {
	jobs, err := section.ParseJobTable(data, 0, int(d.header.JobCount), d.engine)
	if err != nil {
		return err
	}
	d.jobs = jobs
	d.jobsByID = section.JobTableByID(jobs)

	return nil
}

// Jobs returns the decoded job table in file order.
func (d *Decoder) Jobs() []section.JobMeta {
	return d.jobs
}

// JobByID returns the job with the given id, if present.
func (d *Decoder) JobByID(id uint32) (section.JobMeta, bool) {
	j, ok := d.jobsByID[id]

	return j, ok
}

// DecodeRounds decodes count consecutive round records starting at offset
// within buf. The buffer precondition of the package-level DecodeRounds
// applies: buf must hold count*RecordSize() bytes past offset, normally
// guaranteed by fetching exactly RoundByteRange(start, count).
func (d *Decoder) DecodeRounds(buf []byte, offset, count int) []Round {
	return DecodeRounds(buf, offset, count, int(d.header.GPUTypeCount), int(d.header.TotalUnits), d.engine)
}

// DecodeQueueIndex decodes the queue index table from a buffer starting
// at the table's base (QueueIndexByteRange).
func (d *Decoder) DecodeQueueIndex(buf []byte) ([]uint64, error) {
	return DecodeQueueIndex(buf, 0, int(d.header.RoundCount), d.engine)
}

// DecodeQueueEntry decodes one queue entry at offset within buf.
func (d *Decoder) DecodeQueueEntry(buf []byte, offset int) ([]uint32, error) {
	return DecodeQueueEntry(buf, offset, d.engine)
}

// DecodeSharingIndex decodes the sharing index table from a buffer
// starting at the table's base (SharingIndexByteRange). Fails with
// ErrNoSharingSection on files without one.
func (d *Decoder) DecodeSharingIndex(buf []byte) ([]uint64, error) {
	if !d.HasSharing() {
		return nil, errs.ErrNoSharingSection
	}

	return DecodeSharingIndex(buf, 0, int(d.header.RoundCount), d.engine)
}

// DecodeSharingRoundEntries decodes one round's sharing block at offset
// within buf.
func (d *Decoder) DecodeSharingRoundEntries(buf []byte, offset int) (SharingMap, error) {
	return DecodeSharingRoundEntries(buf, offset, d.engine)
}

// RoundByteRange returns the absolute [start, end) byte range holding
// exactly the given window of round records, for issuing a minimal
// range request.
func (d *Decoder) RoundByteRange(startRound, count uint32) (start, end uint64) {
	start = d.header.RoundsOffset + uint64(startRound)*uint64(d.recordSize)
	end = start + uint64(count)*uint64(d.recordSize)

	return start, end
}

// ConfigByteRange returns the absolute byte range of the embedded config
// document, including its NUL padding.
func (d *Decoder) ConfigByteRange() (start, end uint64) {
	return d.header.ConfigOffset, d.header.JobMetaOffset
}

// JobTableByteRange returns the absolute byte range of the job table.
func (d *Decoder) JobTableByteRange() (start, end uint64) {
	start = d.header.JobMetaOffset
	end = start + uint64(d.header.JobCount)*section.JobMetaSize

	return start, end
}

// QueueIndexByteRange returns the absolute byte range of the queue index
// table. The index is fixed-size and cheap to prefetch in one request.
func (d *Decoder) QueueIndexByteRange() (start, end uint64) {
	start = d.header.QueueIndexOffset
	end = start + uint64(d.header.RoundCount)*section.IndexEntrySize

	return start, end
}

// SharingIndexByteRange returns the absolute byte range of the sharing
// index table. Only meaningful when HasSharing is true.
func (d *Decoder) SharingIndexByteRange() (start, end uint64) {
	start = d.header.Sharing.IndexOffset
	end = start + uint64(d.header.RoundCount)*section.IndexEntrySize

	return start, end
}

// QueueEntryOffset resolves the absolute file offset of round's queue
// entry through a decoded queue index.
func (d *Decoder) QueueEntryOffset(index []uint64, round uint32) (uint64, error) {
	if round >= d.header.RoundCount || int(round) >= len(index) {
		return 0, errs.ErrRoundOutOfRange
	}

	return d.header.QueueOffset + index[round], nil
}

// SharingEntryOffset resolves the absolute file offset of round's sharing
// block through a decoded sharing index.
func (d *Decoder) SharingEntryOffset(index []uint64, round uint32) (uint64, error) {
	if !d.HasSharing() {
		return 0, errs.ErrNoSharingSection
	}
	if round >= d.header.RoundCount || int(round) >= len(index) {
		return 0, errs.ErrRoundOutOfRange
	}

	return d.header.Sharing.DataOffset + index[round], nil
}
