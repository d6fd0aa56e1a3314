// Package vizsnap decodes the .viz.bin simulation snapshot format
// produced by the offline GPU scheduling simulator, exposing
// random-access, incrementally loadable views over rounds, queues and
// fractional-sharing data for playback and charting front ends.
//
// # Format
//
// A snapshot file is a magic-tagged ("GPUVIZ01"), versioned, little-endian
// binary: a fixed header, an embedded JSON config document, a fixed-size
// per-job metadata table, fixed-size per-round telemetry records carrying
// a dense per-unit allocation array, and variable-length queue (and, at
// version 2, fractional-sharing) sections addressed through per-round
// index tables of relative byte offsets. See the section package for the
// exact layout.
//
// # Basic Usage
//
// Decoding a local file whole:
//
//	f, err := vizsnap.LoadFile("run.viz.bin")
//	if err != nil {
//	    return err
//	}
//	rounds, _ := f.Rounds(0, 100)
//	queued := f.QueueAt(42)
//
// Random access over a remote file without loading it whole:
//
//	src := datasource.NewHTTPSource(url, nil)
//	dec, err := datasource.Bootstrap(ctx, src)
//	// fetch dec.RoundByteRange(...) windows on demand
//
// # Package Structure
//
// This package provides convenient whole-buffer wrappers around the
// snapshot package. For incremental range-based loading use the snapshot
// and datasource packages directly.
package vizsnap

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/schedviz/vizsnap/datasource"
	"github.com/schedviz/vizsnap/errs"
	"github.com/schedviz/vizsnap/snapshot"
)

// File is a whole-buffer view of a loaded snapshot: the decoder plus the
// raw bytes and the eagerly decoded index tables. All state is read-only
// after Load, so a File is safe for concurrent use.
type File struct {
	dec          *snapshot.Decoder
	data         []byte
	queueIndex   []uint64
	sharingIndex []uint64
	log          logrus.FieldLogger
}

// Load decodes an in-memory snapshot buffer, transparently decompressing
// framed zstd/s2/lz4 input first. Header, config, job table and the
// index tables are decoded eagerly; rounds, queues and sharing maps are
// decoded on demand.
func Load(data []byte) (*File, error) {
	raw, err := datasource.Decompress(data)
	if err != nil {
		return nil, err
	}

	dec, err := snapshot.Decode(raw)
	if err != nil {
		return nil, err
	}

	f := &File{
		dec:  dec,
		data: raw,
		log:  logrus.StandardLogger(),
	}

	idxStart, idxEnd := dec.QueueIndexByteRange()
	if idxEnd > uint64(len(raw)) {
		return nil, errs.ErrTruncatedSection
	}
	f.queueIndex, err = dec.DecodeQueueIndex(raw[idxStart:idxEnd])
	if err != nil {
		return nil, err
	}

	if dec.HasSharing() {
		idxStart, idxEnd = dec.SharingIndexByteRange()
		if idxEnd > uint64(len(raw)) {
			return nil, errs.ErrTruncatedSection
		}
		f.sharingIndex, err = dec.DecodeSharingIndex(raw[idxStart:idxEnd])
		if err != nil {
			return nil, err
		}
	}

	return f, nil
}

// LoadFile reads and decodes a snapshot file from disk. Compressed files
// (.viz.bin.zst and friends) are detected by content and decompressed.
func LoadFile(path string) (*File, error) {
	data, err := datasource.ReadSnapshotFile(path)
	if err != nil {
		return nil, err
	}

	return Load(data)
}

// Decoder returns the underlying decoder for range helpers and direct
// decode calls.
func (f *File) Decoder() *snapshot.Decoder {
	return f.dec
}

// Rounds decodes count rounds starting at startRound.
func (f *File) Rounds(startRound, count uint32) ([]snapshot.Round, error) {
	hdr := f.dec.Header()
	if startRound >= hdr.RoundCount || count > hdr.RoundCount-startRound {
		return nil, errs.ErrRoundOutOfRange
	}

	start, _ := f.dec.RoundByteRange(startRound, count)

	return f.dec.DecodeRounds(f.data, int(start), int(count)), nil //nolint:gosec
}

// QueueAt returns the job ids waiting at the given round. Queue data is
// supplementary to the allocation view, so decode failures degrade to an
// empty queue with a logged warning instead of failing playback; only an
// out-of-range round is reported as such by returning nil.
func (f *File) QueueAt(round uint32) []uint32 {
	off, err := f.dec.QueueEntryOffset(f.queueIndex, round)
	if err != nil {
		return nil
	}

	ids, err := f.dec.DecodeQueueEntry(f.data, int(off)) //nolint:gosec
	if err != nil {
		f.log.WithFields(logrus.Fields{
			"round": round,
			"error": err,
		}).Warn("queue entry decode failed, treating round as empty")

		return nil
	}

	return ids
}

// SharingAt returns the fractional-sharing map for the given round, or
// nil when the file has no sharing section, the round shares nothing, or
// the block fails to decode (logged, like QueueAt).
func (f *File) SharingAt(round uint32) snapshot.SharingMap {
	off, err := f.dec.SharingEntryOffset(f.sharingIndex, round)
	if err != nil {
		if !errors.Is(err, errs.ErrNoSharingSection) && !errors.Is(err, errs.ErrRoundOutOfRange) {
			f.log.WithField("round", round).WithError(err).Warn("sharing offset resolution failed")
		}

		return nil
	}

	m, err := f.dec.DecodeSharingRoundEntries(f.data, int(off)) //nolint:gosec
	if err != nil {
		f.log.WithFields(logrus.Fields{
			"round": round,
			"error": err,
		}).Warn("sharing entries decode failed, treating round as unshared")

		return nil
	}

	return m
}
