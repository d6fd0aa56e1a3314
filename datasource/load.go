package datasource

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/schedviz/vizsnap/compress"
	"github.com/schedviz/vizsnap/endian"
	"github.com/schedviz/vizsnap/section"
	"github.com/schedviz/vizsnap/snapshot"
)

// ReadSnapshotFile reads a whole snapshot file from disk, transparently
// decompressing zstd, s2 or lz4 framed files (sniffed by magic bytes, not
// extension). The result is a raw snapshot buffer ready for
// snapshot.Decode.
func ReadSnapshotFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read snapshot file")
	}

	return Decompress(raw)
}

// Decompress turns a possibly compressed whole-file buffer into a raw
// snapshot buffer. Uncompressed input passes through untouched.
func Decompress(data []byte) ([]byte, error) {
	typ := compress.Detect(data)
	if typ == compress.TypeNone {
		return data, nil
	}

	codec, err := compress.GetCodec(typ)
	if err != nil {
		return nil, err
	}

	out, err := codec.Decompress(data)

	return out, errors.Wrapf(err, "decompress %s snapshot", typ)
}

// Bootstrap performs the initial loading sequence against a Source: fetch
// and parse the header, then the config document and job table ranges, and
// return a fully initialized decoder. Round, queue and sharing data are
// not fetched; the caller requests those windows on demand through the
// decoder's byte-range helpers.
func Bootstrap(ctx context.Context, src Source) (*snapshot.Decoder, error) {
	head, err := src.ReadRange(ctx, 0, section.HeaderSize)
	if err != nil {
		return nil, err
	}

	hdr, err := section.ParseHeader(head, endian.GetLittleEndianEngine())
	if err != nil {
		return nil, err
	}

	dec := snapshot.New(hdr)

	cfgStart, cfgEnd := dec.ConfigByteRange()
	cfgBytes, err := src.ReadRange(ctx, cfgStart, cfgEnd)
	if err != nil {
		return nil, err
	}
	if err := dec.DecodeConfig(cfgBytes); err != nil {
		return nil, err
	}

	jobStart, jobEnd := dec.JobTableByteRange()
	jobBytes, err := src.ReadRange(ctx, jobStart, jobEnd)
	if err != nil {
		return nil, err
	}
	if err := dec.DecodeJobTable(jobBytes); err != nil {
		return nil, err
	}

	return dec, nil
}
