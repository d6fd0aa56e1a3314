// Package snapshot decodes simulation snapshot files into structured
// telemetry for playback and charting.
//
// The package operates on already-in-memory byte buffers: fetching bytes
// is the caller's job (see the datasource package), decoding them is this
// package's. Every decode function is pure and synchronous; the only
// state-carrying type is Decoder, whose header, config and job table are
// read-only after construction, so concurrent decode calls need no
// coordination.
//
// # Typical Usage
//
// Random-access playback over a remote file:
//
//	hdr, _ := section.ParseHeader(first256Bytes, endian.GetLittleEndianEngine())
//	dec := snapshot.New(hdr)
//
//	start, end := dec.RoundByteRange(500, 100) // fetch exactly rounds 500..599
//	buf := fetch(start, end)
//	rounds := dec.DecodeRounds(buf, 0, 100)
//
// Whole-buffer decoding:
//
//	dec, _ := snapshot.Decode(fileBytes)
//	rounds := dec.DecodeRounds(fileBytes, int(dec.Header().RoundsOffset), 10)
//
// # Error Handling
//
// Header and config failures are fatal for the file and abort the load.
// Queue and sharing decodes validate lengths: a declared count that would
// overrun the buffer yields errs.ErrTruncatedSection, which callers treat
// as "no data for this round" rather than aborting playback.
//
// Round record decoding is the hot path and performs no bounds checks;
// see DecodeRounds for its buffer-length precondition.
package snapshot
