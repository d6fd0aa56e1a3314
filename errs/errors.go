// Package errs defines the sentinel errors returned by the vizsnap codecs.
//
// All errors are exported package-level values so callers can classify
// failures with errors.Is. Codec packages return these values directly or
// wrapped with %w; they never log.
package errs

import "errors"

// Header errors. A header failure is fatal for the whole file: the caller
// must abort the load, no partial decode is meaningful.
var (
	// ErrInvalidMagic indicates the 8-byte magic tag does not match the
	// snapshot format. The file is not a snapshot at all.
	ErrInvalidMagic = errors.New("invalid magic tag, not a snapshot file")

	// ErrInvalidHeaderSize indicates the supplied buffer is too short to
	// contain the header fields for the declared version.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidVersion indicates a version field of 0, which no encoder
	// ever produces.
	ErrInvalidVersion = errors.New("invalid format version")
)

// Section errors. These are per-section: the reference behavior is to log
// a warning at the call site and treat that round's data as absent rather
// than aborting playback.
var (
	// ErrTruncatedSection indicates a declared variable-length count
	// (queue or sharing entry count) would read past the supplied buffer.
	ErrTruncatedSection = errors.New("section data truncated")

	// ErrInvalidConfig indicates the embedded config document failed to
	// parse. Fatal for the file, like header errors.
	ErrInvalidConfig = errors.New("invalid config document")

	// ErrInvalidJobTable indicates the job table byte range is not a
	// whole number of job records.
	ErrInvalidJobTable = errors.New("invalid job table size")

	// ErrNoSharingSection indicates a sharing decode was requested on a
	// file that carries no sharing section.
	ErrNoSharingSection = errors.New("snapshot has no sharing section")

	// ErrRoundOutOfRange indicates a round index at or beyond the
	// header's round count.
	ErrRoundOutOfRange = errors.New("round index out of range")
)
