// Package datasource supplies byte ranges of snapshot files to the
// decoder.
//
// The decoder core in the snapshot package never performs I/O: it takes
// already-fetched buffers and explicit offsets. This package is the
// collaborator that produces those buffers, from local files, in-memory
// data or HTTP range requests, optionally through an LRU chunk cache so
// scrubbing back and forth over the same rounds does not refetch them.
package datasource

import (
	"context"
	"os"

	"github.com/pkg/errors"
)

// Source produces byte ranges of one snapshot file. Implementations must
// be safe for concurrent use.
type Source interface {
	// ReadRange returns the bytes of the half-open range [start, end).
	// The returned slice is owned by the caller.
	ReadRange(ctx context.Context, start, end uint64) ([]byte, error)

	// Size returns the total byte size of the file.
	Size(ctx context.Context) (uint64, error)

	// Name identifies the source for logs and cache keys, e.g. a path
	// or URL.
	Name() string
}

// FileSource reads ranges from a local file through ReadAt.
type FileSource struct {
	f    *os.File
	path string
	size uint64
}

var _ Source = (*FileSource)(nil)

// OpenFile opens a local snapshot file as a Source. Close releases it.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open snapshot file")
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()

		return nil, errors.Wrap(err, "stat snapshot file")
	}

	return &FileSource{f: f, path: path, size: uint64(st.Size())}, nil //nolint:gosec // regular file sizes are non-negative
}

// ReadRange returns bytes [start, end) of the file.
func (s *FileSource) ReadRange(_ context.Context, start, end uint64) ([]byte, error) {
	if end < start || end > s.size {
		return nil, errors.Errorf("range [%d, %d) outside file of %d bytes", start, end, s.size)
	}

	buf := make([]byte, end-start)
	if _, err := s.f.ReadAt(buf, int64(start)); err != nil { //nolint:gosec
		return nil, errors.Wrapf(err, "read range [%d, %d)", start, end)
	}

	return buf, nil
}

// Size returns the file size.
func (s *FileSource) Size(context.Context) (uint64, error) {
	return s.size, nil
}

// Name returns the file path.
func (s *FileSource) Name() string {
	return s.path
}

// Close closes the underlying file.
func (s *FileSource) Close() error {
	return s.f.Close()
}

// BytesSource serves ranges from an in-memory buffer. Used for tests and
// for files already loaded (and decompressed) whole.
type BytesSource struct {
	name string
	data []byte
}

var _ Source = (*BytesSource)(nil)

// NewBytesSource wraps an in-memory snapshot buffer as a Source.
func NewBytesSource(name string, data []byte) *BytesSource {
	return &BytesSource{name: name, data: data}
}

// ReadRange returns a copy of bytes [start, end).
func (s *BytesSource) ReadRange(_ context.Context, start, end uint64) ([]byte, error) {
	if end < start || end > uint64(len(s.data)) {
		return nil, errors.Errorf("range [%d, %d) outside buffer of %d bytes", start, end, len(s.data))
	}

	buf := make([]byte, end-start)
	copy(buf, s.data[start:end])

	return buf, nil
}

// Size returns the buffer size.
func (s *BytesSource) Size(context.Context) (uint64, error) {
	return uint64(len(s.data)), nil
}

// Name returns the source name.
func (s *BytesSource) Name() string {
	return s.name
}
