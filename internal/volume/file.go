// File: internal/volume/file.go
//
// FileVolumeReader backs VolumeReader with a plain *os.File at some byte
// offset. Used for raw volume images (.img/.dd) and by tests on any
// platform.
package volume

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
)

type fileSource struct {
	f      *os.File
	offset int64
	sz     int64
}

func (s *fileSource) readAt(offset int64, length int) ([]byte, error) {
	buf := make([]byte, length)
	n, err := s.f.ReadAt(buf, s.offset+offset)
	if err != nil && n < length {
		return nil, fmt.Errorf("short read: got %d of %d bytes: %w", n, length, err)
	}
	return buf, nil
}

func (s *fileSource) size() int64 { return s.sz }

func (s *fileSource) close() error { return s.f.Close() }

// OpenFile opens an image file read-only and parses its boot sector at
// byteOffset (0 for a bare .img/.dd, nonzero for a container embedded in
// a larger image).
func OpenFile(path string, byteOffset int64, log logr.Logger) (*base, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newAccessError("open_file", path, err)
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, newAccessError("stat_file", path, err)
	}

	src := &fileSource{f: f, offset: byteOffset, sz: stat.Size() - byteOffset}
	b, err := newBase(src, log)
	if err != nil {
		f.Close()
		return nil, err
	}
	return b, nil
}
