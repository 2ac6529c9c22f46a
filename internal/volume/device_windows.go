//go:build windows

// File: internal/volume/device_windows.go
//
// Raw Windows volume access over \\.\<letter>: device paths, per spec.md
// §4.1.
package volume

import (
	"fmt"

	"github.com/go-logr/logr"
	"golang.org/x/sys/windows"
)

type deviceSource struct {
	handle windows.Handle
	sz     int64
}

func (s *deviceSource) readAt(offset int64, length int) ([]byte, error) {
	var newPos int64
	if err := windows.SetFilePointerEx(s.handle, offset, &newPos, windows.FILE_BEGIN); err != nil {
		return nil, fmt.Errorf("seek to %d: %w", offset, err)
	}
	buf := make([]byte, length)
	var read uint32
	if err := windows.ReadFile(s.handle, buf, &read, nil); err != nil {
		return nil, fmt.Errorf("read %d bytes at %d: %w", length, offset, err)
	}
	if int(read) != length {
		return nil, fmt.Errorf("short read at %d: got %d of %d bytes", offset, read, length)
	}
	return buf, nil
}

func (s *deviceSource) size() int64 { return s.sz }

func (s *deviceSource) close() error {
	return windows.CloseHandle(s.handle)
}

// OpenDevice opens "\\.\<letter>:" for generic read, shared
// read/write/delete, per spec.md §4.1. Fails with AccessError otherwise.
func OpenDevice(letter string, log logr.Logger) (*base, error) {
	path := fmt.Sprintf(`\\.\%s:`, letter)
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, newAccessError("open_device", path, err)
	}

	handle, err := windows.CreateFile(
		pathPtr,
		windows.GENERIC_READ,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		0,
		0,
	)
	if err != nil {
		return nil, newAccessError("open_device", path, err)
	}

	src := &deviceSource{handle: handle, sz: -1}
	b, err := newBase(src, log)
	if err != nil {
		windows.CloseHandle(handle)
		return nil, err
	}
	return b, nil
}
