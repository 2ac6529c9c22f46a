//go:build windows

// File: internal/usn/usn_windows.go
//
// FSCTL_QUERY_USN_JOURNAL / FSCTL_READ_USN_JOURNAL access, mirroring the
// open-handle/DeviceIoControl pattern internal/volume/device_windows.go
// uses for raw volume reads.
package usn

import (
	"context"
	"fmt"
	"syscall"
	"unsafe"

	"github.com/go-logr/logr"
	"golang.org/x/sys/windows"
)

const (
	fsctlQueryUsnJournal = 0x000900F4
	fsctlReadUsnJournal  = 0x000900BB

	readBufferSize = 64 * 1024

	// Win32 error codes DeviceIoControl can surface for these FSCTLs.
	errnoInvalidFunction      = syscall.Errno(1)
	errnoHandleEOF            = syscall.Errno(38)
	errnoNoMoreFiles          = syscall.Errno(18)
	errnoInvalidParameter     = syscall.Errno(87)
	errnoJournalNotActive     = syscall.Errno(1179)
	errnoJournalEntryDeleted  = syscall.Errno(1181)
)

// usnJournalData mirrors USN_JOURNAL_DATA_V0.
type usnJournalData struct {
	UsnJournalID uint64
	FirstUsn     int64
	NextUsn      int64
	LowestValidUsn int64
	MaxUsn         int64
	MaximumSize    uint64
	AllocationDelta uint64
}

// readUsnJournalData mirrors READ_USN_JOURNAL_DATA_V0.
type readUsnJournalData struct {
	StartUsn          int64
	ReasonMask        uint32
	ReturnOnlyOnClose  uint32
	Timeout            uint64
	BytesToWaitFor     uint64
	UsnJournalID       uint64
}

type windowsSource struct {
	handle windows.Handle
}

// OpenDeviceJournal opens the USN journal on "\\.\<letter>:" and returns a
// Reader positioned at startUsn (spec.md §4.3).
func OpenDeviceJournal(ctx context.Context, letter string, startUsn uint64, log logr.Logger) (*Reader, error) {
	path := fmt.Sprintf(`\\.\%s:`, letter)
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, fmt.Errorf("usn: encode device path %s: %w", path, err)
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
		return nil, fmt.Errorf("usn: open device %s: %w", path, err)
	}
	src := &windowsSource{handle: handle}
	return NewReader(ctx, src, letter, startUsn, log), nil
}

func (s *windowsSource) queryJournal() (uint64, uint64, error) {
	var data usnJournalData
	var bytesReturned uint32
	err := windows.DeviceIoControl(
		s.handle,
		fsctlQueryUsnJournal,
		nil, 0,
		(*byte)(unsafe.Pointer(&data)), uint32(unsafe.Sizeof(data)),
		&bytesReturned,
		nil,
	)
	if err != nil {
		if errno, ok := err.(syscall.Errno); ok && errno == errnoInvalidFunction {
			return 0, 0, ErrJournalNotActive
		}
		return 0, 0, fmt.Errorf("FSCTL_QUERY_USN_JOURNAL: %w", err)
	}
	return data.UsnJournalID, uint64(data.NextUsn), nil
}

func (s *windowsSource) readJournal(ctx context.Context, startUsn uint64, journalID uint64) ([]byte, error) {
	req := readUsnJournalData{
		StartUsn:   int64(startUsn),
		ReasonMask: 0xFFFFFFFF,
		Timeout:    0,
		UsnJournalID: journalID,
	}
	buf := make([]byte, readBufferSize)
	var bytesReturned uint32

	done := make(chan error, 1)
	go func() {
		done <- windows.DeviceIoControl(
			s.handle,
			fsctlReadUsnJournal,
			(*byte)(unsafe.Pointer(&req)), uint32(unsafe.Sizeof(req)),
			&buf[0], uint32(len(buf)),
			&bytesReturned,
			nil,
		)
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-done:
		if err != nil {
			return nil, mapWin32Error(err)
		}
		return buf[:bytesReturned], nil
	}
}

func (s *windowsSource) close() error {
	return windows.CloseHandle(s.handle)
}

func mapWin32Error(err error) error {
	errno, ok := err.(syscall.Errno)
	if !ok {
		return err
	}
	switch errno {
	case errnoHandleEOF:
		return ErrHandleEOF
	case errnoNoMoreFiles:
		return ErrNoData
	case errnoInvalidParameter:
		return ErrInvalidParameter
	case errnoJournalEntryDeleted:
		return ErrJournalEntryDeleted
	case errnoJournalNotActive:
		return ErrJournalNotActive
	default:
		return err
	}
}
