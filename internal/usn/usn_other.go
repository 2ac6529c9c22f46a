//go:build !windows

// File: internal/usn/usn_other.go
package usn

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
)

// OpenDeviceJournal is unavailable off Windows: USN journals are an NTFS/
// Windows-only concept (spec.md §4.3 "Non-goals").
func OpenDeviceJournal(ctx context.Context, letter string, startUsn uint64, log logr.Logger) (*Reader, error) {
	return nil, fmt.Errorf("usn: reading the live USN journal requires Windows (got device %q)", letter)
}
