//go:build !windows

// File: internal/volume/device_other.go
//
// Non-Windows stub, grounded on mattetti-cocoa's GOOS-conditional split
// (darwin implementation vs. non_darwin_noop.go). Raw device access
// requires GOOS=windows; other hosts still build and test via
// FileVolumeReader (file.go) against volume images.
package volume

import (
	"fmt"

	"github.com/go-logr/logr"
)

// OpenDevice always fails on non-Windows hosts: raw \\.\<letter>: device
// paths are a Windows-only concept (spec.md §4.1, §6 "Inputs").
func OpenDevice(letter string, log logr.Logger) (*base, error) {
	return nil, newAccessError("open_device", fmt.Sprintf("letter=%s", letter), fmt.Errorf("raw volume access requires GOOS=windows"))
}
