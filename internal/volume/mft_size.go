// File: internal/volume/mft_size.go
package volume

import (
	"github.com/blackbirdforensics/croweye/internal/mft"
)

// MftSize parses MFT record 0's unnamed DATA attribute to derive the
// logical and allocated record/byte counts (spec.md §4.1). If record 0
// cannot be parsed, it falls back to FallbackMftRecordCount and logs an
// error-level line rather than failing (spec.md Open Question, DESIGN.md).
func (b *base) MftSize() (logicalRecords, logicalBytes, allocatedRecords, allocatedBytes uint64, err error) {
	recSize := uint64(b.geometry.MftRecordSize)

	data, readErr := b.ReadMftRecord(0)
	if readErr == nil {
		parser := mft.NewParser()
		rec, ok, parseErr := parser.ParseRecord("", 0, data)
		if parseErr == nil && ok {
			for _, d := range rec.DataAttributes() {
				if d.Name != "" {
					continue
				}
				if d.Resident {
					logicalBytes = d.ResidentSize
					allocatedBytes = d.ResidentSize
				} else {
					logicalBytes = d.NonResidentLogicalSize
					allocatedBytes = d.NonResidentAllocSize
				}
				logicalRecords = logicalBytes / recSize
				allocatedRecords = allocatedBytes / recSize
				return logicalRecords, logicalBytes, allocatedRecords, allocatedBytes, nil
			}
		}
	}

	b.log.Error(readErr, "mft_size: record 0 unreadable or unparseable, falling back to conservative upper bound",
		"fallback_records", FallbackMftRecordCount)
	allocatedRecords = FallbackMftRecordCount
	allocatedBytes = allocatedRecords * recSize
	logicalRecords = allocatedRecords
	logicalBytes = allocatedBytes
	return logicalRecords, logicalBytes, allocatedRecords, allocatedBytes, nil
}
