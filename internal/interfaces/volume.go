// File: internal/interfaces/volume.go
package interfaces

import "github.com/blackbirdforensics/croweye/internal/types"

// VolumeReader opens a volume read-only and exposes sector/cluster/MFT
// record reads (spec.md §4.1, component C1).
type VolumeReader interface {
	// Geometry returns the volume's parsed boot-sector geometry.
	Geometry() types.VolumeGeometry

	// ReadSectors reads count sectors starting at sector start.
	ReadSectors(start uint64, count uint32) ([]byte, error)

	// ReadMftRecord reads the raw bytes of MFT record n.
	ReadMftRecord(n uint64) ([]byte, error)

	// MftSize reports the logical and allocated size of the MFT, in both
	// records and bytes.
	MftSize() (logicalRecords, logicalBytes, allocatedRecords, allocatedBytes uint64, err error)

	// IsValidFileRecord checks the FILE signature and basic plausibility
	// of a record's fixup-array and first-attribute offsets.
	IsValidFileRecord(data []byte) bool

	// ScanSlackSpace returns every record number in [logicalRecords,
	// allocatedRecords) that passes IsValidFileRecord.
	ScanSlackSpace(logicalRecords, allocatedRecords uint64) ([]uint64, error)

	// Close releases the underlying volume handle.
	Close() error
}
