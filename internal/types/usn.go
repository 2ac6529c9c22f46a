package types

// USN_RECORD major version markers (spec.md §3, §4.3).
const (
	UsnMajorV2 = 2
	UsnMajorV3 = 3
)

// USN reason bits (subset named in spec.md §3; the rest decode via the
// reasons table in internal/usn).
const (
	UsnReasonDataOverwrite    uint32 = 0x00000001
	UsnReasonDataExtend       uint32 = 0x00000002
	UsnReasonDataTruncation   uint32 = 0x00000004
	UsnReasonFileCreate       uint32 = 0x00000100
	UsnReasonFileDelete       uint32 = 0x00000200
	UsnReasonRename           uint32 = 0x00002000 // NEW_NAME half; OLD_NAME is 0x00001000
	UsnReasonRenameOldName    uint32 = 0x00001000
	UsnReasonClose            uint32 = 0x80000000
)

// UsnEvent is one parsed USN journal record (spec.md §3).
type UsnEvent struct {
	VolumeID      string
	Usn           uint64
	MajorVersion  uint16
	FileRef       FileReference
	FileRefHex    string // v3 only: 128-bit FileId rendered as hex
	ParentFileRef FileReference
	ParentRefHex  string // v3 only
	Timestamp     FileTime
	Reason        uint32
	SourceInfo    uint32
	SecurityID    uint32
	FileAttributes uint32
	FileName      string

	// Decoded bitset names, populated by internal/usn's reason decoder.
	ReasonNames     []string
	SourceInfoNames []string
}

// RecordNumber extracts the MFT record number from a USN file reference:
// the lower 48 bits for v2 events (spec.md §4.5 "USN -> MFT mapping").
func (e UsnEvent) RecordNumber() uint64 {
	return e.FileRef.RecordNumber & 0xFFFFFFFFFFFF
}

// UsnGap records a detected discontinuity in the USN stream caused by
// journal wrap (spec.md §3).
type UsnGap struct {
	VolumeID       string
	GapStartUsn    uint64
	GapEndUsn      uint64
	GapSize        uint64
	DetectionTime  FileTime
}
