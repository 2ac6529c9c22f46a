// File: pkg/app/parse/types.go
package parse

import (
	"time"

	"github.com/blackbirdforensics/croweye/pkg/app"
)

// Request is the input to a parse_volume run (spec.md §4.1+§4.2+§4.4,
// component chain C1→C2→C4).
type Request struct {
	Target VolumeTargetAlias

	// StorePath is the on-disk mft_claw_analysis.db to create/append to.
	StorePath string

	// ImagePath, if set, parses a raw volume image file instead of the
	// live \\.\<letter>: device (spec.md §4.1 FileVolumeReader addition).
	ImagePath   string
	ImageOffset int64

	// IncludeSlack scans MFT slack space for recoverable deleted records
	// after the logical pass completes (spec.md §4.1 "scan_slack_space").
	IncludeSlack bool
}

// VolumeTargetAlias is app.VolumeTarget under a package-local name.
type VolumeTargetAlias = app.VolumeTarget

// Response summarizes one completed parse run.
type Response struct {
	VolumeLetter      string        `json:"volume_letter"`
	StorePath         string        `json:"store_path"`
	RecordsParsed     int           `json:"records_parsed"`
	RecordsFailed     int           `json:"records_failed"`
	SlackRecordsFound int           `json:"slack_records_found"`
	AllocatedRecords  uint64        `json:"allocated_records"`
	Elapsed           time.Duration `json:"elapsed"`
}
