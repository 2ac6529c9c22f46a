// File: pkg/app/correlate/types.go
package correlate

import (
	"time"

	"github.com/blackbirdforensics/croweye/pkg/app"
)

// Request is the input to a correlate pass (spec.md §4.5, component C5).
// The MFT and USN stores are distinct physical files under one case
// directory (spec.md §6); USNStorePath's journal_events/deleted_entries
// rows are imported into MFTStorePath via Store.ImportTables before the
// join runs.
type Request struct {
	Target       app.VolumeTarget
	MFTStorePath string
	USNStorePath string
}

// Response summarizes one completed correlation pass.
type Response struct {
	VolumeLetter      string        `json:"volume_letter"`
	RowsWritten       int           `json:"rows_written"`
	FilenameChanges   int           `json:"filename_changes"`
	RecordsWithUsn    int           `json:"records_with_usn"`
	RecordsWithoutUsn int           `json:"records_without_usn"`
	ImportedUsnRows   int           `json:"imported_usn_rows"`
	Elapsed           time.Duration `json:"elapsed"`
}
