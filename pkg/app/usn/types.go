// File: pkg/app/usn/types.go
package usn

import (
	"time"

	"github.com/blackbirdforensics/croweye/pkg/app"
)

// Request is the input to a run_usn/stream_usn pass (spec.md §4.3+§4.4,
// component chain C1->C3->C4).
type Request struct {
	Target    app.VolumeTarget
	StorePath string

	// StartUsn resumes a prior read; 0 starts from the journal's current
	// FirstUsn (spec.md §4.3 "Input").
	StartUsn uint64

	// Stream keeps the reader running, polling for new records instead of
	// stopping at clean EOF (CLI --stream flag, spec.md §4.11).
	Stream bool
}

// Response summarizes one USN run; with --stream, its counts accumulate
// across polling cycles until the context is cancelled or a cycle stops
// for a reason other than EOF.
type Response struct {
	VolumeLetter   string        `json:"volume_letter"`
	StorePath      string        `json:"store_path"`
	EventsEmitted  uint64        `json:"events_emitted"`
	EventsExcluded uint64        `json:"events_excluded"`
	GapsDetected   uint64        `json:"gaps_detected"`
	StartUsn       uint64        `json:"start_usn"`
	FinalUsn       uint64        `json:"final_usn"`
	StoppedReason  string        `json:"stopped_reason"`
	Elapsed        time.Duration `json:"elapsed"`
}
