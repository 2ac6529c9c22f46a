// File: internal/interfaces/usn.go
package interfaces

import "github.com/blackbirdforensics/croweye/internal/types"

// UsnReader queries and streams USN journal entries (spec.md §4.3,
// component C3).
type UsnReader interface {
	// Run streams the journal, invoking onEvent for each retained record
	// and onGap for each detected wrap gap, until the journal is drained,
	// a timeout/stall fires, or ctx is cancelled. Returns aggregate stats.
	Run(onEvent func(types.UsnEvent) error, onGap func(types.UsnGap) error) (UsnStats, error)
}

// UsnStats summarizes one USN read pass.
type UsnStats struct {
	EventsEmitted   uint64
	EventsExcluded  uint64
	GapsDetected    uint64
	StartUsn        uint64
	FinalUsn        uint64
	StoppedReason   string
}
