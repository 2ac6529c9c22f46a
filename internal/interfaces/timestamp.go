// File: internal/interfaces/timestamp.go
package interfaces

import (
	"time"

	"github.com/blackbirdforensics/croweye/internal/types"
)

// TimestampEngine detects timestamp columns and parses mixed-format
// timestamp values (spec.md §4.6, component C6).
type TimestampEngine interface {
	// Parse attempts every format in spec.md §4.6's order and returns the
	// UTC time and the format that succeeded. ok is false ("no time") for
	// any value that does not parse or resolves outside [1990, 2100] when
	// called from column sampling; Parse itself does not enforce the
	// sampling year window (DetectColumn does).
	Parse(value any) (t time.Time, format types.TimestampFormat, ok bool)

	// DetectColumn samples up to maxSamples non-null values and reports
	// whether the column qualifies as a timestamp column per spec.md
	// §4.6 (>=80% parse and resolve into [1990, 2100]).
	DetectColumn(name string, values []any, maxSamples int, successThreshold float64) (types.TimestampColumnInfo, bool)
}
