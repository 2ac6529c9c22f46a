// File: internal/interfaces/mft.go
package interfaces

import "github.com/blackbirdforensics/croweye/internal/types"

// MftParser decodes raw MFT record bytes into normalized records
// (spec.md §4.2, component C2).
type MftParser interface {
	// ParseRecord decodes one raw MFT record. ok is false (with a nil
	// error) when the record lacks the FILE signature and is skipped
	// silently; a record that is not in use still parses (ok true,
	// InUse false). err is non-nil only for a genuine MftParsingError that
	// the caller should count and log, per spec.md §7.
	ParseRecord(volumeID string, recordNumber uint64, data []byte) (rec *types.MftRecord, ok bool, err error)
}
