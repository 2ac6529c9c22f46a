// File: internal/interfaces/store.go
package interfaces

import "github.com/blackbirdforensics/croweye/internal/types"

// ArtifactStore persists normalized records into the relational store
// (spec.md §4.4, component C4).
type ArtifactStore interface {
	// InsertMftRecords bulk-inserts MFT records and their child attribute
	// rows in batches, ignoring duplicates on the primary key.
	InsertMftRecords(records []*types.MftRecord) (inserted int, err error)

	// InsertUsnEvents bulk-inserts USN events, ignoring duplicates on
	// (volume_id, usn).
	InsertUsnEvents(events []types.UsnEvent) (inserted int, err error)

	// InsertUsnGaps bulk-inserts detected journal gaps.
	InsertUsnGaps(gaps []types.UsnGap) (inserted int, err error)

	// InsertCorrelated bulk-inserts correlated rows, ignoring duplicates
	// on the unique constraint.
	InsertCorrelated(records []types.CorrelatedRecord) (inserted int, err error)

	// InsertFilenameChanges bulk-inserts detected renames.
	InsertFilenameChanges(changes []types.FilenameChange) (inserted int, err error)

	// Close releases the underlying database connection.
	Close() error
}
