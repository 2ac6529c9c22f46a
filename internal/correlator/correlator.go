// File: internal/correlator/correlator.go
//
// Package correlator joins MFT records with their most recent USN event,
// reconstructs full paths, and tracks filename-change history
// (spec.md §4.5, component C5).
package correlator

import (
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/blackbirdforensics/croweye/internal/interfaces"
	"github.com/blackbirdforensics/croweye/internal/store"
	"github.com/blackbirdforensics/croweye/internal/types"
)

const correlateBatchSize = 1000

// dataSource is the read side the correlator needs; *store.Store
// satisfies it directly.
type dataSource interface {
	QueryMftForCorrelation(volumeID string) ([]store.MftRow, error)
	QueryPrimaryFileNames(volumeID string) (map[uint64]types.FileNameAttr, error)
	QueryLatestUsnByRecord(volumeID string) (map[uint64]types.UsnEvent, error)
	QueryFilenameChanges(volumeID string) ([]types.FilenameChange, error)
}

// Correlator implements interfaces.Correlator against a store.Store.
type Correlator struct {
	src   dataSource
	write interfaces.ArtifactStore
	log   logr.Logger
}

var _ interfaces.Correlator = (*Correlator)(nil)

// New builds a Correlator reading from and writing to the same store.
func New(s *store.Store, log logr.Logger) *Correlator {
	return &Correlator{src: s, write: s, log: log}
}

// Correlate runs the full join + path reconstruction + filename-change
// pass for one volume and writes results to the store (spec.md §4.5).
func (c *Correlator) Correlate(volumeID string) (interfaces.CorrelateStats, error) {
	var stats interfaces.CorrelateStats

	mftRows, err := c.src.QueryMftForCorrelation(volumeID)
	if err != nil {
		return stats, fmt.Errorf("correlator: load mft rows: %w", err)
	}
	names, err := c.src.QueryPrimaryFileNames(volumeID)
	if err != nil {
		return stats, fmt.Errorf("correlator: load file names: %w", err)
	}
	latestUsn, err := c.src.QueryLatestUsnByRecord(volumeID)
	if err != nil {
		return stats, fmt.Errorf("correlator: load latest usn events: %w", err)
	}

	timelines, evolutions, changeCount, err := c.trackFilenameChanges(volumeID)
	if err != nil {
		return stats, err
	}
	stats.FilenameChanges = changeCount

	resolver := newPathResolver(names)

	batch := make([]types.CorrelatedRecord, 0, correlateBatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := c.write.InsertCorrelated(batch)
		stats.RowsWritten += n
		batch = batch[:0]
		return err
	}

	for _, m := range mftRows {
		fn, hasName := names[m.RecordNumber]
		record := types.CorrelatedRecord{
			VolumeID:          volumeID,
			MftRecordNumber:   m.RecordNumber,
			MftSequenceNumber: m.SequenceNumber,
			MftFlags:          m.Flags,
			IsDirectory:       m.IsDirectory,
			IsDeleted:         !m.InUse,
			HasMftRecord:      true,
			SiFileAttributes:  m.SiFileAttrs,
		}
		if t, ok := parseTime(m.SiCreated); ok {
			record.SiCreated = t
		}
		if t, ok := parseTime(m.SiModified); ok {
			record.SiModified = t
		}
		if t, ok := parseTime(m.SiAccessed); ok {
			record.SiAccessed = t
		}
		if t, ok := parseTime(m.SiMftModified); ok {
			record.SiMftModified = t
		}

		if hasName {
			record.FnFilename = fn.Name
			record.FnNamespace = fn.Namespace
			record.FnParentRecordNumber = fn.ParentRef.RecordNumber
			record.FnParentSequenceNumber = fn.ParentRef.SequenceNumber
			record.FnAllocatedSize = fn.AllocatedSize
			record.FnRealSize = fn.RealSize
			record.FnFileAttributes = fn.Flags
			record.ReconstructedPath = resolver.resolve(m.RecordNumber)
		}

		if usn, ok := latestUsn[m.RecordNumber]; ok {
			record.HasUsnEvent = true
			record.UsnEventID = usn.Usn
			record.UsnTimestamp, _ = usn.Timestamp.Time()
			record.UsnReason = usn.Reason
			record.UsnSourceInfo = usn.SourceInfo
			record.UsnFileAttributes = usn.FileAttributes
			record.CorrelationConfidence = types.ConfidenceHigh
			stats.RecordsWithUsn++
		} else {
			record.CorrelationConfidence = types.ConfidenceMedium
			stats.RecordsWithoutUsn++
		}

		record.FilenameChangeTimeline = timelines[m.RecordNumber]
		record.NamespaceEvolution = evolutions[m.RecordNumber]

		batch = append(batch, record)
		if len(batch) >= correlateBatchSize {
			if err := flush(); err != nil {
				return stats, fmt.Errorf("correlator: write batch: %w", err)
			}
		}
	}
	if err := flush(); err != nil {
		return stats, fmt.Errorf("correlator: write final batch: %w", err)
	}

	return stats, nil
}

// parseTime parses the store.TimestampLayout UTC text the store persists
// timestamps as; an empty or malformed value reports ok=false.
func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(store.TimestampLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
