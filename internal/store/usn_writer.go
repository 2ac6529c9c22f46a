// File: internal/store/usn_writer.go
package store

import (
	"fmt"
	"time"

	"github.com/blackbirdforensics/croweye/internal/types"
)

// InsertUsnEvents bulk-inserts USN events, ignoring duplicates on
// (volume_id, usn) (spec.md §4.4).
func (s *Store) InsertUsnEvents(events []types.UsnEvent) (int, error) {
	return chunk(len(events), s.batchSize(), func(start, end int) (int, error) {
		return s.insertUsnBatch(events[start:end])
	})
}

func (s *Store) insertUsnBatch(batch []types.UsnEvent) (int, error) {
	const cols = 13
	args := make([]interface{}, 0, len(batch)*cols)
	now := isoTextFromTime(recordedAt())
	for _, e := range batch {
		args = append(args,
			e.VolumeID, e.FileName, e.Usn, e.MajorVersion,
			e.FileRef.RecordNumber, e.ParentFileRef.RecordNumber,
			isoText(e.Timestamp), e.Reason, e.SourceInfo, e.SecurityID, e.FileAttributes,
			0, // record_length: not retained on types.UsnEvent, the Store does not need it for correlation
			now,
		)
	}
	stmt := `INSERT OR IGNORE INTO journal_events (
		volume_letter, filename, usn, major_version, frn, parent_frn,
		timestamp, reason, source_info, security_id, file_attributes,
		record_length, inserted_at
	) VALUES ` + placeholders(len(batch), cols)
	res, err := s.db.Exec(stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("store: insert journal_events: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// InsertUsnGaps bulk-inserts detected journal gaps.
func (s *Store) InsertUsnGaps(gaps []types.UsnGap) (int, error) {
	return chunk(len(gaps), s.batchSize(), func(start, end int) (int, error) {
		return s.insertGapBatch(gaps[start:end])
	})
}

func (s *Store) insertGapBatch(batch []types.UsnGap) (int, error) {
	const cols = 5
	args := make([]interface{}, 0, len(batch)*cols)
	for _, g := range batch {
		args = append(args, g.VolumeID, g.GapStartUsn, g.GapEndUsn, g.GapSize, isoText(g.DetectionTime))
	}
	stmt := `INSERT OR IGNORE INTO deleted_entries (
		volume_letter, gap_start_usn, gap_end_usn, gap_size, detection_timestamp
	) VALUES ` + placeholders(len(batch), cols)
	res, err := s.db.Exec(stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("store: insert deleted_entries: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// recordedAt is factored out so a future caller could stub "now" in tests;
// production always uses the wall clock.
var recordedAt = time.Now
