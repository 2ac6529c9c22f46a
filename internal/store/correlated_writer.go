// File: internal/store/correlated_writer.go
package store

import (
	"fmt"

	"github.com/blackbirdforensics/croweye/internal/types"
)

const correlatedCols = 32

// InsertCorrelated bulk-inserts correlated rows, ignoring duplicates on
// the unique constraint (spec.md §4.4, §4.5).
func (s *Store) InsertCorrelated(records []types.CorrelatedRecord) (int, error) {
	return chunk(len(records), s.batchSize(), func(start, end int) (int, error) {
		return s.insertCorrelatedBatch(records[start:end])
	})
}

func (s *Store) insertCorrelatedBatch(batch []types.CorrelatedRecord) (int, error) {
	args := make([]interface{}, 0, len(batch)*correlatedCols)
	for _, c := range batch {
		args = append(args,
			c.MftRecordNumber, c.FnFilename, c.ReconstructedPath,
			c.MftSequenceNumber, c.MftFlags, boolToInt(c.IsDirectory), boolToInt(c.IsDeleted),
			isoTextFromTime(c.SiCreated), isoTextFromTime(c.SiModified), isoTextFromTime(c.SiAccessed), isoTextFromTime(c.SiMftModified),
			c.SiFileAttributes,
			c.FnParentRecordNumber, c.FnParentSequenceNumber,
			isoTextFromTime(c.FnCreated), isoTextFromTime(c.FnModified), isoTextFromTime(c.FnMftModified), isoTextFromTime(c.FnAccessed),
			c.FnAllocatedSize, c.FnRealSize, c.FnFileAttributes, c.FnNamespace,
			c.UsnEventID, isoTextFromTime(c.UsnTimestamp), c.UsnReason, c.UsnSourceInfo, c.UsnFileAttributes,
			boolToInt(c.HasMftRecord), boolToInt(c.HasUsnEvent),
			string(c.CorrelationConfidence), c.FilenameChangeTimeline, c.NamespaceEvolution,
		)
	}
	stmt := `INSERT OR IGNORE INTO mft_usn_correlated (
		mft_record_number, fn_filename, reconstructed_path,
		mft_sequence_number, mft_flags, is_directory, is_deleted,
		si_created_time, si_modified_time, si_accessed_time, si_mft_modified_time,
		si_file_attributes,
		fn_parent_record_number, fn_parent_sequence_number,
		fn_created_time, fn_modified_time, fn_mft_modified_time, fn_accessed_time,
		fn_allocated_size, fn_real_size, fn_file_attributes, fn_namespace,
		usn_event_id, usn_timestamp, usn_reason, usn_source_info, usn_file_attributes,
		has_mft_record, has_usn_event,
		correlation_confidence, filename_change_timeline, namespace_evolution
	) VALUES ` + placeholders(len(batch), correlatedCols)
	res, err := s.db.Exec(stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("store: insert mft_usn_correlated: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// InsertFilenameChanges bulk-inserts detected renames (spec.md §4.5
// "Filename-change tracking").
func (s *Store) InsertFilenameChanges(changes []types.FilenameChange) (int, error) {
	return chunk(len(changes), s.batchSize(), func(start, end int) (int, error) {
		return s.insertFilenameChangeBatch(changes[start:end])
	})
}

func (s *Store) insertFilenameChangeBatch(batch []types.FilenameChange) (int, error) {
	const cols = 6
	args := make([]interface{}, 0, len(batch)*cols)
	for _, c := range batch {
		args = append(args, c.RecordNumber, c.VolumeID, c.OldFilename, c.NewFilename, isoTextFromTime(c.ChangeTimestamp), c.Namespace)
	}
	stmt := `INSERT INTO filename_changes (
		record_number, volume_letter, old_filename, new_filename, change_timestamp, namespace
	) VALUES ` + placeholders(len(batch), cols)
	res, err := s.db.Exec(stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("store: insert filename_changes: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// QueryFilenameChanges runs the window-function query that detects
// filename changes over mft_file_names: a fresh row whenever LAG(file_name)
// differs from file_name within (record_number, volume_letter), ordered by
// modified_time (spec.md §4.5).
func (s *Store) QueryFilenameChanges(volumeID string) ([]types.FilenameChange, error) {
	const query = `
		SELECT record_number, volume_letter, old_filename, new_filename, modified_time, namespace
		FROM (
			SELECT
				record_number,
				volume_letter,
				LAG(file_name) OVER (PARTITION BY record_number, volume_letter ORDER BY modified_time) AS old_filename,
				file_name AS new_filename,
				modified_time,
				namespace
			FROM mft_file_names
			WHERE volume_letter = ?
		)
		WHERE old_filename IS NOT NULL AND old_filename != new_filename
	`
	rows, err := s.db.Query(query, volumeID)
	if err != nil {
		return nil, fmt.Errorf("store: query filename changes: %w", err)
	}
	defer rows.Close()

	var out []types.FilenameChange
	for rows.Next() {
		var c types.FilenameChange
		var changeTS string
		if err := rows.Scan(&c.RecordNumber, &c.VolumeID, &c.OldFilename, &c.NewFilename, &changeTS, &c.Namespace); err != nil {
			return nil, fmt.Errorf("store: scan filename change: %w", err)
		}
		if t, ok := parseISOText(changeTS); ok {
			c.ChangeTimestamp = t
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
