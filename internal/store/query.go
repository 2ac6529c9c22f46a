// File: internal/store/query.go
//
// Read helpers backing internal/correlator's join (spec.md §4.5). Kept on
// Store rather than raw SQL in the correlator package so every query
// embedding the schema's column names lives in one place.
package store

import (
	"fmt"

	"github.com/blackbirdforensics/croweye/internal/types"
)

// MftRow is one mft_records row joined with its standard-information
// attributes, the shape the correlator needs per record.
type MftRow struct {
	RecordNumber   uint64
	VolumeID       string
	SequenceNumber uint16
	IsDirectory    bool
	InUse          bool
	Flags          uint32
	SiCreated      string
	SiModified     string
	SiAccessed     string
	SiMftModified  string
	SiFileAttrs    uint32
}

// QueryMftForCorrelation returns every mft_records row for volumeID with
// its joined mft_standard_info fields.
func (s *Store) QueryMftForCorrelation(volumeID string) ([]MftRow, error) {
	rows, err := s.db.Query(`
		SELECT r.record_number, r.volume_letter, r.mft_sequence_number, r.is_directory, r.in_use,
		       r.flags,
		       COALESCE(si.created_time, ''), COALESCE(si.modified_time, ''),
		       COALESCE(si.accessed_time, ''), COALESCE(si.mft_modified_time, ''),
		       COALESCE(si.flags, 0)
		FROM mft_records r
		LEFT JOIN mft_standard_info si
		  ON si.record_number = r.record_number AND si.volume_letter = r.volume_letter
		WHERE r.volume_letter = ?
	`, volumeID)
	if err != nil {
		return nil, fmt.Errorf("store: query mft for correlation: %w", err)
	}
	defer rows.Close()

	var out []MftRow
	for rows.Next() {
		var m MftRow
		var isDir, inUse int
		if err := rows.Scan(&m.RecordNumber, &m.VolumeID, &m.SequenceNumber, &isDir, &inUse,
			&m.Flags, &m.SiCreated, &m.SiModified, &m.SiAccessed, &m.SiMftModified, &m.SiFileAttrs); err != nil {
			return nil, fmt.Errorf("store: scan mft correlation row: %w", err)
		}
		m.IsDirectory = isDir != 0
		m.InUse = inUse != 0
		out = append(out, m)
	}
	return out, rows.Err()
}

// QueryPrimaryFileNames returns one FileNameAttr per record_number, preferring
// a non-DOS namespace row (spec.md §4.5 "primary-name rows only, non-DOS
// preferred"), keyed by record number for path reconstruction and joining.
func (s *Store) QueryPrimaryFileNames(volumeID string) (map[uint64]types.FileNameAttr, error) {
	rows, err := s.db.Query(`
		SELECT record_number, file_name, namespace, parent_record_number, parent_sequence_number,
		       COALESCE(allocated_size, 0), COALESCE(real_size, 0), COALESCE(flags, 0)
		FROM mft_file_names
		WHERE volume_letter = ?
	`, volumeID)
	if err != nil {
		return nil, fmt.Errorf("store: query primary file names: %w", err)
	}
	defer rows.Close()

	out := make(map[uint64]types.FileNameAttr)
	for rows.Next() {
		var recordNumber uint64
		var name string
		var namespace types.Namespace
		var parentRecord uint64
		var parentSeq uint16
		var allocSize, realSize uint64
		var flags uint32
		if err := rows.Scan(&recordNumber, &name, &namespace, &parentRecord, &parentSeq, &allocSize, &realSize, &flags); err != nil {
			return nil, fmt.Errorf("store: scan primary file name: %w", err)
		}
		existing, ok := out[recordNumber]
		if ok && existing.Namespace != types.NamespaceDos {
			continue // already have a non-DOS name; keep it
		}
		if !ok || namespace != types.NamespaceDos {
			out[recordNumber] = types.FileNameAttr{
				Name:          name,
				Namespace:     namespace,
				ParentRef:     types.FileReference{RecordNumber: parentRecord, SequenceNumber: parentSeq},
				AllocatedSize: allocSize,
				RealSize:      realSize,
				Flags:         flags,
			}
		}
	}
	return out, rows.Err()
}

// QueryLatestUsnByRecord returns the most recent journal_events row per
// frn (the record_number extracted from the file reference), where "most
// recent" is highest usn (spec.md §4.5 "journal order").
func (s *Store) QueryLatestUsnByRecord(volumeID string) (map[uint64]types.UsnEvent, error) {
	rows, err := s.db.Query(`
		SELECT frn, usn, filename, COALESCE(timestamp, ''), reason, source_info, file_attributes
		FROM journal_events
		WHERE volume_letter = ?
		ORDER BY frn, usn ASC
	`, volumeID)
	if err != nil {
		return nil, fmt.Errorf("store: query latest usn by record: %w", err)
	}
	defer rows.Close()

	out := make(map[uint64]types.UsnEvent)
	for rows.Next() {
		var e types.UsnEvent
		var frn uint64
		var tsText string
		if err := rows.Scan(&frn, &e.Usn, &e.FileName, &tsText, &e.Reason, &e.SourceInfo, &e.FileAttributes); err != nil {
			return nil, fmt.Errorf("store: scan latest usn row: %w", err)
		}
		e.VolumeID = volumeID
		e.FileRef = types.FileReference{RecordNumber: frn}
		out[frn] = e // later rows (higher usn, per ORDER BY) overwrite earlier ones
	}
	return out, rows.Err()
}
