// File: internal/store/mft_writer.go
package store

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/blackbirdforensics/croweye/internal/types"
)

const mftRecordCols = 16

// InsertMftRecords bulk-inserts MFT records and their child attribute rows
// in batches, ignoring duplicates on the primary key (spec.md §4.4).
func (s *Store) InsertMftRecords(records []*types.MftRecord) (int, error) {
	return chunk(len(records), s.batchSize(), func(start, end int) (int, error) {
		return s.insertMftBatch(records[start:end])
	})
}

func (s *Store) insertMftBatch(batch []*types.MftRecord) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("store: begin mft batch: %w", err)
	}
	defer tx.Rollback()

	args := make([]interface{}, 0, len(batch)*mftRecordCols)
	for _, r := range batch {
		si, _ := r.StandardInformation()
		ext := strings.TrimPrefix(filepath.Ext(r.PrimaryFilename), ".")
		args = append(args,
			r.RecordNumber, r.VolumeID, r.PrimaryFilename, ext, r.FileSize,
			boolToInt(r.InUse), boolToInt(r.IsDirectory), recordFlags(r), r.SequenceNumber,
			boolToInt(r.HasADS), r.ADSCount,
			isoText(si.Created), isoText(si.Modified), isoText(si.Accessed), isoText(si.MftModified),
			si.Flags,
		)
	}
	stmt := `INSERT OR IGNORE INTO mft_records (
		record_number, volume_letter, file_name, extension, file_size,
		in_use, is_directory, flags, mft_sequence_number,
		has_ads, ads_count,
		created_time, modified_time, accessed_time, mft_modified_time,
		file_attributes
	) VALUES ` + placeholders(len(batch), mftRecordCols)
	res, err := tx.Exec(stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("store: insert mft_records: %w", err)
	}

	if err := s.insertStandardInfo(tx, batch); err != nil {
		return 0, err
	}
	if err := s.insertFileNames(tx, batch); err != nil {
		return 0, err
	}
	if err := s.insertDataAttributes(tx, batch); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: commit mft batch: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// recordFlags re-encodes the MFT record header's in-use/directory bits so
// the stored `flags` column matches the raw NTFS semantics even though
// types.MftRecord exposes them as separate booleans.
func recordFlags(r *types.MftRecord) uint16 {
	var f uint16
	if r.InUse {
		f |= 0x1
	}
	if r.IsDirectory {
		f |= 0x2
	}
	return f
}

func (s *Store) insertStandardInfo(tx txExecer, batch []*types.MftRecord) error {
	const cols = 11
	var args []interface{}
	var rows int
	for _, r := range batch {
		si, ok := r.StandardInformation()
		if !ok {
			continue
		}
		rows++
		args = append(args,
			r.RecordNumber, r.VolumeID,
			isoText(si.Created), isoText(si.Modified), isoText(si.Accessed), isoText(si.MftModified),
			si.Flags, si.OwnerID, si.SecurityID, si.QuotaCharged, si.Usn,
		)
	}
	if rows == 0 {
		return nil
	}
	stmt := `INSERT OR IGNORE INTO mft_standard_info (
		record_number, volume_letter,
		created_time, modified_time, accessed_time, mft_modified_time,
		flags, owner_id, security_id, quota_charged, usn
	) VALUES ` + placeholders(rows, cols)
	if _, err := tx.Exec(stmt, args...); err != nil {
		return fmt.Errorf("store: insert mft_standard_info: %w", err)
	}
	return nil
}

func (s *Store) insertFileNames(tx txExecer, batch []*types.MftRecord) error {
	const cols = 13
	var args []interface{}
	var rows int
	for _, r := range batch {
		for _, fn := range r.FileNames() {
			rows++
			args = append(args,
				r.RecordNumber, r.VolumeID, fn.Name, fn.Namespace,
				fn.ParentRef.RecordNumber, fn.ParentRef.SequenceNumber,
				isoText(fn.Created), isoText(fn.Modified), isoText(fn.Accessed), isoText(fn.MftModified),
				fn.AllocatedSize, fn.RealSize, fn.Flags,
			)
		}
	}
	if rows == 0 {
		return nil
	}
	stmt := `INSERT OR IGNORE INTO mft_file_names (
		record_number, volume_letter, file_name, namespace,
		parent_record_number, parent_sequence_number,
		created_time, modified_time, accessed_time, mft_modified_time,
		allocated_size, real_size, flags
	) VALUES ` + placeholders(rows, cols)
	if _, err := tx.Exec(stmt, args...); err != nil {
		return fmt.Errorf("store: insert mft_file_names: %w", err)
	}
	return nil
}

func (s *Store) insertDataAttributes(tx txExecer, batch []*types.MftRecord) error {
	const cols = 6
	var args []interface{}
	var rows int
	for _, r := range batch {
		for _, d := range r.DataAttributes() {
			rows++
			args = append(args, r.RecordNumber, r.VolumeID, d.Name, boolToInt(d.Resident), d.Size(), d.NonResidentAllocSize)
		}
	}
	if rows == 0 {
		return nil
	}
	stmt := `INSERT OR IGNORE INTO mft_data_attributes (
		record_number, volume_letter, stream_name, resident, logical_size, allocated_size
	) VALUES ` + placeholders(rows, cols)
	if _, err := tx.Exec(stmt, args...); err != nil {
		return fmt.Errorf("store: insert mft_data_attributes: %w", err)
	}
	return nil
}
