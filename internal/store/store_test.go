package store

import (
	"path/filepath"
	"testing"

	"github.com/blackbirdforensics/croweye/internal/config"
	"github.com/blackbirdforensics/croweye/internal/logging"
	"github.com/blackbirdforensics/croweye/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	cfg := config.Default()
	s, err := Open(path, cfg, logging.Discard())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertMftRecordsIsIdempotent(t *testing.T) {
	s := openTestStore(t)

	rec := &types.MftRecord{
		VolumeID:     "C:",
		RecordNumber: 5,
		InUse:        true,
		Attributes: []types.MftAttribute{
			types.FileNameAttr{Name: "foo.txt", Namespace: types.NamespaceWin32},
		},
	}
	rec.PopulateDerivedFields()

	n, err := s.InsertMftRecords([]*types.MftRecord{rec})
	if err != nil {
		t.Fatalf("InsertMftRecords: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 inserted, got %d", n)
	}

	// Re-inserting the same record_number+volume_letter must be ignored,
	// not error (spec.md §4.4 "bulk INSERT OR IGNORE").
	n, err = s.InsertMftRecords([]*types.MftRecord{rec})
	if err != nil {
		t.Fatalf("InsertMftRecords (duplicate): %v", err)
	}
	if n != 0 {
		t.Errorf("expected duplicate insert to affect 0 rows, got %d", n)
	}
}

func TestInsertUsnEventsAndGaps(t *testing.T) {
	s := openTestStore(t)

	events := []types.UsnEvent{
		{VolumeID: "C:", Usn: 100, FileName: "a.txt"},
		{VolumeID: "C:", Usn: 200, FileName: "b.txt"},
	}
	n, err := s.InsertUsnEvents(events)
	if err != nil {
		t.Fatalf("InsertUsnEvents: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 inserted, got %d", n)
	}

	gaps := []types.UsnGap{{VolumeID: "C:", GapStartUsn: 100, GapEndUsn: 200, GapSize: 100}}
	n, err = s.InsertUsnGaps(gaps)
	if err != nil {
		t.Fatalf("InsertUsnGaps: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 gap inserted, got %d", n)
	}
}

func TestInsertCorrelated(t *testing.T) {
	s := openTestStore(t)

	rows := []types.CorrelatedRecord{
		{
			MftRecordNumber:       5,
			FnFilename:            "foo.txt",
			ReconstructedPath:     `C:\foo.txt`,
			CorrelationConfidence: types.ConfidenceHigh,
		},
	}
	n, err := s.InsertCorrelated(rows)
	if err != nil {
		t.Fatalf("InsertCorrelated: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 inserted, got %d", n)
	}
}

func TestBatchSizeChunksInserts(t *testing.T) {
	s := openTestStore(t)
	s.cfg.BatchSize = 1 // force two separate transactions for two records

	records := []*types.MftRecord{
		{VolumeID: "C:", RecordNumber: 1},
		{VolumeID: "C:", RecordNumber: 2},
	}
	for _, r := range records {
		r.PopulateDerivedFields()
	}
	n, err := s.InsertMftRecords(records)
	if err != nil {
		t.Fatalf("InsertMftRecords: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 inserted across batches, got %d", n)
	}
}
