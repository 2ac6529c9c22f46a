package volume

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/blackbirdforensics/croweye/internal/logging"
)

// buildTestImage writes a minimal synthetic NTFS-shaped image: a boot
// sector at offset 0 and totalRecords records of recSize bytes starting
// at the MFT cluster, the first validRecords of which are "FILE"-signed and valid.
func buildTestImage(t *testing.T, validRecords, totalRecords int) string {
	t.Helper()

	const bytesPerSector = 512
	const sectorsPerCluster = 1
	const mftCluster = 2
	const recSize = 1024 // clustersPerRecord = -10 -> 1<<10 = 1024

	dir := t.TempDir()
	path := filepath.Join(dir, "image.dd")

	mftOffset := int64(mftCluster) * bytesPerSector * sectorsPerCluster
	totalSize := mftOffset + int64(totalRecords*recSize)
	buf := make([]byte, totalSize)

	boot := buildBootSector(bytesPerSector, sectorsPerCluster, mftCluster, -10)
	copy(buf[0:bootSectorMinSize], boot)

	for i := 0; i < validRecords; i++ {
		start := mftOffset + int64(i*recSize)
		copy(buf[start:start+4], []byte("FILE"))
		// usa offset = 48 (valid), first attr offset = 56 (valid)
		buf[start+4] = 48
		buf[start+20] = 56
	}

	if err := os.WriteFile(path, buf, 0o600); err != nil {
		t.Fatalf("write test image: %v", err)
	}
	return path
}

func TestFileVolumeReaderGeometryAndSlackScan(t *testing.T) {
	path := buildTestImage(t, 3, 5)
	r, err := OpenFile(path, 0, logging.Discard())
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer r.Close()

	geom := r.Geometry()
	if geom.MftRecordSize != 1024 {
		t.Fatalf("got record size %d want 1024", geom.MftRecordSize)
	}

	found, err := r.ScanSlackSpace(3, 5)
	if err != nil {
		t.Fatalf("ScanSlackSpace: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("expected no valid records in slack (none were signed), got %v", found)
	}
}

func TestFileVolumeReaderSlackScanEmptyRangeReturnsNothing(t *testing.T) {
	path := buildTestImage(t, 5, 5)
	r, err := OpenFile(path, 0, logging.Discard())
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer r.Close()

	// All 5 records are validly signed; scanning an empty range
	// [5,5) must return nothing (spec.md §8 boundary behavior).
	found, err := r.ScanSlackSpace(5, 5)
	if err != nil {
		t.Fatalf("ScanSlackSpace: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("expected empty slack scan over an empty range, got %v", found)
	}
}

func TestFileVolumeReaderReadMftRecord(t *testing.T) {
	path := buildTestImage(t, 3, 5)
	r, err := OpenFile(path, 0, logging.Discard())
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer r.Close()

	data, err := r.ReadMftRecord(0)
	if err != nil {
		t.Fatalf("ReadMftRecord: %v", err)
	}
	if string(data[0:4]) != "FILE" {
		t.Errorf("expected FILE signature, got %q", data[0:4])
	}
}

func TestIsValidFileRecordRejectsBadSignature(t *testing.T) {
	path := buildTestImage(t, 0, 1)
	r, err := OpenFile(path, 0, logging.Discard())
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer r.Close()

	data, err := r.ReadMftRecord(0)
	if err != nil {
		t.Fatalf("ReadMftRecord: %v", err)
	}
	if r.IsValidFileRecord(data) {
		t.Error("expected unsigned record to be invalid")
	}
}

func TestIsValidFileRecordRejectsFixupOffsetBelow48(t *testing.T) {
	path := buildTestImage(t, 1, 1)
	r, err := OpenFile(path, 0, logging.Discard())
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer r.Close()

	data, err := r.ReadMftRecord(0)
	if err != nil {
		t.Fatalf("ReadMftRecord: %v", err)
	}
	if !r.IsValidFileRecord(data) {
		t.Fatal("expected the fixture's usaOffset=48 record to be valid before mutation")
	}

	binary.LittleEndian.PutUint16(data[4:6], 42) // in [42,48): accepted pre-fix, must be rejected now
	if r.IsValidFileRecord(data) {
		t.Error("expected a fixup offset of 42 to be rejected (spec.md §4.1 requires [48, record_size))")
	}
}
