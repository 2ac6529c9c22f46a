package parse

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackbirdforensics/croweye/internal/config"
	"github.com/blackbirdforensics/croweye/pkg/app"
)

const (
	testBytesPerSector    = 512
	testSectorsPerCluster = 1
	testMftCluster        = 2
	testRecSize           = 1024
)

// buildBootSector writes the handful of NTFS boot-sector fields the
// geometry parser reads (internal/volume.ParseBootSector), mirroring the
// fixture internal/volume's own tests build for the same fields.
func buildBootSector() []byte {
	b := make([]byte, 512)
	copy(b[3:11], []byte("NTFS    "))
	binary.LittleEndian.PutUint16(b[0x0B:0x0D], testBytesPerSector)
	b[0x0D] = testSectorsPerCluster
	binary.LittleEndian.PutUint64(b[0x28:0x30], 65536)
	binary.LittleEndian.PutUint64(b[0x30:0x38], testMftCluster)
	binary.LittleEndian.PutUint64(b[0x38:0x40], testMftCluster+1)
	b[0x40] = 0xF6 // int8(-10): 1<<10 == 1024-byte records
	return b
}

// buildEmptyRecord writes a validly-signed, in-use FILE record with no
// attributes: first-attribute offset points straight at the sentinel.
func buildEmptyRecord() []byte {
	rec := make([]byte, testRecSize)
	copy(rec[0:4], []byte("FILE"))
	binary.LittleEndian.PutUint16(rec[4:6], 42) // usaOffset
	binary.LittleEndian.PutUint16(rec[20:22], 48)
	binary.LittleEndian.PutUint16(rec[22:24], 0x1) // in use
	binary.LittleEndian.PutUint32(rec[48:52], 0xFFFFFFFF)
	return rec
}

// buildSizingRecord writes record 0 with a single non-resident, unnamed
// DATA attribute declaring a 3*testRecSize logical/allocated size, which
// MftSize() divides by the record size to get 3 logical MFT records.
func buildSizingRecord(logicalRecords uint64) []byte {
	rec := buildEmptyRecord()
	const attrOffset = 56
	binary.LittleEndian.PutUint16(rec[20:22], attrOffset)

	const attrLen = 64
	binary.LittleEndian.PutUint32(rec[attrOffset:attrOffset+4], 0x80) // DATA
	binary.LittleEndian.PutUint32(rec[attrOffset+4:attrOffset+8], attrLen)
	rec[attrOffset+8] = 1 // non-resident
	rec[attrOffset+9] = 0 // unnamed

	size := logicalRecords * testRecSize
	binary.LittleEndian.PutUint64(rec[attrOffset+40:attrOffset+48], size) // alloc size
	binary.LittleEndian.PutUint64(rec[attrOffset+48:attrOffset+56], size) // logical size

	binary.LittleEndian.PutUint32(rec[attrOffset+attrLen:attrOffset+attrLen+4], 0xFFFFFFFF)
	return rec
}

// buildTestImage writes a boot sector plus totalRecords MFT records, the
// first declaring an MFT size of totalRecords records via its DATA
// attribute, the rest empty-but-valid FILE records.
func buildTestImage(t *testing.T, totalRecords uint64) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "image.dd")

	mftOffset := int64(testMftCluster) * testBytesPerSector * testSectorsPerCluster
	buf := make([]byte, mftOffset+int64(totalRecords)*testRecSize)
	copy(buf[0:512], buildBootSector())

	copy(buf[mftOffset:mftOffset+testRecSize], buildSizingRecord(totalRecords))
	for i := uint64(1); i < totalRecords; i++ {
		start := mftOffset + int64(i)*testRecSize
		copy(buf[start:start+testRecSize], buildEmptyRecord())
	}

	require.NoError(t, os.WriteFile(path, buf, 0o600))
	return path
}

func TestHandle_ParsesImageIntoStore(t *testing.T) {
	imagePath := buildTestImage(t, 3)
	storePath := filepath.Join(t.TempDir(), "mft_claw_analysis.db")

	ctx := app.NewContext()
	ctx.Quiet = true

	req := &Request{ImagePath: imagePath, Target: app.VolumeTarget{Letter: "C"}, StorePath: storePath}
	resp, err := Handle(ctx, req, config.Default())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "C", resp.VolumeLetter)
	assert.Equal(t, storePath, resp.StorePath)
	assert.EqualValues(t, 3, resp.AllocatedRecords)
	assert.Equal(t, 3, resp.RecordsParsed)
	assert.Equal(t, 0, resp.RecordsFailed)
}

func TestHandle_InvalidRequest(t *testing.T) {
	ctx := app.NewContext()
	ctx.Quiet = true
	resp, err := Handle(ctx, &Request{}, config.Default())
	assert.Error(t, err)
	assert.Nil(t, resp)
}
