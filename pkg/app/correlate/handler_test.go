package correlate

import (
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackbirdforensics/croweye/internal/config"
	"github.com/blackbirdforensics/croweye/internal/store"
	"github.com/blackbirdforensics/croweye/internal/types"
	"github.com/blackbirdforensics/croweye/pkg/app"
)

// setupCorrelateStores builds a standalone MFT store and a standalone USN
// store, each seeded with one record for record number 5, so the join has
// exactly one record with USN coverage to find (spec.md §6's three-file
// layout, bridged at correlate time via Store.ImportTables).
func setupCorrelateStores(t *testing.T) (mftPath, usnPath string) {
	t.Helper()
	dir := t.TempDir()
	mftPath = filepath.Join(dir, "mft_claw_analysis.db")
	usnPath = filepath.Join(dir, "USN_journal.db")

	mftStore, err := store.Open(mftPath, nil, logr.Discard())
	require.NoError(t, err)

	record := &types.MftRecord{
		VolumeID:       "C",
		RecordNumber:   5,
		SequenceNumber: 1,
		InUse:          true,
		IsDirectory:    false,
		Attributes: []types.MftAttribute{
			types.StandardInformationAttr{},
			types.FileNameAttr{
				Name:      "cmd.exe",
				Namespace: types.NamespaceWin32,
				ParentRef: types.FileReference{RecordNumber: 2},
			},
		},
		PrimaryFilename: "cmd.exe",
	}
	n, err := mftStore.InsertMftRecords([]*types.MftRecord{record})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.NoError(t, mftStore.Close())

	usnStore, err := store.Open(usnPath, nil, logr.Discard())
	require.NoError(t, err)
	event := types.UsnEvent{
		VolumeID: "C",
		Usn:      1024,
		FileRef:  types.FileReference{RecordNumber: 5, SequenceNumber: 1},
		FileName: "cmd.exe",
		Reason:   0x00000002, // USN_REASON_FILE_CREATE-equivalent bit for the fixture
	}
	n, err = usnStore.InsertUsnEvents([]types.UsnEvent{event})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.NoError(t, usnStore.Close())

	return mftPath, usnPath
}

func TestHandle_JoinsMftAndUsnAcrossStores(t *testing.T) {
	mftPath, usnPath := setupCorrelateStores(t)
	ctx := app.NewContext()
	ctx.Quiet = true

	req := &Request{
		Target:       app.VolumeTarget{Letter: "C"},
		MFTStorePath: mftPath,
		USNStorePath: usnPath,
	}
	resp, err := Handle(ctx, req, config.Default())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "C", resp.VolumeLetter)
	assert.GreaterOrEqual(t, resp.ImportedUsnRows, 1)
	assert.Equal(t, 1, resp.RowsWritten)
	assert.Equal(t, 1, resp.RecordsWithUsn)
	assert.Equal(t, 0, resp.RecordsWithoutUsn)
}

func TestHandle_RecordWithoutUsnCoverage(t *testing.T) {
	dir := t.TempDir()
	mftPath := filepath.Join(dir, "mft_claw_analysis.db")
	usnPath := filepath.Join(dir, "USN_journal.db")

	mftStore, err := store.Open(mftPath, nil, logr.Discard())
	require.NoError(t, err)
	record := &types.MftRecord{
		VolumeID:        "C",
		RecordNumber:    9,
		SequenceNumber:  1,
		InUse:           true,
		PrimaryFilename: "orphan.txt",
		Attributes: []types.MftAttribute{
			types.StandardInformationAttr{},
			types.FileNameAttr{Name: "orphan.txt", Namespace: types.NamespaceWin32, ParentRef: types.FileReference{RecordNumber: 2}},
		},
	}
	_, err = mftStore.InsertMftRecords([]*types.MftRecord{record})
	require.NoError(t, err)
	require.NoError(t, mftStore.Close())

	usnStore, err := store.Open(usnPath, nil, logr.Discard())
	require.NoError(t, err)
	require.NoError(t, usnStore.Close())

	ctx := app.NewContext()
	ctx.Quiet = true
	resp, err := Handle(ctx, &Request{Target: app.VolumeTarget{Letter: "C"}, MFTStorePath: mftPath, USNStorePath: usnPath}, config.Default())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.RecordsWithUsn)
	assert.Equal(t, 1, resp.RecordsWithoutUsn)
}

func TestHandle_InvalidRequest(t *testing.T) {
	ctx := app.NewContext()
	ctx.Quiet = true
	resp, err := Handle(ctx, &Request{}, config.Default())
	assert.Error(t, err)
	assert.Nil(t, resp)
}
