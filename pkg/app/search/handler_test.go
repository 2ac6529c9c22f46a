package search

import (
	"os"
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

// setupSearchCase builds a case directory with one MFT store holding a
// single record whose filename the test searches for, the same layout
// internal/discovery resolves a "mft" store from.
func setupSearchCase(t *testing.T) string {
	t.Helper()
	caseDir := t.TempDir()
	artifactDir := filepath.Join(caseDir, "Target_Artifacts")
	require.NoError(t, os.MkdirAll(artifactDir, 0o755))

	s, err := store.Open(filepath.Join(artifactDir, "mft_claw_analysis.db"), nil, logr.Discard())
	require.NoError(t, err)

	record := &types.MftRecord{
		VolumeID:        "C",
		RecordNumber:    12,
		SequenceNumber:  1,
		InUse:           true,
		PrimaryFilename: "mimikatz.exe",
		Attributes: []types.MftAttribute{
			types.StandardInformationAttr{},
			types.FileNameAttr{Name: "mimikatz.exe", Namespace: types.NamespaceWin32, ParentRef: types.FileReference{RecordNumber: 2}},
		},
	}
	n, err := s.InsertMftRecords([]*types.MftRecord{record})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.NoError(t, s.Close())

	return caseDir
}

func TestHandle_FindsMatchingTerm(t *testing.T) {
	caseDir := setupSearchCase(t)
	ctx := app.NewContext()
	ctx.Quiet = true

	resp, err := Handle(ctx, &Request{CaseDir: caseDir, Term: "mimikatz"}, config.Default())
	require.NoError(t, err)
	require.NotNil(t, resp.Report)
	assert.Positive(t, resp.Report.TotalFound)
}

func TestHandle_NoMatchYieldsEmptyReport(t *testing.T) {
	caseDir := setupSearchCase(t)
	ctx := app.NewContext()
	ctx.Quiet = true

	resp, err := Handle(ctx, &Request{CaseDir: caseDir, Term: "no-such-term-xyz"}, config.Default())
	require.NoError(t, err)
	require.NotNil(t, resp.Report)
	assert.Zero(t, resp.Report.TotalFound)
}

func TestHandle_InvalidRequest(t *testing.T) {
	ctx := app.NewContext()
	ctx.Quiet = true
	resp, err := Handle(ctx, &Request{}, config.Default())
	assert.Error(t, err)
	assert.Nil(t, resp)
}
