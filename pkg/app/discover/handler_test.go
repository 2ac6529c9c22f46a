package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackbirdforensics/croweye/internal/discovery"
	"github.com/blackbirdforensics/croweye/internal/store"
	"github.com/blackbirdforensics/croweye/pkg/app"
)

// setupCaseDir builds a case directory with one real MFT store so Discover
// has something to resolve, mirroring the fixture style used by the
// search engine's tests.
func setupCaseDir(t *testing.T) string {
	t.Helper()
	caseDir := t.TempDir()
	artifactDir := filepath.Join(caseDir, "Target_Artifacts")
	require.NoError(t, os.MkdirAll(artifactDir, 0o755))

	s, err := store.Open(filepath.Join(artifactDir, "mft_claw_analysis.db"), nil, logr.Discard())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	return caseDir
}

func TestHandle(t *testing.T) {
	caseDir := setupCaseDir(t)
	cache := discovery.New(nil, logr.Discard())

	tests := []struct {
		name     string
		request  *Request
		wantErr  bool
		validate func(*testing.T, *Response)
	}{
		{
			name:    "resolves the mft store",
			request: &Request{CaseDir: caseDir},
			validate: func(t *testing.T, resp *Response) {
				require.NotNil(t, resp)
				assert.Len(t, resp.Databases, 1)
				assert.Equal(t, "mft", resp.Databases[0].LogicalName)
				assert.True(t, resp.Databases[0].Accessible)
			},
		},
		{
			name:    "force refresh re-resolves",
			request: &Request{CaseDir: caseDir, ForceRefresh: true},
			validate: func(t *testing.T, resp *Response) {
				require.NotNil(t, resp)
				assert.Len(t, resp.Databases, 1)
			},
		},
		{
			name:    "missing case directory",
			request: &Request{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := app.NewContext()
			ctx.Quiet = true

			resp, err := Handle(ctx, tt.request, cache)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			if tt.validate != nil {
				tt.validate(t, resp)
			}
		})
	}
}

func TestHandle_UnknownCaseDirYieldsNoStores(t *testing.T) {
	cache := discovery.New(nil, logr.Discard())
	ctx := app.NewContext()
	ctx.Quiet = true

	resp, err := Handle(ctx, &Request{CaseDir: t.TempDir()}, cache)
	require.NoError(t, err)
	assert.Empty(t, resp.Databases)
}
