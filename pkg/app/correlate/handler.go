// File: pkg/app/correlate/handler.go
package correlate

import (
	"time"

	"github.com/blackbirdforensics/croweye/internal/config"
	"github.com/blackbirdforensics/croweye/internal/correlator"
	"github.com/blackbirdforensics/croweye/internal/store"
	"github.com/blackbirdforensics/croweye/pkg/app"
)

// usnImportTables are the USN-store tables the correlator needs alongside
// its own mft_records/mft_standard_info/mft_file_names, which already live
// in the MFT store (spec.md §6 names three distinct store files; see
// internal/store/attach.go).
var usnImportTables = []string{"journal_events", "deleted_entries"}

// Handle runs C5: imports USN rows into the MFT store, then joins MFT and
// USN records for one volume.
func Handle(ctx *app.Context, req *Request, cfg *config.Config) (*Response, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	s, err := store.Open(req.MFTStorePath, cfg, ctx.Logger)
	if err != nil {
		return nil, app.NewError(app.ErrCodeContainerAccess, "failed to open mft store", err)
	}
	defer s.Close()

	ctx.Progress("Importing USN rows...", 10)
	imported, err := s.ImportTables(req.USNStorePath, usnImportTables)
	if err != nil {
		return nil, app.NewError(app.ErrCodeContainerAccess, "failed to import usn rows", err)
	}

	ctx.Progress("Correlating...", 40)
	letter := req.Target.Normalized()
	stats, err := correlator.New(s, ctx.Logger).Correlate(letter)
	if err != nil {
		return nil, app.NewError(app.ErrCodeContainerAccess, "correlation failed", err)
	}

	ctx.Progress("Complete", 100)
	return &Response{
		VolumeLetter:      letter,
		RowsWritten:       stats.RowsWritten,
		FilenameChanges:   stats.FilenameChanges,
		RecordsWithUsn:    stats.RecordsWithUsn,
		RecordsWithoutUsn: stats.RecordsWithoutUsn,
		ImportedUsnRows:   imported,
		Elapsed:           time.Since(start),
	}, nil
}
