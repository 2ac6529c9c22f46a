// File: pkg/app/search/validator.go
package search

import (
	"time"

	"github.com/blackbirdforensics/croweye/pkg/app"
)

// Validate checks a search Request the way discover.Request.Validate does
// (pkg/app/discover/validator.go); internal/search.Engine re-validates the
// term/regex/window against spec.md §4.8's exact rules once this reaches
// the engine, so this layer only catches CLI-input-shape errors early.
func (r *Request) Validate() error {
	if r.CaseDir == "" {
		return app.NewError(app.ErrCodeInvalidInput, "case directory is required", nil)
	}
	if r.Term == "" {
		return app.NewError(app.ErrCodeInvalidInput, "search term is required", nil)
	}
	if r.Start != "" {
		if _, err := parseDate(r.Start); err != nil {
			return app.NewError(app.ErrCodeInvalidInput, "invalid --start date", err)
		}
	}
	if r.End != "" {
		if _, err := parseDate(r.End); err != nil {
			return app.NewError(app.ErrCodeInvalidInput, "invalid --end date", err)
		}
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
