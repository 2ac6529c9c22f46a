// File: pkg/app/search/handler.go
package search

import (
	"time"

	"github.com/blackbirdforensics/croweye/internal/config"
	"github.com/blackbirdforensics/croweye/internal/discovery"
	"github.com/blackbirdforensics/croweye/internal/interfaces"
	"github.com/blackbirdforensics/croweye/internal/search"
	"github.com/blackbirdforensics/croweye/pkg/app"
)

// Handle runs C8 over a case directory (spec.md §4.8), wired to the real
// internal/search.Engine rather than mock data (SPEC_FULL.md §4.12).
func Handle(ctx *app.Context, req *Request, cfg *config.Config) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cache := discovery.New(cfg, ctx.Logger)
	engine := search.New(cache, req.CaseDir, ctx.Logger)

	params := interfaces.SearchParams{
		Term:              req.Term,
		CaseSensitive:     req.CaseSensitive,
		ExactMatch:        req.ExactMatch,
		Regex:             req.Regex,
		Databases:         req.Databases,
		ResultCapPerTable: req.ResultCapPerTable,
		Timeout:           req.Timeout,
	}
	if req.Start != "" {
		t, err := parseDate(req.Start)
		if err != nil {
			return nil, app.NewError(app.ErrCodeInvalidInput, "invalid --start date", err)
		}
		params.StartTime = &t
	}
	if req.End != "" {
		t, err := parseDate(req.End)
		if err != nil {
			return nil, app.NewError(app.ErrCodeInvalidInput, "invalid --end date", err)
		}
		params.EndTime = &t
	}
	if params.ResultCapPerTable == 0 {
		params.ResultCapPerTable = cfg.SearchResultCapPerTable
	}
	if params.Timeout == 0 {
		params.Timeout = time.Duration(cfg.SearchTimeoutS) * time.Second
	}

	ctx.Progress("Searching...", 10)
	report, err := engine.Search(params)
	if err != nil {
		return nil, app.NewError(app.ErrCodeContainerAccess, "search failed", err)
	}
	ctx.Progress("Complete", 100)

	return &Response{Report: report}, nil
}
