// File: pkg/app/discover/handler.go
package discover

import (
	"fmt"
	"time"

	"github.com/blackbirdforensics/croweye/internal/discovery"
	"github.com/blackbirdforensics/croweye/pkg/app"
)

// Handle runs C7 over a case directory (spec.md §4.7), resolving every
// configured logical store and returning its cached metadata via the
// Discovery Cache (SPEC_FULL.md §4.12).
func Handle(ctx *app.Context, req *Request, cache *discovery.Cache) (*Response, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx.Log(fmt.Sprintf("Discovering stores in: %s", req.CaseDir))
	ctx.Progress("Resolving stores...", 25)

	dbs, err := cache.Discover(req.CaseDir, req.ForceRefresh)
	if err != nil {
		return nil, app.NewError(app.ErrCodeContainerAccess, "discovery failed", err)
	}

	ctx.Progress("Complete", 100)
	resp := &Response{Databases: dbs, SearchTime: time.Since(start)}
	ctx.Log(fmt.Sprintf("Discovery completed: found %d stores in %v", len(dbs), resp.SearchTime))
	return resp, nil
}
