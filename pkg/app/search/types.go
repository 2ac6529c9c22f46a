// File: pkg/app/search/types.go
package search

import (
	"time"

	"github.com/blackbirdforensics/croweye/internal/interfaces"
)

// Request is the CLI/app-layer input to a unified search, following the
// same Request/Response/Validate/Handle/FormatOutput shape as
// pkg/app/discover.
type Request struct {
	CaseDir       string
	Term          string
	CaseSensitive bool
	ExactMatch    bool
	Regex         bool
	Databases     map[string][]string
	Start         string // "2006-01-02" or "2006-01-02 15:04:05"
	End           string
	ResultCapPerTable int
	Timeout       time.Duration
}

// Response wraps interfaces.SearchReport for output formatting.
type Response struct {
	Report *interfaces.SearchReport `json:"report"`
}
