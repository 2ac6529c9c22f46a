// File: pkg/app/discover/types.go
package discover

import (
	"time"

	"github.com/blackbirdforensics/croweye/internal/interfaces"
)

// Request is the input to a discover run (spec.md §4.7, component C7).
type Request struct {
	CaseDir      string
	ForceRefresh bool
}

// Response wraps the Discovery Cache's resolved stores for output
// formatting.
type Response struct {
	Databases  []interfaces.EnhancedDatabaseInfo `json:"databases"`
	SearchTime time.Duration                     `json:"search_time"`
}
