// File: pkg/app/discover/validator.go
package discover

import (
	"github.com/blackbirdforensics/croweye/pkg/app"
)

// Validate validates a discovery request
func (r *Request) Validate() error {
	if r.CaseDir == "" {
		return app.NewError(app.ErrCodeInvalidInput, "case directory is required", nil)
	}
	return nil
}
