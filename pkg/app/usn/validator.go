// File: pkg/app/usn/validator.go
package usn

import (
	"github.com/blackbirdforensics/croweye/pkg/app"
)

// Validate checks a usn Request the same way parse.Request.Validate does
// (pkg/app/parse/validator.go).
func (r *Request) Validate() error {
	if err := r.Target.Validate(); err != nil {
		return app.NewError(app.ErrCodeInvalidInput, "invalid volume target", err)
	}
	if r.StorePath == "" {
		return app.NewError(app.ErrCodeInvalidInput, "store path is required", nil)
	}
	return nil
}
