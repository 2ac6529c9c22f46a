// File: pkg/app/parse/validator.go
package parse

import (
	"github.com/blackbirdforensics/croweye/pkg/app"
)

// Validate checks a parse Request the way discover.Request.Validate
// checks its own inputs (pkg/app/discover/validator.go).
func (r *Request) Validate() error {
	if r.ImagePath == "" {
		if err := r.Target.Validate(); err != nil {
			return app.NewError(app.ErrCodeInvalidInput, "invalid volume target", err)
		}
	}
	if r.StorePath == "" {
		return app.NewError(app.ErrCodeInvalidInput, "store path is required", nil)
	}
	return nil
}
