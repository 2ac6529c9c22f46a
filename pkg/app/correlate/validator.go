// File: pkg/app/correlate/validator.go
package correlate

import (
	"github.com/blackbirdforensics/croweye/pkg/app"
)

// Validate checks a correlate Request.
func (r *Request) Validate() error {
	if err := r.Target.Validate(); err != nil {
		return app.NewError(app.ErrCodeInvalidInput, "invalid volume target", err)
	}
	if r.MFTStorePath == "" {
		return app.NewError(app.ErrCodeInvalidInput, "mft store path is required", nil)
	}
	if r.USNStorePath == "" {
		return app.NewError(app.ErrCodeInvalidInput, "usn store path is required", nil)
	}
	return nil
}
