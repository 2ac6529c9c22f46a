package app

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// VolumeTarget identifies the NTFS volume a command operates against by
// drive letter (spec.md §4.1 "Inputs": "\\.\<letter>:").
type VolumeTarget struct {
	Letter string
}

// Validate ensures the drive letter is a single A-Z character, with or
// without a trailing colon.
func (vt *VolumeTarget) Validate() error {
	l := strings.TrimSuffix(strings.ToUpper(vt.Letter), ":")
	if len(l) != 1 || l[0] < 'A' || l[0] > 'Z' {
		return errors.New("volume letter must be a single drive letter, e.g. \"C\"")
	}
	return nil
}

// Normalized returns the bare uppercase letter with no trailing colon.
func (vt *VolumeTarget) Normalized() string {
	return strings.TrimSuffix(strings.ToUpper(vt.Letter), ":")
}

// IsEmpty returns true if no volume target is specified
func (vt *VolumeTarget) IsEmpty() bool {
	return vt.Letter == ""
}

// String returns a string representation of the volume target
func (vt *VolumeTarget) String() string {
	if vt.IsEmpty() {
		return "No volume"
	}
	return fmt.Sprintf("Volume %s:", vt.Normalized())
}

// ProgressUpdate represents progress information
type ProgressUpdate struct {
	Message     string
	Completed   int64
	Total       int64
	StartedAt   time.Time
	ElapsedTime time.Duration
}

// Percent calculates completion percentage
func (p *ProgressUpdate) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return int((p.Completed * 100) / p.Total)
}

// Rate calculates items per second
func (p *ProgressUpdate) Rate() float64 {
	if p.ElapsedTime == 0 {
		return 0
	}
	return float64(p.Completed) / p.ElapsedTime.Seconds()
}

// ETA estimates time to completion
func (p *ProgressUpdate) ETA() time.Duration {
	if p.Completed == 0 || p.Total == 0 {
		return 0
	}
	rate := p.Rate()
	if rate == 0 {
		return 0
	}
	remaining := p.Total - p.Completed
	return time.Duration(float64(remaining)/rate) * time.Second
}

// CommonError represents application-level errors
type CommonError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CommonError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CommonError) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeContainerAccess = "CONTAINER_ACCESS"
	ErrCodeVolumeNotFound  = "VOLUME_NOT_FOUND"
	ErrCodePermission      = "PERMISSION_DENIED"
	ErrCodeTimeout         = "TIMEOUT"
	ErrCodeNotImplemented  = "NOT_IMPLEMENTED"
)

// NewError creates a new CommonError
func NewError(code, message string, cause error) *CommonError {
	return &CommonError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
