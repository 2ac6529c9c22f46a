// File: internal/mft/errors.go
package mft

import "fmt"

// ParsingError is spec.md §7's MftParsingError: record or attribute
// out-of-bounds, bad sizes. Per-record and per-attribute errors are never
// fatal (spec.md §7 propagation policy) — callers count and log them via
// the returned error rather than aborting the pass.
type ParsingError struct {
	Op     string
	Detail string
}

func (e *ParsingError) Error() string {
	return fmt.Sprintf("mft parsing error (%s): %s", e.Op, e.Detail)
}

func newParsingError(op, detail string) *ParsingError {
	return &ParsingError{Op: op, Detail: detail}
}
