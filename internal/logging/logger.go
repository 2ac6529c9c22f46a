// File: internal/logging/logger.go
//
// Package logging builds the logr.Logger every component logs through,
// backed by go-logr/logr's bundled funcr formatter so no extra logging
// dependency is needed.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// New builds a logr.Logger that writes timestamp-prefixed, single-line
// records to w. Verbose gates V(1) (debug-level) output, mirroring the
// CLI's --verbose flag and Config.Verbose.
func New(w io.Writer, verbose bool) logr.Logger {
	opts := funcr.Options{
		Verbosity: 0,
	}
	if verbose {
		opts.Verbosity = 1
	}
	return funcr.New(func(prefix, args string) {
		ts := time.Now().UTC().Format(time.RFC3339)
		if prefix != "" {
			fmt.Fprintf(w, "%s %s %s\n", ts, prefix, args)
		} else {
			fmt.Fprintf(w, "%s %s\n", ts, args)
		}
	}, opts)
}

// Discard returns a logger that drops everything, for callers (tests,
// library use) that don't want any logging side effects.
func Discard() logr.Logger {
	return logr.Discard()
}
