// File: internal/interfaces/search.go
package interfaces

import "time"

// UnifiedSearch executes a search term + optional time window across
// selected stores/tables (spec.md §4.8, component C8).
type UnifiedSearch interface {
	// Search runs params synchronously and returns the full result set.
	// Callers wanting a non-blocking call should use SearchAsync.
	Search(params SearchParams) (*SearchReport, error)

	// SearchAsync runs params on a background goroutine, invoking
	// onProgress as databases complete and resolving exactly one of
	// onComplete/onError/onCancelled. Returns a cancel function.
	SearchAsync(params SearchParams, onProgress func(database string, done, total int), onComplete func(*SearchReport), onError func(error), onCancelled func()) (cancel func())
}

// SearchParams is the validated input to one search (spec.md §4.8
// "Input").
type SearchParams struct {
	Term            string
	CaseSensitive   bool
	ExactMatch      bool
	Regex           bool
	Databases       map[string][]string // database -> selected tables (nil/empty = all)
	StartTime       *time.Time
	EndTime         *time.Time
	ResultCapPerTable int
	Timeout         time.Duration
}

// MatchedTimestamp describes one timestamp column that matched the
// requested time window on a result row.
type MatchedTimestamp struct {
	ColumnName  string
	OriginalValue string
	ParsedValue time.Time
	Formatted   string
	FormatType  string
}

// SearchResult is one matching row (spec.md §4.8 step 3).
type SearchResult struct {
	Database         string
	Table            string
	RowID            int64
	MatchedColumns   []string
	RowData          map[string]any
	MatchedTimestamps []MatchedTimestamp
}

// DatabaseResults groups results by database (spec.md §4.8 step 4).
type DatabaseResults struct {
	Database   string
	Results    []SearchResult
	Truncated  bool
}

// SearchReport is the top-level return value of a completed search.
type SearchReport struct {
	Databases  []DatabaseResults
	TotalFound int
	Elapsed    time.Duration
}
