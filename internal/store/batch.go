// File: internal/store/batch.go
package store

import (
	"database/sql"
	"strings"
	"time"

	"github.com/blackbirdforensics/croweye/internal/types"
)

// txExecer is the subset of *sql.Tx the writer helpers need, narrowed so
// they stay testable against anything that can Exec.
type txExecer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

// defaultBatchSize is used when Store was opened without a config (tests,
// library callers), matching internal/config's own default.
const defaultBatchSize = 1000

func (s *Store) batchSize() int {
	if s.cfg != nil && s.cfg.BatchSize > 0 {
		return s.cfg.BatchSize
	}
	return defaultBatchSize
}

// chunk splits n items into batches of at most size, calling fn with the
// [start,end) bounds of each batch.
func chunk(n, size int, fn func(start, end int) (int, error)) (int, error) {
	var total int
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		inserted, err := fn(start, end)
		total += inserted
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// placeholders builds "(?,?,...),(?,?,...)" for rows rows of width cols.
func placeholders(rows, cols int) string {
	var b strings.Builder
	row := "(" + strings.TrimSuffix(strings.Repeat("?,", cols), ",") + ")"
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(row)
	}
	return b.String()
}

// TimestampLayout is the textual layout every timestamp column is
// persisted with. It matches the space-separated, no-offset-suffix form
// internal/search/sql.go's buildTimeFilter already compares bounds
// against, so a lexicographic BETWEEN over the stored text agrees with
// the comparison a parsed time.Time would give (spec.md §4.8 step 2).
const TimestampLayout = "2006-01-02 15:04:05"

// isoText renders a FileTime as UTC text in TimestampLayout, or
// NULL-equivalent empty string when the timestamp has no valid
// interpretation (spec.md §4.4 "deterministic VARIANT -> TEXT/INTEGER
// adaptation").
func isoText(ft types.FileTime) interface{} {
	t, ok := ft.Time()
	if !ok {
		return nil
	}
	return t.UTC().Format(TimestampLayout)
}

func isoTextFromTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(TimestampLayout)
}

func parseISOText(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
