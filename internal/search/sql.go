// File: internal/search/sql.go
package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/blackbirdforensics/croweye/internal/interfaces"
)

const filetimeEpochOffsetSeconds = 11644473600

// buildTimeFilter builds the OR-across-columns, AND-bounds-per-column
// pre-filter clause from spec.md §4.8 step 2b. Each column's comparison
// depends on its detected format.
func buildTimeFilter(columns []interfaces.ColumnTimestampInfo, start, end time.Time) (string, []any) {
	var clauses []string
	var args []any

	for _, col := range columns {
		switch col.Format {
		case "Unix":
			clauses = append(clauses, fmt.Sprintf("(%q BETWEEN ? AND ?)", col.Name))
			args = append(args, start.Unix(), end.Unix())
		case "FileTime":
			clauses = append(clauses, fmt.Sprintf("(%q BETWEEN ? AND ?)", col.Name))
			args = append(args, unixToFiletime(start), unixToFiletime(end))
		default: // ISO8601, Mixed, Unknown: textual comparison
			clauses = append(clauses, fmt.Sprintf("(%q BETWEEN ? AND ?)", col.Name))
			args = append(args, start.UTC().Format("2006-01-02 15:04:05"), end.UTC().Format("2006-01-02 15:04:05"))
		}
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return strings.Join(clauses, " OR "), args
}

func unixToFiletime(t time.Time) int64 {
	return (t.Unix() + filetimeEpochOffsetSeconds) * 10_000_000
}
