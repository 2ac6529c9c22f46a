// File: internal/search/engine.go
//
// Package search implements the unified search engine (spec.md §4.8,
// component C8): a SQL pre-filter over detected timestamp columns,
// narrowed by an in-memory post-filter over the search term and the
// re-parsed timestamp window.
package search

import (
	"database/sql"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/blackbirdforensics/croweye/internal/discovery"
	"github.com/blackbirdforensics/croweye/internal/interfaces"
	"github.com/blackbirdforensics/croweye/internal/store"
	"github.com/blackbirdforensics/croweye/internal/timestamp"
)

const (
	maxTermLength       = 1000
	defaultResultCap    = 1000
	preFilterCapFactor  = 10
)

// State is one search's position in the spec.md §4.8 state machine:
// Idle -> Validating -> Running -> (Completed | Cancelled | Error).
type State string

const (
	StateIdle       State = "Idle"
	StateValidating State = "Validating"
	StateRunning    State = "Running"
	StateCompleted  State = "Completed"
	StateCancelled  State = "Cancelled"
	StateError      State = "Error"
)

// Engine runs unified searches across a case directory's discovered
// stores. One Engine serializes its own searches: Cancel is cooperative
// and a new Search call waits for a prior one to drain before starting
// (spec.md §4.8 "Ordering and concurrency").
type Engine struct {
	cache   *discovery.Cache
	caseDir string
	log     logr.Logger
	engine  *timestamp.Engine

	runMu     sync.Mutex // serializes Search/SearchAsync bodies
	cancelMu  sync.Mutex
	cancelled bool

	history *History
}

var _ interfaces.UnifiedSearch = (*Engine)(nil)

// New builds an Engine over caseDir, using cache for store resolution and
// historyPath/savedPath for persisted search history (see history.go).
func New(cache *discovery.Cache, caseDir string, log logr.Logger) *Engine {
	return &Engine{
		cache:   cache,
		caseDir: caseDir,
		log:     log,
		engine:  timestamp.New(),
		history: NewHistory(caseDir),
	}
}

// Cancel requests that the in-flight search stop at its next suspension
// point. It is a no-op if nothing is running.
func (e *Engine) Cancel() {
	e.cancelMu.Lock()
	e.cancelled = true
	e.cancelMu.Unlock()
}

func (e *Engine) isCancelled() bool {
	e.cancelMu.Lock()
	defer e.cancelMu.Unlock()
	return e.cancelled
}

func (e *Engine) clearCancel() {
	e.cancelMu.Lock()
	e.cancelled = false
	e.cancelMu.Unlock()
}

// validate applies spec.md §4.8 "Validation".
func validate(params interfaces.SearchParams) (*regexp.Regexp, error) {
	if params.Term == "" {
		return nil, fmt.Errorf("search: term must not be empty")
	}
	if len(params.Term) > maxTermLength {
		return nil, fmt.Errorf("search: term exceeds %d characters", maxTermLength)
	}
	if params.StartTime != nil && params.EndTime != nil && params.StartTime.After(*params.EndTime) {
		return nil, fmt.Errorf("search: start_time must not be after end_time")
	}
	if params.Regex {
		flags := ""
		if !params.CaseSensitive {
			flags = "(?i)"
		}
		re, err := regexp.Compile(flags + params.Term)
		if err != nil {
			return nil, fmt.Errorf("search: invalid regex: %w", err)
		}
		return re, nil
	}
	return nil, nil
}

// Search runs params synchronously to completion or cancellation.
func (e *Engine) Search(params interfaces.SearchParams) (*interfaces.SearchReport, error) {
	e.runMu.Lock()
	defer e.runMu.Unlock()
	e.clearCancel()

	started := time.Now()

	re, err := validate(params)
	if err != nil {
		return nil, err
	}

	dbInfos, err := e.cache.Discover(e.caseDir, false)
	if err != nil {
		return nil, fmt.Errorf("search: discovery: %w", err)
	}

	selected := selectDatabases(dbInfos, params.Databases)

	resultCap := params.ResultCapPerTable
	if resultCap <= 0 {
		resultCap = defaultResultCap
	}

	var reportDBs []interfaces.DatabaseResults
	total := 0
	for _, info := range selected {
		if e.isCancelled() {
			return nil, errCancelled(started)
		}

		dbResult, err := e.searchDatabase(info, params, re, resultCap)
		if err != nil {
			e.log.Error(err, "search: database failed", "database", info.LogicalName)
			continue
		}
		reportDBs = append(reportDBs, dbResult)
		total += len(dbResult.Results)
	}

	if e.isCancelled() {
		return nil, errCancelled(started)
	}

	report := &interfaces.SearchReport{
		Databases:  reportDBs,
		TotalFound: total,
		Elapsed:    time.Since(started),
	}
	e.history.RecordCompleted(params, report)
	return report, nil
}

// errCancelled is a sentinel error constructor; callers of the
// synchronous Search surface cancellation as an error since it has no
// callback. SearchAsync instead invokes onCancelled.
func errCancelled(started time.Time) error {
	return fmt.Errorf("search: cancelled after %s", time.Since(started))
}

// SearchAsync runs params on a background goroutine and resolves exactly
// one of onComplete/onError/onCancelled.
func (e *Engine) SearchAsync(params interfaces.SearchParams, onProgress func(database string, done, total int), onComplete func(*interfaces.SearchReport), onError func(error), onCancelled func()) (cancel func()) {
	go func() {
		e.runMu.Lock()
		defer e.runMu.Unlock()
		e.clearCancel()

		started := time.Now()

		re, err := validate(params)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}

		dbInfos, err := e.cache.Discover(e.caseDir, false)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("search: discovery: %w", err))
			}
			return
		}

		selected := selectDatabases(dbInfos, params.Databases)
		resultCap := params.ResultCapPerTable
		if resultCap <= 0 {
			resultCap = defaultResultCap
		}

		var reportDBs []interfaces.DatabaseResults
		total := 0
		for i, info := range selected {
			if e.isCancelled() {
				if onCancelled != nil {
					onCancelled()
				}
				return
			}

			dbResult, err := e.searchDatabase(info, params, re, resultCap)
			if err != nil {
				e.log.Error(err, "search: database failed", "database", info.LogicalName)
				continue
			}
			reportDBs = append(reportDBs, dbResult)
			total += len(dbResult.Results)
			if onProgress != nil {
				onProgress(info.LogicalName, i+1, len(selected))
			}
		}

		if e.isCancelled() {
			if onCancelled != nil {
				onCancelled()
			}
			return
		}

		report := &interfaces.SearchReport{
			Databases:  reportDBs,
			TotalFound: total,
			Elapsed:    time.Since(started),
		}
		e.history.RecordCompleted(params, report)
		if onComplete != nil {
			onComplete(report)
		}
	}()

	return e.Cancel
}

// selectDatabases filters dbInfos to those accessible and named in
// selection (nil/empty selection means all). The result is ordered by
// logical name in both cases; the selection map carries no order of its
// own, so the order in which the caller listed databases is not kept.
func selectDatabases(dbInfos []interfaces.EnhancedDatabaseInfo, selection map[string][]string) []interfaces.EnhancedDatabaseInfo {
	byName := make(map[string]interfaces.EnhancedDatabaseInfo, len(dbInfos))
	for _, info := range dbInfos {
		byName[info.LogicalName] = info
	}

	if len(selection) == 0 {
		out := make([]interfaces.EnhancedDatabaseInfo, 0, len(dbInfos))
		for _, info := range dbInfos {
			if info.Accessible {
				out = append(out, info)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].LogicalName < out[j].LogicalName })
		return out
	}

	names := make([]string, 0, len(selection))
	for name := range selection {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []interfaces.EnhancedDatabaseInfo
	for _, name := range names {
		info, ok := byName[name]
		if !ok || !info.Accessible {
			continue
		}
		out = append(out, info)
	}
	return out
}

// searchDatabase runs the search against every selected table of one
// store, in table-iteration order (spec.md §4.8 step 2).
func (e *Engine) searchDatabase(info interfaces.EnhancedDatabaseInfo, params interfaces.SearchParams, re *regexp.Regexp, resultCap int) (interfaces.DatabaseResults, error) {
	db, err := store.OpenReadOnly(info.Path, e.log)
	if err != nil {
		return interfaces.DatabaseResults{}, fmt.Errorf("search: open %s: %w", info.Path, err)
	}
	defer db.Close()

	tables := selectTables(info, params.Databases[info.LogicalName])

	result := interfaces.DatabaseResults{Database: info.LogicalName}
	for _, table := range tables {
		if e.isCancelled() {
			return result, nil
		}

		rows, truncated, err := e.searchTable(db, table, params, re, resultCap)
		if err != nil {
			e.log.V(1).Info("search: table failed", "database", info.LogicalName, "table", table.Name, "error", err.Error())
			continue
		}
		for i := range rows {
			rows[i].Database = info.LogicalName
		}
		result.Results = append(result.Results, rows...)
		if truncated {
			result.Truncated = true
		}
	}
	return result, nil
}

// selectTables returns tables in a stable order: the caller's selection
// (if any), else every table name sorted.
func selectTables(info interfaces.EnhancedDatabaseInfo, selected []string) []interfaces.TableInfo {
	if len(selected) > 0 {
		var out []interfaces.TableInfo
		for _, name := range selected {
			if t, ok := info.Tables[name]; ok {
				out = append(out, t)
			}
		}
		return out
	}

	names := make([]string, 0, len(info.Tables))
	for name := range info.Tables {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]interfaces.TableInfo, 0, len(names))
	for _, name := range names {
		out = append(out, info.Tables[name])
	}
	return out
}

// searchTable runs the time pre-filter (when applicable) then the
// in-memory term/time post-filter against one table (spec.md §4.8 steps
// 2a-2c).
func (e *Engine) searchTable(db *sql.DB, table interfaces.TableInfo, params interfaces.SearchParams, re *regexp.Regexp, resultCap int) ([]interfaces.SearchResult, bool, error) {
	timeFilterActive := params.StartTime != nil && params.EndTime != nil

	var query string
	var args []any
	preCap := resultCap * preFilterCapFactor

	if timeFilterActive && table.SupportsTimeFiltering {
		clause, filterArgs := buildTimeFilter(table.TimestampColumns, *params.StartTime, *params.EndTime)
		query = fmt.Sprintf(`SELECT rowid, * FROM %q WHERE (%s) LIMIT ?`, table.Name, clause)
		args = append(filterArgs, preCap)
	} else {
		// No time filtering, or the table has no detected timestamp
		// column: fall back to the non-time-filtered path (spec.md §4.8
		// step 2a), still searched but not time-constrained.
		query = fmt.Sprintf(`SELECT rowid, * FROM %q LIMIT ?`, table.Name)
		args = []any{preCap}
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, false, err
	}

	var results []interfaces.SearchResult
	preFilterHit := 0
	for rows.Next() {
		preFilterHit++
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, false, err
		}

		rowData := make(map[string]any, len(columns))
		for i, col := range columns {
			rowData[col] = normalizeValue(values[i])
		}

		matchedCols, ok := matchTerm(rowData, columns, params, re)
		if !ok {
			continue
		}

		matchedTimestamps := e.matchTimestamps(table, rowData, params)
		if timeFilterActive && len(matchedTimestamps) == 0 && table.SupportsTimeFiltering {
			// Belt-and-braces re-validation (spec.md §4.8 step 2c): the
			// SQL pre-filter can match textually without matching
			// temporally.
			continue
		}

		var rowID int64
		if v, ok := rowData["rowid"].(int64); ok {
			rowID = v
		}

		results = append(results, interfaces.SearchResult{
			Table:              table.Name,
			RowID:              rowID,
			MatchedColumns:     matchedCols,
			RowData:            rowData,
			MatchedTimestamps:  matchedTimestamps,
		})

		if len(results) >= resultCap {
			break
		}
	}

	truncated := len(results) >= resultCap || preFilterHit >= preCap
	return results, truncated, rows.Err()
}

func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

// matchTerm checks the search term against every column's string
// rendering, honoring contains/exact/regex and case-sensitivity.
func matchTerm(rowData map[string]any, columns []string, params interfaces.SearchParams, re *regexp.Regexp) ([]string, bool) {
	var matched []string
	for _, col := range columns {
		if col == "rowid" {
			continue
		}
		text := stringify(rowData[col])
		if text == "" {
			continue
		}

		var hit bool
		switch {
		case params.Regex:
			hit = re.MatchString(text)
		case params.ExactMatch:
			if params.CaseSensitive {
				hit = text == params.Term
			} else {
				hit = strings.EqualFold(text, params.Term)
			}
		default:
			if params.CaseSensitive {
				hit = strings.Contains(text, params.Term)
			} else {
				hit = strings.Contains(strings.ToLower(text), strings.ToLower(params.Term))
			}
		}
		if hit {
			matched = append(matched, col)
		}
	}
	return matched, len(matched) > 0
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// matchTimestamps re-parses every detected timestamp column on the row
// and, when a window is requested, keeps only those falling inside it.
func (e *Engine) matchTimestamps(table interfaces.TableInfo, rowData map[string]any, params interfaces.SearchParams) []interfaces.MatchedTimestamp {
	var out []interfaces.MatchedTimestamp
	for _, col := range table.TimestampColumns {
		raw, ok := rowData[col.Name]
		if !ok || raw == nil {
			continue
		}
		parsed, format, ok := e.engine.Parse(raw)
		if !ok {
			continue
		}
		if params.StartTime != nil && params.EndTime != nil {
			if parsed.Before(*params.StartTime) || parsed.After(*params.EndTime) {
				continue
			}
		}
		out = append(out, interfaces.MatchedTimestamp{
			ColumnName:    col.Name,
			OriginalValue: stringify(raw),
			ParsedValue:   parsed,
			Formatted:     parsed.UTC().Format(time.RFC3339),
			FormatType:    string(format),
		})
	}
	return out
}
