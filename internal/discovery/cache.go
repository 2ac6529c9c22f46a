// File: internal/discovery/cache.go
//
// Package discovery resolves and caches per-store schema and timestamp-
// column metadata for a case directory (spec.md §4.7, component C7).
package discovery

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-logr/logr"

	"github.com/blackbirdforensics/croweye/internal/config"
	"github.com/blackbirdforensics/croweye/internal/interfaces"
	"github.com/blackbirdforensics/croweye/internal/store"
	"github.com/blackbirdforensics/croweye/internal/timestamp"
)

// Cache implements interfaces.DiscoveryCache behind a single mutex
// (spec.md §5 "The discovery cache is guarded by a single mutex; reads
// copy out before use").
type Cache struct {
	mu      sync.Mutex
	cfg     *config.Config
	log     logr.Logger
	engine  *timestamp.Engine
	entries map[string][]interfaces.EnhancedDatabaseInfo
}

var _ interfaces.DiscoveryCache = (*Cache)(nil)

// New builds an empty Cache.
func New(cfg *config.Config, log logr.Logger) *Cache {
	return &Cache{
		cfg:     cfg,
		log:     log,
		engine:  timestamp.New(),
		entries: make(map[string][]interfaces.EnhancedDatabaseInfo),
	}
}

// Discover resolves every configured logical store under caseDir and
// returns their cached metadata, refreshing from disk when the cache is
// stale, empty, or forceRefresh is set.
func (c *Cache) Discover(caseDir string, forceRefresh bool) ([]interfaces.EnhancedDatabaseInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !forceRefresh {
		if cached, ok := c.entries[caseDir]; ok {
			out := make([]interfaces.EnhancedDatabaseInfo, len(cached))
			copy(out, cached)
			return out, nil
		}
	}

	resolved, err := c.resolveStores(caseDir)
	if err != nil {
		return nil, err
	}

	var results []interfaces.EnhancedDatabaseInfo
	for _, r := range resolved {
		info := interfaces.EnhancedDatabaseInfo{
			LogicalName: r.logicalName,
			TabName:     r.tabName,
			Path:        r.path,
			Accessible:  false,
		}
		tables, err := c.introspect(r.path)
		if err != nil {
			c.log.V(1).Info("discovery: store not accessible", "path", r.path, "error", err.Error())
		} else {
			info.Accessible = true
			info.Tables = tables
		}
		results = append(results, info)
	}

	out := make([]interfaces.EnhancedDatabaseInfo, len(results))
	copy(out, results)
	c.entries[caseDir] = out
	return results, nil
}

// Invalidate clears all cached metadata for caseDir without touching disk.
func (c *Cache) Invalidate(caseDir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, caseDir)
}

type resolvedStore struct {
	logicalName string
	tabName     string
	path        string
}

// resolveStores finds, for each known logical store, a direct filename
// match under caseDir's artifact directory, then falls back to scanning
// every *.db for a signature-table match (spec.md §4.7).
func (c *Cache) resolveStores(caseDir string) ([]resolvedStore, error) {
	artifactDir := filepath.Join(caseDir, "Target_Artifacts")

	matched := make(map[string]resolvedStore)
	for _, ks := range knownStores {
		for _, candidate := range ks.candidateFilenames {
			path := filepath.Join(artifactDir, candidate)
			if _, err := os.Stat(path); err == nil {
				matched[ks.logicalName] = resolvedStore{logicalName: ks.logicalName, tabName: ks.tabName, path: path}
				break
			}
		}
	}

	dbFiles, err := filepath.Glob(filepath.Join(artifactDir, "*.db"))
	if err != nil {
		return nil, fmt.Errorf("discovery: glob %s: %w", artifactDir, err)
	}
	for _, path := range dbFiles {
		alreadyMatched := false
		for _, m := range matched {
			if m.path == path {
				alreadyMatched = true
				break
			}
		}
		if alreadyMatched {
			continue
		}
		ks, ok := c.matchBySignature(path)
		if !ok {
			continue
		}
		if _, taken := matched[ks.logicalName]; taken {
			continue
		}
		matched[ks.logicalName] = resolvedStore{logicalName: ks.logicalName, tabName: ks.tabName, path: path}
	}

	var out []resolvedStore
	for _, r := range matched {
		out = append(out, r)
	}
	return out, nil
}

// matchBySignature opens path read-only and checks whether any table name
// starts with a known store's signature prefix (spec.md §4.7 "a table
// starting with amcache implies the AmCache store is present").
func (c *Cache) matchBySignature(path string) (knownStore, bool) {
	db, err := store.OpenReadOnly(path, c.log)
	if err != nil {
		return knownStore{}, false
	}
	defer db.Close()

	tables, err := listTables(db)
	if err != nil {
		return knownStore{}, false
	}
	for _, ks := range knownStores {
		for _, t := range tables {
			if strings.HasPrefix(strings.ToLower(t), ks.signaturePrefix) {
				return ks, true
			}
		}
	}
	return knownStore{}, false
}

func listTables(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'table'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// introspect opens path read-only and builds TableInfo for every table:
// column list and detected timestamp columns (spec.md §4.7).
func (c *Cache) introspect(path string) (map[string]interfaces.TableInfo, error) {
	db, err := store.OpenReadOnly(path, c.log)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	tableNames, err := listTables(db)
	if err != nil {
		return nil, err
	}

	out := make(map[string]interfaces.TableInfo, len(tableNames))
	for _, name := range tableNames {
		info, err := c.introspectTable(db, name)
		if err != nil {
			c.log.V(1).Info("discovery: skipping table", "table", name, "error", err.Error())
			continue
		}
		out[name] = info
	}
	return out, nil
}

func (c *Cache) introspectTable(db *sql.DB, table string) (interfaces.TableInfo, error) {
	columns, err := listColumns(db, table)
	if err != nil {
		return interfaces.TableInfo{}, err
	}

	var rowCount int64
	_ = db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %q`, table)).Scan(&rowCount)

	sampleSize := 100
	threshold := 0.80
	if c.cfg != nil {
		if c.cfg.TimestampSampleSize > 0 {
			sampleSize = c.cfg.TimestampSampleSize
		}
		if c.cfg.TimestampSuccessThreshold > 0 {
			threshold = c.cfg.TimestampSuccessThreshold
		}
	}

	var tsColumns []interfaces.ColumnTimestampInfo
	for _, col := range columns {
		if !timestamp.NameLooksLikeTimestamp(col) {
			continue
		}
		values, err := sampleColumn(db, table, col, sampleSize)
		if err != nil {
			continue
		}
		info, ok := c.engine.DetectColumn(col, values, sampleSize, threshold)
		if !ok {
			continue
		}
		tsColumns = append(tsColumns, interfaces.ColumnTimestampInfo{
			Name:             info.Name,
			Format:           string(info.Format),
			ParseSuccessRate: info.ParseSuccessRate,
		})
	}

	return interfaces.TableInfo{
		Name:                  table,
		Columns:               columns,
		TimestampColumns:      tsColumns,
		RowCount:              rowCount,
		SupportsTimeFiltering: len(tsColumns) > 0,
	}, nil
}

func listColumns(db *sql.DB, table string) ([]string, error) {
	rows, err := db.Query(fmt.Sprintf(`PRAGMA table_info(%q)`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var cid int
		var name, colType string
		var notNull int
		var dfltValue interface{}
		var pk int
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, err
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}

func sampleColumn(db *sql.DB, table, column string, limit int) ([]any, error) {
	query := fmt.Sprintf(`SELECT %q FROM %q WHERE %q IS NOT NULL LIMIT ?`, column, table, column)
	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []any
	for rows.Next() {
		var v any
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
