// File: internal/interfaces/discovery.go
package interfaces

// DiscoveryCache caches per-store schema and timestamp-column metadata
// (spec.md §4.7, component C7).
type DiscoveryCache interface {
	// Discover resolves every configured logical store under caseDir and
	// returns their cached metadata, refreshing from disk when the cache
	// is stale, empty, or forceRefresh is set.
	Discover(caseDir string, forceRefresh bool) ([]EnhancedDatabaseInfo, error)

	// Invalidate clears all cached metadata for caseDir without touching
	// disk; the next Discover call fully refreshes.
	Invalidate(caseDir string)
}

// TableInfo is the cached schema + timestamp metadata for one table.
type TableInfo struct {
	Name                  string
	Columns               []string
	TimestampColumns       []ColumnTimestampInfo
	RowCount               int64
	SupportsTimeFiltering  bool
}

// ColumnTimestampInfo is the cache-stored form of types.TimestampColumnInfo
// (kept here, not in internal/types, because it is a discovery-cache
// presentation concern, not a core record shape).
type ColumnTimestampInfo struct {
	Name             string
	Format           string
	ParseSuccessRate float32
}

// EnhancedDatabaseInfo is one resolved, accessible store file and its
// cached table metadata.
type EnhancedDatabaseInfo struct {
	LogicalName string // configured store identity, e.g. "mft"
	TabName     string // GUI-tab presentation name
	Path        string
	Accessible  bool
	Tables      map[string]TableInfo
}
