// File: internal/store/store.go
//
// Package store persists normalized artifacts into a SQLite database via
// database/sql and modernc.org/sqlite, the pure-Go driver carried over
// from the rest of the retrieved corpus (spec.md §4.4, component C4).
package store

import (
	"database/sql"
	"fmt"

	"github.com/go-logr/logr"
	_ "modernc.org/sqlite"

	"github.com/blackbirdforensics/croweye/internal/config"
	"github.com/blackbirdforensics/croweye/internal/interfaces"
)

// Store implements interfaces.ArtifactStore over a single SQLite file.
type Store struct {
	db  *sql.DB
	log logr.Logger
	cfg *config.Config
}

var _ interfaces.ArtifactStore = (*Store)(nil)

// Open opens (creating if necessary) the SQLite database at path and
// applies the schema, WAL mode, and cache-size pragmas from cfg
// (spec.md §4.4, §5 "Shared resources").
func Open(path string, cfg *config.Config, log logr.Logger) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(30000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// A single writer connection avoids SQLITE_BUSY storms under WAL; the
	// read-heavy search/discovery paths open their own read-only handles.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, log: log, cfg: cfg}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// OpenReadOnly opens path for concurrent read access (interfaces.DiscoveryCache
// and interfaces.UnifiedSearch both want their own handle so a long-running
// search never blocks ingestion writes).
func OpenReadOnly(path string, log logr.Logger) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(30000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open read-only %s: %w", path, err)
	}
	return db, nil
}

func (s *Store) initialize() error {
	if s.cfg != nil && s.cfg.EnableWalMode {
		if _, err := s.db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
			return fmt.Errorf("store: enable WAL: %w", err)
		}
	}
	if s.cfg != nil && s.cfg.DatabaseCacheSizeMB > 0 {
		if _, err := s.db.Exec(fmt.Sprintf(`PRAGMA cache_size=-%d`, s.cfg.DatabaseCacheSizeMB*1024)); err != nil {
			return fmt.Errorf("store: set cache size: %w", err)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin schema transaction: %w", err)
	}
	for _, stmt := range schemaStatements {
		if _, err := tx.Exec(stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("store: apply schema: %w", err)
		}
	}
	return tx.Commit()
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
