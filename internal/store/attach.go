// File: internal/store/attach.go
package store

import "fmt"

// ImportTables copies rows from the same-named tables in another store's
// SQLite file into this store via a temporary ATTACH, so the correlator
// (C5) can join MFT and USN rows that parse_volume and run_usn wrote into
// separate physical files (spec.md §6: "mft_claw_analysis.db",
// "USN_journal.db", "mft_usn_correlated_analysis.db" are distinct store
// files under one case directory).
func (s *Store) ImportTables(path string, tables []string) (int, error) {
	if _, err := s.db.Exec(`ATTACH DATABASE ? AS import_src`, path); err != nil {
		return 0, fmt.Errorf("store: attach %s: %w", path, err)
	}
	defer s.db.Exec(`DETACH DATABASE import_src`)

	var total int
	for _, table := range tables {
		res, err := s.db.Exec(fmt.Sprintf(`INSERT OR IGNORE INTO %q SELECT * FROM import_src.%q`, table, table))
		if err != nil {
			return total, fmt.Errorf("store: import table %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		total += int(n)
	}
	return total, nil
}
