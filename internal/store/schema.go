// File: internal/store/schema.go
package store

// schemaStatements creates every table spec.md §4.4 names, applied inside
// a single transaction on first open.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS mft_records (
		record_number        INTEGER NOT NULL,
		volume_letter        TEXT    NOT NULL,
		file_name            TEXT,
		extension            TEXT,
		file_size            INTEGER,
		in_use               INTEGER,
		is_directory         INTEGER,
		flags                INTEGER,
		mft_sequence_number  INTEGER,
		has_ads              INTEGER,
		ads_count            INTEGER,
		created_time         TEXT,
		modified_time        TEXT,
		accessed_time        TEXT,
		mft_modified_time    TEXT,
		file_attributes      INTEGER,
		PRIMARY KEY (record_number, volume_letter)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_mft_records_filename ON mft_records(file_name)`,

	`CREATE TABLE IF NOT EXISTS mft_standard_info (
		record_number   INTEGER NOT NULL,
		volume_letter   TEXT    NOT NULL,
		created_time    TEXT,
		modified_time   TEXT,
		accessed_time   TEXT,
		mft_modified_time TEXT,
		flags           INTEGER,
		owner_id        INTEGER,
		security_id     INTEGER,
		quota_charged   INTEGER,
		usn             INTEGER,
		PRIMARY KEY (record_number, volume_letter)
	)`,

	`CREATE TABLE IF NOT EXISTS mft_file_names (
		record_number          INTEGER NOT NULL,
		volume_letter          TEXT    NOT NULL,
		file_name              TEXT,
		namespace              INTEGER,
		parent_record_number   INTEGER,
		parent_sequence_number INTEGER,
		created_time           TEXT,
		modified_time          TEXT,
		accessed_time          TEXT,
		mft_modified_time      TEXT,
		allocated_size         INTEGER,
		real_size              INTEGER,
		flags                  INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS idx_mft_file_names_parent ON mft_file_names(parent_record_number, volume_letter)`,

	`CREATE TABLE IF NOT EXISTS mft_data_attributes (
		record_number  INTEGER NOT NULL,
		volume_letter  TEXT    NOT NULL,
		stream_name    TEXT,
		resident       INTEGER,
		logical_size   INTEGER,
		allocated_size INTEGER
	)`,

	`CREATE TABLE IF NOT EXISTS journal_events (
		volume_letter   TEXT    NOT NULL,
		filename        TEXT,
		usn             INTEGER NOT NULL,
		major_version   INTEGER,
		frn             INTEGER,
		parent_frn      INTEGER,
		timestamp       TEXT,
		reason          INTEGER,
		source_info     INTEGER,
		security_id     INTEGER,
		file_attributes INTEGER,
		record_length   INTEGER,
		inserted_at     TEXT,
		PRIMARY KEY (volume_letter, usn)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_events_timestamp ON journal_events(timestamp)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_events_frn ON journal_events(frn)`,

	`CREATE TABLE IF NOT EXISTS deleted_entries (
		volume_letter       TEXT    NOT NULL,
		gap_start_usn       INTEGER NOT NULL,
		gap_end_usn         INTEGER,
		gap_size            INTEGER,
		detection_timestamp TEXT,
		PRIMARY KEY (volume_letter, gap_start_usn)
	)`,

	`CREATE TABLE IF NOT EXISTS mft_usn_correlated (
		mft_record_number       INTEGER,
		fn_filename             TEXT,
		reconstructed_path      TEXT,
		mft_sequence_number     INTEGER,
		mft_flags               INTEGER,
		is_directory            INTEGER,
		is_deleted              INTEGER,
		si_created_time         TEXT,
		si_modified_time        TEXT,
		si_accessed_time        TEXT,
		si_mft_modified_time    TEXT,
		si_file_attributes      INTEGER,
		fn_parent_record_number INTEGER,
		fn_parent_sequence_number INTEGER,
		fn_created_time         TEXT,
		fn_modified_time        TEXT,
		fn_mft_modified_time    TEXT,
		fn_accessed_time        TEXT,
		fn_allocated_size       INTEGER,
		fn_real_size            INTEGER,
		fn_file_attributes      INTEGER,
		fn_namespace            INTEGER,
		usn_event_id            INTEGER,
		usn_timestamp           TEXT,
		usn_reason              INTEGER,
		usn_source_info         INTEGER,
		usn_file_attributes     INTEGER,
		has_mft_record          INTEGER,
		has_usn_event           INTEGER,
		correlation_confidence  TEXT,
		filename_change_timeline TEXT,
		namespace_evolution     TEXT,
		UNIQUE (mft_record_number, fn_filename, usn_event_id, usn_timestamp)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_correlated_path ON mft_usn_correlated(reconstructed_path)`,

	`CREATE TABLE IF NOT EXISTS filename_changes (
		record_number   INTEGER,
		volume_letter   TEXT,
		old_filename    TEXT,
		new_filename    TEXT,
		change_timestamp TEXT,
		namespace       INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS idx_filename_changes_record ON filename_changes(record_number, volume_letter)`,
}
