// File: internal/discovery/stores.go
package discovery

// knownStore is one entry in the logical-store mapping the cache
// resolves against a case directory (spec.md §4.7).
type knownStore struct {
	logicalName       string
	tabName           string
	candidateFilenames []string
	// signaturePrefix matches a table name prefix during the fallback
	// *.db scan, e.g. a table named "amcache_entries" implies the
	// AmCache store is present inside a consolidated DB.
	signaturePrefix string
}

// knownStores is croweye's own store plus the peripheral collector stores
// spec.md §6 "External Interfaces" says the core reads by introspection
// (LNK, Prefetch, Event Logs, Registry, ShimCache).
var knownStores = []knownStore{
	{
		logicalName:        "mft",
		tabName:             "MFT",
		candidateFilenames:  []string{"mft_claw_analysis.db"},
		signaturePrefix:     "mft_records",
	},
	{
		logicalName:        "usn",
		tabName:             "USN Journal",
		candidateFilenames:  []string{"USN_journal.db"},
		signaturePrefix:     "journal_events",
	},
	{
		logicalName:        "correlated",
		tabName:             "Correlated Analysis",
		candidateFilenames:  []string{"mft_usn_correlated_analysis.db"},
		signaturePrefix:     "mft_usn_correlated",
	},
	{
		logicalName:        "amcache",
		tabName:             "AmCache",
		candidateFilenames:  []string{"amcache.db", "Amcache.db", "AmCache.db"},
		signaturePrefix:     "amcache",
	},
	{
		logicalName:        "prefetch",
		tabName:             "Prefetch",
		candidateFilenames:  []string{"prefetch.db", "Prefetch.db"},
		signaturePrefix:     "prefetch",
	},
	{
		logicalName:        "eventlogs",
		tabName:             "Event Logs",
		candidateFilenames:  []string{"event_logs.db", "EventLogs.db"},
		signaturePrefix:     "event_log",
	},
	{
		logicalName:        "registry",
		tabName:             "Registry",
		candidateFilenames:  []string{"registry.db", "Registry.db"},
		signaturePrefix:     "registry",
	},
	{
		logicalName:        "lnk",
		tabName:             "LNK Files",
		candidateFilenames:  []string{"lnk_files.db", "LNK.db"},
		signaturePrefix:     "lnk",
	},
	{
		logicalName:        "shimcache",
		tabName:             "ShimCache",
		candidateFilenames:  []string{"shimcache.db", "ShimCache.db"},
		signaturePrefix:     "shimcache",
	},
}
