// File: internal/search/history.go
package search

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/blackbirdforensics/croweye/internal/interfaces"
)

const (
	maxHistoryEntries  = 20
	historyFileName    = ".crow_eye_search_history.json"
	savedSearchFileName = ".crow_eye_saved_searches.json"
)

// SearchHistoryEntry is one completed search, persisted to
// historyFileName (spec.md §4.8 "Search history").
type SearchHistoryEntry struct {
	ID           string                   `json:"id"`
	Params       interfaces.SearchParams  `json:"params"`
	RunAt        time.Time                `json:"run_at"`
	TotalResults int                      `json:"total_results"`
	Elapsed      time.Duration            `json:"elapsed"`
	Truncated    bool                     `json:"truncated"`
}

// SavedSearch is an explicitly named, unbounded search preset.
type SavedSearch struct {
	Name      string                  `json:"name"`
	Params    interfaces.SearchParams `json:"params"`
	CreatedAt time.Time               `json:"created_at"`
	LastUsed  time.Time               `json:"last_used"`
}

// History persists the bounded history ring and the unbounded saved-
// search set for one case directory, guarded by its own mutex so it can
// be shared safely with the engine's async worker.
type History struct {
	mu        sync.Mutex
	caseDir   string
	nextID    int
	entries   []SearchHistoryEntry
	saved     map[string]SavedSearch
	loaded    bool
}

// NewHistory builds a History bound to caseDir; it lazily loads any
// existing JSON files on first use.
func NewHistory(caseDir string) *History {
	return &History{caseDir: caseDir, saved: make(map[string]SavedSearch)}
}

func (h *History) historyPath() string {
	return filepath.Join(h.caseDir, historyFileName)
}

func (h *History) savedPath() string {
	return filepath.Join(h.caseDir, savedSearchFileName)
}

func (h *History) ensureLoaded() {
	if h.loaded {
		return
	}
	h.loaded = true

	if data, err := os.ReadFile(h.historyPath()); err == nil {
		_ = json.Unmarshal(data, &h.entries)
	}
	if data, err := os.ReadFile(h.savedPath()); err == nil {
		var saved []SavedSearch
		if err := json.Unmarshal(data, &saved); err == nil {
			for _, s := range saved {
				h.saved[s.Name] = s
			}
		}
	}
	for _, e := range h.entries {
		if n := idNumber(e.ID); n >= h.nextID {
			h.nextID = n + 1
		}
	}
}

// RecordCompleted appends one entry to the bounded ring and persists it.
// Called only from the Completed state (spec.md §4.8 "History is updated
// only from Completed").
func (h *History) RecordCompleted(params interfaces.SearchParams, report *interfaces.SearchReport) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ensureLoaded()

	truncated := false
	for _, db := range report.Databases {
		if db.Truncated {
			truncated = true
			break
		}
	}

	entry := SearchHistoryEntry{
		ID:           formatID(h.nextID),
		Params:       params,
		RunAt:        time.Now(),
		TotalResults: report.TotalFound,
		Elapsed:      report.Elapsed,
		Truncated:    truncated,
	}
	h.nextID++

	h.entries = append(h.entries, entry)
	if len(h.entries) > maxHistoryEntries {
		h.entries = h.entries[len(h.entries)-maxHistoryEntries:]
	}

	h.persistHistoryLocked()
}

// Entries returns a copy of the current history ring, newest last.
func (h *History) Entries() []SearchHistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ensureLoaded()

	out := make([]SearchHistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Save stores or replaces a named search preset.
func (h *History) Save(name string, params interfaces.SearchParams) SavedSearch {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ensureLoaded()

	now := time.Now()
	existing, ok := h.saved[name]
	created := now
	if ok {
		created = existing.CreatedAt
	}

	s := SavedSearch{Name: name, Params: params, CreatedAt: created, LastUsed: now}
	h.saved[name] = s
	h.persistSavedLocked()
	return s
}

// Replay looks up a saved search by name, bumping its last_used
// timestamp (spec.md §4.8 "Saved-search last_used is updated on replay").
func (h *History) Replay(name string) (interfaces.SearchParams, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ensureLoaded()

	s, ok := h.saved[name]
	if !ok {
		return interfaces.SearchParams{}, false
	}
	s.LastUsed = time.Now()
	h.saved[name] = s
	h.persistSavedLocked()
	return s.Params, true
}

// SavedSearches returns every saved search, sorted by name.
func (h *History) SavedSearches() []SavedSearch {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ensureLoaded()

	out := make([]SavedSearch, 0, len(h.saved))
	for _, s := range h.saved {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (h *History) persistHistoryLocked() {
	data, err := json.MarshalIndent(h.entries, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(h.historyPath(), data, 0o644)
}

func (h *History) persistSavedLocked() {
	list := make([]SavedSearch, 0, len(h.saved))
	for _, s := range h.saved {
		list = append(list, s)
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(h.savedPath(), data, 0o644)
}

const historyIDPrefix = "search-"

func formatID(n int) string {
	return historyIDPrefix + strconv.Itoa(n)
}

func idNumber(id string) int {
	if !strings.HasPrefix(id, historyIDPrefix) {
		return -1
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, historyIDPrefix))
	if err != nil {
		return -1
	}
	return n
}
