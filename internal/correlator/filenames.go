// File: internal/correlator/filenames.go
package correlator

import (
	"fmt"
)

const filenameChangeBatchSize = 1000

// trackFilenameChanges runs the window-function query over mft_file_names,
// persists every detected rename to filename_changes, and returns two
// per-record strings: the concatenated rename timeline and the namespace
// evolution, both GROUP_CONCAT-equivalent (spec.md §4.5).
func (c *Correlator) trackFilenameChanges(volumeID string) (timelines, evolutions map[uint64]string, count int, err error) {
	changes, err := c.src.QueryFilenameChanges(volumeID)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("correlator: query filename changes: %w", err)
	}

	for start := 0; start < len(changes); start += filenameChangeBatchSize {
		end := start + filenameChangeBatchSize
		if end > len(changes) {
			end = len(changes)
		}
		if _, err := c.write.InsertFilenameChanges(changes[start:end]); err != nil {
			return nil, nil, 0, fmt.Errorf("correlator: write filename changes: %w", err)
		}
	}

	timelines = make(map[uint64]string)
	evolutions = make(map[uint64]string)
	for _, ch := range changes {
		entry := fmt.Sprintf("%s -> %s (%s)", ch.OldFilename, ch.NewFilename, ch.ChangeTimestamp.UTC().Format("2006-01-02T15:04:05Z"))
		if existing, ok := timelines[ch.RecordNumber]; ok {
			timelines[ch.RecordNumber] = existing + " | " + entry
		} else {
			timelines[ch.RecordNumber] = entry
		}

		nsName := ch.Namespace.String()
		if existing, ok := evolutions[ch.RecordNumber]; ok {
			if !hasSuffixNamespace(existing, nsName) {
				evolutions[ch.RecordNumber] = existing + " -> " + nsName
			}
		} else {
			evolutions[ch.RecordNumber] = nsName
		}
	}

	return timelines, evolutions, len(changes), nil
}

// hasSuffixNamespace reports whether evolution already ends in name, so a
// run of identical consecutive namespaces collapses to one entry.
func hasSuffixNamespace(evolution, name string) bool {
	suffix := " -> " + name
	if evolution == name {
		return true
	}
	return len(evolution) >= len(suffix) && evolution[len(evolution)-len(suffix):] == suffix
}
