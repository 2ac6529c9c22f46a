// File: internal/usn/reader.go
package usn

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/blackbirdforensics/croweye/internal/interfaces"
	"github.com/blackbirdforensics/croweye/internal/types"
)

// source abstracts the Windows FSCTL_QUERY_USN_JOURNAL/FSCTL_READ_USN_JOURNAL
// calls so the termination logic below can be driven by a fake in tests.
// Real implementations live in usn_windows.go / usn_other.go.
type source interface {
	// queryJournal returns the journal's current JournalID and NextUsn.
	queryJournal() (journalID uint64, nextUsn uint64, err error)
	// readJournal requests records starting at startUsn and returns the raw
	// buffer (first 8 bytes are the next StartUsn, per FSCTL semantics) or
	// one of the sentinel errors in errors.go.
	readJournal(ctx context.Context, startUsn uint64, journalID uint64) ([]byte, error)
	close() error
}

// Reader implements interfaces.UsnReader against a live or fake source
// (spec.md §4.3).
type Reader struct {
	src      source
	volumeID string
	startUsn uint64
	log      logr.Logger
	ctx      context.Context

	stallTimeout  time.Duration
	globalTimeout time.Duration
}

var _ interfaces.UsnReader = (*Reader)(nil)

// NewReader wraps src for volumeID, starting the read at startUsn. ctx
// bounds the whole run (Run honors cancellation between FSCTL calls); a
// nil ctx defaults to context.Background().
func NewReader(ctx context.Context, src source, volumeID string, startUsn uint64, log logr.Logger) *Reader {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Reader{
		src:           src,
		volumeID:      volumeID,
		startUsn:      startUsn,
		ctx:           ctx,
		log:           log,
		stallTimeout:  2 * time.Minute,
		globalTimeout: 30 * time.Minute,
	}
}

// Run streams every USN event from r.startUsn to the journal's current end,
// honoring the five termination/gap invariants from spec.md §4.3:
//  1. Stop cleanly when the returned next-StartUsn stops advancing (EOF).
//  2. ErrHandleEOF / ErrNoData end the read normally, not as an error.
//  3. ErrInvalidParameter triggers a retry from a jumped-forward StartUsn
//     (the journal may have been truncated ahead of the requested point).
//  4. ErrJournalEntryDeleted triggers a binary probe to find the nearest
//     readable StartUsn and reports a UsnGap for the skipped range via onGap.
//  5. A global timeout and a per-read stall timeout bound worst-case
//     runtime against a journal that never reports EOF.
func (r *Reader) Run(onEvent func(types.UsnEvent) error, onGap func(types.UsnGap) error) (interfaces.UsnStats, error) {
	stats := interfaces.UsnStats{StartUsn: r.startUsn}

	journalID, _, err := r.src.queryJournal()
	if err != nil {
		return stats, fmt.Errorf("query usn journal: %w", err)
	}

	deadline := time.Now().Add(r.globalTimeout)
	current := r.startUsn
	var invalidParamRetries int

	for {
		if err := r.ctx.Err(); err != nil {
			stats.StoppedReason = "cancelled"
			return stats, err
		}
		if time.Now().After(deadline) {
			stats.StoppedReason = "global_timeout"
			return stats, fmt.Errorf("usn read: global timeout exceeded after %s", r.globalTimeout)
		}

		readCtx, cancel := context.WithTimeout(r.ctx, r.stallTimeout)
		buf, err := r.src.readJournal(readCtx, current, journalID)
		cancel()

		switch {
		case err == nil:
			// fall through to processing below

		case errors.Is(err, ErrHandleEOF), errors.Is(err, ErrNoData):
			r.log.V(1).Info("usn read reached end of journal", "volume", r.volumeID, "usn", current)
			stats.FinalUsn = current
			stats.StoppedReason = "eof"
			return stats, nil

		case errors.Is(err, ErrInvalidParameter):
			invalidParamRetries++
			if invalidParamRetries > 8 {
				stats.StoppedReason = "invalid_parameter_retry_limit"
				return stats, fmt.Errorf("usn read: too many invalid-parameter retries at usn %d", current)
			}
			next, jumpErr := r.probeForward(current, journalID, 64)
			if jumpErr != nil {
				return stats, fmt.Errorf("usn read: recovering from invalid parameter at usn %d: %w", current, jumpErr)
			}
			r.log.Info("usn journal rejected start point, jumping forward", "from", current, "to", next)
			current = next
			continue

		case errors.Is(err, ErrJournalEntryDeleted):
			gapStart := current
			next, probeErr := r.probeForward(current, journalID, 4096)
			if probeErr != nil {
				return stats, fmt.Errorf("usn read: recovering from deleted journal entry at usn %d: %w", current, probeErr)
			}
			gap := types.UsnGap{
				VolumeID:    r.volumeID,
				GapStartUsn: gapStart,
				GapEndUsn:   next,
				GapSize:     next - gapStart,
			}
			if onGap != nil {
				if err := onGap(gap); err != nil {
					return stats, err
				}
			}
			stats.GapsDetected++
			r.log.Info("usn journal entry deleted, gap recorded", "start", gapStart, "end", next)
			current = next
			continue

		case errors.Is(err, ErrJournalNotActive):
			stats.StoppedReason = "journal_not_active"
			return stats, fmt.Errorf("usn read: journal not active on volume %s", r.volumeID)

		default:
			stats.StoppedReason = "read_error"
			return stats, &ReadError{Op: "readJournal", Wrapped: err}
		}

		if len(buf) < 8 {
			// A buffer shorter than the 8-byte next-StartUsn header carries
			// nothing to process: treat it as end of journal. A header-only
			// 8-byte buffer falls through and ends the loop at the
			// no-progress check below when its next StartUsn does not advance.
			stats.FinalUsn = current
			stats.StoppedReason = "eof"
			return stats, nil
		}
		nextUsn := binary.LittleEndian.Uint64(buf[0:8])
		records := buf[8:]

		emitted, excluded, consumeErr := r.consumeRecords(records, onEvent)
		stats.EventsEmitted += emitted
		stats.EventsExcluded += excluded
		if consumeErr != nil {
			stats.FinalUsn = current
			stats.StoppedReason = "emit_error"
			return stats, consumeErr
		}

		if nextUsn <= current {
			// No forward progress: treat as end of journal rather than loop
			// forever (spec.md §4.3 invariant 1).
			stats.FinalUsn = current
			stats.StoppedReason = "eof"
			return stats, nil
		}
		current = nextUsn
	}
}

func (r *Reader) consumeRecords(buf []byte, onEvent func(types.UsnEvent) error) (emitted, excluded uint64, err error) {
	offset := 0
	for offset+4 <= len(buf) {
		length := binary.LittleEndian.Uint32(buf[offset : offset+4])
		if length == 0 || offset+int(length) > len(buf) {
			break
		}
		event, parseErr := parseRecord(r.volumeID, buf[offset:offset+int(length)])
		if parseErr != nil {
			r.log.V(1).Info("skipping malformed usn record", "error", parseErr.Error())
			excluded++
			offset += int(length)
			continue
		}
		if emitErr := onEvent(event); emitErr != nil {
			return emitted, excluded, emitErr
		}
		emitted++
		offset += int(length)
	}
	return emitted, excluded, nil
}

// probeForward performs a binary search between current and current+maxSpan
// for the nearest StartUsn the journal will accept, per spec.md §4.3's gap
// recovery behavior.
func (r *Reader) probeForward(current uint64, journalID uint64, maxSpan uint64) (uint64, error) {
	lo, hi := current, current+maxSpan
	for lo < hi {
		mid := lo + (hi-lo)/2
		readCtx, cancel := context.WithTimeout(r.ctx, r.stallTimeout)
		_, err := r.src.readJournal(readCtx, mid, journalID)
		cancel()
		switch {
		case err == nil, errors.Is(err, ErrHandleEOF), errors.Is(err, ErrNoData):
			hi = mid
		case errors.Is(err, ErrInvalidParameter), errors.Is(err, ErrJournalEntryDeleted):
			lo = mid + 1
		default:
			return 0, err
		}
	}
	return lo, nil
}
