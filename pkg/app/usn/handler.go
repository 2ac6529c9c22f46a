// File: pkg/app/usn/handler.go
package usn

import (
	"fmt"
	"time"

	"github.com/blackbirdforensics/croweye/internal/config"
	"github.com/blackbirdforensics/croweye/internal/store"
	"github.com/blackbirdforensics/croweye/internal/types"
	"github.com/blackbirdforensics/croweye/internal/usn"
	"github.com/blackbirdforensics/croweye/pkg/app"
)

// Handle runs C1 (volume reader) -> C3 (USN reader) -> C4 (store) for one
// volume (spec.md §4.3 "run_usn"/"stream_usn").
func Handle(ctx *app.Context, req *Request, cfg *config.Config) (*Response, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	letter := req.Target.Normalized()
	s, err := store.Open(req.StorePath, cfg, ctx.Logger)
	if err != nil {
		return nil, app.NewError(app.ErrCodeContainerAccess, "failed to open store", err)
	}
	defer s.Close()

	resp := &Response{VolumeLetter: letter, StorePath: req.StorePath, StartUsn: req.StartUsn}
	startUsn := req.StartUsn

	for {
		r, err := usn.OpenDeviceJournal(ctx.Context, letter, startUsn, ctx.Logger)
		if err != nil {
			return nil, app.NewError(app.ErrCodeContainerAccess, "failed to open usn journal", err)
		}

		var eventBatch []types.UsnEvent
		var gapBatch []types.UsnGap
		flushEvents := func() error {
			if len(eventBatch) == 0 {
				return nil
			}
			if _, err := s.InsertUsnEvents(eventBatch); err != nil {
				return err
			}
			eventBatch = eventBatch[:0]
			return nil
		}
		flushGaps := func() error {
			if len(gapBatch) == 0 {
				return nil
			}
			if _, err := s.InsertUsnGaps(gapBatch); err != nil {
				return err
			}
			gapBatch = gapBatch[:0]
			return nil
		}

		stats, runErr := r.Run(func(ev types.UsnEvent) error {
			eventBatch = append(eventBatch, ev)
			if len(eventBatch) >= cfg.BatchSize {
				return flushEvents()
			}
			return nil
		}, func(gap types.UsnGap) error {
			gapBatch = append(gapBatch, gap)
			return flushGaps()
		})

		if ferr := flushEvents(); ferr != nil && runErr == nil {
			runErr = ferr
		}
		if ferr := flushGaps(); ferr != nil && runErr == nil {
			runErr = ferr
		}

		resp.EventsEmitted += stats.EventsEmitted
		resp.EventsExcluded += stats.EventsExcluded
		resp.GapsDetected += stats.GapsDetected
		resp.FinalUsn = stats.FinalUsn
		resp.StoppedReason = stats.StoppedReason

		if runErr != nil {
			return nil, app.NewError(app.ErrCodeContainerAccess, "usn read failed", runErr)
		}

		ctx.Progress(fmt.Sprintf("usn: %d events, %d gaps (%s)", resp.EventsEmitted, resp.GapsDetected, resp.StoppedReason), 50)

		if !req.Stream || stats.StoppedReason != "eof" {
			break
		}
		select {
		case <-ctx.Done():
			resp.StoppedReason = "cancelled"
			resp.Elapsed = time.Since(start)
			return resp, nil
		case <-time.After(5 * time.Second):
		}
		startUsn = stats.FinalUsn
	}

	ctx.Progress("Complete", 100)
	resp.Elapsed = time.Since(start)
	return resp, nil
}
