// File: pkg/app/parse/handler.go
package parse

import (
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/blackbirdforensics/croweye/internal/config"
	"github.com/blackbirdforensics/croweye/internal/interfaces"
	"github.com/blackbirdforensics/croweye/internal/mft"
	"github.com/blackbirdforensics/croweye/internal/store"
	"github.com/blackbirdforensics/croweye/internal/types"
	"github.com/blackbirdforensics/croweye/internal/volume"
	"github.com/blackbirdforensics/croweye/pkg/app"
)

// Handle runs C1 (volume reader) -> C2 (MFT parser) -> C4 (store) for one
// volume: read each logical MFT record, parse it, and batch-insert the
// result into the store.
func Handle(ctx *app.Context, req *Request, cfg *config.Config) (*Response, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	reader, err := openVolume(req, ctx.Logger)
	if err != nil {
		return nil, app.NewError(app.ErrCodeContainerAccess, "failed to open volume", err)
	}
	defer reader.Close()

	ctx.Progress("Reading MFT size...", 5)
	logicalRecords, _, allocatedRecords, _, err := reader.MftSize()
	if err != nil {
		return nil, app.NewError(app.ErrCodeContainerAccess, "failed to determine MFT size", err)
	}

	s, err := store.Open(req.StorePath, cfg, ctx.Logger)
	if err != nil {
		return nil, app.NewError(app.ErrCodeContainerAccess, "failed to open store", err)
	}
	defer s.Close()

	letter := req.Target.Normalized()
	parser := mft.NewParser()
	resp := &Response{
		VolumeLetter:     letter,
		StorePath:        req.StorePath,
		AllocatedRecords: allocatedRecords,
	}

	flush := func(batch []*types.MftRecord) error {
		if len(batch) == 0 {
			return nil
		}
		n, err := s.InsertMftRecords(batch)
		resp.RecordsParsed += n
		return err
	}

	batch := make([]*types.MftRecord, 0, cfg.BatchSize)
	for n := uint64(0); n < logicalRecords; n++ {
		rec, ok, err := readAndParse(reader, parser, letter, n)
		if err != nil {
			resp.RecordsFailed++
			ctx.Logger.V(1).Info("parse: skipping unreadable record", "record", n, "error", err.Error())
			continue
		}
		if !ok {
			continue
		}
		rec.PopulateDerivedFields()
		batch = append(batch, rec)

		if len(batch) >= cfg.BatchSize {
			if err := flush(batch); err != nil {
				return nil, app.NewError(app.ErrCodeContainerAccess, "failed to flush records", err)
			}
			batch = batch[:0]
			ctx.Progress(fmt.Sprintf("Parsed %d/%d records", n+1, logicalRecords), int(5+90*n/max64(logicalRecords, 1)))
		}
	}
	if err := flush(batch); err != nil {
		return nil, app.NewError(app.ErrCodeContainerAccess, "failed to flush records", err)
	}

	if req.IncludeSlack {
		ctx.Progress("Scanning slack space...", 95)
		found, err := reader.ScanSlackSpace(logicalRecords, allocatedRecords)
		if err != nil {
			return nil, app.NewError(app.ErrCodeContainerAccess, "failed to scan slack space", err)
		}
		var slackBatch []*types.MftRecord
		for _, n := range found {
			rec, ok, err := readAndParse(reader, parser, letter, n)
			if err != nil || !ok {
				continue
			}
			rec.PopulateDerivedFields()
			slackBatch = append(slackBatch, rec)
		}
		n, err := s.InsertMftRecords(slackBatch)
		if err != nil {
			return nil, app.NewError(app.ErrCodeContainerAccess, "failed to flush slack records", err)
		}
		resp.SlackRecordsFound = n
	}

	ctx.Progress("Complete", 100)
	resp.Elapsed = time.Since(start)
	return resp, nil
}

func readAndParse(reader interfaces.VolumeReader, parser *mft.Parser, volumeID string, n uint64) (*types.MftRecord, bool, error) {
	data, err := reader.ReadMftRecord(n)
	if err != nil {
		return nil, false, err
	}
	return parser.ParseRecord(volumeID, n, data)
}

func openVolume(req *Request, log logr.Logger) (interfaces.VolumeReader, error) {
	if req.ImagePath != "" {
		return volume.OpenFile(req.ImagePath, req.ImageOffset, log)
	}
	return volume.OpenDevice(req.Target.Normalized(), log)
}

func max64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
