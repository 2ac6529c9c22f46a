// File: internal/volume/base.go
//
// base implements the geometry-driven VolumeReader logic shared by every
// backing store: a raw Windows device, or a file/image at some byte
// offset.
package volume

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/blackbirdforensics/croweye/internal/interfaces"
	"github.com/blackbirdforensics/croweye/internal/types"
)

// FallbackMftRecordCount is the conservative upper bound on MFT record
// count used when record 0 cannot be parsed (spec.md §4.1, Open Question
// in DESIGN.md).
const FallbackMftRecordCount = 2_000_000

// blockSource is the minimal primitive every backing store must supply:
// a byte range read at an absolute offset, and a known size.
type blockSource interface {
	readAt(offset int64, length int) ([]byte, error)
	size() int64
	close() error
}

// base implements interfaces.VolumeReader over any blockSource once the
// boot sector has been parsed into a types.VolumeGeometry.
type base struct {
	src      blockSource
	geometry types.VolumeGeometry
	log      logr.Logger
}

// newBase reads sector 0 from src, validates and parses it, and returns a
// ready-to-use base reader.
func newBase(src blockSource, log logr.Logger) (*base, error) {
	sector0, err := src.readAt(0, bootSectorMinSize)
	if err != nil {
		return nil, newAccessError("read_boot_sector", "failed to read sector 0", err)
	}
	geom, err := ParseBootSector(sector0)
	if err != nil {
		return nil, newAccessError("parse_boot_sector", "boot sector validation failed", err)
	}
	return &base{src: src, geometry: geom, log: log}, nil
}

func (b *base) Geometry() types.VolumeGeometry { return b.geometry }

func (b *base) ReadSectors(start uint64, count uint32) ([]byte, error) {
	offset := int64(start) * int64(b.geometry.BytesPerSector)
	length := int(count) * int(b.geometry.BytesPerSector)
	data, err := b.src.readAt(offset, length)
	if err != nil {
		return nil, newAccessError("read_sectors", fmt.Sprintf("start=%d count=%d", start, count), err)
	}
	return data, nil
}

func (b *base) ReadMftRecord(n uint64) ([]byte, error) {
	recSize := int64(b.geometry.MftRecordSize)
	offset := int64(b.geometry.MftCluster)*int64(b.geometry.BytesPerCluster()) + int64(n)*recSize
	data, err := b.src.readAt(offset, int(recSize))
	if err != nil {
		return nil, newAccessError("read_mft_record", fmt.Sprintf("record=%d", n), err)
	}
	return data, nil
}

// IsValidFileRecord checks the FILE signature and the plausibility of the
// fixup-array offset and first-attribute offset (spec.md §4.1).
func (b *base) IsValidFileRecord(data []byte) bool {
	recSize := int(b.geometry.MftRecordSize)
	if len(data) < 48 || len(data) < recSize {
		return false
	}
	if string(data[0:4]) != "FILE" {
		return false
	}
	usaOffset := leUint16(data[4:6])
	firstAttrOffset := leUint16(data[20:22])
	if usaOffset < 48 || int(usaOffset) >= recSize {
		return false
	}
	if firstAttrOffset < 48 || int(firstAttrOffset) >= recSize {
		return false
	}
	return true
}

// ScanSlackSpace returns every record in [logicalRecords, allocatedRecords)
// that still passes IsValidFileRecord (spec.md §4.1).
func (b *base) ScanSlackSpace(logicalRecords, allocatedRecords uint64) ([]uint64, error) {
	var found []uint64
	for n := logicalRecords; n < allocatedRecords; n++ {
		data, err := b.ReadMftRecord(n)
		if err != nil {
			b.log.V(1).Info("slack scan: skipping unreadable record", "record", n, "error", err)
			continue
		}
		if b.IsValidFileRecord(data) {
			found = append(found, n)
		}
	}
	return found, nil
}

func (b *base) Close() error { return b.src.close() }

func leUint16(p []byte) uint16 { return uint16(p[0]) | uint16(p[1])<<8 }

var _ interfaces.VolumeReader = (*base)(nil)
