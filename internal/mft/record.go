// File: internal/mft/record.go
//
// Package mft decodes raw MFT record bytes into normalized types.MftRecord
// values (spec.md §4.2, component C2). A small parser type wraps each
// decode step, walking the attribute list after the fixed record header.
package mft

import (
	"encoding/binary"

	"github.com/blackbirdforensics/croweye/internal/interfaces"
	"github.com/blackbirdforensics/croweye/internal/types"
)

// MFT record header field offsets (spec.md §4.2).
const (
	headerMinSize          = 48
	offsetSignature        = 0
	offsetUsaOffset        = 4
	offsetSequenceNumber   = 16
	offsetFirstAttrOffset  = 20
	offsetFlags            = 22
	sentinelAttrType       = 0xFFFFFFFF
)

const (
	flagInUse       = 0x1
	flagIsDirectory = 0x2
)

// Parser implements interfaces.MftParser.
type Parser struct{}

// NewParser creates a new MFT record parser.
func NewParser() *Parser { return &Parser{} }

// ParseRecord decodes one raw MFT record (spec.md §4.2).
func (p *Parser) ParseRecord(volumeID string, recordNumber uint64, data []byte) (*types.MftRecord, bool, error) {
	if len(data) < headerMinSize {
		return nil, false, newParsingError("parse_record", "record shorter than header")
	}
	if string(data[offsetSignature:offsetSignature+4]) != "FILE" {
		// Not fatal: caller counts and skips (spec.md §4.2).
		return nil, false, nil
	}

	sequenceNumber := binary.LittleEndian.Uint16(data[offsetSequenceNumber : offsetSequenceNumber+2])
	firstAttrOffset := binary.LittleEndian.Uint16(data[offsetFirstAttrOffset : offsetFirstAttrOffset+2])
	flags := binary.LittleEndian.Uint16(data[offsetFlags : offsetFlags+2])

	if int(firstAttrOffset) < headerMinSize || int(firstAttrOffset) >= len(data) {
		return nil, false, newParsingError("parse_record", "first attribute offset out of bounds")
	}

	rec := &types.MftRecord{
		VolumeID:       volumeID,
		RecordNumber:   recordNumber,
		SequenceNumber: sequenceNumber,
		InUse:          flags&flagInUse != 0,
		IsDirectory:    flags&flagIsDirectory != 0,
	}

	attrs, err := walkAttributes(data, int(firstAttrOffset))
	if err != nil {
		return nil, false, err
	}
	rec.Attributes = attrs
	rec.PopulateDerivedFields()

	return rec, true, nil
}

// walkAttributes iterates attribute headers starting at offset, stopping
// at the 0xFFFFFFFF sentinel, a zero length, or a length that would run
// past the record (spec.md §4.2). Malformed individual attributes are
// skipped, not fatal; failure to terminate within bounds drops the whole
// record (spec.md §3 invariant 3), surfaced as an error to the caller.
func walkAttributes(data []byte, offset int) ([]types.MftAttribute, error) {
	var attrs []types.MftAttribute
	terminated := false

	for offset+4 <= len(data) {
		attrType := binary.LittleEndian.Uint32(data[offset : offset+4])
		if attrType == sentinelAttrType {
			terminated = true
			break
		}
		if offset+16 > len(data) {
			break
		}
		length := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		if length == 0 || offset+int(length) > len(data) {
			break
		}

		if length >= 16 {
			attr, ok := parseAttribute(data, offset, int(length))
			if ok {
				attrs = append(attrs, attr)
			}
		}
		offset += int(length)
	}

	if !terminated {
		return nil, newParsingError("walk_attributes", "attribute walk did not terminate at sentinel within bounds")
	}
	return attrs, nil
}

// parseAttribute dispatches one attribute header to its type-specific
// parser. A malformed attribute is skipped (ok=false) without aborting
// the record, per spec.md §4.2.
func parseAttribute(data []byte, offset, length int) (types.MftAttribute, bool) {
	attrType := binary.LittleEndian.Uint32(data[offset : offset+4])
	nonResident := data[offset+8] != 0
	nameLength := data[offset+9]
	nameOffset := binary.LittleEndian.Uint16(data[offset+10 : offset+12])

	var name string
	if nameLength > 0 && int(nameOffset)+int(nameLength)*2 <= length {
		name = decodeUTF16LE(data[offset+int(nameOffset) : offset+int(nameOffset)+int(nameLength)*2])
	}

	body := data[offset : offset+length]

	switch attrType {
	case types.AttrTypeStandardInformation:
		return parseStandardInformation(body)
	case types.AttrTypeFileName:
		return parseFileName(body, nonResident)
	case types.AttrTypeData:
		return parseData(body, name, nonResident)
	case types.AttrTypeAttributeList:
		return parseAttributeList(body, nonResident)
	default:
		return types.OpaqueAttr{TypeCode: attrType, Size: uint32(length)}, true
	}
}

var _ interfaces.MftParser = (*Parser)(nil)
