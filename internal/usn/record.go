// File: internal/usn/record.go
package usn

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding/unicode"

	"github.com/blackbirdforensics/croweye/internal/types"
)

// USN_RECORD_V2/V3 fixed-header field offsets (spec.md §3, §4.3). Both
// versions share the same leading layout; v3 widens the FRN/parent-FRN
// fields to 128 bits.
const (
	offRecordLength   = 0
	offMajorVersion   = 4
	offMinorVersion   = 6
	v2FileRefOffset   = 8
	v2ParentRefOffset = 16
	v2UsnOffset       = 24
	v2TimestampOffset = 32
	v2ReasonOffset    = 40
	v2SourceInfoOff   = 44
	v2SecurityIDOff   = 48
	v2FileAttrOff     = 52
	v2FilenameLenOff  = 56
	v2FilenameOffOff  = 58

	v3FileRefOffset   = 8
	v3ParentRefOffset = 24
	v3UsnOffset       = 40
	v3TimestampOffset = 48
	v3ReasonOffset    = 56
	v3SourceInfoOff   = 60
	v3SecurityIDOff   = 64
	v3FileAttrOff     = 68
	v3FilenameLenOff  = 72
	v3FilenameOffOff  = 74
)

// parseRecord decodes one USN record (length-prefixed, variable-length
// trailing filename) starting at data[0]. The caller has already sliced
// data to exactly one record's length.
func parseRecord(volumeID string, data []byte) (types.UsnEvent, error) {
	if len(data) < 8 {
		return types.UsnEvent{}, fmt.Errorf("usn record too short: %d bytes", len(data))
	}
	majorVersion := binary.LittleEndian.Uint16(data[offMajorVersion : offMajorVersion+2])

	switch majorVersion {
	case types.UsnMajorV2:
		return parseV2(volumeID, data)
	case types.UsnMajorV3:
		return parseV3(volumeID, data)
	default:
		return types.UsnEvent{}, fmt.Errorf("unsupported USN record major version %d", majorVersion)
	}
}

func parseV2(volumeID string, data []byte) (types.UsnEvent, error) {
	if len(data) < v2FilenameOffOff+2 {
		return types.UsnEvent{}, fmt.Errorf("v2 usn record too short for fixed header")
	}
	fileRefRaw := binary.LittleEndian.Uint64(data[v2FileRefOffset : v2FileRefOffset+8])
	parentRefRaw := binary.LittleEndian.Uint64(data[v2ParentRefOffset : v2ParentRefOffset+8])
	usn := binary.LittleEndian.Uint64(data[v2UsnOffset : v2UsnOffset+8])
	ts := binary.LittleEndian.Uint64(data[v2TimestampOffset : v2TimestampOffset+8])
	reason := binary.LittleEndian.Uint32(data[v2ReasonOffset : v2ReasonOffset+4])
	sourceInfo := binary.LittleEndian.Uint32(data[v2SourceInfoOff : v2SourceInfoOff+4])
	securityID := binary.LittleEndian.Uint32(data[v2SecurityIDOff : v2SecurityIDOff+4])
	fileAttrs := binary.LittleEndian.Uint32(data[v2FileAttrOff : v2FileAttrOff+4])
	nameLen := binary.LittleEndian.Uint16(data[v2FilenameLenOff : v2FilenameLenOff+2])
	nameOff := binary.LittleEndian.Uint16(data[v2FilenameOffOff : v2FilenameOffOff+2])

	name, err := readName(data, nameOff, nameLen)
	if err != nil {
		return types.UsnEvent{}, err
	}

	return types.UsnEvent{
		VolumeID:     volumeID,
		Usn:          usn,
		MajorVersion: types.UsnMajorV2,
		FileRef: types.FileReference{
			RecordNumber:   fileRefRaw & 0xFFFFFFFFFFFF,
			SequenceNumber: uint16(fileRefRaw >> 48),
		},
		ParentFileRef: types.FileReference{
			RecordNumber:   parentRefRaw & 0xFFFFFFFFFFFF,
			SequenceNumber: uint16(parentRefRaw >> 48),
		},
		Timestamp:       types.FileTime(ts),
		Reason:          reason,
		SourceInfo:      sourceInfo,
		SecurityID:      securityID,
		FileAttributes:  fileAttrs,
		FileName:        name,
		ReasonNames:     decodeReason(reason),
		SourceInfoNames: decodeSourceInfo(sourceInfo),
	}, nil
}

func parseV3(volumeID string, data []byte) (types.UsnEvent, error) {
	if len(data) < v3FilenameOffOff+2 {
		return types.UsnEvent{}, fmt.Errorf("v3 usn record too short for fixed header")
	}
	fileID := data[v3FileRefOffset : v3FileRefOffset+16]
	parentID := data[v3ParentRefOffset : v3ParentRefOffset+16]
	usn := binary.LittleEndian.Uint64(data[v3UsnOffset : v3UsnOffset+8])
	ts := binary.LittleEndian.Uint64(data[v3TimestampOffset : v3TimestampOffset+8])
	reason := binary.LittleEndian.Uint32(data[v3ReasonOffset : v3ReasonOffset+4])
	sourceInfo := binary.LittleEndian.Uint32(data[v3SourceInfoOff : v3SourceInfoOff+4])
	securityID := binary.LittleEndian.Uint32(data[v3SecurityIDOff : v3SecurityIDOff+4])
	fileAttrs := binary.LittleEndian.Uint32(data[v3FileAttrOff : v3FileAttrOff+4])
	nameLen := binary.LittleEndian.Uint16(data[v3FilenameLenOff : v3FilenameLenOff+2])
	nameOff := binary.LittleEndian.Uint16(data[v3FilenameOffOff : v3FilenameOffOff+2])

	name, err := readName(data, nameOff, nameLen)
	if err != nil {
		return types.UsnEvent{}, err
	}

	// The lower 48 bits of a 128-bit FileId still identify the MFT record
	// number for correlation purposes (spec.md §4.5); the full 128 bits
	// are kept as hex for display/identity.
	fileIDLow := binary.LittleEndian.Uint64(fileID[0:8])
	parentIDLow := binary.LittleEndian.Uint64(parentID[0:8])

	return types.UsnEvent{
		VolumeID:     volumeID,
		Usn:          usn,
		MajorVersion: types.UsnMajorV3,
		FileRef: types.FileReference{
			RecordNumber: fileIDLow & 0xFFFFFFFFFFFF,
		},
		FileRefHex: hexID(fileID),
		ParentFileRef: types.FileReference{
			RecordNumber: parentIDLow & 0xFFFFFFFFFFFF,
		},
		ParentRefHex:    hexID(parentID),
		Timestamp:       types.FileTime(ts),
		Reason:          reason,
		SourceInfo:      sourceInfo,
		SecurityID:      securityID,
		FileAttributes:  fileAttrs,
		FileName:        name,
		ReasonNames:     decodeReason(reason),
		SourceInfoNames: decodeSourceInfo(sourceInfo),
	}, nil
}

func hexID(b []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexDigits[c>>4]
		out[i*2+1] = hexDigits[c&0xf]
	}
	return string(out)
}

func readName(data []byte, nameOff, nameLen uint16) (string, error) {
	if int(nameOff)+int(nameLen) > len(data) {
		return "", fmt.Errorf("usn record filename out of bounds: offset=%d len=%d record=%d", nameOff, nameLen, len(data))
	}
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := decoder.Bytes(data[nameOff : int(nameOff)+int(nameLen)])
	if err != nil {
		return "", nil
	}
	return string(out), nil
}
