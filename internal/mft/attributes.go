// File: internal/mft/attributes.go
package mft

import (
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"

	"github.com/blackbirdforensics/croweye/internal/types"
)

// Resident/non-resident attribute header field offsets, relative to the
// start of the attribute (spec.md §4.2).
const (
	offsetNonResidentFlag  = 8
	offsetNameLength       = 9
	offsetNameOffset       = 10
	offsetResValueLength   = 16
	offsetResValueOffset   = 20
	offsetNonResLogicalLo  = 48
	offsetNonResLogicalHi  = 56
	offsetNonResAllocLo    = 40
	offsetNonResAllocHi    = 48
)

// residentValue returns the resident attribute's value slice, or nil with
// ok=false if the attribute is non-resident or malformed.
func residentValue(body []byte) (value []byte, ok bool) {
	if body[offsetNonResidentFlag] != 0 {
		return nil, false
	}
	if len(body) < offsetResValueOffset+2 {
		return nil, false
	}
	valueLength := binary.LittleEndian.Uint32(body[offsetResValueLength : offsetResValueLength+4])
	valueOffset := binary.LittleEndian.Uint16(body[offsetResValueOffset : offsetResValueOffset+2])
	if int(valueOffset)+int(valueLength) > len(body) {
		return nil, false
	}
	return body[valueOffset : valueOffset+uint16(valueLength)], true
}

func isNonResident(body []byte) bool {
	return body[offsetNonResidentFlag] != 0
}

func nonResidentLogicalSize(body []byte) uint64 {
	if len(body) < offsetNonResLogicalHi {
		return 0
	}
	return binary.LittleEndian.Uint64(body[offsetNonResLogicalLo:offsetNonResLogicalHi])
}

func nonResidentAllocSize(body []byte) uint64 {
	if len(body) < offsetNonResAllocHi {
		return 0
	}
	return binary.LittleEndian.Uint64(body[offsetNonResAllocLo:offsetNonResAllocHi])
}

// parseStandardInformation decodes a 0x10 STANDARD_INFORMATION attribute
// (spec.md §4.2): fails unless the resident value is >=48 bytes; extended
// fields (owner/security/quota/usn) are present iff >=72 bytes.
func parseStandardInformation(body []byte) (types.MftAttribute, bool) {
	value, ok := residentValue(body)
	if !ok || len(value) < 48 {
		return nil, false
	}

	si := types.StandardInformationAttr{
		Created:     types.FileTime(binary.LittleEndian.Uint64(value[0:8])),
		Modified:    types.FileTime(binary.LittleEndian.Uint64(value[8:16])),
		MftModified: types.FileTime(binary.LittleEndian.Uint64(value[16:24])),
		Accessed:    types.FileTime(binary.LittleEndian.Uint64(value[24:32])),
		Flags:       binary.LittleEndian.Uint32(value[32:36]),
		MaxVersions: binary.LittleEndian.Uint32(value[36:40]),
		VersionNum:  binary.LittleEndian.Uint32(value[40:44]),
		ClassID:     binary.LittleEndian.Uint32(value[44:48]),
	}

	if len(value) >= 72 {
		si.HasExtended = true
		si.OwnerID = binary.LittleEndian.Uint32(value[48:52])
		si.SecurityID = binary.LittleEndian.Uint32(value[52:56])
		si.QuotaCharged = binary.LittleEndian.Uint64(value[56:64])
		si.Usn = binary.LittleEndian.Uint64(value[64:72])
	}

	return si, true
}

// parseFileName decodes a 0x30 FILE_NAME attribute (spec.md §4.2): fails
// unless the resident value is >=66+filename_length*2 bytes. The
// parent_sequence coercion in spec.md §3 is applied here, with the
// pre-coercion value preserved (see DESIGN.md Open Question).
func parseFileName(body []byte, nonResident bool) (types.MftAttribute, bool) {
	value, ok := residentValue(body)
	if !ok {
		return nil, false
	}
	if len(value) < 66 {
		return nil, false
	}

	parentRefRaw := binary.LittleEndian.Uint64(value[0:8])
	filenameLength := value[64]
	namespace := types.Namespace(value[65])

	needed := 66 + int(filenameLength)*2
	if len(value) < needed {
		return nil, false
	}

	parentRecord := parentRefRaw & 0xFFFFFFFFFFFF
	parentSequence := uint16(parentRefRaw >> 48)
	originalParentSequence := parentSequence
	if parentSequence == 0 && parentRecord > 0 {
		parentSequence = 1
	}
	if parentRecord == 0 {
		parentSequence = 0
	}

	fn := types.FileNameAttr{
		ParentRef: types.FileReference{
			RecordNumber:   parentRecord,
			SequenceNumber: parentSequence,
		},
		OriginalParentSequence: originalParentSequence,
		Created:                types.FileTime(binary.LittleEndian.Uint64(value[8:16])),
		Modified:               types.FileTime(binary.LittleEndian.Uint64(value[16:24])),
		MftModified:            types.FileTime(binary.LittleEndian.Uint64(value[24:32])),
		Accessed:               types.FileTime(binary.LittleEndian.Uint64(value[32:40])),
		AllocatedSize:          binary.LittleEndian.Uint64(value[40:48]),
		RealSize:               binary.LittleEndian.Uint64(value[48:56]),
		Flags:                  binary.LittleEndian.Uint32(value[56:60]),
		ReparseValue:           binary.LittleEndian.Uint32(value[60:64]),
		Namespace:              namespace,
		Name:                   decodeUTF16LE(value[66:needed]),
	}
	return fn, true
}

// parseData decodes a 0x80 DATA attribute (spec.md §4.2).
func parseData(body []byte, name string, nonResident bool) (types.MftAttribute, bool) {
	d := types.DataAttr{Name: name, Resident: !isNonResident(body)}
	if d.Resident {
		value, ok := residentValue(body)
		if !ok {
			return nil, false
		}
		d.ResidentSize = uint64(len(value))
	} else {
		d.NonResidentLogicalSize = nonResidentLogicalSize(body)
		d.NonResidentAllocSize = nonResidentAllocSize(body)
	}
	return d, true
}

// parseAttributeList decodes a 0x20 ATTRIBUTE_LIST attribute: a run of
// >=26-byte entries (spec.md §4.2).
func parseAttributeList(body []byte, nonResident bool) (types.MftAttribute, bool) {
	value, ok := residentValue(body)
	if !ok {
		// Non-resident attribute lists carry no inline entries to parse;
		// still a valid (if empty-here) attribute.
		return types.AttributeListAttr{}, true
	}

	var entries []types.AttributeListEntry
	offset := 0
	for offset+26 <= len(value) {
		entryLength := binary.LittleEndian.Uint16(value[offset+4 : offset+6])
		if entryLength < 26 || offset+int(entryLength) > len(value) {
			break
		}
		attrType := binary.LittleEndian.Uint32(value[offset : offset+4])
		nameLength := value[offset+6]
		nameOffset := value[offset+7]
		startingVcn := binary.LittleEndian.Uint64(value[offset+8 : offset+16])
		baseRef := binary.LittleEndian.Uint64(value[offset+16 : offset+24])

		var name string
		if nameLength > 0 && int(nameOffset)+int(nameLength)*2 <= int(entryLength) {
			name = decodeUTF16LE(value[offset+int(nameOffset) : offset+int(nameOffset)+int(nameLength)*2])
		}

		entries = append(entries, types.AttributeListEntry{
			AttrType:    attrType,
			Name:        name,
			StartingVcn: startingVcn,
			ExtensionRecordRef: types.FileReference{
				RecordNumber:   baseRef & 0xFFFFFFFFFFFF,
				SequenceNumber: uint16(baseRef >> 48),
			},
			ExtensionRecordNumber: baseRef & 0xFFFFFFFFFFFF,
		})

		offset += int(entryLength)
	}

	return types.AttributeListAttr{Entries: entries}, true
}

// decodeUTF16LE decodes little-endian UTF-16 bytes (NTFS names, FILE_NAME
// and USN filenames are always UTF-16LE) into a Go string.
func decodeUTF16LE(b []byte) string {
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := decoder.Bytes(b)
	if err != nil {
		return ""
	}
	return string(out)
}
