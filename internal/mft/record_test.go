package mft

import (
	"encoding/binary"
	"testing"

	"github.com/blackbirdforensics/croweye/internal/types"
)

const recordSize = 1024

// buildRecord assembles a synthetic MFT record: header + attributes +
// sentinel, padded to recordSize.
func buildRecord(flags uint16, attrBodies [][]byte) []byte {
	data := make([]byte, recordSize)
	copy(data[0:4], []byte("FILE"))
	binary.LittleEndian.PutUint16(data[4:6], 48)  // usa offset
	binary.LittleEndian.PutUint16(data[16:18], 1) // sequence number
	binary.LittleEndian.PutUint16(data[22:24], flags)

	offset := headerMinSize
	binary.LittleEndian.PutUint16(data[offsetFirstAttrOffset:offsetFirstAttrOffset+2], uint16(offset))

	for _, body := range attrBodies {
		copy(data[offset:offset+len(body)], body)
		offset += len(body)
	}
	binary.LittleEndian.PutUint32(data[offset:offset+4], sentinelAttrType)

	return data
}

// buildResidentAttr builds one resident attribute: type, length, resident
// header, and value bytes, padded to a 8-byte boundary.
func buildResidentAttr(attrType uint32, value []byte, name string) []byte {
	nameBytes := encodeUTF16LE(name)
	headerLen := 24
	valueOffset := headerLen + len(nameBytes)
	total := valueOffset + len(value)
	total = (total + 7) &^ 7 // align

	body := make([]byte, total)
	binary.LittleEndian.PutUint32(body[0:4], attrType)
	binary.LittleEndian.PutUint32(body[4:8], uint32(total))
	body[8] = 0 // resident
	body[9] = byte(len(name))
	binary.LittleEndian.PutUint16(body[10:12], uint16(headerLen))
	binary.LittleEndian.PutUint32(body[16:20], uint32(len(value)))
	binary.LittleEndian.PutUint16(body[20:22], uint16(valueOffset))

	copy(body[headerLen:], nameBytes)
	copy(body[valueOffset:], value)
	return body
}

func encodeUTF16LE(s string) []byte {
	var out []byte
	for _, r := range s {
		if r < 0x10000 {
			out = append(out, byte(r), byte(r>>8))
		}
	}
	return out
}

func buildStandardInformationValue() []byte {
	v := make([]byte, 72)
	binary.LittleEndian.PutUint64(v[0:8], uint64(1000))
	binary.LittleEndian.PutUint64(v[8:16], uint64(2000))
	binary.LittleEndian.PutUint64(v[16:24], uint64(3000))
	binary.LittleEndian.PutUint64(v[24:32], uint64(4000))
	binary.LittleEndian.PutUint32(v[32:36], 0x20) // flags
	binary.LittleEndian.PutUint32(v[48:52], 7)    // owner id
	binary.LittleEndian.PutUint32(v[52:56], 8)    // security id
	return v
}

func buildFileNameValue(parentRecord uint64, parentSeq uint16, name string, namespace types.Namespace) []byte {
	nameBytes := encodeUTF16LE(name)
	v := make([]byte, 66+len(nameBytes))
	parentRef := (parentRecord & 0xFFFFFFFFFFFF) | (uint64(parentSeq) << 48)
	binary.LittleEndian.PutUint64(v[0:8], parentRef)
	binary.LittleEndian.PutUint64(v[40:48], 4096)            // allocated size
	binary.LittleEndian.PutUint64(v[48:56], 100)             // real size
	v[64] = byte(len(name))
	v[65] = byte(namespace)
	copy(v[66:], nameBytes)
	return v
}

func TestParseRecordBasic(t *testing.T) {
	si := buildResidentAttr(types.AttrTypeStandardInformation, buildStandardInformationValue(), "")
	fn := buildResidentAttr(types.AttrTypeFileName, buildFileNameValue(5, 1, "hello.txt", types.NamespaceWin32), "")
	data := buildResidentAttr(types.AttrTypeData, []byte("file contents"), "")

	raw := buildRecord(0x1|0x0, [][]byte{si, fn, data})

	p := NewParser()
	rec, ok, err := p.ParseRecord("C", 42, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected record to parse")
	}
	if !rec.InUse {
		t.Error("expected in_use true")
	}
	if rec.IsDirectory {
		t.Error("expected is_directory false")
	}
	if rec.PrimaryFilename != "hello.txt" {
		t.Errorf("got primary filename %q", rec.PrimaryFilename)
	}
	if rec.FileSize != uint64(len("file contents")) {
		t.Errorf("got file size %d want %d", rec.FileSize, len("file contents"))
	}

	si2, ok := rec.StandardInformation()
	if !ok {
		t.Fatal("expected standard information attribute")
	}
	if !si2.HasExtended || si2.OwnerID != 7 {
		t.Errorf("expected extended fields parsed, got %+v", si2)
	}

	names := rec.FileNames()
	if len(names) != 1 || names[0].ParentRef.RecordNumber != 5 {
		t.Errorf("unexpected file names: %+v", names)
	}
}

func TestParentSequenceCoercion(t *testing.T) {
	fn := buildResidentAttr(types.AttrTypeFileName, buildFileNameValue(10, 0, "child", types.NamespaceWin32), "")
	raw := buildRecord(0x1, [][]byte{fn})

	p := NewParser()
	rec, ok, err := p.ParseRecord("C", 1, raw)
	if err != nil || !ok {
		t.Fatalf("parse failed: ok=%v err=%v", ok, err)
	}
	names := rec.FileNames()
	if len(names) != 1 {
		t.Fatalf("expected 1 file name, got %d", len(names))
	}
	if names[0].ParentRef.SequenceNumber != 1 {
		t.Errorf("expected coerced sequence 1, got %d", names[0].ParentRef.SequenceNumber)
	}
	if names[0].OriginalParentSequence != 0 {
		t.Errorf("expected original sequence preserved as 0, got %d", names[0].OriginalParentSequence)
	}
}

func TestParseRecordBadSignatureIsNotFatal(t *testing.T) {
	raw := make([]byte, recordSize)
	copy(raw[0:4], []byte("BAAD"))

	p := NewParser()
	rec, ok, err := p.ParseRecord("C", 1, raw)
	if err != nil {
		t.Fatalf("bad signature should not be an error, got %v", err)
	}
	if ok || rec != nil {
		t.Error("expected ok=false, rec=nil for bad signature")
	}
}

func TestParseRecordZeroAttributesEmptyFilename(t *testing.T) {
	raw := buildRecord(0x1, nil)
	p := NewParser()
	rec, ok, err := p.ParseRecord("C", 1, raw)
	if err != nil || !ok {
		t.Fatalf("expected clean parse of zero-attribute record, ok=%v err=%v", ok, err)
	}
	if rec.PrimaryFilename != "" {
		t.Errorf("expected empty primary filename, got %q", rec.PrimaryFilename)
	}
}

func TestWalkAttributesNoSentinelFails(t *testing.T) {
	raw := make([]byte, recordSize)
	copy(raw[0:4], []byte("FILE"))
	binary.LittleEndian.PutUint16(raw[4:6], 48)
	binary.LittleEndian.PutUint16(raw[offsetFirstAttrOffset:offsetFirstAttrOffset+2], headerMinSize)
	// Fill the rest with non-sentinel, non-zero-length garbage so the
	// walk runs off the end of the record without ever finding 0xFFFFFFFF.
	for i := headerMinSize; i+8 <= len(raw); i += 8 {
		binary.LittleEndian.PutUint32(raw[i:i+4], 0x77)
		binary.LittleEndian.PutUint32(raw[i+4:i+8], 8)
	}

	p := NewParser()
	_, _, err := p.ParseRecord("C", 1, raw)
	if err == nil {
		t.Fatal("expected error for unterminated attribute walk")
	}
}
