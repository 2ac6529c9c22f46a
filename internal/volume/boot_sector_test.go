package volume

import (
	"encoding/binary"
	"testing"
)

func buildBootSector(bytesPerSector uint16, sectorsPerCluster uint8, mftCluster uint64, clustersPerRecord int8) []byte {
	data := make([]byte, bootSectorMinSize)
	copy(data[offsetOEMID:offsetOEMID+8], []byte("NTFS    "))
	binary.LittleEndian.PutUint16(data[offsetBytesPerSector:offsetBytesPerSector+2], bytesPerSector)
	data[offsetSectorsPerCluster] = sectorsPerCluster
	binary.LittleEndian.PutUint64(data[offsetTotalSectors:offsetTotalSectors+8], 1000000)
	binary.LittleEndian.PutUint64(data[offsetMftCluster:offsetMftCluster+8], mftCluster)
	data[offsetClustersPerRecord] = byte(clustersPerRecord)
	return data
}

func TestParseBootSectorValid(t *testing.T) {
	data := buildBootSector(512, 8, 100, 1)
	geom, err := ParseBootSector(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geom.BytesPerSector != 512 || geom.SectorsPerCluster != 8 {
		t.Errorf("unexpected geometry: %+v", geom)
	}
	if geom.MftRecordSize != 4096 {
		t.Errorf("got record size %d want 4096", geom.MftRecordSize)
	}
}

func TestParseBootSectorNegativeClustersPerRecord(t *testing.T) {
	data := buildBootSector(512, 8, 100, -10)
	geom, err := ParseBootSector(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geom.MftRecordSize != 1024 {
		t.Errorf("got record size %d want 1024", geom.MftRecordSize)
	}
}

func TestParseBootSectorBadSignature(t *testing.T) {
	data := make([]byte, bootSectorMinSize)
	copy(data[offsetOEMID:offsetOEMID+8], []byte("FAT32   "))
	_, err := ParseBootSector(data)
	if err == nil {
		t.Error("expected error for non-NTFS signature")
	}
}

func TestParseBootSectorTooSmall(t *testing.T) {
	_, err := ParseBootSector(make([]byte, 100))
	if err == nil {
		t.Error("expected error for undersized boot sector")
	}
}
