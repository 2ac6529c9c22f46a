// File: internal/volume/boot_sector.go
package volume

import (
	"encoding/binary"
	"fmt"

	"github.com/blackbirdforensics/croweye/internal/types"
)

// NTFS boot-sector field offsets (spec.md §3, §4.1). Only the fields the
// geometry needs are modeled; the rest of the boot sector (boot code,
// jump instruction, OEM ID bytes outside the signature check) is ignored.
const (
	bootSectorMinSize        = 512
	offsetOEMID              = 3
	offsetBytesPerSector     = 0x0B
	offsetSectorsPerCluster  = 0x0D
	offsetTotalSectors       = 0x28
	offsetMftCluster         = 0x30
	offsetMftMirrorCluster   = 0x38
	offsetClustersPerRecord  = 0x40
)

var ntfsSignature = []byte("NTFS    ")

// ParseBootSector validates the NTFS signature and derives VolumeGeometry
// from sector 0 (spec.md §4.1).
func ParseBootSector(data []byte) (types.VolumeGeometry, error) {
	if len(data) < bootSectorMinSize {
		return types.VolumeGeometry{}, fmt.Errorf("volume: boot sector too small: %d bytes", len(data))
	}
	oem := data[offsetOEMID : offsetOEMID+8]
	if string(oem) != string(ntfsSignature) {
		return types.VolumeGeometry{}, fmt.Errorf("volume: not an NTFS volume: OEM ID %q", oem)
	}

	bytesPerSector := binary.LittleEndian.Uint16(data[offsetBytesPerSector : offsetBytesPerSector+2])
	sectorsPerCluster := data[offsetSectorsPerCluster]
	totalSectors := binary.LittleEndian.Uint64(data[offsetTotalSectors : offsetTotalSectors+8])
	mftCluster := binary.LittleEndian.Uint64(data[offsetMftCluster : offsetMftCluster+8])
	mftMirrorCluster := binary.LittleEndian.Uint64(data[offsetMftMirrorCluster : offsetMftMirrorCluster+8])
	clustersPerRecord := int8(data[offsetClustersPerRecord])

	if bytesPerSector == 0 || sectorsPerCluster == 0 {
		return types.VolumeGeometry{}, fmt.Errorf("volume: implausible geometry: bytes_per_sector=%d sectors_per_cluster=%d", bytesPerSector, sectorsPerCluster)
	}

	return types.NewVolumeGeometry(bytesPerSector, sectorsPerCluster, mftCluster, mftMirrorCluster, clustersPerRecord, totalSectors, ""), nil
}
