// Package types holds the on-disk and in-memory record shapes shared by the
// volume reader, MFT parser, USN reader, correlator, and timestamp engine:
// plain structs with no behavior beyond small derived-field helpers.
package types

// VolumeGeometry is derived from the NTFS boot sector (spec.md §3). It is
// immutable after construction.
type VolumeGeometry struct {
	BytesPerSector    uint16
	SectorsPerCluster uint8
	MftCluster        uint64 // LCN of $MFT
	MftMirrorCluster  uint64 // LCN of $MFTMirr
	ClustersPerRecord int8   // raw boot-sector field; sign selects the formula below
	MftRecordSize     uint32 // derived, see NewVolumeGeometry
	TotalSectors      uint64
	VolumeLabel       string
}

// BytesPerCluster returns the cluster size in bytes.
func (g VolumeGeometry) BytesPerCluster() uint32 {
	return uint32(g.BytesPerSector) * uint32(g.SectorsPerCluster)
}

// NewVolumeGeometry derives MftRecordSize from ClustersPerRecord per
// spec.md §3: positive values multiply by the cluster size; negative
// values are a power-of-two shift, `1 << -value`.
func NewVolumeGeometry(bytesPerSector uint16, sectorsPerCluster uint8, mftCluster, mftMirrorCluster uint64, clustersPerRecord int8, totalSectors uint64, label string) VolumeGeometry {
	g := VolumeGeometry{
		BytesPerSector:    bytesPerSector,
		SectorsPerCluster: sectorsPerCluster,
		MftCluster:        mftCluster,
		MftMirrorCluster:  mftMirrorCluster,
		ClustersPerRecord: clustersPerRecord,
		TotalSectors:      totalSectors,
		VolumeLabel:       label,
	}
	if clustersPerRecord > 0 {
		g.MftRecordSize = uint32(clustersPerRecord) * g.BytesPerCluster()
	} else {
		g.MftRecordSize = uint32(1) << uint(-clustersPerRecord)
	}
	return g
}
