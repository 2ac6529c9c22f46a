package types

// MFT attribute type codes (spec.md §3, §4.2).
const (
	AttrTypeStandardInformation uint32 = 0x10
	AttrTypeAttributeList       uint32 = 0x20
	AttrTypeFileName            uint32 = 0x30
	AttrTypeData                uint32 = 0x80
)

// Namespace identifies which filename namespace a FILE_NAME attribute
// belongs to (spec.md §3, §GLOSSARY).
type Namespace uint8

const (
	NamespacePosix     Namespace = 0
	NamespaceWin32     Namespace = 1
	NamespaceDos       Namespace = 2
	NamespaceWin32Dos  Namespace = 3
)

// String renders the namespace the way namespace-evolution timelines want
// it rendered (spec.md §4.5 "namespace_evolution").
func (n Namespace) String() string {
	switch n {
	case NamespacePosix:
		return "POSIX"
	case NamespaceWin32:
		return "Win32"
	case NamespaceDos:
		return "DOS"
	case NamespaceWin32Dos:
		return "Win32&DOS"
	default:
		return "Unknown"
	}
}

// FileReference is a 48-bit MFT record number plus 16-bit sequence number,
// the shape both FILE_NAME.parent_ref and (v2) USN file references share.
type FileReference struct {
	RecordNumber   uint64 // low 48 bits significant
	SequenceNumber uint16
}

// MftAttribute is the tagged-variant interface every parsed attribute
// satisfies (spec.md §9 "tagged sum" design note). AttrType identifies the
// variant without a type switch in callers that only need the type code
// (e.g. ATTRIBUTE_LIST bookkeeping).
type MftAttribute interface {
	AttrType() uint32
}

// StandardInformationAttr is the 0x10 STANDARD_INFORMATION attribute.
type StandardInformationAttr struct {
	Created      FileTime
	Modified     FileTime
	Accessed     FileTime
	MftModified  FileTime
	Flags        uint32
	MaxVersions  uint32
	VersionNum   uint32
	ClassID      uint32
	HasExtended  bool // true iff the attribute was >= 72 bytes
	OwnerID      uint32
	SecurityID   uint32
	QuotaCharged uint64
	Usn          uint64
}

func (StandardInformationAttr) AttrType() uint32 { return AttrTypeStandardInformation }

// FileNameAttr is the 0x30 FILE_NAME attribute.
type FileNameAttr struct {
	ParentRef FileReference
	// OriginalParentSequence preserves the pre-coercion sequence number
	// (see spec.md §9 Open Question and DESIGN.md).
	OriginalParentSequence uint16
	Created                FileTime
	Modified               FileTime
	MftModified            FileTime
	Accessed               FileTime
	AllocatedSize          uint64
	RealSize               uint64
	Flags                  uint32
	ReparseValue           uint32
	Namespace              Namespace
	Name                   string
}

func (FileNameAttr) AttrType() uint32 { return AttrTypeFileName }

// DataAttr is a 0x80 DATA attribute: the unnamed stream is primary, named
// ones are alternate data streams.
type DataAttr struct {
	Name                  string // empty for the unnamed (primary) stream
	Resident              bool
	ResidentSize          uint64
	NonResidentLogicalSize uint64
	NonResidentAllocSize   uint64
}

func (DataAttr) AttrType() uint32 { return AttrTypeData }

// Size returns whichever of ResidentSize/NonResidentLogicalSize applies.
func (d DataAttr) Size() uint64 {
	if d.Resident {
		return d.ResidentSize
	}
	return d.NonResidentLogicalSize
}

// AttributeListEntry is one entry of a 0x20 ATTRIBUTE_LIST attribute.
type AttributeListEntry struct {
	AttrType             uint32
	Name                 string
	StartingVcn          uint64
	ExtensionRecordRef   FileReference
	ExtensionRecordNumber uint64 // base_ref & 0xFFFFFFFFFFFF
}

// AttributeListAttr is the 0x20 ATTRIBUTE_LIST attribute.
type AttributeListAttr struct {
	Entries []AttributeListEntry
}

func (AttributeListAttr) AttrType() uint32 { return AttrTypeAttributeList }

// OpaqueAttr retains an attribute type Go does not otherwise model.
type OpaqueAttr struct {
	TypeCode uint32
	Size     uint32
}

func (o OpaqueAttr) AttrType() uint32 { return o.TypeCode }

// MftRecord is one parsed MFT entry (spec.md §3).
type MftRecord struct {
	VolumeID       string
	RecordNumber   uint64
	SequenceNumber uint16

	InUse       bool
	IsDirectory bool

	Attributes []MftAttribute

	// Derived fields, populated by PopulateDerivedFields after all
	// attributes are parsed.
	PrimaryFilename string
	FileSize        uint64
	HasADS          bool
	ADSCount        int
}

// StandardInformation returns the record's STANDARD_INFORMATION attribute,
// if any.
func (r *MftRecord) StandardInformation() (StandardInformationAttr, bool) {
	for _, a := range r.Attributes {
		if si, ok := a.(StandardInformationAttr); ok {
			return si, true
		}
	}
	return StandardInformationAttr{}, false
}

// FileNames returns every FILE_NAME attribute on the record, in parse order.
func (r *MftRecord) FileNames() []FileNameAttr {
	var out []FileNameAttr
	for _, a := range r.Attributes {
		if fn, ok := a.(FileNameAttr); ok {
			out = append(out, fn)
		}
	}
	return out
}

// DataAttributes returns every DATA attribute on the record, in parse order.
func (r *MftRecord) DataAttributes() []DataAttr {
	var out []DataAttr
	for _, a := range r.Attributes {
		if d, ok := a.(DataAttr); ok {
			out = append(out, d)
		}
	}
	return out
}

// PopulateDerivedFields computes PrimaryFilename, FileSize, HasADS, and
// ADSCount per the tie-breaks in spec.md §4.2.
func (r *MftRecord) PopulateDerivedFields() {
	names := r.FileNames()
	r.PrimaryFilename = primaryFilename(names)

	var residentSize, nonResidentSize uint64
	var sawResident, sawNonResident bool
	for _, d := range r.DataAttributes() {
		if d.Name != "" {
			r.ADSCount++
			continue
		}
		if d.Resident {
			residentSize = d.ResidentSize
			sawResident = true
		} else {
			nonResidentSize = d.NonResidentLogicalSize
			sawNonResident = true
		}
	}
	r.HasADS = r.ADSCount > 0

	switch {
	case sawResident:
		r.FileSize = residentSize
	case sawNonResident:
		r.FileSize = nonResidentSize
	default:
		r.FileSize = 0
	}
}

// primaryFilename picks the first non-DOS name, falling back to the first
// parsed name, per spec.md §4.2.
func primaryFilename(names []FileNameAttr) string {
	for _, n := range names {
		if n.Namespace != NamespaceDos {
			return n.Name
		}
	}
	if len(names) > 0 {
		return names[0].Name
	}
	return ""
}
