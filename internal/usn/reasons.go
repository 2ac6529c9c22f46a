// File: internal/usn/reasons.go
package usn

// reasonBits and sourceInfoBits map USN bitset values to canonical names
// (spec.md §3 "Reason and source-info bits are decoded to a canonical
// name set").
var reasonBits = []struct {
	bit  uint32
	name string
}{
	{0x00000001, "DATA_OVERWRITE"},
	{0x00000002, "DATA_EXTEND"},
	{0x00000004, "DATA_TRUNCATION"},
	{0x00000010, "NAMED_DATA_OVERWRITE"},
	{0x00000020, "NAMED_DATA_EXTEND"},
	{0x00000040, "NAMED_DATA_TRUNCATION"},
	{0x00000100, "FILE_CREATE"},
	{0x00000200, "FILE_DELETE"},
	{0x00000400, "EA_CHANGE"},
	{0x00000800, "SECURITY_CHANGE"},
	{0x00001000, "RENAME_OLD_NAME"},
	{0x00002000, "RENAME_NEW_NAME"},
	{0x00004000, "INDEXABLE_CHANGE"},
	{0x00008000, "BASIC_INFO_CHANGE"},
	{0x00010000, "HARD_LINK_CHANGE"},
	{0x00020000, "COMPRESSION_CHANGE"},
	{0x00040000, "ENCRYPTION_CHANGE"},
	{0x00080000, "OBJECT_ID_CHANGE"},
	{0x00100000, "REPARSE_POINT_CHANGE"},
	{0x00200000, "STREAM_CHANGE"},
	{0x00400000, "TRANSACTED_CHANGE"},
	{0x80000000, "CLOSE"},
}

var sourceInfoBits = []struct {
	bit  uint32
	name string
}{
	{0x00000001, "DATA_MANAGEMENT"},
	{0x00000002, "AUXILIARY_DATA"},
	{0x00000004, "REPLICATION_MANAGEMENT"},
	{0x00000008, "CLIENT_REPLICATION_MANAGEMENT"},
}

// decodeBitset renders every set bit in table as its canonical name, in
// table order.
func decodeBitset(value uint32, table []struct {
	bit  uint32
	name string
}) []string {
	var names []string
	for _, b := range table {
		if value&b.bit != 0 {
			names = append(names, b.name)
		}
	}
	return names
}

func decodeReason(reason uint32) []string { return decodeBitset(reason, reasonBits) }

func decodeSourceInfo(sourceInfo uint32) []string { return decodeBitset(sourceInfo, sourceInfoBits) }
