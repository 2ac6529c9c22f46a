package types

// TimestampFormat is the detected wire format of a timestamp column or
// value (spec.md §3, §4.6).
type TimestampFormat string

const (
	FormatISO8601         TimestampFormat = "ISO8601"
	FormatStandardDateTime TimestampFormat = "StandardDateTime"
	FormatUnix            TimestampFormat = "Unix"
	FormatUnixMillis      TimestampFormat = "UnixMillis"
	FormatFileTime        TimestampFormat = "FileTime"
	FormatSystemTime      TimestampFormat = "SystemTime"
	FormatMixed           TimestampFormat = "Mixed"
	FormatUnknown         TimestampFormat = "Unknown"
)

// TimestampColumnInfo describes one detected timestamp column in a table
// (spec.md §3).
type TimestampColumnInfo struct {
	Name              string
	Format            TimestampFormat
	ParseSuccessRate  float32
	SampleValues      []string
}
