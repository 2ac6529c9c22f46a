// File: internal/timestamp/engine.go
//
// Package timestamp implements the format-detecting, idempotent timestamp
// parser and per-column format/sampling detector (spec.md §4.6,
// component C6).
package timestamp

import (
	"encoding/binary"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/blackbirdforensics/croweye/internal/interfaces"
	"github.com/blackbirdforensics/croweye/internal/types"
)

const (
	filetimeEpochOffset = 116444736000000000
	minUnixSeconds      = 0
	maxUnixSeconds       = 253402300799 // 9999-12-31T23:59:59Z
)

// Engine implements interfaces.TimestampEngine.
type Engine struct{}

var _ interfaces.TimestampEngine = (*Engine)(nil)

// New builds a stateless Engine.
func New() *Engine { return &Engine{} }

var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

var otherLayouts = []struct {
	layout string
	format types.TimestampFormat
}{
	{"01/02/2006 15:04:05", types.FormatStandardDateTime},
	{"01/02/2006", types.FormatStandardDateTime},
	{"02/01/2006 15:04:05", types.FormatStandardDateTime},
	{"02/01/2006", types.FormatStandardDateTime},
	{"2006-01-02", types.FormatStandardDateTime},
}

// Parse attempts every format in spec.md §4.6's order and returns the UTC
// time and the format that succeeded. Invalid values return ok=false,
// never an error (spec.md §7 "ParseError: silently coerced to no time").
func (e *Engine) Parse(value any) (time.Time, types.TimestampFormat, bool) {
	switch v := value.(type) {
	case string:
		return parseString(v)
	case []byte:
		return parseBytes(v)
	case int64:
		return parseNumeric(v)
	case int:
		return parseNumeric(int64(v))
	case uint64:
		return parseNumeric(int64(v))
	case float64:
		return parseNumeric(int64(v))
	default:
		return time.Time{}, types.FormatUnknown, false
	}
}

func parseString(s string) (time.Time, types.TimestampFormat, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, types.FormatUnknown, false
	}
	normalized := strings.Replace(s, "Z", "+00:00", 1)

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t.UTC(), types.FormatISO8601, true
		}
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), types.FormatISO8601, true
		}
	}
	for _, l := range otherLayouts {
		if t, err := time.Parse(l.layout, s); err == nil {
			return t.UTC(), l.format, true
		}
	}
	// Numeric strings (e.g. a FILETIME or unix timestamp stored as TEXT).
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return parseNumeric(n)
	}
	return time.Time{}, types.FormatUnknown, false
}

func parseNumeric(v int64) (time.Time, types.TimestampFormat, bool) {
	switch {
	case v >= filetimeEpochOffset:
		ft := types.FileTime(v)
		t, ok := ft.Time()
		if !ok {
			return time.Time{}, types.FormatUnknown, false
		}
		return t, types.FormatFileTime, true
	case v >= minUnixSeconds && v <= maxUnixSeconds:
		return time.Unix(v, 0).UTC(), types.FormatUnix, true
	default:
		// Larger than a plausible unix-seconds value but below the
		// FILETIME epoch offset: try unix milliseconds.
		t := time.UnixMilli(v).UTC()
		if t.Year() >= 1 && t.Year() <= 9999 {
			return t, types.FormatUnixMillis, true
		}
		return time.Time{}, types.FormatUnknown, false
	}
}

func parseBytes(b []byte) (time.Time, types.TimestampFormat, bool) {
	switch len(b) {
	case 8:
		ft := types.FileTime(binary.LittleEndian.Uint64(b))
		t, ok := ft.Time()
		if !ok {
			return time.Time{}, types.FormatUnknown, false
		}
		return t, types.FormatFileTime, true
	case 16:
		return parseSystemTime(b)
	default:
		return time.Time{}, types.FormatUnknown, false
	}
}

// parseSystemTime decodes a Win32 SYSTEMTIME structure: 8 little-endian
// uint16 fields (year, month, dayOfWeek, day, hour, minute, second, ms).
func parseSystemTime(b []byte) (time.Time, types.TimestampFormat, bool) {
	year := int(binary.LittleEndian.Uint16(b[0:2]))
	month := int(binary.LittleEndian.Uint16(b[2:4]))
	day := int(binary.LittleEndian.Uint16(b[6:8]))
	hour := int(binary.LittleEndian.Uint16(b[8:10]))
	minute := int(binary.LittleEndian.Uint16(b[10:12]))
	second := int(binary.LittleEndian.Uint16(b[12:14]))
	ms := int(binary.LittleEndian.Uint16(b[14:16]))

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, types.FormatUnknown, false
	}
	t := time.Date(year, time.Month(month), day, hour, minute, second, ms*int(time.Millisecond), time.UTC)
	if t.Year() < 1 || t.Year() > 9999 {
		return time.Time{}, types.FormatUnknown, false
	}
	return t, types.FormatSystemTime, true
}

var (
	nameIncludeRe = regexp.MustCompile(`(?i)(timestamp|_time$|created|last_.*)`)
	nameExcludeRe = regexp.MustCompile(`(?i)^(cycle_time|duration|uptime|bytes|num_.*|count)$`)
)

// NameLooksLikeTimestamp reports whether a column name matches the
// include-minus-exclude heuristic from spec.md §4.6.
func NameLooksLikeTimestamp(name string) bool {
	if nameExcludeRe.MatchString(name) {
		return false
	}
	return nameIncludeRe.MatchString(name)
}

// DetectColumn samples up to maxSamples non-null values and reports
// whether the column qualifies as a timestamp column: >=successThreshold
// parse successfully and resolve into [1990, 2100] (spec.md §4.6).
func (e *Engine) DetectColumn(name string, values []any, maxSamples int, successThreshold float64) (types.TimestampColumnInfo, bool) {
	var sample []any
	for _, v := range values {
		if v == nil {
			continue
		}
		if maxSamples > 0 && len(sample) >= maxSamples {
			break
		}
		sample = append(sample, v)
	}

	var parsed int
	formatCounts := make(map[types.TimestampFormat]int)
	var sampleValues []string
	for _, v := range sample {
		if v == nil {
			continue
		}
		t, format, ok := e.Parse(v)
		sampleValues = append(sampleValues, fmt.Sprint(v))
		if !ok || t.Year() < 1990 || t.Year() > 2100 {
			continue
		}
		parsed++
		formatCounts[format]++
	}
	if len(sample) == 0 {
		return types.TimestampColumnInfo{}, false
	}

	rate := float64(parsed) / float64(len(sample))
	if rate < successThreshold {
		return types.TimestampColumnInfo{}, false
	}

	dominant := types.FormatMixed
	for format, count := range formatCounts {
		if float64(count)/float64(len(sample)) >= successThreshold {
			dominant = format
			break
		}
	}

	return types.TimestampColumnInfo{
		Name:             name,
		Format:           dominant,
		ParseSuccessRate: float32(rate),
		SampleValues:     sampleValues,
	}, true
}
