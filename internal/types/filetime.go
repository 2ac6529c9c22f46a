package types

import "time"

// FileTime is a Windows FILETIME: the number of 100-nanosecond intervals
// since 1601-01-01 00:00:00 UTC.
type FileTime uint64

// filetimeEpochOffset is the number of 100-ns intervals between the
// FILETIME epoch (1601-01-01) and the Unix epoch (1970-01-01).
const filetimeEpochOffset = 116444736000000000

// minValidYear and maxValidYear bound the years a FILETIME may convert
// into; a value outside them is "no time". The timestamp engine's narrower
// [1990, 2100] column-sampling window is applied separately.
const (
	minValidYear = 1601
	maxValidYear = 9999
)

// Time converts a FILETIME into a UTC time.Time. A zero value, or a value
// that overflows into an implausible year, yields the zero time.Time and
// false ("no time"), never an error — FILETIME parsing never fails per
// spec.md §4.2.
func (ft FileTime) Time() (time.Time, bool) {
	if ft == 0 {
		return time.Time{}, false
	}

	intervals := int64(ft)
	if intervals < 0 {
		return time.Time{}, false
	}

	unixIntervals := intervals - filetimeEpochOffset
	seconds := unixIntervals / 10_000_000
	remainder := unixIntervals % 10_000_000
	if remainder < 0 {
		remainder += 10_000_000
		seconds--
	}
	nanos := remainder * 100

	t := time.Unix(seconds, nanos).UTC()
	year := t.Year()
	if year < minValidYear || year > maxValidYear {
		return time.Time{}, false
	}
	return t, true
}

// FileTimeFromTime converts a UTC time.Time back into a FILETIME. Intended
// for the round-trip property in spec.md §8; truncates to 100-ns precision.
func FileTimeFromTime(t time.Time) FileTime {
	t = t.UTC()
	unixIntervals := t.Unix()*10_000_000 + int64(t.Nanosecond())/100
	return FileTime(unixIntervals + filetimeEpochOffset)
}
