package timestamp

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/blackbirdforensics/croweye/internal/types"
)

func TestParseISO8601(t *testing.T) {
	e := New()
	got, format, ok := e.Parse("2024-06-01T12:00:00Z")
	if !ok {
		t.Fatal("expected successful parse")
	}
	if format != types.FormatISO8601 {
		t.Errorf("got format %v", format)
	}
	want := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestParseStandardDateTime(t *testing.T) {
	e := New()
	_, format, ok := e.Parse("2024-06-01 12:00:00")
	if !ok || format != types.FormatISO8601 {
		t.Errorf("expected ISO8601-compatible parse, got format=%v ok=%v", format, ok)
	}
}

func TestParseUnixSeconds(t *testing.T) {
	e := New()
	got, format, ok := e.Parse(int64(1717243200))
	if !ok || format != types.FormatUnix {
		t.Fatalf("expected unix parse, got format=%v ok=%v", format, ok)
	}
	if got.Year() != 2024 {
		t.Errorf("got year %d", got.Year())
	}
}

func TestParseFileTimeInt(t *testing.T) {
	e := New()
	ft := types.FileTimeFromTime(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	got, format, ok := e.Parse(int64(ft))
	if !ok || format != types.FormatFileTime {
		t.Fatalf("expected filetime parse, got format=%v ok=%v", format, ok)
	}
	if got.Year() != 2024 {
		t.Errorf("got year %d", got.Year())
	}
}

func TestParseFileTimeBytes(t *testing.T) {
	e := New()
	ft := types.FileTimeFromTime(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(ft))
	_, format, ok := e.Parse(buf)
	if !ok || format != types.FormatFileTime {
		t.Fatalf("expected filetime-from-bytes parse, got format=%v ok=%v", format, ok)
	}
}

func TestParseInvalidReturnsNoTime(t *testing.T) {
	e := New()
	_, _, ok := e.Parse("not a timestamp")
	if ok {
		t.Error("expected invalid string to report ok=false")
	}
}

func TestParseIsIdempotent(t *testing.T) {
	e := New()
	t1, f1, ok1 := e.Parse("2024-06-01T12:00:00Z")
	t2, f2, ok2 := e.Parse("2024-06-01T12:00:00Z")
	if !ok1 || !ok2 || !t1.Equal(t2) || f1 != f2 {
		t.Error("expected repeated parse of the same value to be identical")
	}
}

func TestDetectColumnByNameHeuristic(t *testing.T) {
	if !NameLooksLikeTimestamp("created_timestamp") {
		t.Error("expected created_timestamp to match")
	}
	if NameLooksLikeTimestamp("cycle_time") {
		t.Error("expected cycle_time to be excluded")
	}
	if NameLooksLikeTimestamp("byte_count") {
		t.Error("expected byte_count to not match")
	}
}

func TestDetectColumnSamplingAboveThreshold(t *testing.T) {
	e := New()
	values := make([]any, 0, 100)
	for i := 0; i < 90; i++ {
		values = append(values, "2024-06-01T12:00:00Z")
	}
	for i := 0; i < 10; i++ {
		values = append(values, nil)
	}
	info, ok := e.DetectColumn("EventTimestampUTC", values, 100, 0.80)
	if !ok {
		t.Fatal("expected column to be detected as timestamp")
	}
	if info.Format != types.FormatISO8601 {
		t.Errorf("expected dominant format ISO8601, got %v", info.Format)
	}
	if info.ParseSuccessRate < 0.80 {
		t.Errorf("expected parse success rate >= 0.80, got %v", info.ParseSuccessRate)
	}
}

func TestDetectColumnBelowThresholdFails(t *testing.T) {
	e := New()
	values := []any{"garbage", "garbage", "garbage", "2024-06-01T12:00:00Z"}
	_, ok := e.DetectColumn("maybe_time", values, 100, 0.80)
	if ok {
		t.Error("expected column below threshold to not be detected")
	}
}
