package types

import (
	"testing"
	"time"
)

func TestFileTimeRoundTrip(t *testing.T) {
	cases := []time.Time{
		time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		time.Date(1601, 1, 1, 0, 0, 0, 100, time.UTC), // 1601-01-01 00:00:00 itself is FILETIME 0, i.e. no time
		time.Date(2100, 12, 31, 23, 59, 59, 0, time.UTC),
	}

	for _, want := range cases {
		ft := FileTimeFromTime(want)
		got, ok := ft.Time()
		if !ok {
			t.Fatalf("Time() reported no time for %v", want)
		}
		if !got.Equal(want) {
			t.Errorf("round trip mismatch: want %v got %v", want, got)
		}
	}
}

func TestFileTimeZeroIsNoTime(t *testing.T) {
	var ft FileTime
	if _, ok := ft.Time(); ok {
		t.Error("zero FILETIME should report no time")
	}
}

func TestFileTimeOverflowIsNoTime(t *testing.T) {
	ft := FileTime(^uint64(0))
	if _, ok := ft.Time(); ok {
		t.Error("overflowing FILETIME should report no time, not an error")
	}
}

func TestVolumeGeometryRecordSizeFromClusters(t *testing.T) {
	g := NewVolumeGeometry(512, 8, 100, 200, 1, 1000, "VOL")
	if g.MftRecordSize != 512*8 {
		t.Errorf("positive clusters-per-record: got %d want %d", g.MftRecordSize, 512*8)
	}
}

func TestVolumeGeometryRecordSizeFromShift(t *testing.T) {
	g := NewVolumeGeometry(512, 8, 100, 200, -10, 1000, "VOL")
	if g.MftRecordSize != 1024 {
		t.Errorf("negative clusters-per-record: got %d want 1024", g.MftRecordSize)
	}
}
