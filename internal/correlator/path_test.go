package correlator

import (
	"testing"

	"github.com/blackbirdforensics/croweye/internal/types"
)

func TestPathResolverWalksToRoot(t *testing.T) {
	names := map[uint64]types.FileNameAttr{
		100: {Name: "file.txt", ParentRef: types.FileReference{RecordNumber: 50}},
		50:  {Name: "sub", ParentRef: types.FileReference{RecordNumber: rootRecordNumber}},
	}
	r := newPathResolver(names)
	if got := r.resolve(100); got != `sub\file.txt` {
		t.Errorf("got %q, want sub\\file.txt", got)
	}
}

func TestPathResolverRootIsDotSlash(t *testing.T) {
	r := newPathResolver(map[uint64]types.FileNameAttr{})
	if got := r.resolve(rootRecordNumber); got != "./" {
		t.Errorf("got %q, want ./", got)
	}
}

func TestPathResolverDetectsCycle(t *testing.T) {
	names := map[uint64]types.FileNameAttr{
		10: {Name: "a", ParentRef: types.FileReference{RecordNumber: 20}},
		20: {Name: "b", ParentRef: types.FileReference{RecordNumber: 10}},
	}
	r := newPathResolver(names)
	got := r.resolve(10)
	if got != `[Cycle Detected: 10]\b\a` {
		t.Errorf("got %q", got)
	}
}

func TestPathResolverUnknownParentIsTerminal(t *testing.T) {
	names := map[uint64]types.FileNameAttr{
		10: {Name: "a", ParentRef: types.FileReference{RecordNumber: 999}},
	}
	r := newPathResolver(names)
	got := r.resolve(10)
	if got != `[Unknown Parent: 999]\a` {
		t.Errorf("got %q", got)
	}
}

func TestPathResolverMemoizes(t *testing.T) {
	names := map[uint64]types.FileNameAttr{
		100: {Name: "file.txt", ParentRef: types.FileReference{RecordNumber: rootRecordNumber}},
	}
	r := newPathResolver(names)
	first := r.resolve(100)
	second := r.resolve(100)
	if first != second {
		t.Errorf("expected memoized result to be stable: %q vs %q", first, second)
	}
}
