package types

import "testing"

func TestPrimaryFilenamePrefersNonDOS(t *testing.T) {
	names := []FileNameAttr{
		{Namespace: NamespaceDos, Name: "LONGFI~1.TXT"},
		{Namespace: NamespaceWin32, Name: "LongFilename.txt"},
	}
	got := primaryFilename(names)
	if got != "LongFilename.txt" {
		t.Errorf("got %q want LongFilename.txt", got)
	}
}

func TestPrimaryFilenameFallsBackToFirst(t *testing.T) {
	names := []FileNameAttr{
		{Namespace: NamespaceDos, Name: "ONLY~1.TXT"},
	}
	got := primaryFilename(names)
	if got != "ONLY~1.TXT" {
		t.Errorf("got %q want ONLY~1.TXT", got)
	}
}

func TestPrimaryFilenameEmptyWhenNoNames(t *testing.T) {
	if got := primaryFilename(nil); got != "" {
		t.Errorf("got %q want empty string", got)
	}
}

func TestPopulateDerivedFieldsResidentWinsOverNonResident(t *testing.T) {
	r := &MftRecord{
		Attributes: []MftAttribute{
			DataAttr{Resident: true, ResidentSize: 100},
			DataAttr{Resident: false, NonResidentLogicalSize: 9999},
		},
	}
	r.PopulateDerivedFields()
	if r.FileSize != 100 {
		t.Errorf("resident should win: got %d want 100", r.FileSize)
	}
}

func TestPopulateDerivedFieldsADSCount(t *testing.T) {
	r := &MftRecord{
		Attributes: []MftAttribute{
			DataAttr{Name: "", Resident: true, ResidentSize: 10},
			DataAttr{Name: "Zone.Identifier", Resident: true, ResidentSize: 26},
			DataAttr{Name: "stream2", Resident: true, ResidentSize: 5},
		},
	}
	r.PopulateDerivedFields()
	if r.ADSCount != 2 {
		t.Errorf("got ADSCount %d want 2", r.ADSCount)
	}
	if !r.HasADS {
		t.Error("expected HasADS true")
	}
}

func TestNamespaceString(t *testing.T) {
	cases := map[Namespace]string{
		NamespacePosix:    "POSIX",
		NamespaceWin32:    "Win32",
		NamespaceDos:      "DOS",
		NamespaceWin32Dos: "Win32&DOS",
	}
	for ns, want := range cases {
		if got := ns.String(); got != want {
			t.Errorf("Namespace(%d).String() = %q want %q", ns, got, want)
		}
	}
}
