package worked

import (
	"path/filepath"
	"testing"
)

func TestRecordAndMembership(t *testing.T) {
	tr := NewTracker(filepath.Join(t.TempDir(), "worked.json"))

	tr.Record("us5eaa", "288", "kn78")

	if !tr.IsCallsignWorked("US5EAA") || !tr.IsCallsignWorked("us5eaa") {
		t.Error("callsign membership should be case-insensitive")
	}
	if !tr.IsCountryWorked("288") {
		t.Error("adif id should be worked")
	}
	if !tr.IsLocatorWorked("KN78") || !tr.IsLocatorWorked("kn78") {
		t.Error("locator membership should be case-insensitive")
	}
	if tr.IsCallsignWorked("SQ2WB") {
		t.Error("unrecorded callsign reported as worked")
	}
}

func TestRecordSkipsUnknownSentinel(t *testing.T) {
	tr := NewTracker(filepath.Join(t.TempDir(), "worked.json"))

	tr.Record("US5EAA", "Unknown", "Unknown")
	tr.Record("SQ2WB", "", "")

	stats := tr.GetStats()
	if stats.CallsignCount != 2 {
		t.Errorf("callsign count = %d, want 2", stats.CallsignCount)
	}
	if stats.CountryCount != 0 || stats.LocatorCount != 0 {
		t.Errorf("sentinel values were recorded: %+v", stats)
	}
}

func TestMonotonicGrowth(t *testing.T) {
	tr := NewTracker(filepath.Join(t.TempDir(), "worked.json"))

	prev := 0
	calls := []string{"A1AA", "B2BB", "A1AA", "C3CC", "B2BB"}
	for _, call := range calls {
		tr.Record(call, "", "")
		n := tr.GetStats().CallsignCount
		if n < prev {
			t.Fatalf("callsign count shrank: %d -> %d", prev, n)
		}
		prev = n

		if !tr.IsCallsignWorked(call) {
			t.Fatalf("%s not worked immediately after Record", call)
		}
	}

	if prev != 3 {
		t.Errorf("final callsign count = %d, want 3", prev)
	}
}

func TestStatsListingsSorted(t *testing.T) {
	tr := NewTracker(filepath.Join(t.TempDir(), "worked.json"))

	tr.Record("ZL1AA", "170", "RF73")
	tr.Record("DL1AA", "230", "JO62")

	stats := tr.GetStats()
	if len(stats.Callsigns) != 2 || stats.Callsigns[0] != "DL1AA" {
		t.Errorf("callsign listing not sorted: %v", stats.Callsigns)
	}
}

func TestSaveLoadUnion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worked.json")

	old := NewTracker(path)
	old.Record("US5EAA", "288", "KN78")
	old.Record("DL1AA", "230", "JO62")
	if err := old.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	// State accumulated before the load survives it.
	tr := NewTracker(path)
	tr.Record("SQ2WB", "269", "JO92ES")
	if n, err := tr.Load(); err != nil || n != 2 {
		t.Fatalf("load = %d, %v; want 2 callsigns", n, err)
	}

	stats := tr.GetStats()
	if stats.CallsignCount != 3 {
		t.Errorf("callsign count after union = %d, want 3", stats.CallsignCount)
	}
	for _, call := range []string{"US5EAA", "DL1AA", "SQ2WB"} {
		if !tr.IsCallsignWorked(call) {
			t.Errorf("%s missing after union", call)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	tr := NewTracker(filepath.Join(t.TempDir(), "absent.json"))
	if n, err := tr.Load(); err != nil || n != 0 {
		t.Fatalf("load of missing file = %d, %v; want empty state", n, err)
	}
}
