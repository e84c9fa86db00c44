package spot

import (
	"encoding/json"
	"testing"
	"time"
)

func TestBandName(t *testing.T) {
	testCases := []struct {
		khz  float64
		want string
	}{
		{137, "2190m"},
		{500, "630m"},
		{1850, "160m"},
		{3573, "80m"},
		{7074.566, "40m"},
		{10136, "30m"},
		{14074, "20m"},
		{18100, "17m"},
		{21074, "15m"},
		{24915, "12m"},
		{28074, "10m"},
		{50313, "6m"},
		{144174, "2m"},
		{999999, "Unknown"},
		{0, "Unknown"},
	}

	for _, tc := range testCases {
		if got := BandName(tc.khz); got != tc.want {
			t.Errorf("BandName(%v) = %q, want %q", tc.khz, got, tc.want)
		}
	}
}

func TestAge(t *testing.T) {
	now := time.Now()
	sp := Spot{Timestamp: now.Add(-90 * time.Second).Unix()}
	if age := sp.Age(now); age != 90 {
		t.Errorf("age = %d, want 90", age)
	}
}

func TestTimeIsUTC(t *testing.T) {
	sp := Spot{Timestamp: 1740548205}
	got := sp.Time()
	if got.Location() != time.UTC {
		t.Errorf("location = %v, want UTC", got.Location())
	}
	if got.Format("2006-01-02 15:04:05") != "2025-02-26 05:36:45" {
		t.Errorf("time = %v", got)
	}
}

func TestJSONFieldNames(t *testing.T) {
	sp := Spot{
		Callsign: "US5EAA",
		Country:  "Ukraine",
		ADIFID:   "288",
		Coords:   [2]float64{48.5, 35.0},
	}

	data, err := json.Marshal(sp)
	if err != nil {
		t.Fatal(err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{
		"callsign", "country", "adif_id", "frequency", "timestamp",
		"coordinates", "locator", "distance", "signal",
		"worked_before", "locator_worked_before", "country_worked_before",
	} {
		if _, ok := m[key]; !ok {
			t.Errorf("JSON missing field %q", key)
		}
	}
}
