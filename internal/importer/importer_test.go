package importer

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ft8spots/internal/cache"
	"ft8spots/internal/lookup"
	"ft8spots/internal/store"
	"ft8spots/internal/worked"
)

func testLookup(callsign string) (lookup.Info, error) {
	if strings.HasPrefix(strings.ToUpper(callsign), "X9") {
		return lookup.Info{}, fmt.Errorf("no match")
	}
	return lookup.Info{Country: "Testland", ADIF: "999"}, nil
}

func newImporter(t *testing.T) *Importer {
	t.Helper()
	dir := t.TempDir()
	return &Importer{
		Cache:  cache.New(testLookup, filepath.Join(dir, "cache.json")),
		Worked: worked.NewTracker(filepath.Join(dir, "worked.json")),
		Store:  store.New(),
	}
}

const batchDoc = `<EOH>
<CALL:6>US5EAA <GRIDSQUARE:4>KN78 <FREQ:8>7.074566 <QSO_DATE:8>20250226 <TIME_ON:6>053645 <RST_RCVD:2>-8 <EOR>
<CALL:5>SQ2WB <GRIDSQUARE:6>JO92ES <FREQ:9>14.074000 <QSO_DATE:8>20250101 <TIME_ON:4>1230 <EOR>
<CALL:5>DL1AA <FREQ:8>7.074000 <EOR>
<CALL:5>NOFRQ <GRIDSQUARE:4>JO62 <EOR>
`

func TestImportWithoutDisplay(t *testing.T) {
	im := newImporter(t)

	processed, err := im.Import(strings.NewReader(batchDoc), false)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	// DL1AA has no locator and NOFRQ no frequency; both are skipped.
	if processed != 2 {
		t.Errorf("processed = %d, want 2", processed)
	}

	if n := im.Store.Len(); n != 0 {
		t.Errorf("store size = %d, want 0 with display disabled", n)
	}

	stats := im.Worked.GetStats()
	if stats.CallsignCount != 2 {
		t.Errorf("worked callsigns = %d, want 2", stats.CallsignCount)
	}
	if !im.Worked.IsCallsignWorked("US5EAA") || !im.Worked.IsCallsignWorked("SQ2WB") {
		t.Error("imported callsigns not recorded as worked")
	}
	if !im.Worked.IsCountryWorked("999") {
		t.Error("classification id not recorded as worked")
	}
	if !im.Worked.IsLocatorWorked("KN78") || !im.Worked.IsLocatorWorked("JO92ES") {
		t.Error("locators not recorded as worked")
	}
}

func TestImportWithDisplay(t *testing.T) {
	im := newImporter(t)

	processed, err := im.Import(strings.NewReader(batchDoc), true)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if processed != 2 {
		t.Errorf("processed = %d, want 2", processed)
	}
	if n := im.Store.Len(); n != 2 {
		t.Fatalf("store size = %d, want 2 with display enabled", n)
	}

	spots := im.Store.Snapshot(nil)
	first := spots[0]
	if first.Callsign != "US5EAA" {
		t.Fatalf("first spot = %+v", first)
	}
	if first.Frequency != 7074.566 {
		t.Errorf("frequency = %v kHz, want 7074.566", first.Frequency)
	}
	if first.Timestamp != 1740548205 {
		t.Errorf("timestamp = %d, want 1740548205", first.Timestamp)
	}
	if first.Distance != "0km" {
		t.Errorf("distance = %q, want the 0km placeholder", first.Distance)
	}
	if first.Signal != -8 {
		t.Errorf("signal = %d, want -8", first.Signal)
	}
	if first.Country != "Testland" || first.ADIFID != "999" {
		t.Errorf("classification = %q/%q", first.Country, first.ADIFID)
	}
	if !first.WorkedBefore || !first.LocatorWorkedBefore || !first.CountryWorkedBefore {
		t.Error("imported spots should carry all worked booleans set")
	}

	// TIME_ON is right-padded to six digits: 1230 -> 123000.
	second := spots[1]
	want := time.Date(2025, 1, 1, 12, 30, 0, 0, time.UTC).Unix()
	if second.Timestamp != want {
		t.Errorf("second timestamp = %d, want %d", second.Timestamp, want)
	}
}

func TestImportMissingDateUsesClock(t *testing.T) {
	im := newImporter(t)
	fixed := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	im.Now = func() time.Time { return fixed }

	doc := "<EOH><CALL:5>DL1AA <GRIDSQUARE:4>JO62 <FREQ:8>7.074000 <EOR>"
	processed, err := im.Import(strings.NewReader(doc), true)
	if err != nil || processed != 1 {
		t.Fatalf("import = %d, %v", processed, err)
	}

	if got := im.Store.Snapshot(nil)[0].Timestamp; got != fixed.Unix() {
		t.Errorf("timestamp = %d, want substituted clock %d", got, fixed.Unix())
	}
}

func TestImportNegativeClassification(t *testing.T) {
	im := newImporter(t)

	doc := "<EOH><CALL:5>X9XXX <GRIDSQUARE:4>KN78 <FREQ:8>7.074000 <EOR>"
	processed, err := im.Import(strings.NewReader(doc), true)
	if err != nil || processed != 1 {
		t.Fatalf("import = %d, %v", processed, err)
	}

	sp := im.Store.Snapshot(nil)[0]
	if sp.Country != "Unknown" || sp.ADIFID != "Unknown" {
		t.Errorf("classification = %q/%q, want Unknown sentinels", sp.Country, sp.ADIFID)
	}
	// The sentinel id never enters the worked country set.
	if im.Worked.GetStats().CountryCount != 0 {
		t.Error("Unknown classification recorded as worked country")
	}
}

func TestImportBadRecordSkipped(t *testing.T) {
	im := newImporter(t)

	doc := "<EOH><CALL:5>DL1AA <GRIDSQUARE:4>JO62 <FREQ:3>bad <EOR>" +
		"<CALL:5>SQ2WB <GRIDSQUARE:6>JO92ES <FREQ:9>14.074000 <EOR>"
	processed, err := im.Import(strings.NewReader(doc), true)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if processed != 1 {
		t.Errorf("processed = %d, want 1 (bad frequency skipped)", processed)
	}
	if im.Store.Len() != 1 {
		t.Errorf("store size = %d, want 1", im.Store.Len())
	}
}

func TestImportUnreadableDocumentAborts(t *testing.T) {
	im := newImporter(t)

	if _, err := im.Import(strings.NewReader("<EOH><CALL:900>short"), true); err == nil {
		t.Error("expected batch-level error for undecodable document")
	}
	if im.Store.Len() != 0 {
		t.Error("aborted batch should not touch the store")
	}
}

func TestImportPersistsState(t *testing.T) {
	dir := t.TempDir()
	im := &Importer{
		Cache:  cache.New(testLookup, filepath.Join(dir, "cache.json")),
		Worked: worked.NewTracker(filepath.Join(dir, "worked.json")),
		Store:  store.New(),
	}

	if _, err := im.Import(strings.NewReader(batchDoc), false); err != nil {
		t.Fatalf("import: %v", err)
	}

	// Both snapshots land on disk after the batch.
	fresh := worked.NewTracker(filepath.Join(dir, "worked.json"))
	if n, err := fresh.Load(); err != nil || n != 2 {
		t.Errorf("worked snapshot = %d callsigns, %v; want 2", n, err)
	}
	freshCache := cache.New(testLookup, filepath.Join(dir, "cache.json"))
	if n, err := freshCache.Load(); err != nil || n != 2 {
		t.Errorf("cache snapshot = %d entries, %v; want 2", n, err)
	}
}
