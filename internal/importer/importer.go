// Package importer ingests ADIF log documents in bulk, feeding the same
// enrichment cache and worked sets as the live path.
package importer

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"ft8spots/internal/adif"
	"ft8spots/internal/cache"
	"ft8spots/internal/maidenhead"
	"ft8spots/internal/spot"
	"ft8spots/internal/store"
	"ft8spots/internal/worked"
)

// defaultSignal substitutes for a missing RST_RCVD field.
const defaultSignal = -10

// Importer processes batch log documents against the shared services.
type Importer struct {
	Cache  *cache.Cache
	Worked *worked.Tracker
	Store  *store.Store

	// Now substitutes the batch clock in tests; nil means time.Now.
	Now func() time.Time
}

// Import decodes an ADIF document and processes every record.
//
// Records missing any of CALL, GRIDSQUARE or FREQ are skipped silently.
// Every processed record is classified and recorded as worked; when
// displayOnMap is set a full spot is additionally inserted into the live
// store with a placeholder distance. After the batch both the worked set
// and the cache are persisted. Returns the number of records processed;
// a document that cannot be decoded at all aborts the whole batch.
func (im *Importer) Import(r io.Reader, displayOnMap bool) (int, error) {
	records, err := adif.Read(r)
	if err != nil {
		return 0, fmt.Errorf("decode batch document: %w", err)
	}

	processed := 0
	for _, rec := range records {
		if im.processRecord(rec, displayOnMap) {
			processed++
		}
	}

	if err := im.Worked.Save(); err != nil {
		log.Printf("importer: worked-set save failed: %v", err)
	}
	if err := im.Cache.Save(); err != nil {
		log.Printf("importer: cache save failed: %v", err)
	}

	return processed, nil
}

// processRecord handles one record, reporting whether it counted toward
// the batch total. Failures are logged and skipped; the batch continues.
func (im *Importer) processRecord(rec adif.Record, displayOnMap bool) bool {
	call := strings.TrimSpace(rec["CALL"])
	grid := strings.TrimSpace(rec["GRIDSQUARE"])
	freqMHz := strings.TrimSpace(rec["FREQ"])

	if call == "" || grid == "" || freqMHz == "" {
		return false
	}

	country, adifID := spot.UnknownSentinel, spot.UnknownSentinel
	if info := im.Cache.Classify(call); info != nil {
		country, adifID = info.Country, info.ADIF
	}

	// Batch import always counts as worked, independent of display.
	im.Worked.Record(call, adifID, grid)

	if !displayOnMap {
		return true
	}

	freq, err := strconv.ParseFloat(freqMHz, 64)
	if err != nil {
		log.Printf("importer: record %s: bad frequency %q: %v", call, freqMHz, err)
		return false
	}
	frequencyKHz := freq * 1000

	lat, lon, err := maidenhead.ToLocation(grid)
	if err != nil {
		log.Printf("importer: record %s: %v", call, err)
		return false
	}

	ts, err := im.recordTime(rec)
	if err != nil {
		log.Printf("importer: record %s: %v", call, err)
		return false
	}

	signal := defaultSignal
	if v, err := strconv.Atoi(strings.TrimSpace(rec["RST_RCVD"])); err == nil {
		signal = v
	}

	im.Store.Insert(spot.Spot{
		Callsign:  call,
		Country:   country,
		ADIFID:    adifID,
		Frequency: frequencyKHz,
		Timestamp: ts,
		Coords:    [2]float64{lat, lon},
		Locator:   grid,
		Distance:  "0km", // no real distance is computed for imports
		Signal:    signal,

		WorkedBefore:        true,
		LocatorWorkedBefore: true,
		CountryWorkedBefore: true,
	})
	return true
}

// recordTime derives the spot timestamp from QSO_DATE plus TIME_ON
// zero-padded to six digits. Either field missing substitutes the
// current wall clock.
func (im *Importer) recordTime(rec adif.Record) (int64, error) {
	qsoDate := strings.TrimSpace(rec["QSO_DATE"])
	timeOn := strings.TrimSpace(rec["TIME_ON"])

	if qsoDate == "" || timeOn == "" {
		now := time.Now
		if im.Now != nil {
			now = im.Now
		}
		return now().Unix(), nil
	}

	for len(timeOn) < 6 {
		timeOn += "0"
	}
	ts, err := time.Parse("20060102 150405", qsoDate+" "+timeOn)
	if err != nil {
		return 0, fmt.Errorf("bad date/time %q %q: %w", qsoDate, timeOn, err)
	}
	return ts.UTC().Unix(), nil
}
