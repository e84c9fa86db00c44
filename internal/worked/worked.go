// Package worked tracks previously-confirmed callsigns, ADIF entity ids
// and grid locators. Membership is append-only for the lifetime of the
// process; there is no removal path.
package worked

import (
	"sort"
	"strings"
	"sync"

	"ft8spots/internal/persist"
	"ft8spots/internal/spot"
)

// Tracker holds the three worked-membership sets.
type Tracker struct {
	mu        sync.RWMutex
	callsigns map[string]struct{}
	adifIDs   map[string]struct{}
	locators  map[string]struct{}

	path string
}

// Stats reports set sizes and full membership listings. Field names
// match the query boundary.
type Stats struct {
	CallsignCount int      `json:"worked_callsigns_count"`
	CountryCount  int      `json:"worked_countries_count"`
	LocatorCount  int      `json:"worked_locators_count"`
	Callsigns     []string `json:"worked_callsigns"`
	Countries     []string `json:"worked_countries"`
	Locators      []string `json:"worked_locators"`
}

// document is the persisted form of the three sets.
type document struct {
	Callsigns []string `json:"callsigns"`
	ADIFIDs   []string `json:"adif_ids"`
	Locators  []string `json:"locators"`
}

// NewTracker creates an empty tracker persisting to path.
func NewTracker(path string) *Tracker {
	return &Tracker{
		callsigns: make(map[string]struct{}),
		adifIDs:   make(map[string]struct{}),
		locators:  make(map[string]struct{}),
		path:      path,
	}
}

// Record adds the callsign unconditionally. The ADIF id and locator are
// added only when present and not the Unknown sentinel.
func (t *Tracker) Record(callsign, adifID, locator string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.callsigns[strings.ToUpper(callsign)] = struct{}{}
	if adifID != "" && adifID != spot.UnknownSentinel {
		t.adifIDs[adifID] = struct{}{}
	}
	if locator != "" && locator != spot.UnknownSentinel {
		t.locators[strings.ToUpper(locator)] = struct{}{}
	}
}

// IsCallsignWorked reports whether the callsign was worked before.
func (t *Tracker) IsCallsignWorked(callsign string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.callsigns[strings.ToUpper(callsign)]
	return ok
}

// IsCountryWorked reports whether the ADIF entity id was worked before.
func (t *Tracker) IsCountryWorked(adifID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.adifIDs[adifID]
	return ok
}

// IsLocatorWorked reports whether the grid locator was worked before.
func (t *Tracker) IsLocatorWorked(locator string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.locators[strings.ToUpper(locator)]
	return ok
}

// GetStats returns counts and sorted membership listings.
func (t *Tracker) GetStats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return Stats{
		CallsignCount: len(t.callsigns),
		CountryCount:  len(t.adifIDs),
		LocatorCount:  len(t.locators),
		Callsigns:     sortedKeys(t.callsigns),
		Countries:     sortedKeys(t.adifIDs),
		Locators:      sortedKeys(t.locators),
	}
}

// Save writes all three sets as one snapshot document. The copy is taken
// under lock; file I/O happens outside the critical section.
func (t *Tracker) Save() error {
	t.mu.RLock()
	doc := document{
		Callsigns: sortedKeys(t.callsigns),
		ADIFIDs:   sortedKeys(t.adifIDs),
		Locators:  sortedKeys(t.locators),
	}
	t.mu.RUnlock()

	return persist.SaveJSON(t.path, doc)
}

// Load unions a persisted document into the sets. A missing file is not
// an error. Returns the number of callsigns in the document.
func (t *Tracker) Load() (int, error) {
	var doc document
	ok, err := persist.LoadJSON(t.path, &doc)
	if err != nil || !ok {
		return 0, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, c := range doc.Callsigns {
		t.callsigns[strings.ToUpper(c)] = struct{}{}
	}
	for _, id := range doc.ADIFIDs {
		t.adifIDs[id] = struct{}{}
	}
	for _, l := range doc.Locators {
		t.locators[strings.ToUpper(l)] = struct{}{}
	}
	return len(doc.Callsigns), nil
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
