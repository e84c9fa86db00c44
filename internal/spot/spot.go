// Package spot defines the decode event model shared by the live and
// batch ingest paths.
package spot

import "time"

// UnknownSentinel marks classification fields that could not be resolved.
// It is a value, never an absent field.
const UnknownSentinel = "Unknown"

// Spot is one observed FT8 decode. Immutable after creation; the only
// removal path is the event store's eviction sweep.
type Spot struct {
	Callsign  string     `json:"callsign"`
	Country   string     `json:"country"`
	ADIFID    string     `json:"adif_id"`
	Frequency float64    `json:"frequency"` // kHz
	Timestamp int64      `json:"timestamp"` // Unix seconds, UTC
	Coords    [2]float64 `json:"coordinates"`
	Locator   string     `json:"locator"`
	Distance  string     `json:"distance"`
	Signal    int        `json:"signal"` // dB

	// Worked-set membership at enrichment time.
	WorkedBefore        bool `json:"worked_before"`
	LocatorWorkedBefore bool `json:"locator_worked_before"`
	CountryWorkedBefore bool `json:"country_worked_before"`
}

// Age returns the spot's age relative to now.
func (s *Spot) Age(now time.Time) int64 {
	return now.Unix() - s.Timestamp
}

// Time returns the spot timestamp as a UTC instant.
func (s *Spot) Time() time.Time {
	return time.Unix(s.Timestamp, 0).UTC()
}

// bandEdge maps a frequency range in MHz to an amateur band name.
type bandEdge struct {
	low, high float64
	name      string
}

var bandTable = []bandEdge{
	{0.136, 0.478, "2190m"},
	{0.478, 1.8, "630m"},
	{1.8, 2.0, "160m"},
	{3.5, 4.0, "80m"},
	{5.1, 5.45, "60m"},
	{7.0, 7.3, "40m"},
	{10.1, 10.15, "30m"},
	{14.0, 14.35, "20m"},
	{18.068, 18.168, "17m"},
	{21.0, 21.45, "15m"},
	{24.89, 24.99, "12m"},
	{28.0, 29.7, "10m"},
	{50, 54, "6m"},
	{144, 148, "2m"},
}

// BandName converts a frequency in kHz to its amateur band name, or
// UnknownSentinel when the frequency falls outside every band.
func BandName(frequencyKHz float64) string {
	freqMHz := frequencyKHz / 1000
	for _, b := range bandTable {
		if freqMHz >= b.low && freqMHz < b.high {
			return b.name
		}
	}
	return UnknownSentinel
}
