// Package parser extracts decode events from raw FT8 log lines.
//
// Recognition is anchored, not fuzzy: a line must carry the full decode
// grammar after the "FT8 DECODE:" marker or it is rejected as a whole.
// Surrounding syslog header text is ignored.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"ft8spots/internal/maidenhead"
	"ft8spots/internal/spot"
)

// decodePattern matches one FT8 decode report:
// frequency (kHz, three fractional digits), callsign, grid locator,
// signal (dB), distance with a km suffix, and a UTC date-time.
//
// Example:
//
//	FT8 DECODE: 7074.566 US5EAA KN78 -8 1012km Wed Feb 26 05:36:45 2025
var decodePattern = regexp.MustCompile(
	`FT8 DECODE:\s+(\d+\.\d{3})\s+(\w+)\s+([A-R]{2}\d{2}[A-X]{0,2})\s+(-?\d+)\s+(\d+km)\s+([A-Za-z]{3}\s+[A-Za-z]{3}\s+\d{1,2}\s+\d{2}:\d{2}:\d{2}\s+\d{4})`,
)

// dateLayout matches the decode timestamp, e.g. "Wed Feb 26 05:36:45 2025".
const dateLayout = "Mon Jan 2 15:04:05 2006"

// Decode is a parsed decode report before enrichment. Classification
// fields and worked-set membership are filled in by the caller.
type Decode struct {
	Callsign  string
	Frequency float64 // kHz
	Timestamp int64   // Unix seconds, UTC
	Latitude  float64
	Longitude float64
	Locator   string
	Distance  string
	Signal    int // dB
}

// ParseLine extracts a decode report from one raw log line. The second
// return value is false when the line does not match the grammar or any
// field fails conversion; no distinction is made between the two.
func ParseLine(line string) (*Decode, bool) {
	m := decodePattern.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}

	freq, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil, false
	}

	signal, err := strconv.Atoi(m[4])
	if err != nil {
		return nil, false
	}

	// Collapse runs of whitespace; the grammar tolerates them but the
	// time layout does not.
	ts, err := time.Parse(dateLayout, strings.Join(strings.Fields(m[6]), " "))
	if err != nil {
		return nil, false
	}

	lat, lon, err := maidenhead.ToLocation(m[3])
	if err != nil {
		return nil, false
	}

	return &Decode{
		Callsign:  m[2],
		Frequency: freq,
		Timestamp: ts.UTC().Unix(),
		Latitude:  lat,
		Longitude: lon,
		Locator:   m[3],
		Distance:  m[5],
		Signal:    signal,
	}, true
}

// Spot builds a partially-enriched Spot from the decode. Classification
// fields default to the Unknown sentinel.
func (d *Decode) Spot() spot.Spot {
	return spot.Spot{
		Callsign:  d.Callsign,
		Country:   spot.UnknownSentinel,
		ADIFID:    spot.UnknownSentinel,
		Frequency: d.Frequency,
		Timestamp: d.Timestamp,
		Coords:    [2]float64{d.Latitude, d.Longitude},
		Locator:   d.Locator,
		Distance:  d.Distance,
		Signal:    d.Signal,
	}
}
