package adif

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ft8spots/internal/spot"
)

// Exporter appends live spots to a WSJT-X compatible ADIF log.
type Exporter struct {
	Path        string // log file, appended to
	StationCall string // operator callsign for STATION_CALLSIGN
	StationGrid string // operator locator for MY_GRIDSQUARE
}

// Append writes one spot as an ADIF record. On and off times are equal;
// the comment carries the distance descriptor.
func (e *Exporter) Append(sp *spot.Spot) error {
	if err := os.MkdirAll(filepath.Dir(e.Path), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	ts := sp.Time()
	qsoDate := ts.Format("20060102")
	timeOn := ts.Format("150405")
	band := spot.BandName(sp.Frequency)
	freqMHz := fmt.Sprintf("%.6f", sp.Frequency/1000)
	signal := fmt.Sprintf("%d", sp.Signal)
	comment := "Distance: " + sp.Distance

	var b strings.Builder
	writeField(&b, "CALL", sp.Callsign)
	writeField(&b, "GRIDSQUARE", sp.Locator)
	writeField(&b, "MODE", "FT8")
	writeField(&b, "RST_SENT", "-00")
	writeField(&b, "RST_RCVD", signal)
	writeField(&b, "QSO_DATE", qsoDate)
	writeField(&b, "TIME_ON", timeOn)
	writeField(&b, "QSO_DATE_OFF", qsoDate)
	writeField(&b, "TIME_OFF", timeOn)
	writeField(&b, "BAND", band)
	writeField(&b, "FREQ", freqMHz)
	writeField(&b, "STATION_CALLSIGN", e.StationCall)
	writeField(&b, "MY_GRIDSQUARE", e.StationGrid)
	writeField(&b, "COMMENT", comment)
	b.WriteString("<EOR>\n")

	f, err := os.OpenFile(e.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", e.Path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("append %s: %w", e.Path, err)
	}
	return nil
}

func writeField(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, "<%s:%d>%s\n", name, len(value), value)
}
