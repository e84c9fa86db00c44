// Package lookup resolves a callsign to its country and ADIF entity id.
//
// The resolver is modelled as an opaque synchronous function so the
// enrichment cache can be backed by any source (country file, online
// service). A built-in prefix table is provided for self-contained
// operation.
package lookup

import (
	"fmt"
	"strings"
)

// Info is a successful classification outcome.
type Info struct {
	Country string `json:"country"`
	ADIF    string `json:"adif"`
}

// Func resolves one callsign. A non-nil error means the callsign could
// not be classified; callers cache that outcome as a negative result.
type Func func(callsign string) (Info, error)

// prefixTable maps callsign prefixes to DXCC entities, longest prefix
// wins. A small subset of the country file covering common prefixes.
var prefixTable = map[string]Info{
	"DL": {Country: "Germany", ADIF: "230"},
	"DJ": {Country: "Germany", ADIF: "230"},
	"DK": {Country: "Germany", ADIF: "230"},
	"EA": {Country: "Spain", ADIF: "281"},
	"EI": {Country: "Ireland", ADIF: "245"},
	"ES": {Country: "Estonia", ADIF: "52"},
	"F":  {Country: "France", ADIF: "227"},
	"G":  {Country: "England", ADIF: "223"},
	"HA": {Country: "Hungary", ADIF: "239"},
	"HB": {Country: "Switzerland", ADIF: "287"},
	"I":  {Country: "Italy", ADIF: "248"},
	"JA": {Country: "Japan", ADIF: "339"},
	"K":  {Country: "United States", ADIF: "291"},
	"LA": {Country: "Norway", ADIF: "266"},
	"LY": {Country: "Lithuania", ADIF: "146"},
	"LZ": {Country: "Bulgaria", ADIF: "212"},
	"N":  {Country: "United States", ADIF: "291"},
	"OE": {Country: "Austria", ADIF: "206"},
	"OH": {Country: "Finland", ADIF: "224"},
	"OK": {Country: "Czech Republic", ADIF: "503"},
	"OM": {Country: "Slovak Republic", ADIF: "504"},
	"ON": {Country: "Belgium", ADIF: "209"},
	"OZ": {Country: "Denmark", ADIF: "221"},
	"PA": {Country: "Netherlands", ADIF: "263"},
	"PY": {Country: "Brazil", ADIF: "108"},
	"R":  {Country: "European Russia", ADIF: "54"},
	"S5": {Country: "Slovenia", ADIF: "499"},
	"SM": {Country: "Sweden", ADIF: "284"},
	"SP": {Country: "Poland", ADIF: "269"},
	"SQ": {Country: "Poland", ADIF: "269"},
	"SV": {Country: "Greece", ADIF: "236"},
	"UA": {Country: "European Russia", ADIF: "54"},
	"UR": {Country: "Ukraine", ADIF: "288"},
	"US": {Country: "Ukraine", ADIF: "288"},
	"UT": {Country: "Ukraine", ADIF: "288"},
	"UX": {Country: "Ukraine", ADIF: "288"},
	"VE": {Country: "Canada", ADIF: "1"},
	"VK": {Country: "Australia", ADIF: "150"},
	"W":  {Country: "United States", ADIF: "291"},
	"YL": {Country: "Latvia", ADIF: "145"},
	"YO": {Country: "Romania", ADIF: "275"},
	"YU": {Country: "Serbia", ADIF: "296"},
	"ZL": {Country: "New Zealand", ADIF: "170"},
}

// CountryFile resolves callsigns against the built-in prefix table using
// longest-prefix match.
func CountryFile(callsign string) (Info, error) {
	call := strings.ToUpper(strings.TrimSpace(callsign))
	if call == "" {
		return Info{}, fmt.Errorf("empty callsign")
	}

	for n := len(call); n > 0; n-- {
		if n > 4 {
			continue
		}
		if info, ok := prefixTable[call[:n]]; ok {
			return info, nil
		}
	}
	return Info{}, fmt.Errorf("no prefix match for %s", call)
}
