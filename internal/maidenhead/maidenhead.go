// Package maidenhead converts grid locators to geographic coordinates.
//
// A locator is 4-8 characters of alternating pairs: field letters (A-R,
// 18 divisions of 20x10 degrees), square digits (10 divisions of 2x1
// degrees), subsquare letters (A-X, 24 divisions) and extended square
// digits. Conversion is deterministic and resolves to the center of the
// smallest cell the locator names.
package maidenhead

import (
	"fmt"
	"strings"
)

// ToLocation converts a grid locator to the latitude/longitude of the
// center of its cell. The locator may use either letter case.
func ToLocation(locator string) (lat, lon float64, err error) {
	loc := strings.ToUpper(strings.TrimSpace(locator))
	if len(loc) < 4 || len(loc) > 8 || len(loc)%2 != 0 {
		return 0, 0, fmt.Errorf("locator %q: length must be 4, 6 or 8", locator)
	}

	// Cell sizes in degrees for each pair, longitude then latitude.
	lonStep := []float64{20, 2, 2.0 / 24, 2.0 / 240}
	latStep := []float64{10, 1, 1.0 / 24, 1.0 / 240}

	lon = -180
	lat = -90
	pairs := len(loc) / 2

	for i := 0; i < pairs; i++ {
		a, b := loc[2*i], loc[2*i+1]

		var va, vb int
		switch i {
		case 0:
			if a < 'A' || a > 'R' || b < 'A' || b > 'R' {
				return 0, 0, fmt.Errorf("locator %q: field pair out of range A-R", locator)
			}
			va, vb = int(a-'A'), int(b-'A')
		case 2:
			if a < 'A' || a > 'X' || b < 'A' || b > 'X' {
				return 0, 0, fmt.Errorf("locator %q: subsquare pair out of range A-X", locator)
			}
			va, vb = int(a-'A'), int(b-'A')
		default:
			if a < '0' || a > '9' || b < '0' || b > '9' {
				return 0, 0, fmt.Errorf("locator %q: square pair must be digits", locator)
			}
			va, vb = int(a-'0'), int(b-'0')
		}

		lon += float64(va) * lonStep[i]
		lat += float64(vb) * latStep[i]
	}

	// Center of the last-resolved cell.
	lon += lonStep[pairs-1] / 2
	lat += latStep[pairs-1] / 2

	return lat, lon, nil
}
