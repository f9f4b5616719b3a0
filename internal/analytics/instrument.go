package analytics

import "strings"

// StandardLotSize is the number of units in one lot.
const StandardLotSize = 100000

// PipSize returns the smallest standard price increment for an instrument.
// JPY pairs quote to two decimals, everything else to four.
func PipSize(instrument string) float64 {
	if strings.Contains(strings.ToLower(instrument), "jpy") {
		return 0.01
	}
	return 0.0001
}
