package dca

// Deviation returns the percentage difference between price and its moving
// average: (price - ma) / ma * 100.
func Deviation(price, ma float64) float64 {
	return (price - ma) / ma * 100
}

// MultiplierFor maps a percentage deviation to an investment multiplier.
// Tiers are first-match with boundaries inclusive on the low side; deep
// discounts scale the base amount up, rich valuations scale it down to zero.
//
// A result of 0 means "skip this period".
func MultiplierFor(deviationPct float64) float64 {
	switch {
	case deviationPct <= -20: // deeply undervalued
		return 2.2
	case deviationPct <= -10: // significantly undervalued
		return 1.8
	case deviationPct <= 0: // slightly below average
		return 1.4
	case deviationPct <= 5: // fair value
		return 1.0
	case deviationPct <= 15: // slightly rich
		return 0.5
	case deviationPct <= 25: // significantly rich
		return 0.2
	default: // deeply overvalued
		return 0.0
	}
}
