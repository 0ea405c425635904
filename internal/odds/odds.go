// Package odds converts between implied probability, decimal odds and
// American odds. All functions are pure.
package odds

import "math"

// Epsilon bounds probabilities away from 0 and 1 before conversion so that
// the divisions below stay finite.
const Epsilon = 1e-6

// Clamp pins p into [Epsilon, 1-Epsilon]. Callers convert clamped values
// only; passing a raw p outside (0,1) to the converters is a caller bug.
func Clamp(p float64) float64 {
	if p < Epsilon {
		return Epsilon
	}
	if p > 1-Epsilon {
		return 1 - Epsilon
	}
	return p
}

// PriceToAmerican converts an implied probability to American odds.
// Favorites (p >= 0.5) get negative odds, underdogs positive. p = 0.5
// maps to -100.
func PriceToAmerican(p float64) int {
	if p >= 0.5 {
		return int(math.Round(-100 * p / (1 - p)))
	}
	return int(math.Round(100 * (1 - p) / p))
}

// PriceToDecimal converts an implied probability to decimal odds,
// rounded to 2 decimal places.
func PriceToDecimal(p float64) float64 {
	return math.Round(100/p) / 100
}

// AmericanToPrice converts American odds back to an implied probability.
func AmericanToPrice(odds int) float64 {
	o := float64(odds)
	if odds > 0 {
		return 100 / (o + 100)
	}
	return -o / (-o + 100)
}
