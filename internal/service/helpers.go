package service

import "math"

// RoundingPrecision rounds monetary values to two decimal places
const RoundingPrecision = 100

// roundCents rounds to two decimal places
func roundCents(v float64) float64 {
	return math.Round(v*RoundingPrecision) / RoundingPrecision
}

// roundUnit rounds to the nearest whole home-currency unit
func roundUnit(v float64) float64 {
	return math.Round(v)
}
