package scoreline

import "github.com/shopspring/decimal"

// Round rounds x to places decimals, half away from zero
func Round(x float64, places int32) float64 {
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}

// Percent converts a probability to a percentage with one decimal
func Percent(p float64) float64 {
	return Round(100.0*p, 1)
}
