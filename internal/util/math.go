package util

import "math"

// RoundFloat64 rounds half away from zero to n decimals.
func RoundFloat64(f float64, n int) float64 {
	pow := math.Pow10(n)
	return math.Round(f*pow) / pow
}
