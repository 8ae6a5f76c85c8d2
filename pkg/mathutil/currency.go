// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/shopspring/decimal"

	"rendafixa-simulator/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons and for display-stable amounts.
func Round(val float64) float64 {
	out, _ := decimal.NewFromFloat(val).Round(constants.DecimalPrecision).Float64()
	return out
}

// IsZero checks if a value is effectively zero (within currency tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
