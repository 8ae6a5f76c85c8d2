// Package tax implements the Brazilian regressive income-tax (IR) schedule
// applied to gains on taxable fixed-income products.
package tax

import (
	"rendafixa-simulator/pkg/constants"
)

// Regressive IR brackets by holding period in days.
const (
	rateUpTo180Days = 0.225
	rateUpTo360Days = 0.20
	rateUpTo720Days = 0.175
	rateBeyond720   = 0.15
)

// RegressiveRate returns the IR rate for a holding period in days.
// Total over non-negative integers; longer holdings pay less.
func RegressiveRate(days int) float64 {
	switch {
	case days <= 180:
		return rateUpTo180Days
	case days <= 360:
		return rateUpTo360Days
	case days <= 720:
		return rateUpTo720Days
	}
	return rateBeyond720
}

// HoldingDays converts a horizon in months to the fixed 30-day-month
// convention used by the schedule (not calendar-accurate).
func HoldingDays(months int) int {
	return months * constants.DaysPerMonth
}
