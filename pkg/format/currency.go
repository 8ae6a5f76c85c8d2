// Package format provides locale-aware formatting helpers for simulator output.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"rendafixa-simulator/pkg/mathutil"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Currency returns a BRL currency string with thousands separators
// (e.g., "R$ 1.234,56").
func Currency(amount float64) string {
	return printer.Sprintf("R$ %.2f", mathutil.Round(amount))
}

// Percent formats a decimal fraction as a percentage with two decimals
// (e.g., 0.1375 -> "13,75%").
func Percent(fraction float64) string {
	return printer.Sprintf("%.2f%%", fraction*100)
}

// Rate formats a monthly rate with four decimals (e.g., 0.0093 -> "0,9300% a.m.").
func Rate(monthlyRate float64) string {
	return printer.Sprintf("%.4f%% a.m.", monthlyRate*100)
}
