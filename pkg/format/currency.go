// Package format provides Spanish-locale formatting for currency amounts.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Spanish)

// Currency returns an amount with Spanish separators and a euro suffix
// (e.g., "1.234,56 €").
func Currency(amount float64) string {
	return printer.Sprintf("%.2f", amount) + " €"
}

// NumericCurrency returns an amount with Spanish separators but no currency
// symbol (e.g., "1.234,56").
func NumericCurrency(amount float64) string {
	return printer.Sprintf("%.2f", amount)
}

// Percent formats a fraction as a percentage with one decimal (e.g., "80,9 %").
func Percent(fraction float64) string {
	return printer.Sprintf("%.1f", fraction*100) + " %"
}
