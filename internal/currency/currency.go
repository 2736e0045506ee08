// Package currency renders amounts for display.
package currency

import "github.com/Rhymond/go-money"

// Format renders v in the given ISO currency code, e.g. 1234.5 ->
// "$1,234.50" for USD.
func Format(v float64, code string) string {
	return money.NewFromFloat(v, code).Display()
}
