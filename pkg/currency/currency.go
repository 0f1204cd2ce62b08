// Package currency renders decimal money amounts the way the storefront
// displays them: "R$" plus a two-decimal value.
package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Format renders an amount as the app shows it, e.g. "R$ 103.50".
func Format(amount decimal.Decimal) string {
	return "R$ " + amount.StringFixed(2)
}

// FormatPoints renders a point balance with pt-BR digit grouping,
// e.g. "1.250 pontos".
func FormatPoints(points int64) string {
	return printer.Sprintf("%d pontos", points)
}
