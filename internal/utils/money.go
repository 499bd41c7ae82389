package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders a price in reais, e.g. "R$ 1.250,00".
func FormatBRL(v float64) string {
	return "R$ " + brPrinter.Sprint(number.Decimal(v, number.Scale(2)))
}
