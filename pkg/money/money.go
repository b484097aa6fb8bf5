// Package money formats pound sterling amounts for documents and logs.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BritishEnglish)

// FormatGBP renders d as e.g. "£1,800.00". Amounts are rounded to pence first.
func FormatGBP(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}
	return sign + printer.Sprintf("%v%v", currency.Symbol(currency.GBP), number.Decimal(f, number.Scale(2)))
}

// FormatPercent renders a multiplier such as 0.2 as "20%".
func FormatPercent(multiplier decimal.Decimal) string {
	f, _ := multiplier.Mul(decimal.NewFromInt(100)).Round(0).Float64()
	return printer.Sprintf("%v%%", number.Decimal(f, number.Scale(0)))
}
