// Package format provides locale-correct rendering of monetary amounts and
// dates for the Chilean locale, plus due-date status helpers.
//
// Every function in this package is total: malformed input degrades to a safe
// default (empty string or the zero amount) instead of returning an error,
// because these helpers sit in rendering paths.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencyFormatter renders monetary amounts for a specific locale and
// currency symbol. Locale and symbol are explicit so the formatter stays
// portable and testable without ambient locale state.
type CurrencyFormatter struct {
	printer *message.Printer
	symbol  string
	digits  int
}

// NewCurrencyFormatter creates a formatter for the given locale tag, currency
// symbol and number of fraction digits.
func NewCurrencyFormatter(tag language.Tag, symbol string, fractionDigits int) *CurrencyFormatter {
	return &CurrencyFormatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
		digits:  fractionDigits,
	}
}

// clp is the package default: Chilean peso, es-CL grouping, no decimals.
var clp = NewCurrencyFormatter(language.MustParse("es-CL"), "$", 0)

// Format renders amount with the formatter's symbol and locale grouping.
// NaN and infinities render as the zero amount.
func (f *CurrencyFormatter) Format(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	formatted := f.printer.Sprint(number.Decimal(amount,
		number.MaxFractionDigits(f.digits),
		number.MinFractionDigits(f.digits),
	))

	if amount < 0 {
		// Keep the sign outside the symbol: -$1.000 rather than $-1.000.
		return "-" + f.symbol + formatted[1:]
	}
	return f.symbol + formatted
}

// Currency renders amount as Chilean peso with zero fraction digits,
// e.g. 1234567 -> "$1.234.567". NaN renders as "$0".
func Currency(amount float64) string {
	return clp.Format(amount)
}
