// Package price normalizes raw price-bearing strings into validated
// monetary amounts.
package price

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Minimum is the smallest amount accepted as a real price. Anything
// below it is treated as a placeholder or a misread fragment (ratings,
// counters, "0.00" templates) rather than a price.
var Minimum = decimal.NewFromFloat(1.01)

// Parse extracts a monetary amount from a raw string.
//
// Every rune that is not a digit, comma or period is stripped and the
// comma is treated as a decimal separator. The remainder is parsed as
// a decimal number. Parse reports false when nothing parseable remains
// or the value is below Minimum.
//
// Thousands-separator commas are not disambiguated: "1,234" parses as
// 1.234. Strings carrying both separators ("1.234,56") fail to parse
// and are rejected.
func Parse(raw string) (decimal.Decimal, bool) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r == ',', r == '.':
			b.WriteRune(r)
		}
	}

	cleaned := strings.ReplaceAll(b.String(), ",", ".")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if d.LessThan(Minimum) {
		return decimal.Decimal{}, false
	}
	return d, true
}
