// Package price formats predicted amounts for display.
package price

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultSymbol is the currency the bundled model was trained on.
const DefaultSymbol = "₹"

// Round returns v rounded half away from zero to two decimal places.
func Round(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// Format renders d as "<symbol> 1,234,567.89".
func Format(d decimal.Decimal, symbol string) string {
	amount := Group(d.StringFixed(2))
	if symbol == "" {
		return amount
	}
	return symbol + " " + amount
}

// Group inserts thousands separators into the integer part of a plain decimal string.
func Group(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := sign + b.String()
	if hasFrac {
		out += "." + frac
	}
	return out
}
