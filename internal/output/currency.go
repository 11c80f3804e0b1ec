package output

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatCurrency renders an amount as dollars and cents with thousands
// separators, e.g. -$1,234.57.
func FormatCurrency(amount float64) string {
	if !isFinite(amount) {
		return nonFinite(amount)
	}
	d := decimal.NewFromFloat(amount).Round(2)
	p := message.NewPrinter(language.English)
	s := p.Sprintf("$%.2f", d.Abs().InexactFloat64())
	if d.IsNegative() {
		return "-" + s
	}
	return s
}

// FormatPercentage renders a percentage with two decimals.
func FormatPercentage(pct float64) string {
	if !isFinite(pct) {
		return nonFinite(pct) + "%"
	}
	return decimal.NewFromFloat(pct).StringFixed(2) + "%"
}

// FormatShort renders an amount compactly for chart labels, e.g. $1.25M.
func FormatShort(amount float64) string {
	if !isFinite(amount) {
		return nonFinite(amount)
	}
	d := decimal.NewFromFloat(amount)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	switch {
	case d.GreaterThanOrEqual(decimal.NewFromInt(1000000)):
		return sign + "$" + d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	case d.GreaterThanOrEqual(decimal.NewFromInt(1000)):
		return sign + "$" + d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return sign + "$" + d.StringFixed(0)
}

// fixed renders a float with two decimals for machine-readable output.
func fixed(f float64) string {
	if !isFinite(f) {
		return nonFinite(f)
	}
	return decimal.NewFromFloat(f).StringFixed(2)
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// nonFinite renders an overflowed value as +Inf, -Inf or NaN.
func nonFinite(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
