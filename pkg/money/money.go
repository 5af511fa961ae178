package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	thousand = decimal.NewFromInt(1000)
	million  = decimal.NewFromInt(1000000)
)

// Round rounds an amount to kopecks
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format renders an amount with the given number of decimal places and thousands
// separated by spaces: 1470580.476 -> "1 470 580.48"
func Format(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var sb strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
	}
	if sign != "" && strings.Trim(intPart+frac, "0.") == "" {
		sign = ""
	}
	return sign + sb.String() + frac
}

// FormatRub renders a whole-ruble amount: "1 470 580 ₽"
func FormatRub(d decimal.Decimal) string {
	return Format(d, 0) + " ₽"
}

// FormatPercent renders a percent-unit value with two places: "14.71%"
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}

// Compact renders large amounts in thousands or millions: "1.47M", "540K"
func Compact(d decimal.Decimal) string {
	abs := d.Abs()
	switch {
	case abs.GreaterThanOrEqual(million):
		return d.Div(million).StringFixed(2) + "M"
	case abs.GreaterThanOrEqual(thousand):
		return d.Div(thousand).StringFixed(0) + "K"
	default:
		return d.StringFixed(0)
	}
}
