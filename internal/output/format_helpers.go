package output

import (
	"github.com/shopspring/decimal"
	"github.com/taxregimes/taxregimes/pkg/money"
)

// FormatCurrency formats a decimal as rubles with kopecks.
func FormatCurrency(amount decimal.Decimal) string { return money.Format(amount, 2) + " ₽" }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return money.FormatPercent(amount) }

// FormatRate formats a fractional rate (0.06) as a percentage ("6%").
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}

func formatOptionalPercent(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return FormatPercentage(*d)
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
