package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/taxregimes/taxregimes/pkg/money"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing regimes
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("TAX REGIME COMPARISON AGAINST CURRENT REGIME\n")
	sb.WriteString(strings.Repeat("=", 100) + "\n")
	sb.WriteString(fmt.Sprintf("Base Regime: %s\n", compSet.BaseResult.Title))
	if compSet.InputPath != "" {
		sb.WriteString(fmt.Sprintf("Input: %s\n", compSet.InputPath))
	}
	sb.WriteString("\n")

	nameWidth := 44
	numWidth := 16

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, "Regime",
		numWidth, "Total Burden",
		numWidth, "Net Profit",
		numWidth, "Net vs Base"))
	sb.WriteString(strings.Repeat("-", 100) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 100) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 100) + "\n")

	if compSet.BaseResult.Available && len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 100) + "\n")

		for _, alt := range compSet.AlternativeResults {
			if !alt.Available {
				continue
			}
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.Title))
			sb.WriteString(fmt.Sprintf("  Net Profit:    %s%s (%s%%)\n",
				tf.deltaSymbol(alt.NetDiffFromBase),
				money.FormatRub(alt.NetDiffFromBase),
				alt.NetPctFromBase.StringFixed(1)))
			if !alt.BurdenDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Total Burden:  %s%s\n",
					tf.deltaSymbol(alt.BurdenDiffFromBase),
					money.FormatRub(alt.BurdenDiffFromBase)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 100) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single regime row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.Title
	if isBase {
		name = tf.truncate(name, nameWidth-7) + " (base)"
	}
	if !result.Available {
		return fmt.Sprintf("%-*s %s\n", nameWidth, tf.truncate(name, nameWidth), "not available")
	}

	delta := ""
	if !isBase {
		delta = tf.deltaSymbol(result.NetDiffFromBase) + money.Compact(result.NetDiffFromBase)
	}

	return fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, money.Compact(result.TotalBurden),
		numWidth, money.Compact(result.NetProfit),
		numWidth, delta)
}

// deltaSymbol returns "+" for positive deltas; negative values carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// truncate shortens s to maxLen runes
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// FormatCompact creates a compact single-line summary of net profit deltas
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseRegime))

	first := true
	for _, alt := range compSet.AlternativeResults {
		if !alt.Available {
			continue
		}
		if !first {
			sb.WriteString(" | ")
		}
		first = false
		change := "="
		if !alt.NetDiffFromBase.IsZero() {
			change = tf.deltaSymbol(alt.NetDiffFromBase) + money.Compact(alt.NetDiffFromBase)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ID, change))
	}

	return sb.String()
}
