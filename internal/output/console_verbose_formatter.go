package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/taxregimes/taxregimes/internal/breakeven"
	"github.com/taxregimes/taxregimes/internal/domain"
	"github.com/taxregimes/taxregimes/pkg/money"
)

// ConsoleVerboseFormatter renders the full console report: inputs, every regime with its
// breakdown, the ranking and the patent break-even table.
type ConsoleVerboseFormatter struct {
	Rules *domain.TaxRules
}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

// WithRules returns a copy that prints assumptions for rules
func (c ConsoleVerboseFormatter) WithRules(rules domain.TaxRules) Formatter {
	c.Rules = &rules
	return c
}

func (c ConsoleVerboseFormatter) Format(summary *domain.CalculationSummary) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "TAX REGIME COMPARISON")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	assumptions := DefaultAssumptions
	if c.Rules != nil {
		assumptions = AssumptionsFor(*c.Rules)
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "INPUT COMPONENTS")
	fmt.Fprintln(&buf, strings.Repeat("=", 45))
	writeLines(&buf, ComponentLines(summary.Components), "  ")
	fmt.Fprintln(&buf)

	for i, r := range summary.Results {
		fmt.Fprintf(&buf, "REGIME %d: %s\n", i+1, r.Title)
		fmt.Fprintln(&buf, strings.Repeat("-", 50))
		if !r.Available {
			fmt.Fprintf(&buf, "  Not available: %s\n\n", r.Reason)
			continue
		}
		writeLines(&buf, []DetailLine{
			{"Expenses", FormatCurrency(r.Expenses)},
			{"Tax", FormatCurrency(r.Tax)},
			{"VAT", FormatCurrency(r.VAT)},
			{"Contributions", FormatCurrency(r.Insurance)},
			{"TOTAL BURDEN", fmt.Sprintf("%s (%s of revenue)", FormatCurrency(r.TotalBurden), FormatPercentage(r.BurdenPercent))},
			{"NET PROFIT", FormatCurrency(r.NetProfit)},
		}, "  ")
		if details := DetailLines(r.Details); len(details) > 0 {
			fmt.Fprintln(&buf, "  Breakdown:")
			writeLines(&buf, details, "    ")
		}
		fmt.Fprintln(&buf)
	}

	writeTop(&buf, summary.Top)

	if report, ok := breakeven.NewUpliftReport(summary); ok {
		fmt.Fprint(&buf, (&breakeven.TableFormatter{}).Format(report))
	} else {
		fmt.Fprintln(&buf, "Patent unavailable: no break-even target.")
		fmt.Fprintln(&buf)
	}

	if best, ok := summary.Best(); ok {
		fmt.Fprintln(&buf, "SUMMARY & RECOMMENDATION")
		fmt.Fprintln(&buf, strings.Repeat("=", 25))
		fmt.Fprintf(&buf, "Lowest burden: %s (%s, net profit %s)\n", best.Title, money.FormatRub(best.TotalBurden), money.FormatRub(best.NetProfit))
	}

	return buf.Bytes(), nil
}

func writeLines(buf *bytes.Buffer, lines []DetailLine, indent string) {
	width := 0
	for _, l := range lines {
		if n := len([]rune(l.Label)); n > width {
			width = n
		}
	}
	for _, l := range lines {
		pad := width - len([]rune(l.Label))
		fmt.Fprintf(buf, "%s%s:%s %s\n", indent, l.Label, strings.Repeat(" ", pad), l.Value)
	}
}

func writeTop(buf *bytes.Buffer, top []domain.Result) {
	fmt.Fprintf(buf, "TOP %d BY TOTAL BURDEN\n", len(top))
	fmt.Fprintln(buf, strings.Repeat("=", 81))
	fmt.Fprintf(buf, "%-3s %-36s %16s %8s %16s\n", "#", "Regime", "Burden", "%", "Net Profit")
	for i, r := range top {
		fmt.Fprintf(buf, "%-3d %-36s %16s %8s %16s\n", i+1, truncateTitle(r.Title, 36),
			money.Format(r.TotalBurden, 0), FormatPercentage(r.BurdenPercent), money.Format(r.NetProfit, 0))
	}
	fmt.Fprintln(buf)
}

func truncateTitle(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
