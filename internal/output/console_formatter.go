package output

import (
	"bytes"
	"fmt"

	"github.com/taxregimes/taxregimes/internal/domain"
	"github.com/taxregimes/taxregimes/pkg/money"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(summary *domain.CalculationSummary) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "TAX REGIME SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Revenue: %s\n", FormatCurrency(summary.Components.Revenue))
	fmt.Fprintln(&buf)
	for _, r := range summary.Results {
		if !r.Available {
			fmt.Fprintf(&buf, "%s: unavailable (%s)\n", r.Title, r.Reason)
			continue
		}
		fmt.Fprintf(&buf, "%s: Burden=%s (%s) Net=%s\n", r.Title,
			money.Compact(r.TotalBurden), FormatPercentage(r.BurdenPercent), money.Compact(r.NetProfit))
	}
	if best, ok := summary.Best(); ok {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (burden %s, net %s)\n", best.Title, FormatCurrency(best.TotalBurden), FormatCurrency(best.NetProfit))
	}
	return buf.Bytes(), nil
}
