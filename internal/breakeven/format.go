package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/taxregimes/taxregimes/internal/domain"
	"github.com/taxregimes/taxregimes/pkg/money"
)

// UpliftRow is one regime's price uplift, flattened for output
type UpliftRow struct {
	ID        domain.RegimeID     `json:"id"`
	Title     string              `json:"title"`
	NetProfit decimal.Decimal     `json:"net_profit"`
	Uplift    *domain.PriceUplift `json:"price_uplift"`
}

// UpliftReport collects the price uplift of every available regime against the patent
type UpliftReport struct {
	TargetProfit decimal.Decimal `json:"target_profit"`
	Rows         []UpliftRow     `json:"rows"`
}

// NewUpliftReport extracts the uplift rows from a summary. ok is false when the patent is
// unavailable and there is no target.
func NewUpliftReport(summary *domain.CalculationSummary) (*UpliftReport, bool) {
	if summary == nil || summary.PatentTargetProfit == nil {
		return nil, false
	}
	report := &UpliftReport{TargetProfit: *summary.PatentTargetProfit}
	for _, r := range summary.Results {
		if !r.Available || r.Uplift == nil {
			continue
		}
		report.Rows = append(report.Rows, UpliftRow{ID: r.ID, Title: r.Title, NetProfit: r.NetProfit, Uplift: r.Uplift})
	}
	return report, true
}

// TableFormatter formats the uplift report as a console table
type TableFormatter struct{}

// Format generates a formatted table for the uplift report
func (tf *TableFormatter) Format(report *UpliftReport) string {
	var sb strings.Builder

	sb.WriteString("PATENT BREAK-EVEN: PRICE UPLIFT NEEDED\n")
	sb.WriteString(strings.Repeat("=", 100) + "\n")
	sb.WriteString(fmt.Sprintf("Target net profit (patent): %s\n\n", money.FormatRub(report.TargetProfit)))

	sb.WriteString(fmt.Sprintf("%-42s %14s %10s %12s %12s %10s\n",
		"Regime", "Net Profit", "Uplift", "Margin Now", "Margin Need", "Delta pp"))
	sb.WriteString(strings.Repeat("-", 100) + "\n")

	for _, row := range report.Rows {
		u := row.Uplift
		if u.Unattainable {
			sb.WriteString(fmt.Sprintf("%-42s %14s %10s\n",
				tf.truncate(row.Title, 42), money.Format(row.NetProfit, 0), "unreachable"))
			continue
		}
		sb.WriteString(fmt.Sprintf("%-42s %14s %10s %12s %12s %10s\n",
			tf.truncate(row.Title, 42),
			money.Format(row.NetProfit, 0),
			tf.formatPercent(u.UpliftPercent),
			tf.formatPercent(u.GrossMarginCurrentPercent),
			tf.formatPercent(u.GrossMarginNeededPercent),
			tf.formatDelta(u.GrossMarginDeltaPP)))
	}
	sb.WriteString("\n")

	return sb.String()
}

// JSONFormatter formats the uplift report as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(report *UpliftReport) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatPercent(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return money.FormatPercent(*d)
}

func (tf *TableFormatter) formatDelta(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	if d.IsPositive() {
		return "+" + d.StringFixed(2)
	}
	return d.StringFixed(2)
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
