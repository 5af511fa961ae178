package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/taxregimes/taxregimes/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per regime, registry order).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(summary *domain.CalculationSummary) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"ID", "Title", "Available", "Reason", "Revenue", "Expenses", "Tax", "VAT", "Insurance",
		"TotalBurden", "BurdenPercent", "NetProfit", "Rank", "PriceUpliftPercent"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	rank := make(map[domain.RegimeID]int, len(summary.Top))
	for i, r := range summary.Top {
		rank[r.ID] = i + 1
	}

	for _, r := range summary.Results {
		row := []string{string(r.ID), r.Title, strconv.FormatBool(r.Available), r.Reason}
		if r.Available {
			row = append(row,
				r.Revenue.StringFixed(2),
				r.Expenses.StringFixed(2),
				r.Tax.StringFixed(2),
				r.VAT.StringFixed(2),
				r.Insurance.StringFixed(2),
				r.TotalBurden.StringFixed(2),
				r.BurdenPercent.StringFixed(2),
				r.NetProfit.StringFixed(2),
			)
		} else {
			row = append(row, "", "", "", "", "", "", "", "")
		}
		row = append(row, rankString(rank[r.ID]), upliftString(r.Uplift))
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVMonthlyExporter writes the AUSN profit monthly tax schedule.
type CSVMonthlyExporter struct{}

func (c CSVMonthlyExporter) Name() string { return "monthly-csv" }

func (c CSVMonthlyExporter) Format(summary *domain.CalculationSummary) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Month", "Revenue", "Expenses", "Tax"}); err != nil {
		return nil, err
	}

	r, ok := summary.Result(domain.RegimeAUSNProfit)
	if details, isAUSN := r.Details.(domain.AUSNDetails); ok && isAUSN {
		for _, m := range details.MonthlySchedule {
			row := []string{strconv.Itoa(m.Month), m.Revenue.StringFixed(2), m.Expenses.StringFixed(2), m.Tax.StringFixed(2)}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
		if err := w.Write([]string{"Total", "", "", details.MonthlyTaxTotal.StringFixed(2)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func rankString(rank int) string {
	if rank == 0 {
		return ""
	}
	return strconv.Itoa(rank)
}

func upliftString(u *domain.PriceUplift) string {
	switch {
	case u == nil:
		return ""
	case u.Unattainable:
		return "unattainable"
	case u.UpliftPercent == nil:
		return ""
	default:
		return u.UpliftPercent.StringFixed(2)
	}
}
