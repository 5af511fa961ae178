package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Regime",
		"Title",
		"Type",
		"Available",
		"Total Burden",
		"Burden %",
		"Net Profit",
		"Burden Diff from Base",
		"Net Diff from Base",
		"Net % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, regimeType string) []string {
	row := []string{string(result.ID), result.Title, regimeType, strconv.FormatBool(result.Available)}
	if !result.Available {
		return append(row, "", "", "", "", "", "")
	}
	return append(row,
		result.TotalBurden.StringFixed(2),
		result.BurdenPercent.StringFixed(2),
		result.NetProfit.StringFixed(2),
		result.BurdenDiffFromBase.StringFixed(2),
		result.NetDiffFromBase.StringFixed(2),
		result.NetPctFromBase.StringFixed(2),
	)
}
