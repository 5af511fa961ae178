package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/taxregimes/taxregimes/internal/breakeven"
	"github.com/taxregimes/taxregimes/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct {
	Rules *domain.TaxRules
}

func (h HTMLFormatter) Name() string { return "html" }

// WithRules returns a copy that prints assumptions for rules
func (h HTMLFormatter) WithRules(rules domain.TaxRules) Formatter {
	h.Rules = &rules
	return h
}

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"pct":     FormatPercentage,
	"optpct":  formatOptionalPercent,
	"details": DetailLines,
	"inc":     func(i int) int { return i + 1 },
}).Parse(htmlTemplateSource))

type htmlRow struct {
	domain.Result
	Rank int
}

func (h HTMLFormatter) Format(summary *domain.CalculationSummary) ([]byte, error) {
	assumptions := DefaultAssumptions
	if h.Rules != nil {
		assumptions = AssumptionsFor(*h.Rules)
	}

	rank := make(map[domain.RegimeID]int, len(summary.Top))
	for i, r := range summary.Top {
		rank[r.ID] = i + 1
	}
	rows := make([]htmlRow, 0, len(summary.Results))
	for _, r := range summary.Results {
		rows = append(rows, htmlRow{Result: r, Rank: rank[r.ID]})
	}

	var uplift *breakeven.UpliftReport
	if report, ok := breakeven.NewUpliftReport(summary); ok {
		uplift = report
	}

	data := struct {
		Summary     *domain.CalculationSummary
		Rows        []htmlRow
		Components  []DetailLine
		Uplift      *breakeven.UpliftReport
		Assumptions []string
	}{summary, rows, ComponentLines(summary.Components), uplift, assumptions}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
