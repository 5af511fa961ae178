package compare

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/taxregimes/taxregimes/internal/domain"
	"github.com/taxregimes/taxregimes/pkg/money"
)

// ComparisonResult holds the key figures of one regime and its deltas from the base regime
type ComparisonResult struct {
	ID            domain.RegimeID `json:"id"`
	Title         string          `json:"title"`
	Available     bool            `json:"available"`
	Reason        string          `json:"reason,omitempty"`
	TotalBurden   decimal.Decimal `json:"total_burden"`
	BurdenPercent decimal.Decimal `json:"burden_percent"`
	NetProfit     decimal.Decimal `json:"net_profit"`

	// Comparison metrics (relative to base); zero when either side is unavailable
	BurdenDiffFromBase decimal.Decimal `json:"burden_diff_from_base"`
	NetDiffFromBase    decimal.Decimal `json:"net_diff_from_base"`
	NetPctFromBase     decimal.Decimal `json:"net_pct_from_base"`
}

// ComparisonSet is every regime compared against the regime the owner uses today
type ComparisonSet struct {
	BaseRegime         domain.RegimeID    `json:"base_regime"`
	BaseResult         *ComparisonResult  `json:"base_result"`
	AlternativeResults []ComparisonResult `json:"alternative_results"`
	Recommendations    []string           `json:"recommendations"`
	InputPath          string             `json:"input_path,omitempty"`
}

// MetricsCalculator extracts comparison metrics from regime results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics extracts the compared figures from a regime result
func (mc *MetricsCalculator) CalculateMetrics(r domain.Result) ComparisonResult {
	return ComparisonResult{
		ID:            r.ID,
		Title:         r.Title,
		Available:     r.Available,
		Reason:        r.Reason,
		TotalBurden:   r.TotalBurden,
		BurdenPercent: r.BurdenPercent,
		NetProfit:     r.NetProfit,
	}
}

// CalculateComparison fills the deltas of result against base
func (mc *MetricsCalculator) CalculateComparison(result, base ComparisonResult) ComparisonResult {
	if !result.Available || !base.Available {
		return result
	}
	result.BurdenDiffFromBase = result.TotalBurden.Sub(base.TotalBurden)
	result.NetDiffFromBase = result.NetProfit.Sub(base.NetProfit)
	if !base.NetProfit.IsZero() {
		result.NetPctFromBase = result.NetDiffFromBase.Div(base.NetProfit.Abs()).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return result
}

// GenerateRecommendations creates simple recommendations from a comparison set
func GenerateRecommendations(compSet *ComparisonSet) []string {
	var recommendations []string
	if compSet == nil || compSet.BaseResult == nil {
		return recommendations
	}
	base := compSet.BaseResult

	var best *ComparisonResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if !alt.Available {
			continue
		}
		if best == nil || alt.NetProfit.GreaterThan(best.NetProfit) ||
			(alt.NetProfit.Equal(best.NetProfit) && alt.TotalBurden.LessThan(best.TotalBurden)) {
			best = alt
		}
	}

	if !base.Available {
		recommendations = append(recommendations,
			fmt.Sprintf("Current regime unavailable: %s (%s)", base.Title, base.Reason))
		if best != nil {
			recommendations = append(recommendations,
				fmt.Sprintf("Best Alternative: %s with net profit %s", best.Title, money.FormatRub(best.NetProfit)))
		}
		return recommendations
	}

	if best == nil || !best.NetDiffFromBase.IsPositive() {
		recommendations = append(recommendations,
			fmt.Sprintf("Keep Current: %s already gives the highest net profit", base.Title))
	} else {
		recommendations = append(recommendations,
			fmt.Sprintf("Best Net Profit: %s gives %s more per year (%s%%)",
				best.Title, money.FormatRub(best.NetDiffFromBase), best.NetPctFromBase.StringFixed(2)))
	}

	var lowest *ComparisonResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Available && alt.BurdenDiffFromBase.IsNegative() &&
			(lowest == nil || alt.TotalBurden.LessThan(lowest.TotalBurden)) {
			lowest = alt
		}
	}
	if lowest != nil && (best == nil || lowest.ID != best.ID) {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Burden: %s saves %s in taxes and contributions",
				lowest.Title, money.FormatRub(lowest.BurdenDiffFromBase.Neg())))
	}

	cheaper := 0
	for _, alt := range compSet.AlternativeResults {
		if alt.Available && alt.NetDiffFromBase.IsPositive() {
			cheaper++
		}
	}
	if cheaper > 1 {
		recommendations = append(recommendations,
			fmt.Sprintf("%d regimes beat %s on net profit", cheaper, base.Title))
	}

	return recommendations
}
