package compare

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/taxregimes/taxregimes/internal/domain"
)

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	calc := NewMetricsCalculator()

	r := domain.Result{
		ID:            domain.RegimeUSNIncomeNoVAT,
		Title:         "УСН 6% без НДС",
		Available:     true,
		TotalBurden:   decimal.NewFromInt(500000),
		BurdenPercent: decimal.NewFromInt(5),
		NetProfit:     decimal.NewFromInt(1000000),
	}

	result := calc.CalculateMetrics(r)

	if result.ID != domain.RegimeUSNIncomeNoVAT {
		t.Errorf("Expected id usn_income_no_vat, got %s", result.ID)
	}
	if !result.TotalBurden.Equal(decimal.NewFromInt(500000)) {
		t.Errorf("Expected burden 500000, got %s", result.TotalBurden)
	}
	if !result.NetProfit.Equal(decimal.NewFromInt(1000000)) {
		t.Errorf("Expected net profit 1000000, got %s", result.NetProfit)
	}
	if !result.NetDiffFromBase.IsZero() {
		t.Errorf("Expected no delta before comparison, got %s", result.NetDiffFromBase)
	}
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{
		ID:          domain.RegimeUSNIncomeNoVAT,
		Available:   true,
		TotalBurden: decimal.NewFromInt(500000),
		NetProfit:   decimal.NewFromInt(1000000),
	}
	alt := ComparisonResult{
		ID:          domain.RegimeAUSNProfit,
		Available:   true,
		TotalBurden: decimal.NewFromInt(450000),
		NetProfit:   decimal.NewFromInt(1100000),
	}

	result := calc.CalculateComparison(alt, base)

	if !result.NetDiffFromBase.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("Expected net diff 100000, got %s", result.NetDiffFromBase)
	}
	if !result.BurdenDiffFromBase.Equal(decimal.NewFromInt(-50000)) {
		t.Errorf("Expected burden diff -50000, got %s", result.BurdenDiffFromBase)
	}
	if !result.NetPctFromBase.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected net pct 10, got %s", result.NetPctFromBase)
	}
}

func TestMetricsCalculator_CalculateComparison_Unavailable(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{Available: true, NetProfit: decimal.NewFromInt(1000000)}
	alt := ComparisonResult{Available: false, Reason: "лимит"}

	result := calc.CalculateComparison(alt, base)
	if !result.NetDiffFromBase.IsZero() || !result.BurdenDiffFromBase.IsZero() {
		t.Error("Expected no deltas for an unavailable regime")
	}

	result = calc.CalculateComparison(ComparisonResult{Available: true, NetProfit: decimal.NewFromInt(5)}, ComparisonResult{})
	if !result.NetDiffFromBase.IsZero() {
		t.Error("Expected no deltas against an unavailable base")
	}
}

func TestMetricsCalculator_CalculateComparison_ZeroBaseProfit(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{Available: true}
	alt := ComparisonResult{Available: true, NetProfit: decimal.NewFromInt(1000)}

	result := calc.CalculateComparison(alt, base)
	if !result.NetPctFromBase.IsZero() {
		t.Errorf("Expected zero pct against zero base profit, got %s", result.NetPctFromBase)
	}
	if !result.NetDiffFromBase.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected net diff 1000, got %s", result.NetDiffFromBase)
	}
}

func testComparisonSet() *ComparisonSet {
	return &ComparisonSet{
		BaseRegime: domain.RegimeUSNIncomeNoVAT,
		BaseResult: &ComparisonResult{
			ID:          domain.RegimeUSNIncomeNoVAT,
			Title:       "УСН 6% без НДС",
			Available:   true,
			TotalBurden: decimal.NewFromInt(500000),
			NetProfit:   decimal.NewFromInt(1000000),
		},
		AlternativeResults: []ComparisonResult{
			{
				ID:                 domain.RegimeAUSNProfit,
				Title:              "АУСН 20% (доходы минус расходы)",
				Available:          true,
				TotalBurden:        decimal.NewFromInt(450000),
				NetProfit:          decimal.NewFromInt(1100000),
				BurdenDiffFromBase: decimal.NewFromInt(-50000),
				NetDiffFromBase:    decimal.NewFromInt(100000),
				NetPctFromBase:     decimal.NewFromInt(10),
			},
			{
				ID:                 domain.RegimePatent,
				Title:              "Патент",
				Available:          true,
				TotalBurden:        decimal.NewFromInt(420000),
				NetProfit:          decimal.NewFromInt(1020000),
				BurdenDiffFromBase: decimal.NewFromInt(-80000),
				NetDiffFromBase:    decimal.NewFromInt(20000),
				NetPctFromBase:     decimal.NewFromInt(2),
			},
			{
				ID:        domain.RegimeAUSNIncome,
				Title:     "АУСН 8% (доходы)",
				Available: false,
				Reason:    "численность 6 превышает лимит АУСН 5",
			},
		},
	}
}

func TestGenerateRecommendations(t *testing.T) {
	recommendations := GenerateRecommendations(testComparisonSet())

	expected := []string{
		"Best Net Profit: АУСН 20% (доходы минус расходы) gives 100 000 ₽ more per year (10.00%)",
		"Lowest Burden: Патент saves 80 000 ₽ in taxes and contributions",
		"2 regimes beat УСН 6% без НДС on net profit",
	}
	if len(recommendations) != len(expected) {
		t.Fatalf("Expected %d recommendations, got %d: %v", len(expected), len(recommendations), recommendations)
	}
	for i, want := range expected {
		if recommendations[i] != want {
			t.Errorf("Recommendation %d: expected %q, got %q", i, want, recommendations[i])
		}
	}
}

func TestGenerateRecommendations_EmptyAlternatives(t *testing.T) {
	compSet := testComparisonSet()
	compSet.AlternativeResults = nil

	recommendations := GenerateRecommendations(compSet)

	if len(recommendations) != 1 || !strings.HasPrefix(recommendations[0], "Keep Current:") {
		t.Errorf("Expected a single keep-current recommendation, got %v", recommendations)
	}
}

func TestGenerateRecommendations_NoBetterThanBase(t *testing.T) {
	compSet := testComparisonSet()
	for i := range compSet.AlternativeResults {
		compSet.AlternativeResults[i].NetDiffFromBase = decimal.NewFromInt(-1)
		compSet.AlternativeResults[i].BurdenDiffFromBase = decimal.NewFromInt(1)
	}

	recommendations := GenerateRecommendations(compSet)

	if len(recommendations) != 1 {
		t.Fatalf("Expected 1 recommendation, got %v", recommendations)
	}
	if !strings.Contains(recommendations[0], "already gives the highest net profit") {
		t.Errorf("Unexpected recommendation %q", recommendations[0])
	}
}

func TestGenerateRecommendations_UnavailableBase(t *testing.T) {
	compSet := testComparisonSet()
	compSet.BaseResult = &ComparisonResult{
		ID:        domain.RegimePatent,
		Title:     "Патент",
		Available: false,
		Reason:    "численность 16 превышает лимит патента 15",
	}

	recommendations := GenerateRecommendations(compSet)

	if len(recommendations) != 2 {
		t.Fatalf("Expected 2 recommendations, got %v", recommendations)
	}
	if !strings.HasPrefix(recommendations[0], "Current regime unavailable: Патент") {
		t.Errorf("Unexpected first recommendation %q", recommendations[0])
	}
	if !strings.Contains(recommendations[1], "АУСН 20%") {
		t.Errorf("Expected highest net profit alternative, got %q", recommendations[1])
	}
}

func TestGenerateRecommendations_Nil(t *testing.T) {
	if got := GenerateRecommendations(nil); len(got) != 0 {
		t.Errorf("Expected no recommendations, got %v", got)
	}
}
