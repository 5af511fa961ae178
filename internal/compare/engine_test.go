package compare

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxregimes/taxregimes/internal/calculation"
	"github.com/taxregimes/taxregimes/internal/domain"
)

func scenarioInput() domain.CalcInput {
	d := decimal.RequireFromString
	return domain.CalcInput{
		Revenue:              d("10000000"),
		CostPercent:          d("40"),
		VATPurchasesPercent:  d("70"),
		Rent:                 d("500000"),
		FixedContribution:    d("57390"),
		Employees:            3,
		MonthlySalary:        d("50000"),
		PayrollMode:          domain.PayrollStaff,
		OtherExpensesMode:    domain.OtherExpensesPercent,
		OtherExpensesPercent: d("10"),
		TransitionMode:       domain.TransitionNone,
		PurchaseMonthWeights: domain.UniformPurchaseWeights(),
		PatentCostYear:       d("100000"),
		CurrentRegime:        domain.RegimeUSNIncomeNoVAT,
	}
}

func TestCompareEngine_CurrentRegimeAsBase(t *testing.T) {
	calcEngine := calculation.NewCalculationEngine()
	ce := NewCompareEngine(calcEngine)
	in := scenarioInput()

	compSet, err := ce.Compare(context.Background(), in, CompareOptions{})
	require.NoError(t, err)

	summary := calcEngine.Run(in)
	base, ok := summary.Result(domain.RegimeUSNIncomeNoVAT)
	require.True(t, ok)

	assert.Equal(t, domain.RegimeUSNIncomeNoVAT, compSet.BaseRegime)
	assert.True(t, compSet.BaseResult.NetProfit.Equal(base.NetProfit))
	assert.Len(t, compSet.AlternativeResults, len(summary.Available())-1)

	for _, alt := range compSet.AlternativeResults {
		assert.NotEqual(t, domain.RegimeUSNIncomeNoVAT, alt.ID)
		r, ok := summary.Result(alt.ID)
		require.True(t, ok)
		assert.True(t, alt.NetDiffFromBase.Equal(r.NetProfit.Sub(base.NetProfit)), "net delta for %s", alt.ID)
		assert.True(t, alt.BurdenDiffFromBase.Equal(r.TotalBurden.Sub(base.TotalBurden)), "burden delta for %s", alt.ID)
	}

	require.NotEmpty(t, compSet.Recommendations)
	assert.Contains(t, compSet.Recommendations[0], "Best Net Profit:", "AUSN profit beats the current regime")
}

func TestCompareEngine_BaseOverride(t *testing.T) {
	ce := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := ce.Compare(context.Background(), scenarioInput(), CompareOptions{BaseRegime: domain.RegimePatent})
	require.NoError(t, err)
	assert.Equal(t, domain.RegimePatent, compSet.BaseRegime)
	assert.Equal(t, "Патент", compSet.BaseResult.Title)

	ids := make([]domain.RegimeID, 0, len(compSet.AlternativeResults))
	for _, alt := range compSet.AlternativeResults {
		ids = append(ids, alt.ID)
	}
	assert.Contains(t, ids, domain.RegimeUSNIncomeNoVAT)
	assert.NotContains(t, ids, domain.RegimePatent)
}

func TestCompareEngine_NoBase(t *testing.T) {
	ce := NewCompareEngine(calculation.NewCalculationEngine())
	in := scenarioInput()
	in.CurrentRegime = ""

	_, err := ce.Compare(context.Background(), in, CompareOptions{})
	assert.ErrorIs(t, err, ErrNoBaseRegime)

	_, err = ce.CompareSummary(&domain.CalculationSummary{}, CompareOptions{})
	assert.ErrorIs(t, err, ErrNoBaseRegime)
}

func TestCompareEngine_UnknownBase(t *testing.T) {
	ce := NewCompareEngine(calculation.NewCalculationEngine())

	_, err := ce.Compare(context.Background(), scenarioInput(), CompareOptions{BaseRegime: "usn_30"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base regime usn_30 not found")
}

func TestCompareEngine_IncludeUnavailable(t *testing.T) {
	ce := NewCompareEngine(calculation.NewCalculationEngine())
	in := scenarioInput()
	in.Employees = 6

	compSet, err := ce.Compare(context.Background(), in, CompareOptions{})
	require.NoError(t, err)
	for _, alt := range compSet.AlternativeResults {
		assert.True(t, alt.Available, "%s should be filtered out", alt.ID)
	}

	compSet, err = ce.Compare(context.Background(), in, CompareOptions{IncludeUnavailable: true})
	require.NoError(t, err)
	assert.Len(t, compSet.AlternativeResults, len(domain.RegimeIDs())-1)

	var ausn *ComparisonResult
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].ID == domain.RegimeAUSNIncome {
			ausn = &compSet.AlternativeResults[i]
		}
	}
	require.NotNil(t, ausn)
	assert.False(t, ausn.Available)
	assert.NotEmpty(t, ausn.Reason)
	assert.True(t, ausn.NetDiffFromBase.IsZero())
}

func TestCompareEngine_Cancelled(t *testing.T) {
	ce := NewCompareEngine(calculation.NewCalculationEngine())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ce.Compare(ctx, scenarioInput(), CompareOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
