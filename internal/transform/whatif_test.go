package transform

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxregimes/taxregimes/internal/calculation"
	"github.com/taxregimes/taxregimes/internal/domain"
)

func TestEvaluate_HiringPastAUSNLimit(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	out, err := Evaluate(context.Background(), engine, scenarioInput(), []InputTransform{&HireEmployees{Count: 3}})
	require.NoError(t, err)

	assert.Equal(t, []string{"Hire 3 employees"}, out.Applied)
	require.Len(t, out.Deltas, 11)
	assert.Equal(t, domain.RegimeAUSNProfit, out.BestBefore)
	assert.NotEqual(t, domain.RegimeAUSNProfit, out.BestAfter)
	assert.True(t, out.BestChanged())

	ausn := out.Deltas[1]
	assert.Equal(t, domain.RegimeAUSNProfit, ausn.ID)
	assert.True(t, ausn.AvailableBefore)
	assert.False(t, ausn.AvailableAfter)
	assert.True(t, ausn.NetChange.IsZero(), "no delta across availability change")

	usn := out.Deltas[2]
	assert.True(t, usn.NetChange.IsNegative(), "more payroll lowers USN net profit")
	assert.True(t, usn.NetChange.Equal(usn.NetAfter.Sub(usn.NetBefore)))
}

func TestEvaluate_PriceIncreaseRaisesNetProfit(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	out, err := Evaluate(context.Background(), engine, scenarioInput(),
		[]InputTransform{&RaisePrices{Percent: decimal.NewFromInt(10), Rules: engine.Rules}})
	require.NoError(t, err)

	for _, d := range out.Deltas {
		if d.AvailableBefore && d.AvailableAfter {
			assert.True(t, d.NetChange.IsPositive(), "%s net profit should rise with prices", d.ID)
		}
	}

	table := FormatOutcome(out)
	assert.Contains(t, table, "WHAT-IF ANALYSIS")
	assert.Contains(t, table, "Change prices by 10.0% with costs unchanged")
	assert.Contains(t, table, "Lowest burden")
}

func TestEvaluate_InvalidTransform(t *testing.T) {
	_, err := Evaluate(context.Background(), calculation.NewCalculationEngine(), scenarioInput(),
		[]InputTransform{&HireEmployees{Count: -10}})
	assert.Error(t, err)
}

func TestEvaluate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Evaluate(ctx, calculation.NewCalculationEngine(), scenarioInput(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}
