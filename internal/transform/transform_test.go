package transform

import (
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

func TestApplyTransforms_Empty(t *testing.T) {
	base := scenarioInput()
	out, err := ApplyTransforms(base, nil)
	require.NoError(t, err)
	assert.Equal(t, base, out)
}

func TestApplyTransforms_DoesNotModifyBase(t *testing.T) {
	base := scenarioInput()
	out, err := ApplyTransforms(base, []InputTransform{
		&ScaleVolume{Percent: decimal.NewFromInt(20)},
		&HireEmployees{Count: 1},
	})
	require.NoError(t, err)

	assert.True(t, out.Revenue.Equal(decimal.NewFromInt(12000000)))
	assert.Equal(t, 4, out.Employees)
	assert.True(t, base.Revenue.Equal(decimal.NewFromInt(10000000)), "base revenue must be unchanged")
	assert.Equal(t, 3, base.Employees)
}

func TestApplyTransforms_Errors(t *testing.T) {
	_, err := ApplyTransforms(scenarioInput(), []InputTransform{nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 0 is nil")

	_, err = ApplyTransforms(scenarioInput(), []InputTransform{&ScaleVolume{Percent: decimal.NewFromInt(-100)}})
	require.Error(t, err)
	var te *TransformError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "scale_volume", te.TransformName)
	assert.Equal(t, "validate", te.Operation)
}

func TestRaisePrices_KeepsCostsAbsolute(t *testing.T) {
	rules := domain.DefaultTaxRules()
	base := scenarioInput()
	baseCtx, _ := calculation.BuildContext(base, rules)

	out, err := ApplyTransforms(base, []InputTransform{&RaisePrices{Percent: decimal.NewFromInt(10), Rules: rules}})
	require.NoError(t, err)
	assert.True(t, out.Revenue.Equal(decimal.NewFromInt(11000000)))

	outCtx, _ := calculation.BuildContext(out, rules)
	assert.True(t, outCtx.CostOfGoods.Sub(baseCtx.CostOfGoods).Abs().LessThan(decimal.New(1, -6)),
		"cost of goods %s should stay at %s", outCtx.CostOfGoods, baseCtx.CostOfGoods)
	assert.True(t, outCtx.OtherExpenses.Equal(baseCtx.OtherExpenses))
	assert.True(t, outCtx.AnnualPayroll.Equal(baseCtx.AnnualPayroll))
}

func TestHireEmployees(t *testing.T) {
	base := scenarioInput()

	assert.NoError(t, (&HireEmployees{Count: -3}).Validate(base))
	assert.Error(t, (&HireEmployees{Count: -4}).Validate(base))
	assert.Equal(t, "Lay off 2 employees", (&HireEmployees{Count: -2}).Description())

	annual := base
	annual.PayrollMode = domain.PayrollAnnual
	err := (&HireEmployees{Count: 1}).Validate(annual)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "staff mode only")
}

func TestAdjustCostPercent(t *testing.T) {
	base := scenarioInput()
	out, err := (&AdjustCostPercent{Points: decimal.NewFromInt(-5)}).Apply(base)
	require.NoError(t, err)
	assert.True(t, out.CostPercent.Equal(decimal.NewFromInt(35)))

	assert.Error(t, (&AdjustCostPercent{Points: decimal.NewFromInt(-41)}).Validate(base))
}

func TestSetTransition(t *testing.T) {
	base := scenarioInput()
	out, err := ApplyTransforms(base, []InputTransform{
		&SetTransition{Mode: domain.TransitionVATCredit, Amount: decimal.NewFromInt(200000)},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TransitionVATCredit, out.TransitionMode)
	assert.True(t, out.AccumulatedVATCredit.Equal(decimal.NewFromInt(200000)))

	assert.Error(t, (&SetTransition{Mode: "barter"}).Validate(base))
	assert.Error(t, (&SetTransition{Mode: domain.TransitionStockWriteOff, Amount: decimal.NewFromInt(-1)}).Validate(base))
}

func TestSimpleSetters(t *testing.T) {
	base := scenarioInput()
	out, err := ApplyTransforms(base, []InputTransform{
		&SetSalary{Monthly: decimal.NewFromInt(60000)},
		&SetRent{Amount: decimal.NewFromInt(0)},
		&SetPatentCost{Amount: decimal.NewFromInt(150000)},
	})
	require.NoError(t, err)
	assert.True(t, out.MonthlySalary.Equal(decimal.NewFromInt(60000)))
	assert.True(t, out.Rent.IsZero())
	assert.True(t, out.PatentCostYear.Equal(decimal.NewFromInt(150000)))

	assert.Error(t, (&SetSalary{Monthly: decimal.NewFromInt(-1)}).Validate(base))
	assert.Error(t, (&SetRent{Amount: decimal.NewFromInt(-1)}).Validate(base))
	assert.Error(t, (&SetPatentCost{Amount: decimal.NewFromInt(-1)}).Validate(base))
}

func TestTransformError(t *testing.T) {
	cause := errors.New("boom")
	err := NewTransformError("hire", "apply", "bad count", cause)
	assert.Equal(t, "transform hire (apply): bad count: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "transform hire (validate): bad count", NewTransformError("hire", "validate", "bad count", nil).Error())
}
