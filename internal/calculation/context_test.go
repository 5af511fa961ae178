package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taxregimes/taxregimes/internal/domain"
)

func TestBuildContext_Scenario(t *testing.T) {
	in := scenarioInput()
	cc, components := BuildContext(in, domain.DefaultTaxRules())

	assertMoney(t, "4000000.00", cc.CostOfGoods)
	assertMoney(t, "1000000.00", cc.OtherExpenses)
	assertMoney(t, "1800000.00", cc.AnnualPayroll)
	assert.True(t, cc.HasEmployees)
	assertMoney(t, "540000.00", cc.InsuranceStandard)
	assertMoney(t, "7840000.00", cc.TotalExpensesCommon)
	assertMoney(t, "7840000.00", cc.ExpensesWithoutSelf)

	assertMoney(t, "97000.00", cc.OwnerExtraIncome)
	assertMoney(t, "10000000.00", cc.OwnerExtraIncomeBase)
	assertMoney(t, "18600.00", cc.OwnerExtraProfit)
	assertMoney(t, "2160000.00", cc.OwnerExtraProfitBase)

	assertMoney(t, "694390.00", cc.InsuranceTotalIncome)
	assertMoney(t, "615990.00", cc.InsuranceTotalProfit)
	assertMoney(t, "7994390.00", cc.TotalExpensesIncome)
	assertMoney(t, "7897390.00", cc.TotalExpensesProfit)
	assertMoney(t, "7300000.00", cc.TotalExpensesAUSN)

	assert.True(t, cc.StockExtra.IsZero())
	assert.True(t, cc.VATCredit.IsZero())

	assert.True(t, components.Revenue.Equal(in.Revenue))
	assert.True(t, components.CostOfGoods.Equal(cc.CostOfGoods))
	assert.True(t, components.OwnerExtraProfit.Equal(cc.OwnerExtraProfit))
	assert.Equal(t, domain.TransitionNone, components.TransitionMode)
	assert.True(t, components.PatentCostYear.Equal(dec("100000")))
}

func TestBuildContext_PayrollAndOtherModes(t *testing.T) {
	in := scenarioInput()
	in.PayrollMode = domain.PayrollAnnual
	in.PayrollAnnual = dec("600000")
	in.OtherExpensesMode = domain.OtherExpensesAbsolute
	in.OtherExpensesAmount = dec("250000")

	cc := scenarioContext(t, in)

	assertMoney(t, "600000.00", cc.AnnualPayroll)
	assertMoney(t, "180000.00", cc.InsuranceStandard)
	assertMoney(t, "250000.00", cc.OtherExpenses)
}

func TestBuildContext_NoEmployees(t *testing.T) {
	in := scenarioInput()
	in.Employees = 0

	cc := scenarioContext(t, in)

	assert.False(t, cc.HasEmployees)
	assert.True(t, cc.AnnualPayroll.IsZero())
	assert.True(t, cc.InsuranceStandard.IsZero())
}

func TestBuildContext_TransitionModes(t *testing.T) {
	in := scenarioInput()
	in.AccumulatedVATCredit = dec("100000")
	in.StockWriteOffAmount = dec("200000")

	t.Run("none ignores carry-overs", func(t *testing.T) {
		cc := scenarioContext(t, in)
		assert.True(t, cc.VATCredit.IsZero())
		assert.True(t, cc.StockExtra.IsZero())
	})

	t.Run("vat credit", func(t *testing.T) {
		vatIn := in
		vatIn.TransitionMode = domain.TransitionVATCredit
		cc := scenarioContext(t, vatIn)
		assertMoney(t, "100000.00", cc.VATCredit)
		assert.True(t, cc.StockExtra.IsZero())
	})

	t.Run("stock write-off", func(t *testing.T) {
		stockIn := in
		stockIn.TransitionMode = domain.TransitionStockWriteOff
		cc := scenarioContext(t, stockIn)
		assertMoney(t, "200000.00", cc.StockExtra)
		assert.True(t, cc.VATCredit.IsZero())
		assertMoney(t, "8040000.00", cc.ExpensesWithoutSelf)
		// the 1% base shrinks by the write-off
		assertMoney(t, "16600.00", cc.OwnerExtraProfit)
		// profit-regime expenses do not include the stock; calculators subtract it from the base
		assertMoney(t, "7897390.00", cc.TotalExpensesProfit)
	})
}
