package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/taxregimes/taxregimes/internal/domain"
)

var monthsPerYear = decimal.NewFromInt(domain.MonthsPerYear)

// AnnualPayroll derives annual payroll from the input's payroll mode
func AnnualPayroll(in domain.CalcInput) decimal.Decimal {
	if in.PayrollMode == domain.PayrollAnnual {
		return in.PayrollAnnual
	}
	return decimal.NewFromInt(int64(in.Employees)).Mul(in.MonthlySalary).Mul(monthsPerYear)
}

// OtherExpenses derives other expenses from the input's other-expenses mode
func OtherExpenses(in domain.CalcInput) decimal.Decimal {
	if in.OtherExpensesMode == domain.OtherExpensesPercent {
		return in.Revenue.Mul(in.OtherExpensesPercent).Div(hundred)
	}
	return in.OtherExpensesAmount
}

// BuildContext derives every shared quantity once. Regime calculators read the expense
// aggregates from the context and never recompute them.
func BuildContext(in domain.CalcInput, rules domain.TaxRules) (domain.CalculationContext, domain.Components) {
	contrib := NewContributionCalculator(rules.Contributions)

	cogs := in.Revenue.Mul(in.CostPercent).Div(hundred)
	other := OtherExpenses(in)
	payroll := AnnualPayroll(in)
	insStd := contrib.StandardInsurance(payroll)
	common := cogs.Add(in.Rent).Add(other).Add(payroll).Add(insStd)

	stockExtra := decimal.Zero
	if in.TransitionMode == domain.TransitionStockWriteOff {
		stockExtra = in.StockWriteOffAmount
	}
	vatCredit := decimal.Zero
	if in.TransitionMode == domain.TransitionVATCredit {
		vatCredit = in.AccumulatedVATCredit
	}

	withoutSelf := common.Add(stockExtra)
	extraIncome, extraIncomeBase := contrib.OwnerExtraOnIncome(in.Revenue)
	extraProfit, extraProfitBase := contrib.OwnerExtraOnProfit(in.Revenue, withoutSelf)
	fixed := in.FixedContribution

	cc := domain.CalculationContext{
		Rules:                rules,
		CostOfGoods:          cogs,
		OtherExpenses:        other,
		AnnualPayroll:        payroll,
		HasEmployees:         payroll.IsPositive(),
		InsuranceStandard:    insStd,
		TotalExpensesCommon:  common,
		StockExtra:           stockExtra,
		VATCredit:            vatCredit,
		ExpensesWithoutSelf:  withoutSelf,
		OwnerExtraIncome:     extraIncome,
		OwnerExtraIncomeBase: extraIncomeBase,
		OwnerExtraProfit:     extraProfit,
		OwnerExtraProfitBase: extraProfitBase,
		InsuranceTotalIncome: insStd.Add(extraIncome).Add(fixed),
		InsuranceTotalProfit: insStd.Add(extraProfit).Add(fixed),
		TotalExpensesIncome:  common.Add(extraIncome).Add(fixed),
		TotalExpensesProfit:  common.Add(fixed),
		TotalExpensesAUSN:    cogs.Add(in.Rent).Add(other).Add(payroll),
	}

	components := domain.Components{
		Revenue:              in.Revenue,
		CostOfGoods:          cogs,
		Rent:                 in.Rent,
		OtherExpenses:        other,
		AnnualPayroll:        payroll,
		HasEmployees:         cc.HasEmployees,
		InsuranceStandard:    insStd,
		FixedContribution:    fixed,
		OwnerExtraIncome:     extraIncome,
		OwnerExtraIncomeBase: extraIncomeBase,
		OwnerExtraProfit:     extraProfit,
		OwnerExtraProfitBase: extraProfitBase,
		VATPurchasesPercent:  in.VATPurchasesPercent,
		AccumulatedVATCredit: in.AccumulatedVATCredit,
		StockWriteOffAmount:  in.StockWriteOffAmount,
		StockExtra:           stockExtra,
		VATCredit:            vatCredit,
		TransitionMode:       in.TransitionMode,
		PatentCostYear:       in.PatentCostYear,
	}

	return cc, components
}
