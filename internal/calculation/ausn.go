package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/taxregimes/taxregimes/internal/domain"
)

const ausnLimitTitleSuffix = " (нельзя применять: превышены лимиты)"

// ausnIneligibility returns a non-empty reason when the input exceeds the AUSN limits.
// Both limits are inclusive.
func ausnIneligibility(in domain.CalcInput, rules domain.AUSNRules) string {
	if in.Revenue.GreaterThan(rules.RevenueLimit) {
		return fmt.Sprintf("выручка %s превышает лимит АУСН %s", in.Revenue.StringFixed(0), rules.RevenueLimit.StringFixed(0))
	}
	if in.Employees > rules.EmployeeLimit {
		return fmt.Sprintf("численность %d превышает лимит АУСН %d", in.Employees, rules.EmployeeLimit)
	}
	return ""
}

// CalculateAUSNIncome computes AUSN with the income object (8% of revenue)
func CalculateAUSNIncome(in domain.CalcInput, cc domain.CalculationContext) domain.Result {
	rules := cc.Rules.AUSN
	if reason := ausnIneligibility(in, rules); reason != "" {
		return domain.NewUnavailableResult(domain.RegimeAUSNIncome, domain.RegimeAUSNIncome.Title()+ausnLimitTitleSuffix, reason)
	}

	tax := in.Revenue.Mul(rules.IncomeRate)
	return ausnResult(domain.RegimeAUSNIncome, in, cc, tax, domain.AUSNDetails{
		Object:            domain.AUSNObjectIncome,
		TaxBase:           in.Revenue,
		RegularTax:        tax,
		MinimumTax:        decimal.Zero,
		FixedContribution: in.FixedContribution,
	})
}

// CalculateAUSNProfit computes AUSN with the income-minus-expenses object:
// max(20% of the profit base, 3% of revenue).
func CalculateAUSNProfit(in domain.CalcInput, cc domain.CalculationContext) domain.Result {
	rules := cc.Rules.AUSN
	if reason := ausnIneligibility(in, rules); reason != "" {
		return domain.NewUnavailableResult(domain.RegimeAUSNProfit, domain.RegimeAUSNProfit.Title()+ausnLimitTitleSuffix, reason)
	}

	base := decimal.Max(in.Revenue.Sub(cc.TotalExpensesAUSN), decimal.Zero)
	regular := base.Mul(rules.ProfitRate)
	minimum := in.Revenue.Mul(rules.ProfitMinRate)
	tax := decimal.Max(regular, minimum)

	schedule, scheduleTotal := ausnMonthlySchedule(in, cc)
	return ausnResult(domain.RegimeAUSNProfit, in, cc, tax, domain.AUSNDetails{
		Object:            domain.AUSNObjectProfit,
		TaxBase:           base,
		RegularTax:        regular,
		MinimumTax:        minimum,
		FixedContribution: in.FixedContribution,
		MonthlySchedule:   schedule,
		MonthlyTaxTotal:   scheduleTotal,
	})
}

func ausnResult(id domain.RegimeID, in domain.CalcInput, cc domain.CalculationContext, tax decimal.Decimal, details domain.AUSNDetails) domain.Result {
	// only the owner's fixed contribution is payable; payroll contributions are inside the tax
	insurance := in.FixedContribution
	r := domain.Result{
		ID:        id,
		Kind:      domain.KindAUSN,
		Title:     id.Title(),
		Available: true,
		Revenue:   in.Revenue,
		Expenses:  cc.TotalExpensesAUSN,
		Tax:       tax,
		VAT:       decimal.Zero,
		Insurance: insurance,
		NetProfit: in.Revenue.Sub(cc.TotalExpensesAUSN).Sub(tax).Sub(in.FixedContribution),
		Details:   details,
	}
	return finalize(r)
}

// PurchaseShares normalizes monthly purchase weights into shares summing to one.
// Negative weights count as zero; all-zero weights give a uniform schedule.
func PurchaseShares(weights [domain.MonthsPerYear]decimal.Decimal) [domain.MonthsPerYear]decimal.Decimal {
	var shares [domain.MonthsPerYear]decimal.Decimal
	total := decimal.Zero
	for i, w := range weights {
		shares[i] = decimal.Max(w, decimal.Zero)
		total = total.Add(shares[i])
	}
	if !total.IsPositive() {
		uniform := decimal.NewFromInt(1).Div(monthsPerYear)
		for i := range shares {
			shares[i] = uniform
		}
		return shares
	}
	for i := range shares {
		shares[i] = shares[i].Div(total)
	}
	return shares
}

// ausnMonthlySchedule spreads the year by month: revenue and fixed costs evenly, cost of
// goods by purchase weights. Each month applies the regular rate with its own minimum.
func ausnMonthlySchedule(in domain.CalcInput, cc domain.CalculationContext) ([]domain.MonthlyTax, decimal.Decimal) {
	rules := cc.Rules.AUSN
	shares := PurchaseShares(in.PurchaseMonthWeights)
	monthRevenue := in.Revenue.Div(monthsPerYear)
	monthFixed := in.Rent.Add(cc.OtherExpenses).Add(cc.AnnualPayroll).Div(monthsPerYear)

	schedule := make([]domain.MonthlyTax, 0, domain.MonthsPerYear)
	total := decimal.Zero
	for i, share := range shares {
		expenses := cc.CostOfGoods.Mul(share).Add(monthFixed)
		tax := decimal.Max(monthRevenue.Sub(expenses).Mul(rules.ProfitRate), monthRevenue.Mul(rules.ProfitMinRate))
		schedule = append(schedule, domain.MonthlyTax{
			Month:    i + 1,
			Revenue:  monthRevenue,
			Expenses: expenses,
			Tax:      tax,
		})
		total = total.Add(tax)
	}
	return schedule, total
}

// finalize fills the derived burden fields
func finalize(r domain.Result) domain.Result {
	r.TotalBurden = r.Tax.Add(r.VAT).Add(r.Insurance)
	r.BurdenPercent = decimal.Zero
	if r.Revenue.IsPositive() {
		r.BurdenPercent = r.TotalBurden.Div(r.Revenue).Mul(hundred)
	}
	return r
}
