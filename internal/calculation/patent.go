package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/taxregimes/taxregimes/internal/domain"
)

// PotentialIncome returns the patent's potential income and whether it was derived from the
// patent cost rather than entered.
func PotentialIncome(in domain.CalcInput, rules domain.PatentRules) (decimal.Decimal, bool) {
	if in.PatentIncomeBase.IsPositive() {
		return in.PatentIncomeBase, false
	}
	if !rules.ImpliedIncomeRate.IsPositive() || !in.PatentCostYear.IsPositive() {
		return decimal.Zero, true
	}
	return in.PatentCostYear.Div(rules.ImpliedIncomeRate), true
}

// CalculatePatent computes the patent regime. The patent cost is reduced by the owner's and
// workers' contributions, capped at half the cost when the business has staff.
func CalculatePatent(in domain.CalcInput, cc domain.CalculationContext) domain.Result {
	rules := cc.Rules.Patent
	if in.Revenue.GreaterThan(rules.RevenueLimit) {
		return domain.NewUnavailableResult(domain.RegimePatent, domain.RegimePatent.Title(),
			fmt.Sprintf("выручка %s превышает лимит патента %s", in.Revenue.StringFixed(0), rules.RevenueLimit.StringFixed(0)))
	}
	if in.Employees > rules.EmployeeLimit {
		return domain.NewUnavailableResult(domain.RegimePatent, domain.RegimePatent.Title(),
			fmt.Sprintf("численность %d превышает лимит патента %d", in.Employees, rules.EmployeeLimit))
	}

	contrib := NewContributionCalculator(cc.Rules.Contributions)
	expenses := cc.CostOfGoods.Add(in.Rent).Add(cc.OtherExpenses).Add(cc.AnnualPayroll)

	potential, derived := PotentialIncome(in, rules)
	ownerExtra := contrib.OwnerExtraOnBase(potential)
	ownerContrib := in.FixedContribution.Add(ownerExtra)
	workerContrib := cc.InsuranceStandard

	taxBefore := decimal.Max(in.PatentCostYear, decimal.Zero)
	limitedByStaff := cc.AnnualPayroll.IsPositive() && in.Employees > 0
	limit := taxBefore
	if limitedByStaff {
		limit = taxBefore.Mul(rules.DeductionLimit)
	}
	deduction := decimal.Min(ownerContrib.Add(workerContrib), limit)
	tax := decimal.Max(taxBefore.Sub(deduction), decimal.Zero)

	accounting := in.Revenue.Sub(expenses).Sub(tax)
	insurance := ownerContrib.Add(workerContrib)

	r := domain.Result{
		ID:        domain.RegimePatent,
		Kind:      domain.KindPatent,
		Title:     domain.RegimePatent.Title(),
		Available: true,
		Revenue:   in.Revenue,
		Expenses:  expenses,
		Tax:       tax,
		VAT:       decimal.Zero,
		Insurance: insurance,
		NetProfit: accounting.Sub(insurance),
		Details: domain.PatentDetails{
			PatentCost:              in.PatentCostYear,
			PotentialIncome:         potential,
			PotentialIncomeDerived:  derived,
			OwnerExtra:              ownerExtra,
			FixedContribution:       in.FixedContribution,
			OwnerContributions:      ownerContrib,
			WorkerContributions:     workerContrib,
			TaxBeforeDeduction:      taxBefore,
			DeductionLimit:          limit,
			DeductionLimitedByStaff: limitedByStaff,
			Deduction:               deduction,
			NetProfitAccounting:     accounting,
		},
	}
	return finalize(r)
}
