package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/taxregimes/taxregimes/internal/domain"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. All figures are annual; monthly and quarterly advance payments are not modelled.
//
// 2. Payroll contributions: flat 30% of annual payroll, no reduced SME tariff and no cap.
//
// 3. Owner's 1% contribution: 1% of the income base above 300 000. The base is revenue for
//    income-taxed regimes, revenue minus expenses for profit-taxed regimes and potential
//    income for the patent. The annual cap on this contribution is not applied.
//
// 4. NDFL uses the 2026 progressive schedule (13/15/18/20/22%).
//
// 5. VAT: input VAT is recovered on cost of goods only, in proportion to the share of
//    purchases that carried VAT. Rent and other expenses are treated as VAT-free.

// ContributionCalculator computes insurance contributions
type ContributionCalculator struct {
	PayrollRate    decimal.Decimal
	ExtraRate      decimal.Decimal
	ExtraThreshold decimal.Decimal
}

// NewContributionCalculator creates a calculator from the contribution rules
func NewContributionCalculator(rules domain.ContributionRules) *ContributionCalculator {
	return &ContributionCalculator{
		PayrollRate:    rules.PayrollRate,
		ExtraRate:      rules.OwnerExtraRate,
		ExtraThreshold: rules.OwnerExtraThreshold,
	}
}

// StandardInsurance returns contributions on employee payroll
func (cc *ContributionCalculator) StandardInsurance(payroll decimal.Decimal) decimal.Decimal {
	return payroll.Mul(cc.PayrollRate)
}

// OwnerExtraOnBase returns the owner's 1% contribution on the part of base above the threshold
func (cc *ContributionCalculator) OwnerExtraOnBase(base decimal.Decimal) decimal.Decimal {
	excess := base.Sub(cc.ExtraThreshold)
	if !excess.IsPositive() {
		return decimal.Zero
	}
	return excess.Mul(cc.ExtraRate)
}

// OwnerExtraOnIncome returns the 1% contribution on revenue and the base it was computed on
func (cc *ContributionCalculator) OwnerExtraOnIncome(revenue decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	return cc.OwnerExtraOnBase(revenue), revenue
}

// OwnerExtraOnProfit returns the 1% contribution on revenue minus expenses and its base
func (cc *ContributionCalculator) OwnerExtraOnProfit(revenue, expenses decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	base := revenue.Sub(expenses)
	return cc.OwnerExtraOnBase(base), base
}

// ProgressiveIncomeTax applies a marginal schedule to base. Income above the last finite
// bound is taxed at the last rate.
func ProgressiveIncomeTax(base decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if !base.IsPositive() || len(brackets) == 0 {
		return decimal.Zero
	}

	tax := decimal.Zero
	lower := decimal.Zero
	for _, bracket := range brackets {
		upper := base
		if bracket.UpTo != nil {
			upper = decimal.Min(base, *bracket.UpTo)
		}
		if upper.GreaterThan(lower) {
			tax = tax.Add(upper.Sub(lower).Mul(bracket.Rate))
			lower = upper
		}
		if lower.GreaterThanOrEqual(base) {
			return tax
		}
	}

	last := brackets[len(brackets)-1]
	return tax.Add(base.Sub(lower).Mul(last.Rate))
}
