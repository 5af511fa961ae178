package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/taxregimes/taxregimes/internal/domain"
)

// vatRateFor maps a variant's VAT mode to its rate in percent units
func vatRateFor(mode domain.VATMode, rules domain.VATRules) decimal.Decimal {
	switch mode {
	case domain.VATReduced:
		return rules.ReducedRate
	case domain.VATStandard:
		return rules.StandardRate
	default:
		return decimal.Zero
	}
}

// usnVAT returns the VAT breakdown for a simplified-regime variant, nil when VAT does not apply
func usnVAT(id domain.RegimeID, in domain.CalcInput, cc domain.CalculationContext) *domain.VATBreakdown {
	info, _ := domain.LookupRegime(id)
	if info.VATMode == domain.VATNone {
		return nil
	}
	vat := vatBreakdown(cc, in, vatRateFor(info.VATMode, cc.Rules.VAT))
	return &vat
}

func payable(vat *domain.VATBreakdown) decimal.Decimal {
	if vat == nil {
		return decimal.Zero
	}
	return vat.Payable
}

// CalculateUSNIncome computes the 6% simplified regime for one VAT variant.
//
// The tax is reduced by payroll contributions and the owner's 1% first, then by the owner's
// fixed contribution. With employees the total reduction is capped at half the tax; without
// employees the tax can be reduced to zero.
func CalculateUSNIncome(id domain.RegimeID, in domain.CalcInput, cc domain.CalculationContext) domain.Result {
	rules := cc.Rules.USN

	taxInitial := in.Revenue.Mul(rules.IncomeRate)
	limit := taxInitial
	if cc.HasEmployees {
		limit = taxInitial.Mul(rules.ReductionLimit)
	}

	reductionBase := cc.InsuranceStandard.Add(cc.OwnerExtraIncome)
	reduction := decimal.Min(reductionBase, limit)
	fixedReduction := decimal.Min(in.FixedContribution, decimal.Max(limit.Sub(reduction), decimal.Zero))
	tax := decimal.Max(taxInitial.Sub(reduction).Sub(fixedReduction), decimal.Zero)

	vat := usnVAT(id, in, cc)
	vatPay := payable(vat)

	r := domain.Result{
		ID:        id,
		Kind:      domain.KindUSNIncome,
		Title:     id.Title(),
		Available: true,
		Revenue:   in.Revenue,
		Expenses:  cc.TotalExpensesIncome,
		Tax:       tax,
		VAT:       vatPay,
		Insurance: cc.InsuranceTotalIncome,
		NetProfit: in.Revenue.Sub(cc.TotalExpensesIncome).Sub(tax).Sub(vatPay),
		Details: domain.USNIncomeDetails{
			TaxInitial:                 taxInitial,
			ReductionBase:              reductionBase,
			ReductionLimit:             limit,
			Reduction:                  reduction,
			FixedContribution:          in.FixedContribution,
			FixedContributionReduction: fixedReduction,
			OwnerExtra:                 cc.OwnerExtraIncome,
			OwnerExtraBase:             cc.OwnerExtraIncomeBase,
			VAT:                        vat,
		},
	}
	return finalize(r)
}

// CalculateUSNProfit computes the 15% simplified regime for one VAT variant:
// max(15% of the profit base, 1% of revenue).
func CalculateUSNProfit(id domain.RegimeID, in domain.CalcInput, cc domain.CalculationContext) domain.Result {
	rules := cc.Rules.USN

	base := in.Revenue.Sub(cc.TotalExpensesProfit).Sub(cc.StockExtra)
	regular := decimal.Max(base, decimal.Zero).Mul(rules.ProfitRate)
	minimum := in.Revenue.Mul(rules.ProfitMinRate)
	tax := decimal.Max(regular, minimum)

	vat := usnVAT(id, in, cc)
	vatPay := payable(vat)

	r := domain.Result{
		ID:        id,
		Kind:      domain.KindUSNProfit,
		Title:     id.Title(),
		Available: true,
		Revenue:   in.Revenue,
		Expenses:  cc.TotalExpensesProfit,
		Tax:       tax,
		VAT:       vatPay,
		Insurance: cc.InsuranceTotalProfit,
		NetProfit: in.Revenue.Sub(cc.TotalExpensesProfit).Sub(tax).Sub(vatPay),
		Details: domain.USNProfitDetails{
			TaxBase:           base,
			RegularTax:        regular,
			MinimumTax:        minimum,
			MinimumApplied:    minimum.GreaterThan(regular),
			FixedContribution: in.FixedContribution,
			OwnerExtra:        cc.OwnerExtraProfit,
			OwnerExtraBase:    cc.OwnerExtraProfitBase,
			StockWriteOff:     cc.StockExtra,
			VAT:               vat,
		},
	}
	return finalize(r)
}
