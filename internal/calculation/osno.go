package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/taxregimes/taxregimes/internal/domain"
)

// CalculateOSNOCorporate computes the general regime for a company: 25% profit tax plus VAT.
// VAT payable is excluded from the profit tax base.
func CalculateOSNOCorporate(in domain.CalcInput, cc domain.CalculationContext) domain.Result {
	vat := vatBreakdown(cc, in, cc.Rules.VAT.StandardRate)

	base := decimal.Max(in.Revenue.Sub(cc.TotalExpensesProfit).Sub(cc.StockExtra).Sub(vat.Payable), decimal.Zero)
	tax := base.Mul(cc.Rules.OSNO.ProfitTaxRate)

	r := domain.Result{
		ID:        domain.RegimeOSNOCorporate,
		Kind:      domain.KindOSNOCorporate,
		Title:     domain.RegimeOSNOCorporate.Title(),
		Available: true,
		Revenue:   in.Revenue,
		Expenses:  cc.TotalExpensesProfit,
		Tax:       tax,
		VAT:       vat.Payable,
		Insurance: cc.InsuranceTotalProfit,
		NetProfit: in.Revenue.Sub(cc.TotalExpensesProfit).Sub(vat.Payable).Sub(tax),
		Details: domain.OSNOCorporateDetails{
			ProfitTaxBase:     base,
			FixedContribution: in.FixedContribution,
			OwnerExtra:        cc.OwnerExtraProfit,
			OwnerExtraBase:    cc.OwnerExtraProfitBase,
			StockWriteOff:     cc.StockExtra,
			VAT:               vat,
		},
	}
	return finalize(r)
}

// CalculateOSNOIndividual computes the general regime for a sole proprietor: progressive
// NDFL plus VAT. Income and cost of goods are taken net of VAT. The owner's 1% is computed
// on the professional-deduction base here rather than taken from the context.
func CalculateOSNOIndividual(in domain.CalcInput, cc domain.CalculationContext) domain.Result {
	contrib := NewContributionCalculator(cc.Rules.Contributions)
	vat := vatBreakdown(cc, in, cc.Rules.VAT.StandardRate)

	incomeWithoutVAT := in.Revenue.Sub(vat.Charged)
	expensesWithoutVAT := cc.CostOfGoods.Sub(vat.Deductible).
		Add(in.Rent).
		Add(cc.OtherExpenses).
		Add(cc.AnnualPayroll).
		Add(cc.InsuranceStandard).
		Add(cc.StockExtra)

	extraBase := decimal.Max(incomeWithoutVAT.Sub(expensesWithoutVAT).Sub(in.FixedContribution), decimal.Zero)
	extra := contrib.OwnerExtraOnBase(extraBase)

	ndflBase := decimal.Max(extraBase.Sub(extra), decimal.Zero)
	ndfl := ProgressiveIncomeTax(ndflBase, cc.Rules.OSNO.NDFLBrackets)

	insurance := cc.InsuranceStandard.Add(in.FixedContribution).Add(extra)

	r := domain.Result{
		ID:        domain.RegimeOSNOIndividual,
		Kind:      domain.KindOSNOIndividual,
		Title:     domain.RegimeOSNOIndividual.Title(),
		Available: true,
		Revenue:   in.Revenue,
		Expenses:  cc.TotalExpensesCommon.Add(in.FixedContribution).Add(extra),
		Tax:       ndfl,
		VAT:       vat.Payable,
		Insurance: insurance,
		NetProfit: incomeWithoutVAT.Sub(expensesWithoutVAT).Sub(ndfl).Sub(in.FixedContribution).Sub(extra),
		Details: domain.OSNOIndividualDetails{
			IncomeWithoutVAT:   incomeWithoutVAT,
			ExpensesWithoutVAT: expensesWithoutVAT,
			OwnerExtraBase:     extraBase,
			OwnerExtra:         extra,
			NDFLBase:           ndflBase,
			NDFL:               ndfl,
			FixedContribution:  in.FixedContribution,
			StockWriteOff:      cc.StockExtra,
			VAT:                vat,
		},
	}
	return finalize(r)
}
