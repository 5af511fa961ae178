package output

import (
	"fmt"

	"github.com/taxregimes/taxregimes/internal/domain"
)

// DetailLine is one labelled figure of a breakdown
type DetailLine struct {
	Label string
	Value string
}

// ComponentLines explains the shared inputs every regime is computed from
func ComponentLines(c domain.Components) []DetailLine {
	lines := []DetailLine{
		{"Revenue", FormatCurrency(c.Revenue)},
		{"Cost of goods", FormatCurrency(c.CostOfGoods)},
		{"Rent", FormatCurrency(c.Rent)},
		{"Other expenses", FormatCurrency(c.OtherExpenses)},
		{"Annual payroll", FormatCurrency(c.AnnualPayroll)},
		{"Payroll contributions", FormatCurrency(c.InsuranceStandard)},
		{"Owner fixed contribution", FormatCurrency(c.FixedContribution)},
		{"Owner 1% (income regimes)", FormatCurrency(c.OwnerExtraIncome)},
		{"Owner 1% (profit regimes)", FormatCurrency(c.OwnerExtraProfit)},
		{"Purchases with VAT", FormatPercentage(c.VATPurchasesPercent)},
		{"Patent cost", FormatCurrency(c.PatentCostYear)},
		{"Transition", string(c.TransitionMode)},
	}
	switch c.TransitionMode {
	case domain.TransitionVATCredit:
		lines = append(lines, DetailLine{"Carried VAT credit", FormatCurrency(c.VATCredit)})
	case domain.TransitionStockWriteOff:
		lines = append(lines, DetailLine{"Stock write-off", FormatCurrency(c.StockExtra)})
	}
	return lines
}

// DetailLines renders the family-specific breakdown of a result
func DetailLines(d domain.RegimeDetails) []DetailLine {
	switch d := d.(type) {
	case domain.AUSNDetails:
		lines := []DetailLine{
			{"Object", string(d.Object)},
			{"Tax base", FormatCurrency(d.TaxBase)},
			{"Regular tax", FormatCurrency(d.RegularTax)},
		}
		if d.Object == domain.AUSNObjectProfit {
			lines = append(lines,
				DetailLine{"Minimum tax", FormatCurrency(d.MinimumTax)},
				DetailLine{"Monthly schedule total", FormatCurrency(d.MonthlyTaxTotal)})
		}
		return append(lines, DetailLine{"Fixed contribution", FormatCurrency(d.FixedContribution)})

	case domain.USNIncomeDetails:
		lines := []DetailLine{
			{"Tax before reduction", FormatCurrency(d.TaxInitial)},
			{"Contributions for reduction", FormatCurrency(d.ReductionBase)},
			{"Reduction limit", FormatCurrency(d.ReductionLimit)},
			{"Reduction by contributions", FormatCurrency(d.Reduction)},
			{"Reduction by fixed contribution", FormatCurrency(d.FixedContributionReduction)},
			{"Owner 1%", FormatCurrency(d.OwnerExtra)},
		}
		return appendVAT(lines, d.VAT)

	case domain.USNProfitDetails:
		lines := []DetailLine{
			{"Tax base", FormatCurrency(d.TaxBase)},
			{"Regular tax", FormatCurrency(d.RegularTax)},
			{"Minimum tax", FormatCurrency(d.MinimumTax)},
			{"Minimum applied", formatBool(d.MinimumApplied)},
			{"Owner 1%", FormatCurrency(d.OwnerExtra)},
		}
		if d.StockWriteOff.IsPositive() {
			lines = append(lines, DetailLine{"Stock write-off", FormatCurrency(d.StockWriteOff)})
		}
		return appendVAT(lines, d.VAT)

	case domain.OSNOCorporateDetails:
		lines := []DetailLine{
			{"Profit tax base", FormatCurrency(d.ProfitTaxBase)},
			{"Owner 1%", FormatCurrency(d.OwnerExtra)},
		}
		if d.StockWriteOff.IsPositive() {
			lines = append(lines, DetailLine{"Stock write-off", FormatCurrency(d.StockWriteOff)})
		}
		return appendVAT(lines, &d.VAT)

	case domain.OSNOIndividualDetails:
		lines := []DetailLine{
			{"Income without VAT", FormatCurrency(d.IncomeWithoutVAT)},
			{"Expenses without VAT", FormatCurrency(d.ExpensesWithoutVAT)},
			{"Owner 1% base", FormatCurrency(d.OwnerExtraBase)},
			{"Owner 1%", FormatCurrency(d.OwnerExtra)},
			{"NDFL base", FormatCurrency(d.NDFLBase)},
			{"NDFL", FormatCurrency(d.NDFL)},
		}
		return appendVAT(lines, &d.VAT)

	case domain.PatentDetails:
		source := "entered"
		if d.PotentialIncomeDerived {
			source = "derived from cost"
		}
		return []DetailLine{
			{"Patent cost", FormatCurrency(d.PatentCost)},
			{"Potential income", fmt.Sprintf("%s (%s)", FormatCurrency(d.PotentialIncome), source)},
			{"Owner 1%", FormatCurrency(d.OwnerExtra)},
			{"Owner contributions", FormatCurrency(d.OwnerContributions)},
			{"Worker contributions", FormatCurrency(d.WorkerContributions)},
			{"Deduction limit", FormatCurrency(d.DeductionLimit)},
			{"Limited by staff", formatBool(d.DeductionLimitedByStaff)},
			{"Deduction", FormatCurrency(d.Deduction)},
			{"Profit after patent", FormatCurrency(d.NetProfitAccounting)},
		}
	}
	return nil
}

func appendVAT(lines []DetailLine, vat *domain.VATBreakdown) []DetailLine {
	if vat == nil {
		return lines
	}
	lines = append(lines,
		DetailLine{"VAT rate", FormatPercentage(vat.Rate)},
		DetailLine{"VAT charged", FormatCurrency(vat.Charged)},
		DetailLine{"VAT deductible", FormatCurrency(vat.Deductible)})
	if vat.ExtraCredit.IsPositive() {
		lines = append(lines, DetailLine{"Carried VAT credit", FormatCurrency(vat.ExtraCredit)})
	}
	return append(lines, DetailLine{"VAT payable", FormatCurrency(vat.Payable)})
}
