package output

import (
	"fmt"

	"github.com/taxregimes/taxregimes/internal/domain"
)

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = AssumptionsFor(domain.DefaultTaxRules())

// AssumptionsFor describes the rates and limits a report was computed with
func AssumptionsFor(rules domain.TaxRules) []string {
	c := rules.Contributions
	return []string{
		fmt.Sprintf("Rules: %s", rules.Metadata.Description),
		fmt.Sprintf("Payroll contributions: %s of payroll (paid inside the tax under AUSN)", FormatRate(c.PayrollRate)),
		fmt.Sprintf("Owner contribution: fixed %s plus %s above %s", FormatCurrency(c.DefaultFixedContribution),
			FormatRate(c.OwnerExtraRate), FormatCurrency(c.OwnerExtraThreshold)),
		fmt.Sprintf("USN: %s of income or %s of profit (minimum %s of income)",
			FormatRate(rules.USN.IncomeRate), FormatRate(rules.USN.ProfitRate), FormatRate(rules.USN.ProfitMinRate)),
		fmt.Sprintf("AUSN: %s of income or %s of profit (minimum %s), up to %s revenue and %d employees",
			FormatRate(rules.AUSN.IncomeRate), FormatRate(rules.AUSN.ProfitRate), FormatRate(rules.AUSN.ProfitMinRate),
			FormatCurrency(rules.AUSN.RevenueLimit), rules.AUSN.EmployeeLimit),
		fmt.Sprintf("VAT: %s%% or %s%% on USN, %s%% on OSNO; extracted from VAT-inclusive amounts",
			rules.VAT.ReducedRate, rules.VAT.StandardRate, rules.VAT.StandardRate),
		fmt.Sprintf("OSNO: %s corporate profit tax, progressive NDFL for sole proprietors", FormatRate(rules.OSNO.ProfitTaxRate)),
		fmt.Sprintf("Patent: up to %s revenue and %d employees; deduction capped at %s of the cost with staff",
			FormatCurrency(rules.Patent.RevenueLimit), rules.Patent.EmployeeLimit, FormatRate(rules.Patent.DeductionLimit)),
		"Break-even: revenue scales with price while cost of goods, other expenses and payroll stay fixed",
	}
}
