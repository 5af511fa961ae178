package config

import (
	"fmt"
	"os"
)

// ExampleYAML is a complete input file with every field present
const ExampleYAML = `# Annual business profile. Amounts in rubles, percentages in percent units.
revenue: 10000000
cost_percent: 40
vat_purchases_percent: 70
rent: 500000
fixed_contribution: 57390

# staff: employees x monthly_salary x 12; annual: payroll_annual
payroll_mode: staff
employees: 3
monthly_salary: 50000
payroll_annual: 0

# percent: other_expenses_percent of revenue; absolute: other_expenses_amount
other_expenses_mode: percent
other_expenses_percent: 10
other_expenses_amount: 0

# none, vat-credit or stock-writeoff
transition_mode: none
accumulated_vat_credit: 0
stock_write_off_amount: 0

# relative purchase volume by month, January first
purchase_month_weights: [100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100]

patent_cost_year: 100000
# 0 derives the potential income from the patent cost
patent_income_base: 0

current_regime: usn_income_no_vat
`

// WriteExample writes ExampleYAML to filename, refusing to overwrite an existing file
func WriteExample(filename string) error {
	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	if _, err := f.WriteString(ExampleYAML); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return f.Close()
}
