package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/taxregimes/taxregimes/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadRulesFromFile reads a rules YAML file as an overlay on the default 2026 rules:
// keys missing from the file keep their default values. NDFL brackets, when given,
// replace the default schedule as a whole.
func LoadRulesFromFile(filename string) (domain.TaxRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.TaxRules{}, fmt.Errorf("failed to read rules file %s: %w", filename, err)
	}
	return ParseRules(data)
}

// ParseRules overlays a rules YAML document on the defaults and validates the result
func ParseRules(data []byte) (domain.TaxRules, error) {
	rules := domain.DefaultTaxRules()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return domain.TaxRules{}, fmt.Errorf("failed to parse rules YAML: %w", err)
	}
	if err := ValidateRules(rules); err != nil {
		return domain.TaxRules{}, fmt.Errorf("rules validation failed: %w", err)
	}
	return rules, nil
}

// ValidateRules checks that rates are fractions, limits are non-negative and the NDFL
// schedule is strictly increasing with exactly one unbounded terminal bracket.
func ValidateRules(rules domain.TaxRules) error {
	fractions := []struct {
		name  string
		value decimal.Decimal
	}{
		{"contributions.payroll_rate", rules.Contributions.PayrollRate},
		{"contributions.owner_extra_rate", rules.Contributions.OwnerExtraRate},
		{"usn.income_rate", rules.USN.IncomeRate},
		{"usn.profit_rate", rules.USN.ProfitRate},
		{"usn.profit_min_rate", rules.USN.ProfitMinRate},
		{"usn.reduction_limit", rules.USN.ReductionLimit},
		{"ausn.income_rate", rules.AUSN.IncomeRate},
		{"ausn.profit_rate", rules.AUSN.ProfitRate},
		{"ausn.profit_min_rate", rules.AUSN.ProfitMinRate},
		{"osno.profit_tax_rate", rules.OSNO.ProfitTaxRate},
		{"patent.implied_income_rate", rules.Patent.ImpliedIncomeRate},
		{"patent.deduction_limit", rules.Patent.DeductionLimit},
	}
	one := decimal.NewFromInt(1)
	for _, f := range fractions {
		if f.value.IsNegative() || f.value.GreaterThan(one) {
			return invalid("%s must be between 0 and 1, got %s", f.name, f.value)
		}
	}

	nonNegative := []struct {
		name  string
		value decimal.Decimal
	}{
		{"contributions.owner_extra_threshold", rules.Contributions.OwnerExtraThreshold},
		{"contributions.default_fixed_contribution", rules.Contributions.DefaultFixedContribution},
		{"ausn.revenue_limit", rules.AUSN.RevenueLimit},
		{"vat.reduced_rate", rules.VAT.ReducedRate},
		{"vat.standard_rate", rules.VAT.StandardRate},
		{"patent.default_cost", rules.Patent.DefaultCost},
		{"patent.revenue_limit", rules.Patent.RevenueLimit},
	}
	for _, f := range nonNegative {
		if f.value.IsNegative() {
			return invalid("%s cannot be negative, got %s", f.name, f.value)
		}
	}
	if rules.AUSN.EmployeeLimit < 0 || rules.Patent.EmployeeLimit < 0 {
		return invalid("employee limits cannot be negative")
	}

	return validateBrackets(rules.OSNO.NDFLBrackets)
}

func validateBrackets(brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return invalid("osno.ndfl_brackets must not be empty")
	}
	one := decimal.NewFromInt(1)
	prev := decimal.Zero
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return invalid("osno.ndfl_brackets[%d].rate must be between 0 and 1", i)
		}
		last := i == len(brackets)-1
		if b.UpTo == nil {
			if !last {
				return invalid("osno.ndfl_brackets[%d] is unbounded but not last", i)
			}
			continue
		}
		if last {
			return invalid("the last NDFL bracket must be unbounded")
		}
		if !b.UpTo.GreaterThan(prev) {
			return invalid("osno.ndfl_brackets[%d].up_to must exceed %s", i, prev)
		}
		prev = *b.UpTo
	}
	return nil
}
