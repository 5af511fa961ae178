package domain

import (
	"github.com/shopspring/decimal"
)

// TaxRules contains the statutory rates, limits and thresholds used by every regime calculator.
// Defaults reflect the 2026 rules; a rules YAML file may override any of them.
type TaxRules struct {
	Metadata      RulesMetadata     `yaml:"metadata" json:"metadata"`
	Contributions ContributionRules `yaml:"contributions" json:"contributions"`
	USN           USNRules          `yaml:"usn" json:"usn"`
	AUSN          AUSNRules         `yaml:"ausn" json:"ausn"`
	VAT           VATRules          `yaml:"vat" json:"vat"`
	OSNO          OSNORules         `yaml:"osno" json:"osno"`
	Patent        PatentRules       `yaml:"patent" json:"patent"`
}

// RulesMetadata contains information about the rule set
type RulesMetadata struct {
	DataYear    int    `yaml:"data_year" json:"data_year"`
	Description string `yaml:"description" json:"description"`
}

// ContributionRules contains insurance contribution rules
type ContributionRules struct {
	PayrollRate              decimal.Decimal `yaml:"payroll_rate" json:"payroll_rate"`
	OwnerExtraRate           decimal.Decimal `yaml:"owner_extra_rate" json:"owner_extra_rate"`
	OwnerExtraThreshold      decimal.Decimal `yaml:"owner_extra_threshold" json:"owner_extra_threshold"`
	DefaultFixedContribution decimal.Decimal `yaml:"default_fixed_contribution" json:"default_fixed_contribution"`
}

// USNRules contains simplified-regime rates
type USNRules struct {
	IncomeRate     decimal.Decimal `yaml:"income_rate" json:"income_rate"`
	ProfitRate     decimal.Decimal `yaml:"profit_rate" json:"profit_rate"`
	ProfitMinRate  decimal.Decimal `yaml:"profit_min_rate" json:"profit_min_rate"`
	ReductionLimit decimal.Decimal `yaml:"reduction_limit" json:"reduction_limit"` // share of tax reducible by contributions when there are employees
}

// AUSNRules contains automated simplified-regime rates and eligibility limits
type AUSNRules struct {
	IncomeRate    decimal.Decimal `yaml:"income_rate" json:"income_rate"`
	ProfitRate    decimal.Decimal `yaml:"profit_rate" json:"profit_rate"`
	ProfitMinRate decimal.Decimal `yaml:"profit_min_rate" json:"profit_min_rate"`
	RevenueLimit  decimal.Decimal `yaml:"revenue_limit" json:"revenue_limit"`
	EmployeeLimit int             `yaml:"employee_limit" json:"employee_limit"`
}

// VATRules contains VAT rates expressed in percent units (5 means 5%)
type VATRules struct {
	ReducedRate  decimal.Decimal `yaml:"reduced_rate" json:"reduced_rate"`
	StandardRate decimal.Decimal `yaml:"standard_rate" json:"standard_rate"`
}

// OSNORules contains general-regime rates
type OSNORules struct {
	ProfitTaxRate decimal.Decimal `yaml:"profit_tax_rate" json:"profit_tax_rate"`
	NDFLBrackets  []TaxBracket    `yaml:"ndfl_brackets" json:"ndfl_brackets"`
}

// PatentRules contains patent regime parameters
type PatentRules struct {
	DefaultCost       decimal.Decimal `yaml:"default_cost" json:"default_cost"`
	ImpliedIncomeRate decimal.Decimal `yaml:"implied_income_rate" json:"implied_income_rate"` // patent cost / rate = potential income
	DeductionLimit    decimal.Decimal `yaml:"deduction_limit" json:"deduction_limit"`         // applies when there are employees
	RevenueLimit      decimal.Decimal `yaml:"revenue_limit" json:"revenue_limit"`
	EmployeeLimit     int             `yaml:"employee_limit" json:"employee_limit"`
}

// TaxBracket is one step of a progressive schedule. A nil UpTo marks the terminal bracket.
type TaxBracket struct {
	UpTo *decimal.Decimal `yaml:"up_to,omitempty" json:"up_to,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

func bound(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// DefaultTaxRules returns the 2026 rule set
func DefaultTaxRules() TaxRules {
	return TaxRules{
		Metadata: RulesMetadata{
			DataYear:    2026,
			Description: "Russian small business tax rules, 2026",
		},
		Contributions: ContributionRules{
			PayrollRate:              decimal.NewFromFloat(0.30),
			OwnerExtraRate:           decimal.NewFromFloat(0.01),
			OwnerExtraThreshold:      decimal.NewFromInt(300000),
			DefaultFixedContribution: decimal.NewFromInt(57390),
		},
		USN: USNRules{
			IncomeRate:     decimal.NewFromFloat(0.06),
			ProfitRate:     decimal.NewFromFloat(0.15),
			ProfitMinRate:  decimal.NewFromFloat(0.01),
			ReductionLimit: decimal.NewFromFloat(0.5),
		},
		AUSN: AUSNRules{
			IncomeRate:    decimal.NewFromFloat(0.08),
			ProfitRate:    decimal.NewFromFloat(0.20),
			ProfitMinRate: decimal.NewFromFloat(0.03),
			RevenueLimit:  decimal.NewFromInt(60000000),
			EmployeeLimit: 5,
		},
		VAT: VATRules{
			ReducedRate:  decimal.NewFromInt(5),
			StandardRate: decimal.NewFromInt(22),
		},
		OSNO: OSNORules{
			ProfitTaxRate: decimal.NewFromFloat(0.25),
			NDFLBrackets: []TaxBracket{
				{UpTo: bound(2400000), Rate: decimal.NewFromFloat(0.13)},
				{UpTo: bound(5000000), Rate: decimal.NewFromFloat(0.15)},
				{UpTo: bound(20000000), Rate: decimal.NewFromFloat(0.18)},
				{UpTo: bound(50000000), Rate: decimal.NewFromFloat(0.20)},
				{Rate: decimal.NewFromFloat(0.22)},
			},
		},
		Patent: PatentRules{
			DefaultCost:       decimal.NewFromInt(100000),
			ImpliedIncomeRate: decimal.NewFromFloat(0.06),
			DeductionLimit:    decimal.NewFromFloat(0.5),
			RevenueLimit:      decimal.NewFromInt(60000000),
			EmployeeLimit:     15,
		},
	}
}
