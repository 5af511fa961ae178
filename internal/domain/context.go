package domain

import (
	"github.com/shopspring/decimal"
)

// CalculationContext holds the derived quantities shared by all regime calculators.
// It is built once per input and never modified afterwards.
type CalculationContext struct {
	Rules TaxRules

	CostOfGoods       decimal.Decimal
	OtherExpenses     decimal.Decimal
	AnnualPayroll     decimal.Decimal
	HasEmployees      bool
	InsuranceStandard decimal.Decimal // contributions on payroll

	TotalExpensesCommon decimal.Decimal // cogs + rent + other + payroll + payroll contributions
	StockExtra          decimal.Decimal
	VATCredit           decimal.Decimal
	ExpensesWithoutSelf decimal.Decimal // common expenses + stock write-off, before owner contributions

	OwnerExtraIncome     decimal.Decimal
	OwnerExtraIncomeBase decimal.Decimal
	OwnerExtraProfit     decimal.Decimal
	OwnerExtraProfitBase decimal.Decimal

	InsuranceTotalIncome decimal.Decimal
	InsuranceTotalProfit decimal.Decimal

	TotalExpensesIncome decimal.Decimal
	TotalExpensesProfit decimal.Decimal
	TotalExpensesAUSN   decimal.Decimal
}

// Components is the explanation record returned alongside the context
type Components struct {
	Revenue              decimal.Decimal `json:"revenue" yaml:"revenue"`
	CostOfGoods          decimal.Decimal `json:"cost_of_goods" yaml:"cost_of_goods"`
	Rent                 decimal.Decimal `json:"rent" yaml:"rent"`
	OtherExpenses        decimal.Decimal `json:"other_expenses" yaml:"other_expenses"`
	AnnualPayroll        decimal.Decimal `json:"annual_payroll" yaml:"annual_payroll"`
	HasEmployees         bool            `json:"has_employees" yaml:"has_employees"`
	InsuranceStandard    decimal.Decimal `json:"insurance_standard" yaml:"insurance_standard"`
	FixedContribution    decimal.Decimal `json:"fixed_contribution" yaml:"fixed_contribution"`
	OwnerExtraIncome     decimal.Decimal `json:"owner_extra_income" yaml:"owner_extra_income"`
	OwnerExtraIncomeBase decimal.Decimal `json:"owner_extra_income_base" yaml:"owner_extra_income_base"`
	OwnerExtraProfit     decimal.Decimal `json:"owner_extra_profit" yaml:"owner_extra_profit"`
	OwnerExtraProfitBase decimal.Decimal `json:"owner_extra_profit_base" yaml:"owner_extra_profit_base"`
	VATPurchasesPercent  decimal.Decimal `json:"vat_purchases_percent" yaml:"vat_purchases_percent"`
	AccumulatedVATCredit decimal.Decimal `json:"accumulated_vat_credit" yaml:"accumulated_vat_credit"`
	StockWriteOffAmount  decimal.Decimal `json:"stock_write_off_amount" yaml:"stock_write_off_amount"`
	StockExtra           decimal.Decimal `json:"stock_extra" yaml:"stock_extra"`
	VATCredit            decimal.Decimal `json:"vat_credit" yaml:"vat_credit"`
	TransitionMode       TransitionMode  `json:"transition_mode" yaml:"transition_mode"`
	PatentCostYear       decimal.Decimal `json:"patent_cost_year" yaml:"patent_cost_year"`
}
