package domain

import (
	"github.com/shopspring/decimal"
)

// PayrollMode selects how annual payroll is derived
type PayrollMode string

const (
	PayrollStaff  PayrollMode = "staff"  // employees × monthly salary × 12
	PayrollAnnual PayrollMode = "annual" // annual amount entered directly
)

// OtherExpensesMode selects how other expenses are derived
type OtherExpensesMode string

const (
	OtherExpensesPercent  OtherExpensesMode = "percent"
	OtherExpensesAbsolute OtherExpensesMode = "absolute"
)

// TransitionMode describes what carries over from a previous regime
type TransitionMode string

const (
	TransitionNone          TransitionMode = "none"
	TransitionVATCredit     TransitionMode = "vat-credit"
	TransitionStockWriteOff TransitionMode = "stock-writeoff"
)

// MonthsPerYear is the length of the purchase weighting schedule
const MonthsPerYear = 12

// CalcInput is the normalized annual business profile. It is a plain value: copies are
// independent and the helpers below return modified copies.
type CalcInput struct {
	Revenue             decimal.Decimal `yaml:"revenue" json:"revenue"`
	CostPercent         decimal.Decimal `yaml:"cost_percent" json:"cost_percent"`
	VATPurchasesPercent decimal.Decimal `yaml:"vat_purchases_percent" json:"vat_purchases_percent"`
	Rent                decimal.Decimal `yaml:"rent" json:"rent"`
	FixedContribution   decimal.Decimal `yaml:"fixed_contribution" json:"fixed_contribution"`

	Employees     int             `yaml:"employees" json:"employees"`
	MonthlySalary decimal.Decimal `yaml:"monthly_salary" json:"monthly_salary"`
	PayrollMode   PayrollMode     `yaml:"payroll_mode" json:"payroll_mode"`
	PayrollAnnual decimal.Decimal `yaml:"payroll_annual" json:"payroll_annual"`

	OtherExpensesMode    OtherExpensesMode `yaml:"other_expenses_mode" json:"other_expenses_mode"`
	OtherExpensesPercent decimal.Decimal   `yaml:"other_expenses_percent" json:"other_expenses_percent"`
	OtherExpensesAmount  decimal.Decimal   `yaml:"other_expenses_amount" json:"other_expenses_amount"`

	TransitionMode       TransitionMode  `yaml:"transition_mode" json:"transition_mode"`
	AccumulatedVATCredit decimal.Decimal `yaml:"accumulated_vat_credit" json:"accumulated_vat_credit"`
	StockWriteOffAmount  decimal.Decimal `yaml:"stock_write_off_amount" json:"stock_write_off_amount"`

	PurchaseMonthWeights [MonthsPerYear]decimal.Decimal `yaml:"purchase_month_weights" json:"purchase_month_weights"`

	PatentCostYear   decimal.Decimal `yaml:"patent_cost_year" json:"patent_cost_year"`
	PatentIncomeBase decimal.Decimal `yaml:"patent_income_base" json:"patent_income_base"` // zero means derive from patent cost

	CurrentRegime RegimeID `yaml:"current_regime,omitempty" json:"current_regime,omitempty"`
}

// UniformPurchaseWeights returns twelve equal weights of 100
func UniformPurchaseWeights() [MonthsPerYear]decimal.Decimal {
	var w [MonthsPerYear]decimal.Decimal
	for i := range w {
		w[i] = decimal.NewFromInt(100)
	}
	return w
}

// WithRevenue returns a copy with revenue replaced
func (in CalcInput) WithRevenue(revenue decimal.Decimal) CalcInput {
	in.Revenue = revenue
	return in
}

// ScaledForPrice returns a copy whose revenue is multiplied by multiplier while cost of goods,
// other expenses and payroll stay at the given absolute amounts.
func (in CalcInput) ScaledForPrice(multiplier, costOfGoods, otherExpenses, payroll decimal.Decimal) CalcInput {
	in.Revenue = in.Revenue.Mul(multiplier)
	if in.Revenue.IsPositive() {
		in.CostPercent = costOfGoods.Div(in.Revenue).Mul(decimal.NewFromInt(100))
	} else {
		in.CostPercent = decimal.Zero
	}
	in.OtherExpensesMode = OtherExpensesAbsolute
	in.OtherExpensesAmount = otherExpenses
	in.PayrollMode = PayrollAnnual
	in.PayrollAnnual = payroll
	return in
}
