package transform

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/taxregimes/taxregimes/internal/calculation"
	"github.com/taxregimes/taxregimes/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ScaleVolume changes sales volume by Percent. Cost of goods and percent-based other expenses
// follow revenue; rent, payroll and absolute expenses stay put.
type ScaleVolume struct {
	Percent decimal.Decimal
}

func (t *ScaleVolume) Name() string { return "scale_volume" }

func (t *ScaleVolume) Description() string {
	return fmt.Sprintf("Change sales volume by %s%%", t.Percent.StringFixed(1))
}

func (t *ScaleVolume) Validate(base domain.CalcInput) error {
	if t.Percent.LessThanOrEqual(hundred.Neg()) {
		return NewTransformError(t.Name(), "validate", "percent must be greater than -100", nil)
	}
	return nil
}

func (t *ScaleVolume) Apply(base domain.CalcInput) (domain.CalcInput, error) {
	factor := hundred.Add(t.Percent).Div(hundred)
	return base.WithRevenue(base.Revenue.Mul(factor)), nil
}

// RaisePrices changes prices by Percent at constant volume: revenue moves while cost of
// goods, other expenses and payroll keep their current absolute amounts.
type RaisePrices struct {
	Percent decimal.Decimal
	Rules   domain.TaxRules
}

func (t *RaisePrices) Name() string { return "raise_prices" }

func (t *RaisePrices) Description() string {
	return fmt.Sprintf("Change prices by %s%% with costs unchanged", t.Percent.StringFixed(1))
}

func (t *RaisePrices) Validate(base domain.CalcInput) error {
	if t.Percent.LessThanOrEqual(hundred.Neg()) {
		return NewTransformError(t.Name(), "validate", "percent must be greater than -100", nil)
	}
	return nil
}

func (t *RaisePrices) Apply(base domain.CalcInput) (domain.CalcInput, error) {
	cc, _ := calculation.BuildContext(base, t.Rules)
	multiplier := hundred.Add(t.Percent).Div(hundred)
	return base.ScaledForPrice(multiplier, cc.CostOfGoods, cc.OtherExpenses, cc.AnnualPayroll), nil
}

// HireEmployees adds Count employees at the current monthly salary; a negative count lays
// staff off. Only staff payroll mode has a head count to change.
type HireEmployees struct {
	Count int
}

func (t *HireEmployees) Name() string { return "hire" }

func (t *HireEmployees) Description() string {
	if t.Count < 0 {
		return fmt.Sprintf("Lay off %d employees", -t.Count)
	}
	return fmt.Sprintf("Hire %d employees", t.Count)
}

func (t *HireEmployees) Validate(base domain.CalcInput) error {
	if base.PayrollMode != domain.PayrollStaff {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("payroll mode is %s, head count applies to staff mode only", base.PayrollMode), nil)
	}
	if base.Employees+t.Count < 0 {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("cannot lay off %d of %d employees", -t.Count, base.Employees), nil)
	}
	return nil
}

func (t *HireEmployees) Apply(base domain.CalcInput) (domain.CalcInput, error) {
	base.Employees += t.Count
	return base, nil
}

// SetSalary sets the monthly salary per employee
type SetSalary struct {
	Monthly decimal.Decimal
}

func (t *SetSalary) Name() string { return "set_salary" }

func (t *SetSalary) Description() string {
	return fmt.Sprintf("Set monthly salary to %s", t.Monthly.StringFixed(0))
}

func (t *SetSalary) Validate(base domain.CalcInput) error {
	if t.Monthly.IsNegative() {
		return NewTransformError(t.Name(), "validate", "salary cannot be negative", nil)
	}
	return nil
}

func (t *SetSalary) Apply(base domain.CalcInput) (domain.CalcInput, error) {
	base.MonthlySalary = t.Monthly
	return base, nil
}

// AdjustCostPercent moves the cost of goods share by Points percentage points
type AdjustCostPercent struct {
	Points decimal.Decimal
}

func (t *AdjustCostPercent) Name() string { return "adjust_cost" }

func (t *AdjustCostPercent) Description() string {
	return fmt.Sprintf("Change cost of goods by %s pp", t.Points.StringFixed(1))
}

func (t *AdjustCostPercent) Validate(base domain.CalcInput) error {
	if base.CostPercent.Add(t.Points).IsNegative() {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("cost share %s%% cannot drop by %s pp", base.CostPercent.String(), t.Points.Neg().String()), nil)
	}
	return nil
}

func (t *AdjustCostPercent) Apply(base domain.CalcInput) (domain.CalcInput, error) {
	base.CostPercent = base.CostPercent.Add(t.Points)
	return base, nil
}

// SetRent sets annual rent
type SetRent struct {
	Amount decimal.Decimal
}

func (t *SetRent) Name() string { return "set_rent" }

func (t *SetRent) Description() string {
	return fmt.Sprintf("Set annual rent to %s", t.Amount.StringFixed(0))
}

func (t *SetRent) Validate(base domain.CalcInput) error {
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", "rent cannot be negative", nil)
	}
	return nil
}

func (t *SetRent) Apply(base domain.CalcInput) (domain.CalcInput, error) {
	base.Rent = t.Amount
	return base, nil
}

// SetTransition sets the carry-over from the previous regime. Amount is the accumulated VAT
// credit or the stock write-off depending on Mode and is ignored for TransitionNone.
type SetTransition struct {
	Mode   domain.TransitionMode
	Amount decimal.Decimal
}

func (t *SetTransition) Name() string { return "set_transition" }

func (t *SetTransition) Description() string {
	if t.Mode == domain.TransitionNone {
		return "Drop the transition carry-over"
	}
	return fmt.Sprintf("Transition %s of %s", t.Mode, t.Amount.StringFixed(0))
}

func (t *SetTransition) Validate(base domain.CalcInput) error {
	switch t.Mode {
	case domain.TransitionNone, domain.TransitionVATCredit, domain.TransitionStockWriteOff:
	default:
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown transition mode %q", t.Mode), nil)
	}
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", "amount cannot be negative", nil)
	}
	return nil
}

func (t *SetTransition) Apply(base domain.CalcInput) (domain.CalcInput, error) {
	base.TransitionMode = t.Mode
	switch t.Mode {
	case domain.TransitionVATCredit:
		base.AccumulatedVATCredit = t.Amount
	case domain.TransitionStockWriteOff:
		base.StockWriteOffAmount = t.Amount
	}
	return base, nil
}

// SetPatentCost sets the annual patent price
type SetPatentCost struct {
	Amount decimal.Decimal
}

func (t *SetPatentCost) Name() string { return "set_patent_cost" }

func (t *SetPatentCost) Description() string {
	return fmt.Sprintf("Set patent cost to %s", t.Amount.StringFixed(0))
}

func (t *SetPatentCost) Validate(base domain.CalcInput) error {
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", "patent cost cannot be negative", nil)
	}
	return nil
}

func (t *SetPatentCost) Apply(base domain.CalcInput) (domain.CalcInput, error) {
	base.PatentCostYear = t.Amount
	return base, nil
}
