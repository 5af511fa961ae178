package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/taxregimes/taxregimes/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrInvalidInput is wrapped by every validation failure
var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// RawInput is the input file as written by the user. Optional fields are pointers so that
// an omitted field can be told apart from an explicit zero.
type RawInput struct {
	Revenue             *decimal.Decimal `yaml:"revenue" json:"revenue"`
	CostPercent         *decimal.Decimal `yaml:"cost_percent" json:"cost_percent"`
	VATPurchasesPercent *decimal.Decimal `yaml:"vat_purchases_percent" json:"vat_purchases_percent"`
	Rent                *decimal.Decimal `yaml:"rent" json:"rent"`
	FixedContribution   *decimal.Decimal `yaml:"fixed_contribution" json:"fixed_contribution"`

	Employees     *int             `yaml:"employees" json:"employees"`
	MonthlySalary *decimal.Decimal `yaml:"monthly_salary" json:"monthly_salary"`
	PayrollMode   string           `yaml:"payroll_mode" json:"payroll_mode"`
	PayrollAnnual *decimal.Decimal `yaml:"payroll_annual" json:"payroll_annual"`

	OtherExpensesMode    string           `yaml:"other_expenses_mode" json:"other_expenses_mode"`
	OtherExpensesPercent *decimal.Decimal `yaml:"other_expenses_percent" json:"other_expenses_percent"`
	OtherExpensesAmount  *decimal.Decimal `yaml:"other_expenses_amount" json:"other_expenses_amount"`

	TransitionMode       string           `yaml:"transition_mode" json:"transition_mode"`
	AccumulatedVATCredit *decimal.Decimal `yaml:"accumulated_vat_credit" json:"accumulated_vat_credit"`
	StockWriteOffAmount  *decimal.Decimal `yaml:"stock_write_off_amount" json:"stock_write_off_amount"`

	PurchaseMonthWeights []decimal.Decimal `yaml:"purchase_month_weights" json:"purchase_month_weights"`

	PatentCostYear   *decimal.Decimal `yaml:"patent_cost_year" json:"patent_cost_year"`
	PatentIncomeBase *decimal.Decimal `yaml:"patent_income_base" json:"patent_income_base"`

	CurrentRegime string `yaml:"current_regime" json:"current_regime"`
}

// InputParser handles parsing of input files into a normalized CalcInput
type InputParser struct {
	Rules domain.TaxRules // supplies the defaults for the fixed contribution and patent cost
}

// NewInputParser creates a new input parser with the default rules
func NewInputParser() *InputParser {
	return NewInputParserWithRules(domain.DefaultTaxRules())
}

// NewInputParserWithRules creates an input parser whose defaults come from rules
func NewInputParserWithRules(rules domain.TaxRules) *InputParser {
	return &InputParser{Rules: rules}
}

// LoadFromFile loads an input from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (domain.CalcInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.CalcInput{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	in, err := ip.ParseInput(data)
	if err != nil {
		return domain.CalcInput{}, fmt.Errorf("%s: %w", filename, err)
	}
	return in, nil
}

// ParseInput parses YAML (or JSON, which YAML accepts) and normalizes it
func (ip *InputParser) ParseInput(data []byte) (domain.CalcInput, error) {
	var raw RawInput
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.CalcInput{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return ip.Normalize(raw)
}

// ParseJSON parses a JSON document strictly: unknown keys are rejected
func (ip *InputParser) ParseJSON(data []byte) (domain.CalcInput, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var raw RawInput
	if err := dec.Decode(&raw); err != nil {
		return domain.CalcInput{}, fmt.Errorf("%w: failed to parse JSON: %v", ErrInvalidInput, err)
	}
	return ip.Normalize(raw)
}

// Normalize applies defaults to the raw input and validates the result
func (ip *InputParser) Normalize(raw RawInput) (domain.CalcInput, error) {
	in := domain.CalcInput{
		Revenue:              valueOr(raw.Revenue, decimal.Zero),
		CostPercent:          valueOr(raw.CostPercent, decimal.Zero),
		VATPurchasesPercent:  valueOr(raw.VATPurchasesPercent, decimal.Zero),
		Rent:                 valueOr(raw.Rent, decimal.Zero),
		FixedContribution:    valueOr(raw.FixedContribution, ip.Rules.Contributions.DefaultFixedContribution),
		MonthlySalary:        valueOr(raw.MonthlySalary, decimal.Zero),
		PayrollAnnual:        valueOr(raw.PayrollAnnual, decimal.Zero),
		OtherExpensesPercent: valueOr(raw.OtherExpensesPercent, decimal.Zero),
		OtherExpensesAmount:  valueOr(raw.OtherExpensesAmount, decimal.Zero),
		AccumulatedVATCredit: valueOr(raw.AccumulatedVATCredit, decimal.Zero),
		StockWriteOffAmount:  valueOr(raw.StockWriteOffAmount, decimal.Zero),
		PatentCostYear:       valueOr(raw.PatentCostYear, ip.Rules.Patent.DefaultCost),
		PatentIncomeBase:     valueOr(raw.PatentIncomeBase, decimal.Zero),
	}
	if raw.Employees != nil {
		in.Employees = *raw.Employees
	}

	var err error
	if in.PayrollMode, err = ParsePayrollMode(raw.PayrollMode); err != nil {
		return domain.CalcInput{}, err
	}
	if in.OtherExpensesMode, err = ParseOtherExpensesMode(raw.OtherExpensesMode); err != nil {
		return domain.CalcInput{}, err
	}
	if in.TransitionMode, err = ParseTransitionMode(raw.TransitionMode); err != nil {
		return domain.CalcInput{}, err
	}
	if in.PurchaseMonthWeights, err = purchaseWeights(raw.PurchaseMonthWeights); err != nil {
		return domain.CalcInput{}, err
	}
	if raw.CurrentRegime != "" {
		id, err := domain.ParseRegimeID(strings.TrimSpace(raw.CurrentRegime))
		if err != nil {
			return domain.CalcInput{}, fmt.Errorf("%w: current_regime: %v", ErrInvalidInput, err)
		}
		in.CurrentRegime = id
	}

	if err := ValidateInput(in); err != nil {
		return domain.CalcInput{}, err
	}
	return in, nil
}

// ValidateInput rejects negative amounts, zero revenue and unknown modes
func ValidateInput(in domain.CalcInput) error {
	if !in.Revenue.IsPositive() {
		if in.Revenue.IsNegative() {
			return invalid("revenue cannot be negative")
		}
		return invalid("revenue must be greater than zero")
	}

	amounts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"cost_percent", in.CostPercent},
		{"vat_purchases_percent", in.VATPurchasesPercent},
		{"rent", in.Rent},
		{"fixed_contribution", in.FixedContribution},
		{"monthly_salary", in.MonthlySalary},
		{"payroll_annual", in.PayrollAnnual},
		{"other_expenses_percent", in.OtherExpensesPercent},
		{"other_expenses_amount", in.OtherExpensesAmount},
		{"accumulated_vat_credit", in.AccumulatedVATCredit},
		{"stock_write_off_amount", in.StockWriteOffAmount},
		{"patent_cost_year", in.PatentCostYear},
		{"patent_income_base", in.PatentIncomeBase},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return invalid("%s cannot be negative", a.name)
		}
	}
	if in.VATPurchasesPercent.GreaterThan(decimal.NewFromInt(100)) {
		return invalid("vat_purchases_percent cannot exceed 100")
	}
	if in.Employees < 0 {
		return invalid("employees cannot be negative")
	}
	for i, w := range in.PurchaseMonthWeights {
		if w.IsNegative() {
			return invalid("purchase_month_weights[%d] cannot be negative", i)
		}
	}

	switch in.PayrollMode {
	case domain.PayrollStaff, domain.PayrollAnnual:
	default:
		return invalid("unknown payroll_mode %q", in.PayrollMode)
	}
	switch in.OtherExpensesMode {
	case domain.OtherExpensesPercent, domain.OtherExpensesAbsolute:
	default:
		return invalid("unknown other_expenses_mode %q", in.OtherExpensesMode)
	}
	switch in.TransitionMode {
	case domain.TransitionNone, domain.TransitionVATCredit, domain.TransitionStockWriteOff:
	default:
		return invalid("unknown transition_mode %q", in.TransitionMode)
	}
	if in.CurrentRegime != "" {
		if _, ok := domain.LookupRegime(in.CurrentRegime); !ok {
			return invalid("unknown current_regime %q", in.CurrentRegime)
		}
	}
	return nil
}

// ParsePayrollMode parses a payroll mode; empty means staff
func ParsePayrollMode(s string) (domain.PayrollMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "staff":
		return domain.PayrollStaff, nil
	case "annual":
		return domain.PayrollAnnual, nil
	default:
		return "", invalid("unknown payroll_mode %q (want staff or annual)", s)
	}
}

// ParseOtherExpensesMode parses an other-expenses mode; empty means percent
func ParseOtherExpensesMode(s string) (domain.OtherExpensesMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "percent":
		return domain.OtherExpensesPercent, nil
	case "absolute", "amount":
		return domain.OtherExpensesAbsolute, nil
	default:
		return "", invalid("unknown other_expenses_mode %q (want percent or absolute)", s)
	}
}

// ParseTransitionMode parses a transition mode, accepting the short aliases vat and stock
func ParseTransitionMode(s string) (domain.TransitionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return domain.TransitionNone, nil
	case "vat", "vat-credit", "vat_credit":
		return domain.TransitionVATCredit, nil
	case "stock", "stock-writeoff", "stock_writeoff", "stock-write-off":
		return domain.TransitionStockWriteOff, nil
	default:
		return "", invalid("unknown transition_mode %q (want none, vat-credit or stock-writeoff)", s)
	}
}

// purchaseWeights pads the weights to twelve months with the normal-month weight of 100;
// no weights at all means uniform
func purchaseWeights(raw []decimal.Decimal) ([domain.MonthsPerYear]decimal.Decimal, error) {
	w := domain.UniformPurchaseWeights()
	if len(raw) > domain.MonthsPerYear {
		return w, invalid("purchase_month_weights has %d entries, at most %d allowed", len(raw), domain.MonthsPerYear)
	}
	copy(w[:], raw)
	return w, nil
}

func valueOr(p *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if p == nil {
		return def
	}
	return *p
}
