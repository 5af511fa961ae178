package domain

import (
	"github.com/shopspring/decimal"
)

// Result is the outcome of one regime for one input. Every figure is annual.
// TotalBurden always equals Tax + VAT + Insurance.
type Result struct {
	ID            RegimeID        `json:"id" yaml:"id"`
	Kind          RegimeKind      `json:"kind" yaml:"kind"`
	Title         string          `json:"title" yaml:"title"`
	Available     bool            `json:"available" yaml:"available"`
	Reason        string          `json:"reason,omitempty" yaml:"reason,omitempty"`
	Revenue       decimal.Decimal `json:"revenue" yaml:"revenue"`
	Expenses      decimal.Decimal `json:"expenses" yaml:"expenses"`
	Tax           decimal.Decimal `json:"tax" yaml:"tax"`
	VAT           decimal.Decimal `json:"vat" yaml:"vat"`
	Insurance     decimal.Decimal `json:"insurance" yaml:"insurance"`
	TotalBurden   decimal.Decimal `json:"total_burden" yaml:"total_burden"`
	BurdenPercent decimal.Decimal `json:"burden_percent" yaml:"burden_percent"`
	NetProfit     decimal.Decimal `json:"net_profit" yaml:"net_profit"`
	Details       RegimeDetails   `json:"details,omitempty" yaml:"details,omitempty"`
	Uplift        *PriceUplift    `json:"price_uplift,omitempty" yaml:"price_uplift,omitempty"`
}

// NewUnavailableResult builds the placeholder for a regime the input is not eligible for
func NewUnavailableResult(id RegimeID, title, reason string) Result {
	info, _ := LookupRegime(id)
	return Result{
		ID:        id,
		Kind:      info.Kind,
		Title:     title,
		Available: false,
		Reason:    reason,
	}
}

// RegimeDetails is the regime-family specific part of a Result.
// The set of implementations is closed; switch on the concrete type.
type RegimeDetails interface {
	Family() RegimeKind
	sealed()
}

// VATBreakdown describes VAT for a VAT-applicable variant. Rates are in percent units.
type VATBreakdown struct {
	Rate        decimal.Decimal `json:"rate" yaml:"rate"`
	Charged     decimal.Decimal `json:"charged" yaml:"charged"`
	Deductible  decimal.Decimal `json:"deductible" yaml:"deductible"`
	ExtraCredit decimal.Decimal `json:"extra_credit" yaml:"extra_credit"`
	Payable     decimal.Decimal `json:"payable" yaml:"payable"`
}

// AUSNObject is the taxation object under AUSN
type AUSNObject string

const (
	AUSNObjectIncome AUSNObject = "income"
	AUSNObjectProfit AUSNObject = "profit"
)

// MonthlyTax is one month of the informational AUSN profit schedule
type MonthlyTax struct {
	Month    int             `json:"month" yaml:"month"`
	Revenue  decimal.Decimal `json:"revenue" yaml:"revenue"`
	Expenses decimal.Decimal `json:"expenses" yaml:"expenses"`
	Tax      decimal.Decimal `json:"tax" yaml:"tax"`
}

// AUSNDetails covers both AUSN variants
type AUSNDetails struct {
	Object            AUSNObject      `json:"object" yaml:"object"`
	TaxBase           decimal.Decimal `json:"tax_base" yaml:"tax_base"`
	RegularTax        decimal.Decimal `json:"regular_tax" yaml:"regular_tax"`
	MinimumTax        decimal.Decimal `json:"minimum_tax" yaml:"minimum_tax"`
	FixedContribution decimal.Decimal `json:"fixed_contribution" yaml:"fixed_contribution"`
	MonthlySchedule   []MonthlyTax    `json:"monthly_schedule,omitempty" yaml:"monthly_schedule,omitempty"`
	MonthlyTaxTotal   decimal.Decimal `json:"monthly_tax_total" yaml:"monthly_tax_total"`
}

// USNIncomeDetails covers the 6% simplified regime variants
type USNIncomeDetails struct {
	TaxInitial                 decimal.Decimal `json:"tax_initial" yaml:"tax_initial"`
	ReductionBase              decimal.Decimal `json:"reduction_base" yaml:"reduction_base"`
	ReductionLimit             decimal.Decimal `json:"reduction_limit" yaml:"reduction_limit"`
	Reduction                  decimal.Decimal `json:"reduction" yaml:"reduction"`
	FixedContribution          decimal.Decimal `json:"fixed_contribution" yaml:"fixed_contribution"`
	FixedContributionReduction decimal.Decimal `json:"fixed_contribution_reduction" yaml:"fixed_contribution_reduction"`
	OwnerExtra                 decimal.Decimal `json:"owner_extra" yaml:"owner_extra"`
	OwnerExtraBase             decimal.Decimal `json:"owner_extra_base" yaml:"owner_extra_base"`
	VAT                        *VATBreakdown   `json:"vat,omitempty" yaml:"vat,omitempty"`
}

// USNProfitDetails covers the 15% simplified regime variants
type USNProfitDetails struct {
	TaxBase           decimal.Decimal `json:"tax_base" yaml:"tax_base"`
	RegularTax        decimal.Decimal `json:"regular_tax" yaml:"regular_tax"`
	MinimumTax        decimal.Decimal `json:"minimum_tax" yaml:"minimum_tax"`
	MinimumApplied    bool            `json:"minimum_applied" yaml:"minimum_applied"`
	FixedContribution decimal.Decimal `json:"fixed_contribution" yaml:"fixed_contribution"`
	OwnerExtra        decimal.Decimal `json:"owner_extra" yaml:"owner_extra"`
	OwnerExtraBase    decimal.Decimal `json:"owner_extra_base" yaml:"owner_extra_base"`
	StockWriteOff     decimal.Decimal `json:"stock_write_off" yaml:"stock_write_off"`
	VAT               *VATBreakdown   `json:"vat,omitempty" yaml:"vat,omitempty"`
}

// OSNOCorporateDetails covers the company general regime
type OSNOCorporateDetails struct {
	ProfitTaxBase     decimal.Decimal `json:"profit_tax_base" yaml:"profit_tax_base"`
	FixedContribution decimal.Decimal `json:"fixed_contribution" yaml:"fixed_contribution"`
	OwnerExtra        decimal.Decimal `json:"owner_extra" yaml:"owner_extra"`
	OwnerExtraBase    decimal.Decimal `json:"owner_extra_base" yaml:"owner_extra_base"`
	StockWriteOff     decimal.Decimal `json:"stock_write_off" yaml:"stock_write_off"`
	VAT               VATBreakdown    `json:"vat" yaml:"vat"`
}

// OSNOIndividualDetails covers the sole proprietor general regime
type OSNOIndividualDetails struct {
	IncomeWithoutVAT   decimal.Decimal `json:"income_without_vat" yaml:"income_without_vat"`
	ExpensesWithoutVAT decimal.Decimal `json:"expenses_without_vat" yaml:"expenses_without_vat"`
	OwnerExtraBase     decimal.Decimal `json:"owner_extra_base" yaml:"owner_extra_base"`
	OwnerExtra         decimal.Decimal `json:"owner_extra" yaml:"owner_extra"`
	NDFLBase           decimal.Decimal `json:"ndfl_base" yaml:"ndfl_base"`
	NDFL               decimal.Decimal `json:"ndfl" yaml:"ndfl"`
	FixedContribution  decimal.Decimal `json:"fixed_contribution" yaml:"fixed_contribution"`
	StockWriteOff      decimal.Decimal `json:"stock_write_off" yaml:"stock_write_off"`
	VAT                VATBreakdown    `json:"vat" yaml:"vat"`
}

// PatentDetails covers the patent regime
type PatentDetails struct {
	PatentCost              decimal.Decimal `json:"patent_cost" yaml:"patent_cost"`
	PotentialIncome         decimal.Decimal `json:"potential_income" yaml:"potential_income"`
	PotentialIncomeDerived  bool            `json:"potential_income_derived" yaml:"potential_income_derived"` // derived from patent cost, not entered
	OwnerExtra              decimal.Decimal `json:"owner_extra" yaml:"owner_extra"`
	FixedContribution       decimal.Decimal `json:"fixed_contribution" yaml:"fixed_contribution"`
	OwnerContributions      decimal.Decimal `json:"owner_contributions" yaml:"owner_contributions"`
	WorkerContributions     decimal.Decimal `json:"worker_contributions" yaml:"worker_contributions"`
	TaxBeforeDeduction      decimal.Decimal `json:"tax_before_deduction" yaml:"tax_before_deduction"`
	DeductionLimit          decimal.Decimal `json:"deduction_limit" yaml:"deduction_limit"`
	DeductionLimitedByStaff bool            `json:"deduction_limited_by_staff" yaml:"deduction_limited_by_staff"`
	Deduction               decimal.Decimal `json:"deduction" yaml:"deduction"`
	NetProfitAccounting     decimal.Decimal `json:"net_profit_accounting" yaml:"net_profit_accounting"`
}

func (AUSNDetails) Family() RegimeKind { return KindAUSN }
func (AUSNDetails) sealed()            {}

func (USNIncomeDetails) Family() RegimeKind { return KindUSNIncome }
func (USNIncomeDetails) sealed()            {}

func (USNProfitDetails) Family() RegimeKind { return KindUSNProfit }
func (USNProfitDetails) sealed()            {}

func (OSNOCorporateDetails) Family() RegimeKind { return KindOSNOCorporate }
func (OSNOCorporateDetails) sealed()            {}

func (OSNOIndividualDetails) Family() RegimeKind { return KindOSNOIndividual }
func (OSNOIndividualDetails) sealed()            {}

func (PatentDetails) Family() RegimeKind { return KindPatent }
func (PatentDetails) sealed()            {}

// PriceUplift reports how much prices must rise for a regime to match the patent net profit.
// Optional figures are nil when they do not apply.
type PriceUplift struct {
	TargetProfit              decimal.Decimal  `json:"target_profit" yaml:"target_profit"`
	Unattainable              bool             `json:"unattainable" yaml:"unattainable"`
	Multiplier                *decimal.Decimal `json:"multiplier,omitempty" yaml:"multiplier,omitempty"`
	UpliftPercent             *decimal.Decimal `json:"uplift_percent,omitempty" yaml:"uplift_percent,omitempty"`
	GrossMarginCurrentPercent *decimal.Decimal `json:"gross_margin_current_percent,omitempty" yaml:"gross_margin_current_percent,omitempty"`
	GrossMarginNeededPercent  *decimal.Decimal `json:"gross_margin_needed_percent,omitempty" yaml:"gross_margin_needed_percent,omitempty"`
	GrossMarginDeltaPP        *decimal.Decimal `json:"gross_margin_delta_pp,omitempty" yaml:"gross_margin_delta_pp,omitempty"`
	COGSShareCurrentPercent   *decimal.Decimal `json:"cogs_share_current_percent,omitempty" yaml:"cogs_share_current_percent,omitempty"`
	COGSShareAfterPercent     *decimal.Decimal `json:"cogs_share_after_percent,omitempty" yaml:"cogs_share_after_percent,omitempty"`
	Iterations                int              `json:"iterations" yaml:"iterations"`
}

// CalculationSummary is the full report for one input
type CalculationSummary struct {
	Results            []Result         `json:"results" yaml:"results"`
	Top                []Result         `json:"top" yaml:"top"`
	Components         Components       `json:"components" yaml:"components"`
	PatentTargetProfit *decimal.Decimal `json:"patent_target_profit,omitempty" yaml:"patent_target_profit,omitempty"`
}

// Result returns the result for id
func (s *CalculationSummary) Result(id RegimeID) (Result, bool) {
	for _, r := range s.Results {
		if r.ID == id {
			return r, true
		}
	}
	return Result{}, false
}

// Available returns the available results in report order
func (s *CalculationSummary) Available() []Result {
	out := make([]Result, 0, len(s.Results))
	for _, r := range s.Results {
		if r.Available {
			out = append(out, r)
		}
	}
	return out
}

// Best returns the first ranked result
func (s *CalculationSummary) Best() (Result, bool) {
	if len(s.Top) == 0 {
		return Result{}, false
	}
	return s.Top[0], true
}
