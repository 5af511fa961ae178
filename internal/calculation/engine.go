package calculation

import (
	"context"
	"sort"

	"github.com/taxregimes/taxregimes/internal/breakeven"
	"github.com/taxregimes/taxregimes/internal/domain"
)

// DefaultTopN is the number of ranked regimes kept in a summary
const DefaultTopN = 5

const unavailableTitle = "Режим недоступен"

// CalculationEngine orchestrates the regime calculations. It holds only the rule set, the
// break-even solver and a logger, so one engine may serve concurrent calls.
type CalculationEngine struct {
	Rules  domain.TaxRules
	Solver *breakeven.Solver
	TopN   int
	Logger Logger
}

// NewCalculationEngine creates an engine with the default 2026 rules
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithRules(domain.DefaultTaxRules())
}

// NewCalculationEngineWithRules creates an engine with a custom rule set
func NewCalculationEngineWithRules(rules domain.TaxRules) *CalculationEngine {
	return &CalculationEngine{
		Rules:  rules,
		Solver: breakeven.NewDefaultSolver(),
		TopN:   DefaultTopN,
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Run calculates every regime for the input. It never fails: ineligible regimes are reported
// as unavailable results.
func (ce *CalculationEngine) Run(in domain.CalcInput) *domain.CalculationSummary {
	summary, err := ce.RunContext(context.Background(), in)
	if err != nil {
		// RunContext fails only on cancellation
		ce.Logger.Errorf("calculation failed: %v", err)
	}
	return summary
}

// RunContext is Run with cancellation of the break-even searches
func (ce *CalculationEngine) RunContext(ctx context.Context, in domain.CalcInput) (*domain.CalculationSummary, error) {
	cc, components := BuildContext(in, ce.Rules)
	ce.Logger.Debugf("context: cogs=%s other=%s payroll=%s insurance=%s common=%s",
		cc.CostOfGoods.StringFixed(2), cc.OtherExpenses.StringFixed(2), cc.AnnualPayroll.StringFixed(2),
		cc.InsuranceStandard.StringFixed(2), cc.TotalExpensesCommon.StringFixed(2))

	ids := domain.RegimeIDs()
	results := make([]domain.Result, 0, len(ids))
	for _, id := range ids {
		r := ce.CalculateRegime(id, in, cc)
		if r.Available {
			ce.Logger.Debugf("regime %s: tax=%s vat=%s insurance=%s burden=%s net=%s", id,
				r.Tax.StringFixed(2), r.VAT.StringFixed(2), r.Insurance.StringFixed(2),
				r.TotalBurden.StringFixed(2), r.NetProfit.StringFixed(2))
		} else {
			ce.Logger.Debugf("regime %s unavailable: %s", id, r.Reason)
		}
		results = append(results, r)
	}

	target, err := ce.applyPatentTargets(ctx, in, cc, results)
	if err != nil {
		return nil, err
	}

	return &domain.CalculationSummary{
		Results:            results,
		Top:                RankResults(results, ce.TopN),
		Components:         components,
		PatentTargetProfit: target,
	}, nil
}

// CalculateRegime runs the calculator for one regime
func (ce *CalculationEngine) CalculateRegime(id domain.RegimeID, in domain.CalcInput, cc domain.CalculationContext) domain.Result {
	switch id {
	case domain.RegimeAUSNIncome:
		return CalculateAUSNIncome(in, cc)
	case domain.RegimeAUSNProfit:
		return CalculateAUSNProfit(in, cc)
	case domain.RegimeUSNIncomeNoVAT, domain.RegimeUSNIncomeVAT5, domain.RegimeUSNIncomeVAT22:
		return CalculateUSNIncome(id, in, cc)
	case domain.RegimeUSNProfitNoVAT, domain.RegimeUSNProfitVAT5, domain.RegimeUSNProfitVAT22:
		return CalculateUSNProfit(id, in, cc)
	case domain.RegimeOSNOCorporate:
		return CalculateOSNOCorporate(in, cc)
	case domain.RegimeOSNOIndividual:
		return CalculateOSNOIndividual(in, cc)
	case domain.RegimePatent:
		return CalculatePatent(in, cc)
	default:
		return domain.NewUnavailableResult(id, unavailableTitle, "неизвестный режим "+string(id))
	}
}

// RankResults orders available results by total burden ascending, then net profit
// descending, and keeps at most n. The input slice is not modified.
func RankResults(results []domain.Result, n int) []domain.Result {
	ranked := make([]domain.Result, 0, len(results))
	for _, r := range results {
		if r.Available {
			ranked = append(ranked, r)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if c := ranked[i].TotalBurden.Cmp(ranked[j].TotalBurden); c != 0 {
			return c < 0
		}
		return ranked[i].NetProfit.GreaterThan(ranked[j].NetProfit)
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
