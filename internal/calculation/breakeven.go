package calculation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/taxregimes/taxregimes/internal/breakeven"
	"github.com/taxregimes/taxregimes/internal/domain"
)

// PriceMultiplier finds the smallest revenue multiplier at which regime id reaches target net
// profit. Cost of goods, other expenses and payroll stay at their base amounts, so the
// multiplier is a pure price increase.
func (ce *CalculationEngine) PriceMultiplier(ctx context.Context, id domain.RegimeID, in domain.CalcInput, cc domain.CalculationContext, target, baseline decimal.Decimal) (breakeven.Solution, error) {
	evaluate := func(m decimal.Decimal) (decimal.Decimal, bool) {
		scaled := in.ScaledForPrice(m, cc.CostOfGoods, cc.OtherExpenses, cc.AnnualPayroll)
		scaledCtx, _ := BuildContext(scaled, ce.Rules)
		r := ce.CalculateRegime(id, scaled, scaledCtx)
		if !r.Available {
			return decimal.Zero, false
		}
		return r.NetProfit, true
	}

	return ce.Solver.MinimumToReach(ctx, breakeven.Request{
		Label:    string(id),
		Target:   target,
		Baseline: baseline,
		Evaluate: evaluate,
	})
}

// applyPatentTargets attaches the price uplift to every available result using the patent
// net profit as the target. Nothing is attached when the patent is unavailable.
func (ce *CalculationEngine) applyPatentTargets(ctx context.Context, in domain.CalcInput, cc domain.CalculationContext, results []domain.Result) (*decimal.Decimal, error) {
	patentIdx := -1
	for i, r := range results {
		if r.ID == domain.RegimePatent && r.Available {
			patentIdx = i
			break
		}
	}
	if patentIdx < 0 {
		ce.Logger.Debugf("patent unavailable, skipping break-even search")
		return nil, nil
	}

	target := results[patentIdx].NetProfit
	results[patentIdx].Uplift = upliftMetrics(in.Revenue, cc.CostOfGoods, target, breakeven.Solution{
		Value:    decimal.NewFromInt(1),
		Attained: true,
	})

	for i := range results {
		r := &results[i]
		if !r.Available || r.ID == domain.RegimePatent {
			continue
		}
		sol, err := ce.PriceMultiplier(ctx, r.ID, in, cc, target, r.NetProfit)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("break-even search for %s: %w", r.ID, err)
			}
			ce.Logger.Warnf("break-even search for %s skipped: %v", r.ID, err)
			continue
		}
		ce.Logger.Debugf("break-even %s: attained=%t multiplier=%s iterations=%d", r.ID, sol.Attained, sol.Value.StringFixed(4), sol.Iterations)
		r.Uplift = upliftMetrics(in.Revenue, cc.CostOfGoods, target, sol)
	}
	return &target, nil
}

func upliftMetrics(revenue, cogs, target decimal.Decimal, sol breakeven.Solution) *domain.PriceUplift {
	u := &domain.PriceUplift{
		TargetProfit: target,
		Unattainable: !sol.Attained,
		Iterations:   sol.Iterations,
	}
	if !sol.Attained {
		return u
	}

	m := sol.Value
	uplift := m.Sub(decimal.NewFromInt(1)).Mul(hundred)
	u.Multiplier = &m
	u.UpliftPercent = &uplift

	if !revenue.IsPositive() {
		return u
	}
	newRevenue := revenue.Mul(m)
	current := revenue.Sub(cogs).Div(revenue).Mul(hundred)
	needed := newRevenue.Sub(cogs).Div(newRevenue).Mul(hundred)
	delta := needed.Sub(current)
	u.GrossMarginCurrentPercent = &current
	u.GrossMarginNeededPercent = &needed
	u.GrossMarginDeltaPP = &delta

	if cogs.IsPositive() {
		shareNow := cogs.Div(revenue).Mul(hundred)
		shareAfter := shareNow.Div(m)
		u.COGSShareCurrentPercent = &shareNow
		u.COGSShareAfterPercent = &shareAfter
	}
	return u
}
