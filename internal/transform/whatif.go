package transform

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/taxregimes/taxregimes/internal/calculation"
	"github.com/taxregimes/taxregimes/internal/domain"
)

// RegimeDelta is one regime before and after the transforms. Deltas are zero unless the
// regime is available in both runs.
type RegimeDelta struct {
	ID              domain.RegimeID `json:"id"`
	Title           string          `json:"title"`
	AvailableBefore bool            `json:"available_before"`
	AvailableAfter  bool            `json:"available_after"`
	NetBefore       decimal.Decimal `json:"net_before"`
	NetAfter        decimal.Decimal `json:"net_after"`
	NetChange       decimal.Decimal `json:"net_change"`
	BurdenBefore    decimal.Decimal `json:"burden_before"`
	BurdenAfter     decimal.Decimal `json:"burden_after"`
	BurdenChange    decimal.Decimal `json:"burden_change"`
}

// Outcome is the result of a what-if run
type Outcome struct {
	Applied    []string                   `json:"applied"`
	Before     *domain.CalculationSummary `json:"-"`
	After      *domain.CalculationSummary `json:"-"`
	Deltas     []RegimeDelta              `json:"deltas"`
	BestBefore domain.RegimeID            `json:"best_before,omitempty"`
	BestAfter  domain.RegimeID            `json:"best_after,omitempty"`
}

// BestChanged reports whether the lowest-burden regime differs after the transforms
func (o *Outcome) BestChanged() bool {
	return o.BestBefore != o.BestAfter
}

// Evaluate runs the engine on base and on base with transforms applied and pairs the results
// regime by regime.
func Evaluate(ctx context.Context, engine *calculation.CalculationEngine, base domain.CalcInput, transforms []InputTransform) (*Outcome, error) {
	changed, err := ApplyTransforms(base, transforms)
	if err != nil {
		return nil, err
	}

	before, err := engine.RunContext(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base input: %w", err)
	}
	after, err := engine.RunContext(ctx, changed)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate transformed input: %w", err)
	}

	out := &Outcome{Before: before, After: after}
	for _, t := range transforms {
		out.Applied = append(out.Applied, t.Description())
	}
	if best, ok := before.Best(); ok {
		out.BestBefore = best.ID
	}
	if best, ok := after.Best(); ok {
		out.BestAfter = best.ID
	}

	for i, b := range before.Results {
		a := after.Results[i]
		d := RegimeDelta{
			ID:              b.ID,
			Title:           b.ID.Title(),
			AvailableBefore: b.Available,
			AvailableAfter:  a.Available,
			NetBefore:       b.NetProfit,
			NetAfter:        a.NetProfit,
			BurdenBefore:    b.TotalBurden,
			BurdenAfter:     a.TotalBurden,
		}
		if b.Available && a.Available {
			d.NetChange = a.NetProfit.Sub(b.NetProfit)
			d.BurdenChange = a.TotalBurden.Sub(b.TotalBurden)
		}
		out.Deltas = append(out.Deltas, d)
	}
	return out, nil
}
