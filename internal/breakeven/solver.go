package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver finds the smallest input that lifts a monotone objective to a target
type Solver struct {
	Options SolverOptions
	Trace   func(Step) // optional; called for every fresh evaluation
}

// NewSolver creates a new break-even solver
func NewSolver(options SolverOptions) *Solver {
	return &Solver{Options: options}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultSolverOptions())
}

type point struct {
	value decimal.Decimal
	ok    bool
}

// MinimumToReach bisects [Lower, Upper] for the smallest x whose objective is within
// Tolerance of req.Target. When the baseline already qualifies Lower is returned without any
// evaluation. An upper bound that is infeasible is halved toward Lower up to MaxShrinkSteps
// times; if no feasible upper bound reaches the target the solution is not attained.
func (s *Solver) MinimumToReach(ctx context.Context, req Request) (Solution, error) {
	opts := s.Options
	if err := opts.Validate(); err != nil {
		return Solution{}, err
	}
	if req.Evaluate == nil {
		return Solution{}, &BreakEvenError{
			Operation: "minimum_to_reach",
			Message:   fmt.Sprintf("no evaluator for %q", req.Label),
		}
	}

	threshold := req.Target.Sub(opts.Tolerance)
	if req.Baseline.GreaterThanOrEqual(threshold) {
		return Solution{
			Value:           opts.Lower,
			Attained:        true,
			ConvergenceInfo: "baseline already meets target",
		}, nil
	}

	cache := make(map[string]point)
	evaluations := 0
	eval := func(phase string, x decimal.Decimal) point {
		key := x.String()
		if p, seen := cache[key]; seen {
			return p
		}
		v, ok := req.Evaluate(x)
		p := point{value: v, ok: ok}
		cache[key] = p
		evaluations++
		if s.Trace != nil {
			s.Trace(Step{Label: req.Label, Phase: phase, X: x, Value: v, Feasible: ok})
		}
		return p
	}

	low := opts.Lower
	high := opts.Upper
	hp := eval("upper", high)
	for shrink := 0; !hp.ok && shrink < opts.MaxShrinkSteps && high.Sub(low).GreaterThan(opts.Precision); shrink++ {
		high = low.Add(high).Div(two)
		hp = eval("shrink", high)
	}
	if !hp.ok || hp.value.LessThan(threshold) {
		return Solution{
			Attained:        false,
			Evaluations:     evaluations,
			ConvergenceInfo: fmt.Sprintf("target not reached up to %s", high.StringFixed(4)),
		}, nil
	}

	iterations := 0
	for iterations < opts.MaxIterations && high.Sub(low).GreaterThan(opts.Precision) {
		select {
		case <-ctx.Done():
			return Solution{}, &BreakEvenError{
				Operation: "minimum_to_reach",
				Message:   fmt.Sprintf("search for %q cancelled", req.Label),
				Cause:     ctx.Err(),
			}
		default:
		}

		iterations++
		mid := low.Add(high).Div(two)
		if p := eval("bisect", mid); p.ok && p.value.GreaterThanOrEqual(threshold) {
			high = mid
		} else {
			low = mid
		}
	}

	return Solution{
		Value:           high,
		Attained:        true,
		Iterations:      iterations,
		Evaluations:     evaluations,
		ConvergenceInfo: fmt.Sprintf("converged to within %s after %d iterations", opts.Precision.String(), iterations),
	}, nil
}
