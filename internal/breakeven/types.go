package breakeven

import (
	"github.com/shopspring/decimal"
)

// Evaluator returns the objective at x. ok is false when x is infeasible, for example when
// the scaled input no longer qualifies for the regime.
type Evaluator func(x decimal.Decimal) (value decimal.Decimal, ok bool)

// Request describes one search for the smallest x in [Lower, Upper] whose objective reaches
// Target. The objective is assumed non-decreasing in x.
type Request struct {
	Label    string          // used in trace output and errors
	Target   decimal.Decimal // objective value to reach
	Baseline decimal.Decimal // objective at Lower, already known to the caller
	Evaluate Evaluator
}

// Solution is the outcome of a search
type Solution struct {
	Value           decimal.Decimal `json:"value"`
	Attained        bool            `json:"attained"`
	Iterations      int             `json:"iterations"`
	Evaluations     int             `json:"evaluations"`
	ConvergenceInfo string          `json:"convergence_info"`
}

// Step is reported to Solver.Trace for every evaluation
type Step struct {
	Label    string
	Phase    string // "upper", "shrink" or "bisect"
	X        decimal.Decimal
	Value    decimal.Decimal
	Feasible bool
}

// SolverOptions configures the bisection
type SolverOptions struct {
	Lower          decimal.Decimal // search lower bound; the baseline point
	Upper          decimal.Decimal // initial upper bound
	Tolerance      decimal.Decimal // objective may fall short of target by this much
	Precision      decimal.Decimal // stop once Upper-Lower is within this width
	MaxIterations  int             // bisection iterations
	MaxShrinkSteps int             // halvings of an infeasible upper bound
}

// DefaultSolverOptions returns the options used for price multipliers: [1, 3], one ruble of
// tolerance and a 1e-4 bracket.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Lower:          decimal.NewFromInt(1),
		Upper:          decimal.NewFromInt(3),
		Tolerance:      decimal.NewFromInt(1),
		Precision:      decimal.New(1, -4),
		MaxIterations:  60,
		MaxShrinkSteps: 20,
	}
}

// Validate checks the options are internally consistent
func (o SolverOptions) Validate() error {
	if !o.Upper.GreaterThan(o.Lower) {
		return &BreakEvenError{
			Operation: "validate_options",
			Message:   "upper bound must be greater than lower bound",
		}
	}
	if o.Tolerance.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_options",
			Message:   "tolerance cannot be negative",
		}
	}
	if !o.Precision.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_options",
			Message:   "precision must be positive",
		}
	}
	if o.MaxIterations <= 0 {
		return &BreakEvenError{
			Operation: "validate_options",
			Message:   "max iterations must be positive",
		}
	}
	if o.MaxShrinkSteps < 0 {
		return &BreakEvenError{
			Operation: "validate_options",
			Message:   "max shrink steps cannot be negative",
		}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
