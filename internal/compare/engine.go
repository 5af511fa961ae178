package compare

import (
	"context"
	"errors"
	"fmt"

	"github.com/taxregimes/taxregimes/internal/calculation"
	"github.com/taxregimes/taxregimes/internal/domain"
)

// ErrNoBaseRegime is returned when neither the options nor the input name a base regime
var ErrNoBaseRegime = errors.New("no base regime: set current_regime or pass a base")

// CompareEngine orchestrates regime comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseRegime         domain.RegimeID // overrides CalcInput.CurrentRegime when set
	IncludeUnavailable bool            // keep ineligible regimes in the alternatives
}

// Compare runs the calculation and compares every regime against the base regime
func (ce *CompareEngine) Compare(ctx context.Context, in domain.CalcInput, options CompareOptions) (*ComparisonSet, error) {
	if options.BaseRegime == "" {
		options.BaseRegime = in.CurrentRegime
	}
	if options.BaseRegime == "" {
		return nil, ErrNoBaseRegime
	}

	summary, err := ce.CalcEngine.RunContext(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate regimes: %w", err)
	}
	return ce.CompareSummary(summary, options)
}

// CompareSummary compares the results of an existing summary against options.BaseRegime
func (ce *CompareEngine) CompareSummary(summary *domain.CalculationSummary, options CompareOptions) (*ComparisonSet, error) {
	if options.BaseRegime == "" {
		return nil, ErrNoBaseRegime
	}
	baseSummary, ok := summary.Result(options.BaseRegime)
	if !ok {
		return nil, fmt.Errorf("base regime %s not found in results", options.BaseRegime)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseSummary)

	alternatives := []ComparisonResult{}
	for _, r := range summary.Results {
		if r.ID == options.BaseRegime {
			continue
		}
		if !r.Available && !options.IncludeUnavailable {
			continue
		}
		altResult := ce.MetricsCalculator.CalculateMetrics(r)
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseRegime:         options.BaseRegime,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
