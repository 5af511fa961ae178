package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/taxregimes/taxregimes/internal/domain"
)

func TestObserveSummary(t *testing.T) {
	before := testutil.ToFloat64(BestRegime.WithLabelValues(string(domain.RegimePatent)))

	summary := &domain.CalculationSummary{
		Results: []domain.Result{
			{ID: domain.RegimePatent, Available: true},
			{ID: domain.RegimeUSNIncomeNoVAT, Available: true, Uplift: &domain.PriceUplift{TargetProfit: decimal.NewFromInt(1), Iterations: 7}},
		},
	}
	summary.Top = summary.Results[:1]

	ObserveSummary(summary)
	ObserveSummary(nil)

	after := testutil.ToFloat64(BestRegime.WithLabelValues(string(domain.RegimePatent)))
	assert.Equal(t, before+1, after)
	assert.Equal(t, 1, testutil.CollectAndCount(BreakEvenIterations, "taxregimes_break_even_iterations"))
}

func TestCollectorsRegistered(t *testing.T) {
	HTTPRequests.WithLabelValues("calculate", "200").Inc()
	assert.GreaterOrEqual(t, testutil.ToFloat64(HTTPRequests.WithLabelValues("calculate", "200")), 1.0)

	CalculationErrors.WithLabelValues("calculate", "validation").Inc()
	assert.GreaterOrEqual(t, testutil.ToFloat64(CalculationErrors.WithLabelValues("calculate", "validation")), 1.0)
}
