// Package metrics declares the Prometheus collectors exported by the HTTP server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/taxregimes/taxregimes/internal/domain"
)

var (
	// HTTPRequests counts handled requests by route and status code
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxregimes_http_requests_total",
			Help: "Handled HTTP requests",
		},
		[]string{"handler", "code"},
	)

	// RequestDuration tracks request latency by route
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taxregimes_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler"},
	)

	// Calculations counts engine runs by operation and status
	Calculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxregimes_calculations_total",
			Help: "Regime calculations performed",
		},
		[]string{"operation", "status"},
	)

	// CalculationErrors counts failed calculations by error type
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxregimes_calculation_errors_total",
			Help: "Failed calculations",
		},
		[]string{"operation", "error_type"},
	)

	// BestRegime counts how often each regime ranked first
	BestRegime = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxregimes_best_regime_total",
			Help: "Regimes ranked first by total burden",
		},
		[]string{"regime"},
	)

	// BreakEvenIterations tracks bisection steps of the patent break-even search
	BreakEvenIterations = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taxregimes_break_even_iterations",
			Help:    "Bisection iterations per break-even search",
			Buckets: prometheus.LinearBuckets(0, 2, 10),
		},
		[]string{"regime"},
	)
)

// ObserveSummary records the outcome of one engine run
func ObserveSummary(summary *domain.CalculationSummary) {
	if summary == nil {
		return
	}
	if best, ok := summary.Best(); ok {
		BestRegime.WithLabelValues(string(best.ID)).Inc()
	}
	for _, r := range summary.Results {
		if r.Uplift != nil {
			BreakEvenIterations.WithLabelValues(string(r.ID)).Observe(float64(r.Uplift.Iterations))
		}
	}
}
