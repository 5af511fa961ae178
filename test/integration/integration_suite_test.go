package integration

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxregimes/taxregimes/internal/calculation"
	"github.com/taxregimes/taxregimes/internal/config"
	"github.com/taxregimes/taxregimes/internal/output"
)

// TestIntegrationRegression tests for regression issues
func TestIntegrationRegression(t *testing.T) {
	t.Run("calculation_consistency", func(t *testing.T) {
		in, err := config.NewInputParser().LoadFromFile(exampleInput)
		require.NoError(t, err)

		engine := calculation.NewCalculationEngine()
		first := engine.Run(in)
		second := engine.Run(in)

		require.Equal(t, len(first.Results), len(second.Results))
		for i, r := range first.Results {
			assert.Equal(t, r.ID, second.Results[i].ID)
			assert.True(t, r.NetProfit.Equal(second.Results[i].NetProfit), "%s net profit should match", r.ID)
			assert.True(t, r.TotalBurden.Equal(second.Results[i].TotalBurden), "%s burden should match", r.ID)
		}
	})

	t.Run("concurrent_runs", func(t *testing.T) {
		in, err := config.NewInputParser().LoadFromFile(exampleInput)
		require.NoError(t, err)

		engine := calculation.NewCalculationEngine()
		want := engine.Run(in)

		var wg sync.WaitGroup
		got := make([]string, 8)
		for i := range got {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				best, _ := engine.Run(in).Best()
				got[i] = best.NetProfit.String()
			}(i)
		}
		wg.Wait()

		best, _ := want.Best()
		for _, g := range got {
			assert.Equal(t, best.NetProfit.String(), g)
		}
	})
}

// TestIntegrationBenchmarks runs performance checks
func TestIntegrationBenchmarks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping benchmarks in short mode")
	}

	in, err := config.NewInputParser().LoadFromFile(exampleInput)
	require.NoError(t, err)
	engine := calculation.NewCalculationEngine()

	t.Run("calculation_performance", func(t *testing.T) {
		start := time.Now()
		summary := engine.Run(in)
		duration := time.Since(start)

		require.NotNil(t, summary)
		assert.Less(t, duration, 5*time.Second, "Calculation should complete within 5 seconds")
		t.Logf("Calculation completed in %v", duration)
	})

	t.Run("output_generation_performance", func(t *testing.T) {
		summary := engine.Run(in)
		for _, format := range output.AvailableFormatterNames() {
			t.Run(fmt.Sprintf("output_%s", format), func(t *testing.T) {
				var buf bytes.Buffer
				start := time.Now()
				require.NoError(t, output.GenerateReport(&buf, summary, format, nil))
				assert.Less(t, time.Since(start), time.Second, "%s output should generate within a second", format)
			})
		}
	})
}

// TestIntegrationDataValidation loads every fixture and checks the calculated figures
func TestIntegrationDataValidation(t *testing.T) {
	files, err := filepath.Glob("../testdata/*_input.yaml")
	require.NoError(t, err)
	more, err := filepath.Glob("../testdata/*_employees.yaml")
	require.NoError(t, err)
	files = append(files, more...)
	require.NotEmpty(t, files)

	engine := calculation.NewCalculationEngine()
	for _, f := range files {
		if filepath.Base(f) == "invalid_input.yaml" {
			continue
		}
		t.Run(filepath.Base(f), func(t *testing.T) {
			in, err := config.NewInputParser().LoadFromFile(f)
			require.NoError(t, err)
			summary := engine.Run(in)

			for _, r := range summary.Available() {
				assert.True(t, r.TotalBurden.Equal(r.Tax.Add(r.VAT).Add(r.Insurance)),
					"%s burden should be tax + VAT + insurance", r.ID)
				assert.False(t, r.TotalBurden.IsNegative(), "%s burden should be non-negative", r.ID)
			}
			for i := 1; i < len(summary.Top); i++ {
				assert.True(t, summary.Top[i-1].TotalBurden.LessThanOrEqual(summary.Top[i].TotalBurden),
					"top list should be sorted by burden")
			}
		})
	}
}
