package components

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricCard_WithDelta(t *testing.T) {
	card := NewAmountCard("Net profit", decimal.NewFromInt(2102610)).WithDelta(decimal.NewFromInt(-5000), true)
	require.NotNil(t, card.Trend)
	assert.False(t, card.Trend.IsPositive)
	assert.Equal(t, "-5 000 ₽", card.Trend.Change)

	burden := NewAmountCard("Burden", decimal.NewFromInt(597390)).WithDelta(decimal.NewFromInt(-5000), false)
	assert.True(t, burden.Trend.IsPositive, "a lower burden is good")

	unchanged := NewAmountCard("Burden", decimal.Zero).WithDelta(decimal.Zero, false)
	assert.Nil(t, unchanged.Trend)
}

func TestMetricCard_Render(t *testing.T) {
	card := NewAmountCard("Revenue", decimal.NewFromInt(10000000)).WithDescription("annual").WithTrend(true, "+1 000 ₽")

	out := card.Render()
	assert.Contains(t, out, "Revenue")
	assert.Contains(t, out, "10 000 000 ₽")
	assert.Contains(t, out, "annual")
	assert.Contains(t, out, "▲ +1 000 ₽")

	compact := card.RenderCompact()
	assert.False(t, strings.Contains(compact, "\n"))
	assert.Contains(t, compact, "Revenue:")
}

func TestMetricGrid(t *testing.T) {
	assert.Empty(t, MetricGrid(nil, 2))

	cards := []*MetricCard{NewMetricCard("A", "1"), NewMetricCard("B", "2"), NewMetricCard("C", "3")}
	grid := MetricGrid(cards, 2)
	for _, want := range []string{"A", "B", "C"} {
		assert.Contains(t, grid, want)
	}
	assert.NotEmpty(t, MetricGrid(cards, 0))
}
