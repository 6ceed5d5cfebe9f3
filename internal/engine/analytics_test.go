package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insightTypes(insights []Insight) []string {
	types := make([]string, len(insights))
	for i, ins := range insights {
		types[i] = ins.Type
	}
	return types
}

func TestAnalyzeMetrics(t *testing.T) {
	res := Analyze([]ProductSnapshot{
		{Name: "Bakso", HPP: 14700, TargetMargin: 0.3, CurrentStock: 50, MinStock: 10, SalesQty: 100, SalesRevenue: 1_911_000},
		{Name: "Es Teh", HPP: 2000, TargetMargin: 0.5, CurrentStock: 5, MinStock: 10, SalesQty: 200, SalesRevenue: 600_000},
	})

	assert.InDelta(t, 2_511_000, res.Metrics.Revenue, 1e-6)
	// cost of sold items: 100*14700 + 200*2000 = 1_870_000
	assert.InDelta(t, 641_000, res.Metrics.Profit, 1e-6)
	assert.Equal(t, 40.0, res.Metrics.AvgMargin) // (0.3+0.5)/2 * 100
	assert.Equal(t, 1, res.Metrics.LowStockCount)
}

func TestAnalyzeInsightCategories(t *testing.T) {
	res := Analyze([]ProductSnapshot{
		{Name: "Bakso", HPP: 14700, TargetMargin: 0.45, CurrentStock: 2, MinStock: 10, SalesQty: 80, SalesRevenue: 1_500_000},
		{Name: "Es Teh", HPP: 2000, TargetMargin: 0.3, CurrentStock: 50, MinStock: 10, SalesQty: 120, SalesRevenue: 300_000},
	})

	types := insightTypes(res.Insights)
	assert.Contains(t, types, "alert")    // low stock
	assert.Contains(t, types, "success")  // >40% margin
	assert.Contains(t, types, "trending") // top seller

	// Top seller is the highest quantity, not highest revenue.
	for _, ins := range res.Insights {
		if ins.Type == "trending" {
			assert.Contains(t, ins.Description, "Es Teh")
		}
	}
}

func TestAnalyzeNoSales(t *testing.T) {
	res := Analyze([]ProductSnapshot{
		{Name: "Bakso", HPP: 14700, TargetMargin: 0.3, CurrentStock: 50, MinStock: 10},
	})

	require.NotEmpty(t, res.Insights)
	types := insightTypes(res.Insights)
	assert.Contains(t, types, "info")
	assert.Equal(t, 0.0, res.Metrics.Revenue)
	assert.Equal(t, 0.0, res.Metrics.ProfitMargin)
}

func TestAnalyzeEmpty(t *testing.T) {
	res := Analyze(nil)
	assert.Equal(t, 0.0, res.Metrics.AvgMargin)
	assert.NotEmpty(t, res.Insights) // still gives the "start recording" nudge
}
