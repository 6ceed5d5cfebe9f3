package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ProductSnapshot is the per-product aggregate the analytics derivation works
// on: current product/inventory state plus sales totals over the window.
type ProductSnapshot struct {
	Name         string
	HPP          float64
	TargetMargin float64
	CurrentStock int
	MinStock     int
	SalesQty     int
	SalesRevenue float64
}

// AnalyticsMetrics are the headline numbers over the analytics window.
type AnalyticsMetrics struct {
	Revenue       float64 `json:"revenue"`
	Profit        float64 `json:"profit"`
	AvgMargin     float64 `json:"avg_margin"`     // persen, dibulatkan
	ProfitMargin  float64 `json:"profit_margin"`  // persen, dibulatkan
	LowStockCount int     `json:"low_stock_count"`
}

// Insight is one textual recommendation shown on the dashboard.
type Insight struct {
	Type        string `json:"type"` // alert, success, trending, info
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AnalyticsResult bundles metrics with the derived insights.
type AnalyticsResult struct {
	Metrics  AnalyticsMetrics `json:"metrics"`
	Insights []Insight        `json:"insights"`
}

// Analyze derives window metrics and rule-based insights from product
// snapshots. Deterministic: the same snapshots always yield the same result.
func Analyze(products []ProductSnapshot) AnalyticsResult {
	var (
		totalRevenue float64
		totalCost    float64
		totalMargin  float64
		lowStock     []ProductSnapshot
		highMargin   []ProductSnapshot
		topSelling   []ProductSnapshot
	)

	for _, p := range products {
		totalMargin += p.TargetMargin

		if p.CurrentStock <= p.MinStock {
			lowStock = append(lowStock, p)
		}
		if p.TargetMargin > 0.4 {
			highMargin = append(highMargin, p)
		}

		totalRevenue += p.SalesRevenue
		totalCost += float64(p.SalesQty) * p.HPP
		if p.SalesQty > 0 {
			topSelling = append(topSelling, p)
		}
	}

	sort.Slice(topSelling, func(i, j int) bool {
		return topSelling[i].SalesQty > topSelling[j].SalesQty
	})

	avgMargin := 0.0
	if len(products) > 0 {
		avgMargin = totalMargin / float64(len(products)) * 100
	}
	profit := totalRevenue - totalCost
	profitMargin := 0.0
	if totalRevenue > 0 {
		profitMargin = profit / totalRevenue * 100
	}

	var insights []Insight

	if len(lowStock) > 0 {
		names := make([]string, 0, 3)
		for i, p := range lowStock {
			if i == 3 {
				break
			}
			names = append(names, p.Name)
		}
		insights = append(insights, Insight{
			Type:  "alert",
			Title: "Inventory Alert",
			Description: fmt.Sprintf("%d products are running low on stock (%s...). Restock recommended.",
				len(lowStock), strings.Join(names, ", ")),
		})
	}

	if len(highMargin) > 0 {
		insights = append(insights, Insight{
			Type:  "success",
			Title: "Profit Drivers",
			Description: fmt.Sprintf("%d products have high margins (>40%%). Consider promoting %s to boost profits.",
				len(highMargin), highMargin[0].Name),
		})
	} else {
		insights = append(insights, Insight{
			Type:  "info",
			Title: "Margin Optimization",
			Description: fmt.Sprintf("Average margin is %d%%. Consider reviewing HPP or increasing prices for lower margin items.",
				int(math.Round(avgMargin))),
		})
	}

	if len(topSelling) > 0 {
		insights = append(insights, Insight{
			Type:  "trending",
			Title: "Top Performer",
			Description: fmt.Sprintf("%s is your best seller with %d units sold. Ensure stock availability.",
				topSelling[0].Name, topSelling[0].SalesQty),
		})
	} else {
		insights = append(insights, Insight{
			Type:        "info",
			Title:       "Sales Insight",
			Description: "No sales recorded in the last 30 days. Start recording sales to get performance insights.",
		})
	}

	return AnalyticsResult{
		Metrics: AnalyticsMetrics{
			Revenue:       totalRevenue,
			Profit:        profit,
			AvgMargin:     math.Round(avgMargin),
			ProfitMargin:  math.Round(profitMargin),
			LowStockCount: len(lowStock),
		},
		Insights: insights,
	}
}
