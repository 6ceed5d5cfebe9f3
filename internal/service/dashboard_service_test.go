package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardServiceStats(t *testing.T) {
	env := newTestEnv(t)
	inv := env.inventoryService()
	sales := env.salesService()
	svc := NewDashboardService(env.store.Products(), env.store.Sales())
	ctx := context.Background()

	itemA, err := inv.Create(ctx, env.tenant, &CreateInventoryRequest{
		Name: "Bakso Sapi", ProductionCost: 10000, LaborCost: 2000, OverheadCost: 2000,
		CurrentStock: 100,
	}) // HPP 14700
	require.NoError(t, err)

	_, err = inv.Create(ctx, env.tenant, &CreateInventoryRequest{
		Name: "Es Teh", ProductionCost: 2000, TargetMargin: floatPtr(0.5),
		CurrentStock: 100,
	}) // HPP 2100
	require.NoError(t, err)

	_, err = sales.RecordSale(ctx, env.tenant, &RecordSaleRequest{
		ProductID: itemA.ProductID, Quantity: 2,
	}) // revenue 2 * 14700 * 1.3 = 38220
	require.NoError(t, err)

	stats, err := svc.GetStats(ctx, env.tenant.User.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalProducts)
	assert.InDelta(t, (14700+2100)/2.0, stats.AvgHPP, 0.001)
	assert.InDelta(t, 0.4, stats.AvgMargin, 0.001)
	assert.InDelta(t, 38220, stats.MonthlyRevenue, 0.001)
}

func TestDashboardServiceStatsEmpty(t *testing.T) {
	env := newTestEnv(t)
	svc := NewDashboardService(env.store.Products(), env.store.Sales())

	stats, err := svc.GetStats(context.Background(), env.tenant.User.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalProducts)
	assert.Zero(t, stats.AvgHPP)
	assert.Zero(t, stats.MonthlyRevenue)
}

func TestDashboardServiceRecentProducts(t *testing.T) {
	env := newTestEnv(t)
	inv := env.inventoryService()
	svc := NewDashboardService(env.store.Products(), env.store.Sales())
	ctx := context.Background()

	for _, name := range []string{"Produk A", "Produk B", "Produk C"} {
		_, err := inv.Create(ctx, env.tenant, &CreateInventoryRequest{
			Name: name, ProductionCost: 10000, CurrentStock: 50,
		})
		require.NoError(t, err)
	}

	recent, err := svc.GetRecentProducts(ctx, env.tenant.User.ID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	// sale_price = hpp * (1 + margin)
	assert.InDelta(t, recent[0].HPP*1.3, recent[0].SalePrice, 0.001)
}

func TestDashboardServiceAnalytics(t *testing.T) {
	env := newTestEnv(t)
	inv := env.inventoryService()
	sales := env.salesService()
	svc := NewDashboardService(env.store.Products(), env.store.Sales())
	ctx := context.Background()

	low, err := inv.Create(ctx, env.tenant, &CreateInventoryRequest{
		Name: "Stok Tipis", ProductionCost: 10000, CurrentStock: 3, MinStock: intPtr(10),
	})
	require.NoError(t, err)

	_, err = sales.RecordSale(ctx, env.tenant, &RecordSaleRequest{
		ProductID: low.ProductID, Quantity: 2,
	})
	require.NoError(t, err)

	result, err := svc.GetAnalytics(ctx, env.tenant.User.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Metrics.LowStockCount)
	assert.InDelta(t, 2*10500*1.3, result.Metrics.Revenue, 0.001)

	var hasAlert bool
	for _, insight := range result.Insights {
		if insight.Type == "alert" {
			hasAlert = true
		}
	}
	assert.True(t, hasAlert, "expected a low-stock alert insight")
}
