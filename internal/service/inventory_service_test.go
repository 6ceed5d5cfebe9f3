package service

import (
	"context"
	"errors"
	"testing"

	"go-hpp-dashboard/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryServiceCreate(t *testing.T) {
	env := newTestEnv(t)
	svc := env.inventoryService()
	ctx := context.Background()

	item, err := svc.Create(ctx, env.tenant, &CreateInventoryRequest{
		Name:           "Bakso Sapi",
		Category:       "Makanan",
		SKU:            "BKS-001",
		ProductionCost: 10000,
		LaborCost:      2000,
		OverheadCost:   2000,
		CurrentStock:   50,
		UnitCost:       9000,
	})
	require.NoError(t, err)
	require.NotNil(t, item.Product)

	// (10000+2000+2000) * 1.05 / 1
	assert.InDelta(t, 14700, item.Product.HPP, 0.001)
	assert.Equal(t, 5.0, item.Product.WasteFactor)
	assert.Equal(t, 0.3, item.Product.TargetMargin)
	assert.Equal(t, 1, item.Product.UnitProduction)
	assert.Equal(t, "Bakso Sapi", item.ItemName)
	assert.Equal(t, 10, item.MinStock)
	assert.False(t, item.ReorderAlert)
}

func TestInventoryServiceCreateDefaultsCategory(t *testing.T) {
	env := newTestEnv(t)
	svc := env.inventoryService()

	item, err := svc.Create(context.Background(), env.tenant, &CreateInventoryRequest{
		Name:           "Produk Tanpa Kategori",
		ProductionCost: 5000,
		CurrentStock:   5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Uncategorized", item.Product.Category)
	// stock 5 <= default min stock 10
	assert.True(t, item.ReorderAlert)
}

func TestInventoryServiceCreateRejectsInvalid(t *testing.T) {
	env := newTestEnv(t)
	svc := env.inventoryService()
	ctx := context.Background()

	_, err := svc.Create(ctx, env.tenant, &CreateInventoryRequest{
		ProductionCost: 10000,
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput) // missing name

	_, err = svc.Create(ctx, env.tenant, &CreateInventoryRequest{
		Name:           "Produk Minus",
		ProductionCost: -1,
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestInventoryServiceCreateDuplicateSKU(t *testing.T) {
	env := newTestEnv(t)
	svc := env.inventoryService()
	ctx := context.Background()

	_, err := svc.Create(ctx, env.tenant, &CreateInventoryRequest{
		Name: "Produk A", SKU: "DUP-001", ProductionCost: 1000, CurrentStock: 10,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, env.tenant, &CreateInventoryRequest{
		Name: "Produk B", SKU: "DUP-001", ProductionCost: 2000, CurrentStock: 10,
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestInventoryServiceCreateBudgetExceeded(t *testing.T) {
	env := newTestEnv(t)
	svc := env.inventoryService()
	budgets := NewBudgetService(env.store.Budgets())
	ctx := context.Background()

	_, err := budgets.Upsert(ctx, env.tenant.User.ID, &UpsertBudgetRequest{
		Category: "Makanan", Amount: floatPtr(5_000_000),
	})
	require.NoError(t, err)

	// Existing spend: 10000 * 300 = 3,000,000
	_, err = svc.Create(ctx, env.tenant, &CreateInventoryRequest{
		Name: "Produk Lama", Category: "Makanan",
		ProductionCost: 10000, UnitProduction: 300, CurrentStock: 100,
	})
	require.NoError(t, err)

	// New spend: 12500 * 200 = 2,500,000 -> total 5.5jt over the 5jt ceiling.
	_, err = svc.Create(ctx, env.tenant, &CreateInventoryRequest{
		Name: "Produk Baru", Category: "Makanan",
		ProductionCost: 12500, UnitProduction: 200, CurrentStock: 100,
	})
	assert.ErrorIs(t, err, apperr.ErrBudgetExceeded)

	// Another category is unaffected.
	_, err = svc.Create(ctx, env.tenant, &CreateInventoryRequest{
		Name: "Es Teh", Category: "Minuman",
		ProductionCost: 12500, UnitProduction: 200, CurrentStock: 100,
	})
	assert.NoError(t, err)
}

func TestInventoryServiceUpdate(t *testing.T) {
	env := newTestEnv(t)
	svc := env.inventoryService()
	ctx := context.Background()

	item, err := svc.Create(ctx, env.tenant, &CreateInventoryRequest{
		Name: "Bakso Sapi", Category: "Makanan",
		ProductionCost: 10000, LaborCost: 2000, OverheadCost: 2000,
		CurrentStock: 50, UnitCost: 9000,
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, env.tenant, &UpdateInventoryRequest{
		ID:             item.ID,
		CurrentStock:   8,
		MinStock:       10,
		UnitCost:       9500,
		ProductionCost: floatPtr(12000),
	})
	require.NoError(t, err)

	// Stock dropped to the threshold and HPP follows the new cost:
	// (12000+2000+2000) * 1.05 = 16800
	assert.True(t, updated.ReorderAlert)

	refreshed, err := env.store.Products().FindByID(ctx, item.ProductID)
	require.NoError(t, err)
	assert.InDelta(t, 16800, refreshed.HPP, 0.001)
}

func TestInventoryServiceUpdateForeignItem(t *testing.T) {
	env := newTestEnv(t)
	svc := env.inventoryService()
	ctx := context.Background()

	item, err := svc.Create(ctx, env.tenant, &CreateInventoryRequest{
		Name: "Produk Milik Orang", ProductionCost: 1000, CurrentStock: 10,
	})
	require.NoError(t, err)

	other := NewTenantService(env.store.Users(), "lain@example.com", "Orang Lain", "Warung Lain")
	otherTenant, err := other.Resolve(ctx)
	require.NoError(t, err)

	_, err = svc.Update(ctx, otherTenant, &UpdateInventoryRequest{
		ID: item.ID, CurrentStock: 0, MinStock: 0,
	})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
