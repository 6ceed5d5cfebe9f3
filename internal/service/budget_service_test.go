package service

import (
	"context"
	"testing"

	"go-hpp-dashboard/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetServiceUpsertSetAndAdd(t *testing.T) {
	env := newTestEnv(t)
	svc := NewBudgetService(env.store.Budgets())
	ctx := context.Background()
	userID := env.tenant.User.ID

	budget, err := svc.Upsert(ctx, userID, &UpsertBudgetRequest{
		Category: "Makanan", Amount: floatPtr(5_000_000),
	})
	require.NoError(t, err)
	assert.Equal(t, 5_000_000.0, budget.Amount)

	// "add" increments the existing ceiling.
	budget, err = svc.Upsert(ctx, userID, &UpsertBudgetRequest{
		Category: "Makanan", Amount: floatPtr(1_000_000), Mode: "add",
	})
	require.NoError(t, err)
	assert.Equal(t, 6_000_000.0, budget.Amount)

	// default mode "set" overwrites.
	budget, err = svc.Upsert(ctx, userID, &UpsertBudgetRequest{
		Category: "Makanan", Amount: floatPtr(2_000_000),
	})
	require.NoError(t, err)
	assert.Equal(t, 2_000_000.0, budget.Amount)

	budgets, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, "Makanan", budgets[0].Category)
}

func TestBudgetServiceValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewBudgetService(env.store.Budgets())
	ctx := context.Background()
	userID := env.tenant.User.ID

	_, err := svc.Upsert(ctx, userID, &UpsertBudgetRequest{Amount: floatPtr(1000)})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = svc.Upsert(ctx, userID, &UpsertBudgetRequest{Category: "Makanan"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = svc.Upsert(ctx, userID, &UpsertBudgetRequest{Category: "Makanan", Amount: floatPtr(-1)})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = svc.Upsert(ctx, userID, &UpsertBudgetRequest{Category: "Makanan", Amount: floatPtr(1000), Mode: "subtract"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestBudgetServiceScopedPerUser(t *testing.T) {
	env := newTestEnv(t)
	svc := NewBudgetService(env.store.Budgets())
	ctx := context.Background()

	other := NewTenantService(env.store.Users(), "lain@example.com", "Orang Lain", "Warung Lain")
	otherTenant, err := other.Resolve(ctx)
	require.NoError(t, err)

	_, err = svc.Upsert(ctx, env.tenant.User.ID, &UpsertBudgetRequest{
		Category: "Makanan", Amount: floatPtr(5_000_000),
	})
	require.NoError(t, err)

	budgets, err := svc.List(ctx, otherTenant.User.ID)
	require.NoError(t, err)
	assert.Empty(t, budgets)
}
