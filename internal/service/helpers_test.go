package service

import (
	"context"
	"testing"

	"go-hpp-dashboard/internal/repository/memory"
	"go-hpp-dashboard/internal/ws"

	"github.com/stretchr/testify/require"
)

// testEnv wires the services against the in-memory store with a live hub so
// broadcast goroutines drain instead of blocking.
type testEnv struct {
	store  *memory.Store
	hub    *ws.Hub
	tenant *Tenant
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.New()
	hub := ws.NewHub()
	go hub.Run()

	tenants := NewTenantService(store.Users(), "demo@example.com", "Demo User", "Warung Demo")
	tenant, err := tenants.Resolve(context.Background())
	require.NoError(t, err)

	return &testEnv{store: store, hub: hub, tenant: tenant}
}

func (e *testEnv) inventoryService() InventoryService {
	return NewInventoryService(e.store.Products(), e.store.Inventories(), e.store.Budgets(), e.hub)
}

func (e *testEnv) salesService() SalesService {
	return NewSalesService(e.store.Sales(), e.hub)
}

// stubInsights fakes the AI generator with a fixed response.
type stubInsights struct {
	text string
	err  error
}

func (s stubInsights) GenerateInsights(context.Context, string, string) (string, error) {
	return s.text, s.err
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
