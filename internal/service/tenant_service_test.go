package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantResolveIdempotent(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTenantService(env.store.Users(), "demo@example.com", "Demo User", "Warung Demo")
	ctx := context.Background()

	first, err := svc.Resolve(ctx)
	require.NoError(t, err)
	second, err := svc.Resolve(ctx)
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, first.Business.ID, second.Business.ID)
	assert.Equal(t, "demo@example.com", first.User.Email)
	assert.Equal(t, "Warung Demo", first.Business.Name)
}

func TestTenantResolveSeparateUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	other := NewTenantService(env.store.Users(), "lain@example.com", "Orang Lain", "Warung Lain")
	otherTenant, err := other.Resolve(ctx)
	require.NoError(t, err)

	assert.NotEqual(t, env.tenant.User.ID, otherTenant.User.ID)
	assert.NotEqual(t, env.tenant.Business.ID, otherTenant.Business.ID)
}
