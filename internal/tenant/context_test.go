package tenant_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizbooks/ledgercore/internal/apperrors"
	"github.com/bizbooks/ledgercore/internal/tenant"
)

func TestBoundContext(t *testing.T) {
	ctx := tenant.WithID(context.Background(), "t-1")

	id, ok := tenant.ID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "t-1", id)
	assert.True(t, tenant.Check(ctx))

	id, err := tenant.MustID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t-1", id)
}

func TestUnboundContextFailsClosed(t *testing.T) {
	ctx := context.Background()

	_, ok := tenant.ID(ctx)
	assert.False(t, ok)
	assert.False(t, tenant.Check(ctx))

	_, err := tenant.MustID(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrTenantRequired))
}

func TestRebindOverridesTenant(t *testing.T) {
	ctx := tenant.WithID(context.Background(), "t-1")
	ctx = tenant.WithID(ctx, "t-2")

	id, err := tenant.MustID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t-2", id)
}

func TestEmptyIDStaysUnbound(t *testing.T) {
	ctx := tenant.WithID(context.Background(), "")

	_, err := tenant.MustID(ctx)
	assert.True(t, errors.Is(err, apperrors.ErrTenantRequired))
}
