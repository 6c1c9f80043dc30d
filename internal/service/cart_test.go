package service

import (
	"context"
	"testing"
	"time"

	"kebab-shop-demo/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartService_AddLineMergesQuantity(t *testing.T) {
	env := newTestEnv(t, time.Minute)
	ctx := context.Background()

	env.seedProduct(t, "kebab_sapi", 22000)
	accountID := env.seedAccount(t, "test@example.com", 50000)

	require.NoError(t, env.cart.AddLine(ctx, accountID, "kebab_sapi", 1))
	require.NoError(t, env.cart.AddLine(ctx, accountID, "kebab_sapi", 2))

	view, err := env.cart.Materialize(ctx, accountID)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, int32(3), view.Lines[0].Quantity)
	assert.Equal(t, int64(66000), view.Lines[0].Subtotal)
	assert.Equal(t, int64(66000), view.Total)
}

func TestCartService_AddLineUnknownProduct(t *testing.T) {
	env := newTestEnv(t, time.Minute)
	accountID := env.seedAccount(t, "test@example.com", 50000)

	err := env.cart.AddLine(context.Background(), accountID, "no-such-product", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_AddLineNonPositiveQuantity(t *testing.T) {
	env := newTestEnv(t, time.Minute)
	ctx := context.Background()

	env.seedProduct(t, "kebab_sapi", 25000)
	accountID := env.seedAccount(t, "test@example.com", 50000)

	assert.ErrorIs(t, env.cart.AddLine(ctx, accountID, "kebab_sapi", 0), ErrInvalidQuantity)
	assert.ErrorIs(t, env.cart.AddLine(ctx, accountID, "kebab_sapi", -3), ErrInvalidQuantity)

	view, err := env.cart.Materialize(ctx, accountID)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestCartService_SetQuantity(t *testing.T) {
	env := newTestEnv(t, time.Minute)
	ctx := context.Background()

	env.seedProduct(t, "kebab_sapi", 22000)
	accountID := env.seedAccount(t, "test@example.com", 50000)
	require.NoError(t, env.cart.AddLine(ctx, accountID, "kebab_sapi", 5))

	require.NoError(t, env.cart.SetQuantity(ctx, accountID, "kebab_sapi", 2))
	view, err := env.cart.Materialize(ctx, accountID)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, int32(2), view.Lines[0].Quantity)

	// zero or negative removes the line
	require.NoError(t, env.cart.SetQuantity(ctx, accountID, "kebab_sapi", 0))
	view, err = env.cart.Materialize(ctx, accountID)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Zero(t, view.Total)
}

func TestCartService_RemoveAndClear(t *testing.T) {
	env := newTestEnv(t, time.Minute)
	ctx := context.Background()

	env.seedProduct(t, "kebab_sapi", 22000)
	env.seedProduct(t, "kebab_ayam", 20000)
	accountID := env.seedAccount(t, "test@example.com", 50000)
	require.NoError(t, env.cart.AddLine(ctx, accountID, "kebab_sapi", 1))
	require.NoError(t, env.cart.AddLine(ctx, accountID, "kebab_ayam", 1))

	require.NoError(t, env.cart.RemoveLine(ctx, accountID, "kebab_sapi"))
	view, err := env.cart.Materialize(ctx, accountID)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "kebab_ayam", view.Lines[0].ProductID)

	require.NoError(t, env.cart.Clear(ctx, accountID))
	view, err = env.cart.Materialize(ctx, accountID)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestCartService_MaterializeSkipsVanishedProducts(t *testing.T) {
	env := newTestEnv(t, time.Minute)
	ctx := context.Background()

	env.seedProduct(t, "kebab_sapi", 22000)
	env.seedProduct(t, "kebab_ayam", 20000)
	accountID := env.seedAccount(t, "test@example.com", 50000)
	require.NoError(t, env.cart.AddLine(ctx, accountID, "kebab_sapi", 1))
	require.NoError(t, env.cart.AddLine(ctx, accountID, "kebab_ayam", 2))

	// the product disappears from the catalog after it was carted
	require.NoError(t, env.db.Delete(&model.Product{ID: "kebab_sapi"}).Error)

	view, err := env.cart.Materialize(ctx, accountID)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "kebab_ayam", view.Lines[0].ProductID)
	assert.Equal(t, int64(40000), view.Total)
}

func TestCartService_MaterializeFollowsCurrentPrice(t *testing.T) {
	env := newTestEnv(t, time.Minute)
	ctx := context.Background()

	env.seedProduct(t, "kebab_sapi", 22000)
	accountID := env.seedAccount(t, "test@example.com", 50000)
	require.NoError(t, env.cart.AddLine(ctx, accountID, "kebab_sapi", 2))

	require.NoError(t, env.db.Model(&model.Product{}).
		Where("id = ?", "kebab_sapi").
		Update("price", 30000).Error)

	// the view is re-derived from the catalog, not from anything cached
	view, err := env.cart.Materialize(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, int64(60000), view.Total)
}
