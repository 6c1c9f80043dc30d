package service

import (
	"context"
	"testing"
	"time"

	"kebab-shop-demo/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeOrder(t *testing.T, env *testEnv, accountID uint, productID string, qty int32) dto.OrderResponse {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, env.cart.AddLine(ctx, accountID, productID, qty))
	commitment, err := env.checkout.IssueCommitment(ctx, accountID, productID)
	require.NoError(t, err)
	resp, err := env.checkout.Redeem(ctx, accountID, &dto.RedeemRequest{Commitment: *commitment})
	require.NoError(t, err)
	return resp.Order
}

func TestOrderService_ListByAccount(t *testing.T) {
	env := newTestEnv(t, time.Minute)
	ctx := context.Background()

	env.seedProduct(t, "kebab_ayam", 20000)
	accountID := env.seedAccount(t, "buyer@example.com", 200000)
	other := env.seedAccount(t, "other@example.com", 200000)

	first := placeOrder(t, env, accountID, "kebab_ayam", 1)
	second := placeOrder(t, env, accountID, "kebab_ayam", 2)
	placeOrder(t, env, other, "kebab_ayam", 1)

	orders, err := env.orders.ListByAccount(ctx, accountID)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	ids := []string{orders[0].OrderID, orders[1].OrderID}
	assert.Contains(t, ids, first.OrderID)
	assert.Contains(t, ids, second.OrderID)
}

func TestOrderService_GetByID(t *testing.T) {
	env := newTestEnv(t, time.Minute)
	ctx := context.Background()

	env.seedProduct(t, "kebab_ayam", 20000)
	accountID := env.seedAccount(t, "buyer@example.com", 200000)
	other := env.seedAccount(t, "other@example.com", 200000)

	placed := placeOrder(t, env, accountID, "kebab_ayam", 2)

	order, err := env.orders.GetByID(ctx, accountID, placed.OrderID)
	require.NoError(t, err)
	assert.Equal(t, placed.OrderID, order.OrderID)
	assert.Equal(t, int64(40000), order.Amount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "kebab_ayam", order.Items[0].ProductID)

	// another account cannot read it
	_, err = env.orders.GetByID(ctx, other, placed.OrderID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = env.orders.GetByID(ctx, accountID, "no-such-order")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
