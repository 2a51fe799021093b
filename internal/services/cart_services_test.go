package services

import (
	"context"
	"testing"

	"github.com/TanerSahin19/GriWear/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartService(s *memStore) *CartService {
	return NewCartService(s, s)
}

func TestCartAddCreatesAndIncrements(t *testing.T) {
	ctx := context.Background()
	st := newMemStore(product(1, "shirt", "25.00", 3))
	svc := newCartService(st)

	require.NoError(t, svc.Add(ctx, "s:abc", 1))
	require.NoError(t, svc.Add(ctx, "s:abc", 1))

	cart, err := st.Get(ctx, "s:abc")
	require.NoError(t, err)
	assert.Equal(t, model.Cart{1: 2}, cart)

	count, err := svc.Count(ctx, "s:abc")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCartAddAtStockLimit(t *testing.T) {
	ctx := context.Background()
	st := newMemStore(product(1, "shirt", "25.00", 2))
	svc := newCartService(st)

	require.NoError(t, svc.Add(ctx, "s:abc", 1))
	require.NoError(t, svc.Add(ctx, "s:abc", 1))

	err := svc.Add(ctx, "s:abc", 1)
	var conflict *StockConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 3, conflict.Requested)
	assert.Equal(t, 2, conflict.Available)

	cart, err := st.Get(ctx, "s:abc")
	require.NoError(t, err)
	assert.Equal(t, model.Cart{1: 2}, cart, "rejected add leaves the cart untouched")
}

func TestCartAddUnknownOrInactive(t *testing.T) {
	ctx := context.Background()
	st := newMemStore(product(1, "shirt", "25.00", 3))
	svc := newCartService(st)

	assert.ErrorIs(t, svc.Add(ctx, "s:abc", 42), ErrProductNotFound)

	st.products[1].IsActive = false
	assert.ErrorIs(t, svc.Add(ctx, "s:abc", 1), ErrProductNotFound)
}

func TestCartAddZeroStock(t *testing.T) {
	ctx := context.Background()
	st := newMemStore(product(1, "shirt", "25.00", 0))
	svc := newCartService(st)

	err := svc.Add(ctx, "s:abc", 1)
	var conflict *StockConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 0, conflict.Available)
}

func TestCartRemove(t *testing.T) {
	ctx := context.Background()
	st := newMemStore(product(1, "shirt", "25.00", 3))
	svc := newCartService(st)

	require.NoError(t, st.Save(ctx, "s:abc", model.Cart{1: 2}))
	require.NoError(t, svc.Remove(ctx, "s:abc", 1))

	cart, err := st.Get(ctx, "s:abc")
	require.NoError(t, err)
	assert.Empty(t, cart)

	// removing what is not there is a no-op
	require.NoError(t, svc.Remove(ctx, "s:abc", 99))
}

func TestCartViewTotalsAndDrops(t *testing.T) {
	ctx := context.Background()
	st := newMemStore(product(1, "shirt", "25.00", 5), product(2, "belt", "12.50", 5))
	svc := newCartService(st)

	require.NoError(t, st.Save(ctx, "s:abc", model.Cart{1: 2, 2: 1}))

	resp, err := svc.View(ctx, "s:abc")
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("62.50")), "total = %s", resp.Total)

	// deactivated products vanish from the view but stay in storage
	st.products[2].IsActive = false
	resp, err = svc.View(ctx, "s:abc")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(1), resp.Items[0].Product.ProductID)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("50.00")))

	cart, err := st.Get(ctx, "s:abc")
	require.NoError(t, err)
	assert.Equal(t, model.Cart{1: 2, 2: 1}, cart)
}

func TestCartViewEmpty(t *testing.T) {
	ctx := context.Background()
	svc := newCartService(newMemStore())

	resp, err := svc.View(ctx, "s:none")
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.Total.IsZero())
}

func TestCartClear(t *testing.T) {
	ctx := context.Background()
	st := newMemStore(product(1, "shirt", "25.00", 3))
	svc := newCartService(st)

	require.NoError(t, st.Save(ctx, "s:abc", model.Cart{1: 1}))
	require.NoError(t, svc.Clear(ctx, "s:abc"))

	cart, err := st.Get(ctx, "s:abc")
	require.NoError(t, err)
	assert.Empty(t, cart)
}
