package services

import (
	"context"
	"testing"

	"github.com/TanerSahin19/GriWear/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCartOrdersAndFilters(t *testing.T) {
	ctx := context.Background()
	st := newMemStore(
		product(9, "late", "1.00", 5),
		product(2, "early", "1.00", 5),
		product(5, "mid", "1.00", 5),
	)

	cart := model.Cart{9: 1, 2: 3, 5: 2, 7: 1, 3: 0}
	lines, err := resolveCart(ctx, st.GetActiveByIDs, cart)
	require.NoError(t, err)

	// ascending product id, unknown id 7 and zero-quantity id 3 dropped
	require.Len(t, lines, 3)
	assert.Equal(t, int64(2), lines[0].Product.ProductID)
	assert.Equal(t, int64(5), lines[1].Product.ProductID)
	assert.Equal(t, int64(9), lines[2].Product.ProductID)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestResolveCartEmpty(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()

	lines, err := resolveCart(ctx, st.GetActiveByIDs, model.Cart{})
	require.NoError(t, err)
	assert.Empty(t, lines)

	lines, err = resolveCart(ctx, st.GetActiveByIDs, model.Cart{1: 0, 2: -1})
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCheckStockBoundaries(t *testing.T) {
	p := product(1, "shirt", "25.00", 2)

	assert.NoError(t, checkStock(&p, 1))
	assert.NoError(t, checkStock(&p, 2), "requesting exactly the stock is allowed")

	err := checkStock(&p, 3)
	var conflict *StockConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 2, conflict.Available)
	assert.EqualError(t, err, `insufficient stock for "shirt": requested 3, available 2`)

	empty := product(2, "gone", "5.00", 0)
	err = checkStock(&empty, 1)
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 0, conflict.Available)
}
