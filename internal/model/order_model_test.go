package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{StatusPending, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, OrderStatus("").Valid())
	assert.False(t, OrderStatus("Pending").Valid())
	assert.False(t, OrderStatus("refunded").Valid())
}

func TestOrderLineTotal(t *testing.T) {
	l := OrderLine{Quantity: 3, UnitPrice: decimal.RequireFromString("12.50")}
	assert.True(t, l.LineTotal().Equal(decimal.RequireFromString("37.50")))

	none := OrderLine{Quantity: 0, UnitPrice: decimal.RequireFromString("12.50")}
	assert.True(t, none.LineTotal().IsZero())
}

func TestCartCount(t *testing.T) {
	assert.Equal(t, 0, Cart{}.Count())
	assert.Equal(t, 6, Cart{1: 2, 2: 1, 3: 3}.Count())
}
