package model

import "github.com/shopspring/decimal"

// Cart is the ephemeral session cart: product id -> quantity. It lives in the
// session store, not the database, and is advisory only: checkout revalidates
// everything under row locks.
type Cart map[int64]int

// Count returns the total number of units in the cart (navbar badge).
func (c Cart) Count() int {
	n := 0
	for _, qty := range c {
		n += qty
	}
	return n
}

// CartItem is a cart entry joined against the live product row.
type CartItem struct {
	Product  Product         `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartResponse is returned when calling GET /cart
type CartResponse struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}
