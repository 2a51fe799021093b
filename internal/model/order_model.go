package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is a closed set; anything outside it is rejected at the edges.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order represents a row in the orders table. UserID is nullable: deleting a
// user must not delete their orders, the reference just degrades to unowned.
type Order struct {
	OrderID   int64           `json:"orderid"`
	UserID    *int64          `json:"userid,omitempty"`
	FullName  string          `json:"full_name"`
	Phone     string          `json:"phone,omitempty"`
	Address   string          `json:"address"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// OrderLine is immutable after creation. Name and UnitPrice are snapshots
// taken at settlement time so later catalog edits or product deletion never
// rewrite order history.
type OrderLine struct {
	OrderLineID int64           `json:"orderlineid"`
	OrderID     int64           `json:"orderid"`
	ProductID   int64           `json:"productid"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// LineTotal is always recomputed, never stored.
func (l OrderLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
