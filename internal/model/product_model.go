package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	CategoryID int64  `json:"categoryid"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
}

// Product holds the catalog row. Stock is the single source of truth for
// availability; only the order settlement path mutates it, always under a
// row lock.
type Product struct {
	ProductID   int64           `json:"productid"`
	CategoryID  int64           `json:"categoryid"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Stock       int             `json:"stock"`
	IsNew       bool            `json:"is_new"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   *time.Time      `json:"created_at,omitempty"`
}
