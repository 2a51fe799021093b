package services

import (
	"errors"
	"fmt"
)

// Rejections surfaced to the user. Everything not listed here is an
// operational failure and propagates wrapped; the endpoint layer turns it
// into a 500 without leaking detail.
var (
	ErrCartEmpty          = errors.New("cart is empty")
	ErrProductNotFound    = errors.New("product not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderNotPending    = errors.New("order can no longer be cancelled")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already registered")
)

// StockConflictError reports which product failed a stock check and how much
// is actually available. Raised by the advisory cart gate and, decisively, by
// the settlement gate after the row lock is held.
type StockConflictError struct {
	ProductID int64
	Name      string
	Requested int
	Available int
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d", e.Name, e.Requested, e.Available)
}
