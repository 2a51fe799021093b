package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/TanerSahin19/GriWear/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CartService is the first, advisory stock gate. It keeps the ephemeral
// session cart honest against live stock but is never trusted at settlement:
// two sessions can both pass this check for the same remaining unit, and only
// the locked checkout decides who gets it.
type CartService struct {
	Carts    CartStore
	Products ProductStore
}

func NewCartService(carts CartStore, products ProductStore) *CartService {
	return &CartService{Carts: carts, Products: products}
}

// Add puts one more unit of the product into the session cart. It rejects
// without touching the cart when the product is gone, inactive, out of stock,
// or already at the stock limit.
func (s *CartService) Add(ctx context.Context, key string, productID int64) error {
	p, err := s.Products.GetActiveByID(ctx, productID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrProductNotFound
	}
	if err != nil {
		return fmt.Errorf("resolve product: %w", err)
	}

	cart, err := s.Carts.Get(ctx, key)
	if err != nil {
		return err
	}

	if err := checkStock(p, cart[productID]+1); err != nil {
		return err
	}

	cart[productID]++
	return s.Carts.Save(ctx, key, cart)
}

// Remove deletes the whole entry for a product; no-op if absent.
func (s *CartService) Remove(ctx context.Context, key string, productID int64) error {
	cart, err := s.Carts.Get(ctx, key)
	if err != nil {
		return err
	}
	if _, ok := cart[productID]; !ok {
		return nil
	}
	delete(cart, productID)
	return s.Carts.Save(ctx, key, cart)
}

// View resolves the cart against live products. Entries whose product no
// longer resolves are dropped from the view but stay in storage.
func (s *CartService) View(ctx context.Context, key string) (*model.CartResponse, error) {
	cart, err := s.Carts.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	lines, err := resolveCart(ctx, s.Products.GetActiveByIDs, cart)
	if err != nil {
		return nil, err
	}

	resp := &model.CartResponse{Items: []model.CartItem{}, Total: decimal.Zero}
	for _, ln := range lines {
		subtotal := ln.Product.Price.Mul(decimal.NewFromInt(int64(ln.Quantity)))
		resp.Items = append(resp.Items, model.CartItem{
			Product:  ln.Product,
			Quantity: ln.Quantity,
			Subtotal: subtotal,
		})
		resp.Total = resp.Total.Add(subtotal)
	}
	return resp, nil
}

// Count returns the number of units in the cart (navbar badge).
func (s *CartService) Count(ctx context.Context, key string) (int, error) {
	cart, err := s.Carts.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	return cart.Count(), nil
}

// Clear drops the cart.
func (s *CartService) Clear(ctx context.Context, key string) error {
	return s.Carts.Clear(ctx, key)
}
