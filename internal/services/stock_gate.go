package services

import (
	"context"
	"sort"

	"github.com/TanerSahin19/GriWear/internal/model"
)

// productFetch resolves an id set to live, active product rows. The cart's
// advisory gate passes a plain read; the settlement engine passes a FOR
// UPDATE read bound to its transaction. Both gates otherwise share the exact
// same resolve-and-validate path so they can never drift apart.
type productFetch func(ctx context.Context, ids []int64) ([]model.Product, error)

type cartLine struct {
	Product  model.Product
	Quantity int
}

// resolveCart matches cart entries against the fetched rows. Entries whose
// product does not resolve (deleted or inactivated since it was added) are
// dropped from the result, not purged from storage. Lines come back in
// ascending product id order, matching the lock acquisition order.
func resolveCart(ctx context.Context, fetch productFetch, cart model.Cart) ([]cartLine, error) {
	ids := make([]int64, 0, len(cart))
	for pid, qty := range cart {
		if qty <= 0 {
			continue
		}
		ids = append(ids, pid)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	products, err := fetch(ctx, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]cartLine, 0, len(products))
	for _, p := range products {
		lines = append(lines, cartLine{Product: p, Quantity: cart[p.ProductID]})
	}
	return lines, nil
}

// checkStock validates one requested quantity against a live row. The error
// is decisive only when the caller holds the row lock; the cart gate uses the
// same check as an advisory early warning.
func checkStock(p *model.Product, requested int) error {
	if p.Stock <= 0 {
		return &StockConflictError{ProductID: p.ProductID, Name: p.Name, Requested: requested, Available: 0}
	}
	if requested > p.Stock {
		return &StockConflictError{ProductID: p.ProductID, Name: p.Name, Requested: requested, Available: p.Stock}
	}
	return nil
}
