package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/TanerSahin19/GriWear/internal/model"

	rd "github.com/redis/go-redis/v9"
)

// CartStore keeps session carts in Redis, outside the transactional store.
// Carts are ephemeral: the TTL is refreshed on every save and an expired key
// simply reads back as an empty cart.
type CartStore struct {
	RDB *rd.Client
	TTL time.Duration
}

func NewCartStore(rdb *rd.Client, ttl time.Duration) *CartStore {
	return &CartStore{RDB: rdb, TTL: ttl}
}

func cartKey(key string) string {
	return "cart:" + key
}

// Get returns the cart for a session key, empty if none exists.
func (s *CartStore) Get(ctx context.Context, key string) (model.Cart, error) {
	raw, err := s.RDB.Get(ctx, cartKey(key)).Bytes()
	if errors.Is(err, rd.Nil) {
		return model.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart get: %w", err)
	}
	return decodeCart(raw), nil
}

// decodeCart never returns a nil map: corrupt blobs and a literal JSON null
// both read back as an empty cart rather than poisoning every request.
func decodeCart(raw []byte) model.Cart {
	var cart model.Cart
	if err := json.Unmarshal(raw, &cart); err != nil || cart == nil {
		return model.Cart{}
	}
	return cart
}

// Save persists the cart and refreshes its TTL. Saving an empty cart deletes
// the key.
func (s *CartStore) Save(ctx context.Context, key string, cart model.Cart) error {
	if len(cart) == 0 {
		return s.Clear(ctx, key)
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("cart marshal: %w", err)
	}
	if err := s.RDB.Set(ctx, cartKey(key), raw, s.TTL).Err(); err != nil {
		return fmt.Errorf("cart save: %w", err)
	}
	return nil
}

// Clear drops the cart key entirely.
func (s *CartStore) Clear(ctx context.Context, key string) error {
	if err := s.RDB.Del(ctx, cartKey(key)).Err(); err != nil {
		return fmt.Errorf("cart clear: %w", err)
	}
	return nil
}
