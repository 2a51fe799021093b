package services

import (
	"context"
	"sync"

	"github.com/TanerSahin19/GriWear/internal/model"

	"github.com/jackc/pgx/v5"
)

// memStore is an in-memory stand-in for the pgx-backed stores. Begin takes a
// mutex that is held until Commit/Rollback, which models what the row-lock
// manager guarantees for this codebase: transactions touching the same
// products serialize, and a blocked transaction re-reads current state once
// the holder finishes. Methods with the Tx suffix assume the caller holds the
// transaction and therefore do not lock.
//
// memOrders and memLines expose the order and order-line facets, since both
// store interfaces name their insert CreateTx.
type memStore struct {
	mu     sync.Mutex
	cartMu sync.Mutex

	products map[int64]*model.Product
	orders   map[int64]*model.Order
	lines    map[int64][]model.OrderLine
	carts    map[string]model.Cart

	nextOrderID int64
	nextLineID  int64
}

func newMemStore(products ...model.Product) *memStore {
	s := &memStore{
		products: make(map[int64]*model.Product),
		orders:   make(map[int64]*model.Order),
		lines:    make(map[int64][]model.OrderLine),
		carts:    make(map[string]model.Cart),
	}
	for i := range products {
		p := products[i]
		s.products[p.ProductID] = &p
	}
	return s
}

// newOrderService wires an OrderService entirely onto the fake.
func newOrderService(s *memStore) *OrderService {
	return NewOrderService(s, s, memOrders{s}, memLines{s}, s)
}

type memTx struct {
	pgx.Tx
	store *memStore
	done  bool
}

func (s *memStore) Begin(ctx context.Context) (pgx.Tx, error) {
	s.mu.Lock()
	return &memTx{store: s}, nil
}

func (t *memTx) Commit(ctx context.Context) error {
	if !t.done {
		t.done = true
		t.store.mu.Unlock()
	}
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	if !t.done {
		t.done = true
		t.store.mu.Unlock()
	}
	return nil
}

// ---- ProductStore ----

func (s *memStore) GetActiveByID(ctx context.Context, id int64) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok || !p.IsActive {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (s *memStore) GetActiveByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeByIDs(ids), nil
}

func (s *memStore) LockActiveByIDsTx(ctx context.Context, tx pgx.Tx, ids []int64) ([]model.Product, error) {
	return s.activeByIDs(ids), nil
}

func (s *memStore) activeByIDs(ids []int64) []model.Product {
	var out []model.Product
	for _, id := range ids {
		if p, ok := s.products[id]; ok && p.IsActive {
			out = append(out, *p)
		}
	}
	return out
}

func (s *memStore) UpdateStockTx(ctx context.Context, tx pgx.Tx, productID int64, stock int) error {
	if p, ok := s.products[productID]; ok {
		p.Stock = stock
	}
	return nil
}

// ---- OrderStore ----

type memOrders struct{ *memStore }

func (s memOrders) CreateTx(ctx context.Context, tx pgx.Tx, o *model.Order) (int64, error) {
	s.nextOrderID++
	cp := *o
	cp.OrderID = s.nextOrderID
	s.orders[cp.OrderID] = &cp
	return cp.OrderID, nil
}

func (s memOrders) GetByIDAndUser(ctx context.Context, orderID, userID int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ownedOrder(orderID, userID)
}

func (s memOrders) GetByIDAndUserForUpdateTx(ctx context.Context, tx pgx.Tx, orderID, userID int64) (*model.Order, error) {
	return s.ownedOrder(orderID, userID)
}

func (s memOrders) ownedOrder(orderID, userID int64) (*model.Order, error) {
	o, ok := s.orders[orderID]
	if !ok || o.UserID == nil || *o.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	cp := *o
	return &cp, nil
}

func (s memOrders) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Order
	for _, o := range s.orders {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s memOrders) CountByUser(ctx context.Context, userID int64) (int, error) {
	orders, _ := s.ListByUser(ctx, userID)
	return len(orders), nil
}

func (s memOrders) UpdateStatusTx(ctx context.Context, tx pgx.Tx, orderID int64, status model.OrderStatus) error {
	if o, ok := s.orders[orderID]; ok {
		o.Status = status
	}
	return nil
}

func (s memOrders) ListPendingForUpdateTx(ctx context.Context, tx pgx.Tx, orderIDs []int64) ([]model.Order, error) {
	var out []model.Order
	for _, id := range orderIDs {
		if o, ok := s.orders[id]; ok && o.Status == model.StatusPending {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s memOrders) BulkStatusTx(ctx context.Context, tx pgx.Tx, orderIDs []int64, status model.OrderStatus) (int64, error) {
	var n int64
	for _, id := range orderIDs {
		if o, ok := s.orders[id]; ok {
			o.Status = status
			n++
		}
	}
	return n, nil
}

// ---- OrderLineStore ----

type memLines struct{ *memStore }

func (s memLines) CreateTx(ctx context.Context, tx pgx.Tx, l *model.OrderLine) (int64, error) {
	s.nextLineID++
	cp := *l
	cp.OrderLineID = s.nextLineID
	s.lines[cp.OrderID] = append(s.lines[cp.OrderID], cp)
	return cp.OrderLineID, nil
}

func (s memLines) ListByOrder(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.OrderLine(nil), s.lines[orderID]...), nil
}

func (s memLines) ListByOrderTx(ctx context.Context, tx pgx.Tx, orderID int64) ([]model.OrderLine, error) {
	return append([]model.OrderLine(nil), s.lines[orderID]...), nil
}

func (s memLines) ListByOrdersTx(ctx context.Context, tx pgx.Tx, orderIDs []int64) ([]model.OrderLine, error) {
	var out []model.OrderLine
	for _, id := range orderIDs {
		out = append(out, s.lines[id]...)
	}
	return out, nil
}

// ---- CartStore ----

func (s *memStore) Get(ctx context.Context, key string) (model.Cart, error) {
	s.cartMu.Lock()
	defer s.cartMu.Unlock()
	cart := model.Cart{}
	for pid, qty := range s.carts[key] {
		cart[pid] = qty
	}
	return cart, nil
}

func (s *memStore) Save(ctx context.Context, key string, cart model.Cart) error {
	s.cartMu.Lock()
	defer s.cartMu.Unlock()
	cp := model.Cart{}
	for pid, qty := range cart {
		cp[pid] = qty
	}
	s.carts[key] = cp
	return nil
}

func (s *memStore) Clear(ctx context.Context, key string) error {
	s.cartMu.Lock()
	defer s.cartMu.Unlock()
	delete(s.carts, key)
	return nil
}
