package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/TanerSahin19/GriWear/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// OrderService is the settlement engine: the authoritative gate that turns a
// session cart into a durable order while decrementing stock, and reverses
// the decrement on cancellation. Every mutation runs in one transaction over
// row-locked product rows; concurrency correctness rests entirely on the
// database's lock manager, not on in-process synchronization.
type OrderService struct {
	DB       TxBeginner
	Products ProductStore
	Orders   OrderStore
	Lines    OrderLineStore
	Carts    CartStore
}

func NewOrderService(db TxBeginner, products ProductStore, orders OrderStore, lines OrderLineStore, carts CartStore) *OrderService {
	return &OrderService{DB: db, Products: products, Orders: orders, Lines: lines, Carts: carts}
}

// CheckoutForm carries the validated delivery details. The endpoint layer
// runs the validator before this struct ever reaches the engine.
type CheckoutForm struct {
	FullName string `json:"full_name" validate:"required,max=120"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	Address  string `json:"address" validate:"required"`
}

// Checkout settles the cart into an order.
//
// The product rows named by the cart are locked FOR UPDATE in ascending id
// order, then every line is revalidated against the now-current stock. Any
// violation aborts the whole transaction: no partial order, no partial
// decrement. Prices and names are snapshotted from the locked rows, not from
// whatever the cart was built against.
func (s *OrderService) Checkout(ctx context.Context, userID int64, cartKey string, form CheckoutForm) (int64, error) {
	cart, err := s.Carts.Get(ctx, cartKey)
	if err != nil {
		return 0, fmt.Errorf("read cart: %w", err)
	}
	if len(cart) == 0 {
		return 0, ErrCartEmpty
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	lockFetch := func(ctx context.Context, ids []int64) ([]model.Product, error) {
		return s.Products.LockActiveByIDsTx(ctx, tx, ids)
	}
	// entries whose product vanished or went inactive since they were added
	// are dropped here, same as the cart view; only live lines settle
	lines, err := resolveCart(ctx, lockFetch, cart)
	if err != nil {
		return 0, fmt.Errorf("lock products: %w", err)
	}
	if len(lines) == 0 {
		return 0, ErrCartEmpty
	}

	total := decimal.Zero
	for i := range lines {
		if err := checkStock(&lines[i].Product, lines[i].Quantity); err != nil {
			return 0, err
		}
		total = total.Add(lines[i].Product.Price.Mul(decimal.NewFromInt(int64(lines[i].Quantity))))
	}

	order := &model.Order{
		UserID:   &userID,
		FullName: form.FullName,
		Phone:    form.Phone,
		Address:  form.Address,
		Total:    total,
		Status:   model.StatusPending,
	}
	orderID, err := s.Orders.CreateTx(ctx, tx, order)
	if err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}

	for _, ln := range lines {
		p := ln.Product
		line := &model.OrderLine{
			OrderID:   orderID,
			ProductID: p.ProductID,
			Name:      p.Name,
			Quantity:  ln.Quantity,
			UnitPrice: p.Price,
		}
		if _, err := s.Lines.CreateTx(ctx, tx, line); err != nil {
			return 0, fmt.Errorf("create order line: %w", err)
		}
		if err := s.Products.UpdateStockTx(ctx, tx, p.ProductID, p.Stock-ln.Quantity); err != nil {
			return 0, fmt.Errorf("decrement stock: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}

	// The cart lives outside the SQL transaction, so it is cleared only after
	// the commit: a rollback must leave it intact. Best effort; a stale cart
	// just re-runs the gates.
	_ = s.Carts.Clear(ctx, cartKey)

	return orderID, nil
}

// Cancel reverses a pending order: restores stock for every line whose
// product still resolves, then flips the status. The order row is locked
// together with its ownership check, so no concurrent cancel or ship can
// race past the status read.
func (s *OrderService) Cancel(ctx context.Context, userID, orderID int64) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := s.Orders.GetByIDAndUserForUpdateTx(ctx, tx, orderID, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		// deliberately the same answer for "does not exist" and "not yours"
		return ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("lock order: %w", err)
	}

	if order.Status != model.StatusPending {
		return ErrOrderNotPending
	}

	lines, err := s.Lines.ListByOrderTx(ctx, tx, orderID)
	if err != nil {
		return fmt.Errorf("read order lines: %w", err)
	}

	if err := s.restoreStockTx(ctx, tx, lines); err != nil {
		return err
	}

	if err := s.Orders.UpdateStatusTx(ctx, tx, orderID, model.StatusCancelled); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// BulkCancel cancels every order in the set that is still pending and reports
// how many were actually affected; non-pending orders are silently excluded.
func (s *OrderService) BulkCancel(ctx context.Context, orderIDs []int64) (int64, error) {
	if len(orderIDs) == 0 {
		return 0, nil
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	pending, err := s.Orders.ListPendingForUpdateTx(ctx, tx, orderIDs)
	if err != nil {
		return 0, fmt.Errorf("lock orders: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	ids := make([]int64, 0, len(pending))
	for _, o := range pending {
		ids = append(ids, o.OrderID)
	}

	lines, err := s.Lines.ListByOrdersTx(ctx, tx, ids)
	if err != nil {
		return 0, fmt.Errorf("read order lines: %w", err)
	}

	if err := s.restoreStockTx(ctx, tx, lines); err != nil {
		return 0, err
	}

	affected, err := s.Orders.BulkStatusTx(ctx, tx, ids, model.StatusCancelled)
	if err != nil {
		return 0, fmt.Errorf("update statuses: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return affected, nil
}

// restoreStockTx locks the union of referenced products (ascending id, same
// order as checkout) and increments each once with the summed quantities.
// Lines whose product vanished or went inactive are skipped: the snapshot
// keeps the order record itself intact either way.
func (s *OrderService) restoreStockTx(ctx context.Context, tx pgx.Tx, lines []model.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}

	seen := make(map[int64]bool, len(lines))
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		if !seen[l.ProductID] {
			seen[l.ProductID] = true
			ids = append(ids, l.ProductID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	locked, err := s.Products.LockActiveByIDsTx(ctx, tx, ids)
	if err != nil {
		return fmt.Errorf("lock products: %w", err)
	}

	byID := make(map[int64]*model.Product, len(locked))
	for i := range locked {
		byID[locked[i].ProductID] = &locked[i]
	}

	for _, l := range lines {
		if p := byID[l.ProductID]; p != nil {
			p.Stock += l.Quantity
		}
	}

	for _, id := range ids {
		p := byID[id]
		if p == nil {
			continue
		}
		if err := s.Products.UpdateStockTx(ctx, tx, p.ProductID, p.Stock); err != nil {
			return fmt.Errorf("restore stock: %w", err)
		}
	}
	return nil
}

// UpdateStatuses applies an admin lifecycle transition (pending, shipped,
// delivered) to a set of orders. Cancellation is refused here: it must go
// through BulkCancel so stock is restored.
func (s *OrderService) UpdateStatuses(ctx context.Context, orderIDs []int64, status model.OrderStatus) (int64, error) {
	if !status.Valid() || status == model.StatusCancelled {
		return 0, ErrInvalidStatus
	}
	if len(orderIDs) == 0 {
		return 0, nil
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	affected, err := s.Orders.BulkStatusTx(ctx, tx, orderIDs, status)
	if err != nil {
		return 0, fmt.Errorf("update statuses: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return affected, nil
}

// MyOrders returns the user's orders, newest first.
func (s *OrderService) MyOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.Orders.ListByUser(ctx, userID)
}

// OrdersCount backs the navbar badge.
func (s *OrderService) OrdersCount(ctx context.Context, userID int64) (int, error) {
	return s.Orders.CountByUser(ctx, userID)
}

// OrderDetail returns one order with its lines, owner-scoped.
func (s *OrderService) OrderDetail(ctx context.Context, userID, orderID int64) (*model.Order, []model.OrderLine, error) {
	order, err := s.Orders.GetByIDAndUser(ctx, orderID, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read order: %w", err)
	}

	lines, err := s.Lines.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("read order lines: %w", err)
	}
	return order, lines, nil
}
