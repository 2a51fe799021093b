package services

import (
	"context"

	"github.com/TanerSahin19/GriWear/internal/model"

	"github.com/jackc/pgx/v5"
)

// The stores below are the collaborators the cart and settlement services
// depend on. internal/repository satisfies them over pgx; tests substitute
// in-memory fakes.

// TxBeginner starts the transaction every multi-step mutation runs inside.
// *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ProductStore reads products filtered to active rows, with an exclusive-lock
// variant, and persists stock only.
type ProductStore interface {
	GetActiveByID(ctx context.Context, id int64) (*model.Product, error)
	GetActiveByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
	LockActiveByIDsTx(ctx context.Context, tx pgx.Tx, ids []int64) ([]model.Product, error)
	UpdateStockTx(ctx context.Context, tx pgx.Tx, productID int64, stock int) error
}

// OrderStore creates orders and reads them with ownership folded into the
// lookup.
type OrderStore interface {
	CreateTx(ctx context.Context, tx pgx.Tx, o *model.Order) (int64, error)
	GetByIDAndUser(ctx context.Context, orderID, userID int64) (*model.Order, error)
	GetByIDAndUserForUpdateTx(ctx context.Context, tx pgx.Tx, orderID, userID int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, orderID int64, status model.OrderStatus) error
	ListPendingForUpdateTx(ctx context.Context, tx pgx.Tx, orderIDs []int64) ([]model.Order, error)
	BulkStatusTx(ctx context.Context, tx pgx.Tx, orderIDs []int64, status model.OrderStatus) (int64, error)
}

// OrderLineStore writes and reads immutable snapshot lines.
type OrderLineStore interface {
	CreateTx(ctx context.Context, tx pgx.Tx, l *model.OrderLine) (int64, error)
	ListByOrder(ctx context.Context, orderID int64) ([]model.OrderLine, error)
	ListByOrderTx(ctx context.Context, tx pgx.Tx, orderID int64) ([]model.OrderLine, error)
	ListByOrdersTx(ctx context.Context, tx pgx.Tx, orderIDs []int64) ([]model.OrderLine, error)
}

// CartStore is the session-backed cart: keyed by session, no durability
// guarantee, never part of the SQL transaction.
type CartStore interface {
	Get(ctx context.Context, key string) (model.Cart, error)
	Save(ctx context.Context, key string, cart model.Cart) error
	Clear(ctx context.Context, key string) error
}
