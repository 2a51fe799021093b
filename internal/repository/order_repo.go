package repository

import (
	"context"
	"time"

	"github.com/TanerSahin19/GriWear/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `orderid, userid, full_name, phone, address, total, status, created_at`

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	if err := row.Scan(&o.OrderID, &o.UserID, &o.FullName, &o.Phone, &o.Address, &o.Total, &o.Status, &o.CreatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateTx inserts the order inside the settlement transaction.
func (r *OrderRepository) CreateTx(ctx context.Context, tx pgx.Tx, o *model.Order) (int64, error) {
	var id int64
	query := `
		INSERT INTO orders (userid, full_name, phone, address, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING orderid
	`
	if err := tx.QueryRow(ctx, query, o.UserID, o.FullName, o.Phone, o.Address, o.Total, o.Status, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// GetByIDAndUser folds the ownership check into the lookup: a miss on either
// id or owner reads the same as the order not existing.
func (r *OrderRepository) GetByIDAndUser(ctx context.Context, orderID, userID int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE orderid=$1 AND userid=$2`
	return scanOrder(r.DB.QueryRow(ctx, query, orderID, userID))
}

// GetByIDAndUserForUpdateTx is the cancellation entry point: same folded
// lookup, but the row stays locked until the transaction ends.
func (r *OrderRepository) GetByIDAndUserForUpdateTx(ctx context.Context, tx pgx.Tx, orderID, userID int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE orderid=$1 AND userid=$2 FOR UPDATE`
	return scanOrder(tx.QueryRow(ctx, query, orderID, userID))
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE userid=$1 ORDER BY created_at DESC`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.OrderID, &o.UserID, &o.FullName, &o.Phone, &o.Address, &o.Total, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OrderRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM orders WHERE userid=$1`
	if err := r.DB.QueryRow(ctx, query, userID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// UpdateStatusTx persists status only.
func (r *OrderRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, orderID int64, status model.OrderStatus) error {
	query := `UPDATE orders SET status=$1 WHERE orderid=$2`
	_, err := tx.Exec(ctx, query, status, orderID)
	return err
}

// ListPendingForUpdateTx narrows a requested id set to the orders that are
// still pending, locking them so no concurrent cancel or ship can slip in
// between the filter and the bulk status flip.
func (r *OrderRepository) ListPendingForUpdateTx(ctx context.Context, tx pgx.Tx, orderIDs []int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE orderid = ANY($1) AND status=$2 ORDER BY orderid FOR UPDATE`
	rows, err := tx.Query(ctx, query, orderIDs, model.StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.OrderID, &o.UserID, &o.FullName, &o.Phone, &o.Address, &o.Total, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// BulkStatusTx flips status for a set of orders and reports how many rows
// actually changed.
func (r *OrderRepository) BulkStatusTx(ctx context.Context, tx pgx.Tx, orderIDs []int64, status model.OrderStatus) (int64, error) {
	query := `UPDATE orders SET status=$1 WHERE orderid = ANY($2)`
	tag, err := tx.Exec(ctx, query, status, orderIDs)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
