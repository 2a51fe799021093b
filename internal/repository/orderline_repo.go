package repository

import (
	"context"

	"github.com/TanerSahin19/GriWear/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderLineRepository struct {
	DB *pgxpool.Pool
}

func NewOrderLineRepository(db *pgxpool.Pool) *OrderLineRepository {
	return &OrderLineRepository{DB: db}
}

// CreateTx writes one snapshot line. Lines are insert-only: nothing in the
// codebase updates them after settlement.
func (r *OrderLineRepository) CreateTx(ctx context.Context, tx pgx.Tx, l *model.OrderLine) (int64, error) {
	var id int64
	query := `
		INSERT INTO order_lines (orderid, productid, name, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING orderlineid
	`
	if err := tx.QueryRow(ctx, query, l.OrderID, l.ProductID, l.Name, l.Quantity, l.UnitPrice).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *OrderLineRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	query := `SELECT orderlineid, orderid, productid, name, quantity, unit_price FROM order_lines WHERE orderid=$1 ORDER BY orderlineid`
	rows, err := r.DB.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	return scanOrderLines(rows)
}

// ListByOrderTx reads the lines inside a cancellation transaction.
func (r *OrderLineRepository) ListByOrderTx(ctx context.Context, tx pgx.Tx, orderID int64) ([]model.OrderLine, error) {
	query := `SELECT orderlineid, orderid, productid, name, quantity, unit_price FROM order_lines WHERE orderid=$1 ORDER BY orderlineid`
	rows, err := tx.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	return scanOrderLines(rows)
}

// ListByOrdersTx reads lines for a set of orders (bulk cancellation).
func (r *OrderLineRepository) ListByOrdersTx(ctx context.Context, tx pgx.Tx, orderIDs []int64) ([]model.OrderLine, error) {
	query := `SELECT orderlineid, orderid, productid, name, quantity, unit_price FROM order_lines WHERE orderid = ANY($1) ORDER BY orderlineid`
	rows, err := tx.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, err
	}
	return scanOrderLines(rows)
}

func scanOrderLines(rows pgx.Rows) ([]model.OrderLine, error) {
	defer rows.Close()
	var out []model.OrderLine
	for rows.Next() {
		var l model.OrderLine
		if err := rows.Scan(&l.OrderLineID, &l.OrderID, &l.ProductID, &l.Name, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
