package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/TanerSahin19/GriWear/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `productid, categoryid, name, slug, price, description, stock, is_new, is_active, created_at`

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	if err := row.Scan(&p.ProductID, &p.CategoryID, &p.Name, &p.Slug, &p.Price, &p.Description, &p.Stock, &p.IsNew, &p.IsActive, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()
	var list []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ProductID, &p.CategoryID, &p.Name, &p.Slug, &p.Price, &p.Description, &p.Stock, &p.IsNew, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProductRepository) ListActive(ctx context.Context) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active ORDER BY created_at DESC`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanProducts(rows)
}

func (r *ProductRepository) ListNewArrivals(ctx context.Context) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active AND is_new ORDER BY created_at DESC`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanProducts(rows)
}

func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active AND categoryid=$1 ORDER BY created_at DESC`
	rows, err := r.DB.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	return scanProducts(rows)
}

// escapeLike neutralizes LIKE metacharacters so a user query of "100%" means
// the literal text, not a pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(q string) string {
	return likeEscaper.Replace(q)
}

// Search matches active products on name or description, newest first.
func (r *ProductRepository) Search(ctx context.Context, q string) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(ctx, query, escapeLike(q))
	if err != nil {
		return nil, err
	}
	return scanProducts(rows)
}

func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug=$1 AND is_active`
	return scanProduct(r.DB.QueryRow(ctx, query, slug))
}

// GetActiveByID resolves an active product or reports pgx.ErrNoRows.
func (r *ProductRepository) GetActiveByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE productid=$1 AND is_active`
	return scanProduct(r.DB.QueryRow(ctx, query, id))
}

// GetActiveByIDs is the advisory read used by the cart gate: no lock, rows
// that don't resolve are simply absent from the result.
func (r *ProductRepository) GetActiveByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE productid = ANY($1) AND is_active ORDER BY productid`
	rows, err := r.DB.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	return scanProducts(rows)
}

// LockActiveByIDsTx reads the same rows under FOR UPDATE. Ordering by id keeps
// lock acquisition order identical across concurrent transactions, which is
// what prevents deadlocks between two checkouts sharing products.
func (r *ProductRepository) LockActiveByIDsTx(ctx context.Context, tx pgx.Tx, ids []int64) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE productid = ANY($1) AND is_active ORDER BY productid FOR UPDATE`
	rows, err := tx.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	return scanProducts(rows)
}

// UpdateStockTx persists stock only. Callers must hold the row lock from
// LockActiveByIDsTx on the same transaction.
func (r *ProductRepository) UpdateStockTx(ctx context.Context, tx pgx.Tx, productID int64, stock int) error {
	query := `UPDATE products SET stock=$1 WHERE productid=$2`
	tag, err := tx.Exec(ctx, query, stock, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("product not found")
	}
	return nil
}

func (r *ProductRepository) Create(ctx context.Context, p *model.Product) (int64, error) {
	var id int64
	query := `
		INSERT INTO products (categoryid, name, slug, price, description, stock, is_new, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8)
		RETURNING productid
	`
	if err := r.DB.QueryRow(ctx, query, p.CategoryID, p.Name, p.Slug, p.Price, p.Description, p.Stock, p.IsNew, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products
		SET categoryid=$1, name=$2, slug=$3, price=$4, description=$5, stock=$6, is_new=$7
		WHERE productid=$8
	`
	tag, err := r.DB.Exec(ctx, query, p.CategoryID, p.Name, p.Slug, p.Price, p.Description, p.Stock, p.IsNew, p.ProductID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("product not found")
	}
	return nil
}

// Deactivate hides a product from the storefront without touching history.
func (r *ProductRepository) Deactivate(ctx context.Context, id int64) error {
	query := `UPDATE products SET is_active=FALSE WHERE productid=$1`
	tag, err := r.DB.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("product not found")
	}
	return nil
}

func (r *ProductRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	query := `SELECT categoryid, name, slug FROM categories ORDER BY name`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.CategoryID, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *ProductRepository) GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var c model.Category
	query := `SELECT categoryid, name, slug FROM categories WHERE slug=$1`
	if err := r.DB.QueryRow(ctx, query, slug).Scan(&c.CategoryID, &c.Name, &c.Slug); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ProductRepository) CreateCategory(ctx context.Context, c *model.Category) (int64, error) {
	var id int64
	query := `INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING categoryid`
	if err := r.DB.QueryRow(ctx, query, c.Name, c.Slug).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
