package services

import (
	"context"
	"errors"
	"strings"

	"github.com/TanerSahin19/GriWear/internal/model"
	"github.com/TanerSahin19/GriWear/internal/repository"

	"github.com/jackc/pgx/v5"
)

// CatalogService serves the read-only storefront pages plus the admin product
// management that stands in for the original back office. It never touches
// stock outside plain product edits; settlement owns the guarded mutations.
type CatalogService struct {
	Products *repository.ProductRepository
}

func NewCatalogService(p *repository.ProductRepository) *CatalogService {
	return &CatalogService{Products: p}
}

func (s *CatalogService) List(ctx context.Context) ([]model.Product, error) {
	return s.Products.ListActive(ctx)
}

func (s *CatalogService) NewArrivals(ctx context.Context) ([]model.Product, error) {
	return s.Products.ListNewArrivals(ctx)
}

func (s *CatalogService) BySlug(ctx context.Context, slug string) (*model.Product, error) {
	p, err := s.Products.GetBySlug(ctx, slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	return p, err
}

// Search matches active products on name or description. An empty query
// returns an empty result, not the whole catalog.
func (s *CatalogService) Search(ctx context.Context, q string) ([]model.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []model.Product{}, nil
	}
	return s.Products.Search(ctx, q)
}

func (s *CatalogService) Categories(ctx context.Context) ([]model.Category, error) {
	return s.Products.ListCategories(ctx)
}

func (s *CatalogService) CategoryProducts(ctx context.Context, slug string) (*model.Category, []model.Product, error) {
	cat, err := s.Products.GetCategoryBySlug(ctx, slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, errors.New("category not found")
	}
	if err != nil {
		return nil, nil, err
	}
	products, err := s.Products.ListByCategory(ctx, cat.CategoryID)
	if err != nil {
		return nil, nil, err
	}
	return cat, products, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, c *model.Category) (int64, error) {
	if c.Name == "" || c.Slug == "" {
		return 0, errors.New("name and slug are required")
	}
	return s.Products.CreateCategory(ctx, c)
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *model.Product) (int64, error) {
	if err := validateProduct(p); err != nil {
		return 0, err
	}
	return s.Products.Create(ctx, p)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p *model.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	return s.Products.Update(ctx, p)
}

func (s *CatalogService) DeactivateProduct(ctx context.Context, id int64) error {
	return s.Products.Deactivate(ctx, id)
}

func validateProduct(p *model.Product) error {
	if p.Name == "" || p.Slug == "" {
		return errors.New("name and slug are required")
	}
	if p.Price.IsNegative() {
		return errors.New("price must not be negative")
	}
	if p.Stock < 0 {
		return errors.New("stock must not be negative")
	}
	return nil
}
