package product

import (
	"context"
	"errors"
	"fmt"

	"kledje/domain"
	"kledje/internal/query"
	"kledje/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	List(ctx context.Context, params query.Params) ([]domain.Product, query.Page, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]string, error)
}

type productService struct {
	productRepo ProductRepository
}

func NewProductService(productRepo ProductRepository) *productService {
	return &productService{
		productRepo: productRepo,
	}
}

// ListProducts expects q to be normalized by the pagination schema.
func (s *productService) ListProducts(ctx context.Context, q map[string]any) ([]domain.Product, query.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, query.Page{}, fmt.Errorf("context error: %w", err)
	}

	params := query.FromPagination(q, query.ProductFilters(q))
	products, page, err := s.productRepo.List(ctx, params)
	if err != nil {
		logger.Error("Failed to list products", "error", err)
		return nil, query.Page{}, err
	}

	return products, page, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("Failed to create product", "error", err)
		return nil, err
	}

	logger.Info("Product created", "product_id", product.ID)
	return product, nil
}

// UpdateProduct replaces every mutable column and returns the stored row.
func (s *productService) UpdateProduct(ctx context.Context, id string, product *domain.Product) (*domain.Product, error) {
	product.ID = id
	if err := s.productRepo.Update(ctx, product); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("Failed to update product", "product_id", id, "error", err)
		}
		return nil, notFound(err)
	}

	return s.GetProductByID(ctx, id)
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("Failed to delete product", "product_id", id, "error", err)
		}
		return notFound(err)
	}

	logger.Info("Product deleted", "product_id", id)
	return nil
}

func (s *productService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.productRepo.Categories(ctx)
	if err != nil {
		logger.Error("Failed to list categories", "error", err)
		return nil, err
	}

	return categories, nil
}

func notFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewNotFoundError(domain.MsgProductNotFound, err)
	}
	return err
}
