package postgres

import (
	"context"
	"fmt"

	"kledje/domain"
	"kledje/internal/query"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) List(ctx context.Context, params query.Params) ([]domain.Product, query.Page, error) {
	var products []domain.Product

	page, err := query.Run(ctx, r.DB, &domain.Product{}, params, &products)
	if err != nil {
		return nil, query.Page{}, err
	}

	return products, page, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product

	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, storeError("find product", err)
	}

	return &product, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.DB.WithContext(ctx).Create(product).Error; err != nil {
		return storeError("create product", err)
	}

	return nil
}

// Update replaces every writable column of the product.
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	result := r.DB.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ?", product.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(product)
	if result.Error != nil {
		return storeError("update product", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("update product: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{})
	if result.Error != nil {
		return storeError("delete product", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("delete product: %w", domain.ErrNotFound)
	}

	return nil
}

// Categories returns the distinct non-null categories in name order.
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string

	err := r.DB.WithContext(ctx).Model(&domain.Product{}).
		Distinct("category").
		Where("category IS NOT NULL").
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, storeError("list categories", err)
	}

	return categories, nil
}
