package postgres

import (
	"context"
	"fmt"
	"time"

	"kledje/domain"
	"kledje/internal/query"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OfferRepository struct {
	DB *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{
		DB: db,
	}
}

func (r *OfferRepository) List(ctx context.Context, params query.Params) ([]domain.Offer, query.Page, error) {
	var offers []domain.Offer

	page, err := query.Run(ctx, r.DB, &domain.Offer{}, params, &offers)
	if err != nil {
		return nil, query.Page{}, err
	}

	return offers, page, nil
}

// ListActive returns active offers that have not ended, newest first.
func (r *OfferRepository) ListActive(ctx context.Context, now time.Time) ([]domain.Offer, error) {
	var offers []domain.Offer

	exprs := query.Expressions([]query.Filter{
		query.Equals{Field: "active", Value: true},
		query.Visible(now),
	})

	err := r.DB.WithContext(ctx).
		Clauses(clause.Where{Exprs: exprs}).
		Order(query.ParseSort("-created_at").OrderBy()).
		Find(&offers).Error
	if err != nil {
		return nil, storeError("list active offers", err)
	}

	return offers, nil
}

func (r *OfferRepository) FindByID(ctx context.Context, id string) (*domain.Offer, error) {
	var offer domain.Offer

	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&offer).Error; err != nil {
		return nil, storeError("find offer", err)
	}

	return &offer, nil
}

func (r *OfferRepository) Create(ctx context.Context, offer *domain.Offer) error {
	if err := r.DB.WithContext(ctx).Create(offer).Error; err != nil {
		return storeError("create offer", err)
	}

	return nil
}

func (r *OfferRepository) Update(ctx context.Context, offer *domain.Offer) error {
	result := r.DB.WithContext(ctx).Model(&domain.Offer{}).
		Where("id = ?", offer.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(offer)
	if result.Error != nil {
		return storeError("update offer", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("update offer: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *OfferRepository) Delete(ctx context.Context, id string) error {
	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Offer{})
	if result.Error != nil {
		return storeError("delete offer", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("delete offer: %w", domain.ErrNotFound)
	}

	return nil
}
