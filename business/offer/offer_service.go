package offer

import (
	"context"
	"errors"
	"time"

	"kledje/domain"
	"kledje/internal/query"
	"kledje/pkg/logger"
)

type OfferRepository interface {
	List(ctx context.Context, params query.Params) ([]domain.Offer, query.Page, error)
	ListActive(ctx context.Context, now time.Time) ([]domain.Offer, error)
	FindByID(ctx context.Context, id string) (*domain.Offer, error)
	Create(ctx context.Context, offer *domain.Offer) error
	Update(ctx context.Context, offer *domain.Offer) error
	Delete(ctx context.Context, id string) error
}

type offerService struct {
	offerRepo OfferRepository
	now       func() time.Time
}

func NewOfferService(offerRepo OfferRepository) *offerService {
	return NewOfferServiceWithClock(offerRepo, time.Now)
}

func NewOfferServiceWithClock(offerRepo OfferRepository, now func() time.Time) *offerService {
	return &offerService{
		offerRepo: offerRepo,
		now:       now,
	}
}

// ListOffers hides expired offers unless the caller is an admin.
func (s *offerService) ListOffers(ctx context.Context, q map[string]any, isAdmin bool) ([]domain.Offer, query.Page, error) {
	params := query.FromPagination(q, query.OfferFilters(q, isAdmin, s.now()))

	offers, page, err := s.offerRepo.List(ctx, params)
	if err != nil {
		logger.Error("Failed to list offers", "error", err)
		return nil, query.Page{}, err
	}

	return offers, page, nil
}

// ActiveOffers returns active, unexpired offers, newest first.
func (s *offerService) ActiveOffers(ctx context.Context) ([]domain.Offer, error) {
	offers, err := s.offerRepo.ListActive(ctx, s.now())
	if err != nil {
		logger.Error("Failed to list active offers", "error", err)
		return nil, err
	}

	return offers, nil
}

// GetOfferByID reports an expired offer as missing to non-admins.
func (s *offerService) GetOfferByID(ctx context.Context, id string, isAdmin bool) (*domain.Offer, error) {
	offer, err := s.offerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	if !isAdmin && offer.Expired(s.now()) {
		return nil, domain.NewNotFoundError(domain.MsgOfferNotFound, domain.ErrNotFound)
	}

	return offer, nil
}

func (s *offerService) CreateOffer(ctx context.Context, offer *domain.Offer) (*domain.Offer, error) {
	if err := s.offerRepo.Create(ctx, offer); err != nil {
		logger.Error("Failed to create offer", "error", err)
		return nil, err
	}

	logger.Info("Offer created", "offer_id", offer.ID)
	return offer, nil
}

func (s *offerService) UpdateOffer(ctx context.Context, id string, offer *domain.Offer) (*domain.Offer, error) {
	offer.ID = id
	if err := s.offerRepo.Update(ctx, offer); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("Failed to update offer", "offer_id", id, "error", err)
		}
		return nil, notFound(err)
	}

	return s.GetOfferByID(ctx, id, true)
}

func (s *offerService) DeleteOffer(ctx context.Context, id string) error {
	if err := s.offerRepo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("Failed to delete offer", "offer_id", id, "error", err)
		}
		return notFound(err)
	}

	logger.Info("Offer deleted", "offer_id", id)
	return nil
}

func notFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewNotFoundError(domain.MsgOfferNotFound, err)
	}
	return err
}
