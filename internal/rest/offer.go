package rest

import (
	"context"
	"net/http"
	"time"

	"kledje/domain"
	"kledje/internal/middleware"
	"kledje/internal/query"
	"kledje/internal/schema"
	"kledje/pkg/response"

	"github.com/labstack/echo/v4"
)

type OfferService interface {
	ListOffers(ctx context.Context, q map[string]any, isAdmin bool) ([]domain.Offer, query.Page, error)
	ActiveOffers(ctx context.Context) ([]domain.Offer, error)
	GetOfferByID(ctx context.Context, id string, isAdmin bool) (*domain.Offer, error)
	CreateOffer(ctx context.Context, offer *domain.Offer) (*domain.Offer, error)
	UpdateOffer(ctx context.Context, id string, offer *domain.Offer) (*domain.Offer, error)
	DeleteOffer(ctx context.Context, id string) error
}

type OfferHandler struct {
	offerService OfferService
	validator    RequestValidator
	timeout      time.Duration
}

func NewOfferHandler(offerService OfferService, validator RequestValidator) *OfferHandler {
	return &OfferHandler{
		offerService: offerService,
		validator:    validator,
		timeout:      defaultTimeout,
	}
}

type OfferRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Discount    int        `json:"discount"`
	Category    *string    `json:"category"`
	EndDate     *time.Time `json:"end_date"`
	Active      bool       `json:"active"`
}

func (r OfferRequest) toDomain() *domain.Offer {
	return &domain.Offer{
		Title:       r.Title,
		Description: r.Description,
		Discount:    r.Discount,
		Category:    r.Category,
		EndDate:     r.EndDate,
		Active:      r.Active,
	}
}

// ListOffers sits behind the optional auth middleware; only an admin sees
// expired offers.
func (h *OfferHandler) ListOffers(c echo.Context) error {
	q, err := validateQuery(c, h.validator, schema.Pagination)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	offers, page, err := h.offerService.ListOffers(ctx, q, middleware.IsAdmin(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listResponse(offers, len(offers), page))
}

func (h *OfferHandler) ActiveOffers(c echo.Context) error {
	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	offers, err := h.offerService.ActiveOffers(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Counted(offers, len(offers)))
}

func (h *OfferHandler) GetOffer(c echo.Context) error {
	id, err := validateID(c, h.validator)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	offer, err := h.offerService.GetOfferByID(ctx, id, middleware.IsAdmin(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.OK(offer))
}

func (h *OfferHandler) CreateOffer(c echo.Context) error {
	var req OfferRequest
	if err := decodeBody(c, h.validator, schema.Offer, &req); err != nil {
		return err
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	offer, err := h.offerService.CreateOffer(ctx, req.toDomain())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, response.OK(offer))
}

func (h *OfferHandler) UpdateOffer(c echo.Context) error {
	id, err := validateID(c, h.validator)
	if err != nil {
		return err
	}

	var req OfferRequest
	if err := decodeBody(c, h.validator, schema.Offer, &req); err != nil {
		return err
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	offer, err := h.offerService.UpdateOffer(ctx, id, req.toDomain())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.OK(offer))
}

func (h *OfferHandler) DeleteOffer(c echo.Context) error {
	id, err := validateID(c, h.validator)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	if err := h.offerService.DeleteOffer(ctx, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Deleted())
}
