package rest

import (
	"context"
	"net/http"
	"time"

	"kledje/domain"
	"kledje/internal/query"
	"kledje/internal/schema"
	"kledje/pkg/response"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type OrdersService interface {
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetAllOrders(ctx context.Context, q map[string]any) ([]domain.Order, query.Page, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
	Stats(ctx context.Context) (*domain.OrderStats, error)
}

type OrdersHandler struct {
	ordersService OrdersService
	validator     RequestValidator
	timeout       time.Duration
}

func NewOrdersHandler(ordersService OrdersService, validator RequestValidator) *OrdersHandler {
	return &OrdersHandler{
		ordersService: ordersService,
		validator:     validator,
		timeout:       defaultTimeout,
	}
}

// OrderRequest has no id, total or status; the server assigns those.
type OrderRequest struct {
	Items         []domain.OrderItem  `json:"items"`
	CustomerInfo  domain.CustomerInfo `json:"customer_info"`
	PaymentMethod string              `json:"payment_method"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrdersHandler) CreateOrder(c echo.Context) error {
	var req OrderRequest
	if err := decodeBody(c, h.validator, schema.Order, &req); err != nil {
		return err
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	order, err := h.ordersService.CreateOrder(ctx, &domain.Order{
		Items:         datatypes.JSONSlice[domain.OrderItem](req.Items),
		CustomerInfo:  datatypes.NewJSONType(req.CustomerInfo),
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, response.Message(domain.MsgOrderCreated, order))
}

func (h *OrdersHandler) GetAllOrders(c echo.Context) error {
	q, err := validateQuery(c, h.validator, schema.Pagination)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	orders, page, err := h.ordersService.GetAllOrders(ctx, q)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listResponse(orders, len(orders), page))
}

func (h *OrdersHandler) GetOrder(c echo.Context) error {
	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	order, err := h.ordersService.GetOrder(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.OK(order))
}

func (h *OrdersHandler) UpdateStatus(c echo.Context) error {
	var req UpdateStatusRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return err
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	order, err := h.ordersService.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Message(domain.MsgOrderUpdated, order))
}

func (h *OrdersHandler) Stats(c echo.Context) error {
	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	stats, err := h.ordersService.Stats(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.OK(stats))
}
