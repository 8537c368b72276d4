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

type ProductService interface {
	ListProducts(ctx context.Context, q map[string]any) ([]domain.Product, query.Page, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]string, error)
}

type ProductHandler struct {
	productService ProductService
	validator      RequestValidator
	timeout        time.Duration
}

func NewProductHandler(productService ProductService, validator RequestValidator) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator,
		timeout:        defaultTimeout,
	}
}

// ProductRequest is the product body after schema normalization.
type ProductRequest struct {
	Name          string   `json:"name"`
	NameEn        *string  `json:"name_en"`
	Description   *string  `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	Discount      int      `json:"discount"`
	Category      string   `json:"category"`
	Image         *string  `json:"image"`
	Ingredients   []string `json:"ingredients"`
	Featured      bool     `json:"featured"`
	InStock       bool     `json:"in_stock"`
}

func (r ProductRequest) toDomain() *domain.Product {
	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}

	return &domain.Product{
		Name:          r.Name,
		NameEn:        r.NameEn,
		Description:   r.Description,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		Discount:      r.Discount,
		Category:      r.Category,
		Image:         r.Image,
		Ingredients:   datatypes.JSONSlice[string](ingredients),
		Featured:      r.Featured,
		InStock:       r.InStock,
	}
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	q, err := validateQuery(c, h.validator, schema.Pagination)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	products, page, err := h.productService.ListProducts(ctx, q)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listResponse(products, len(products), page))
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := validateID(c, h.validator)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	product, err := h.productService.GetProductByID(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.OK(product))
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req ProductRequest
	if err := decodeBody(c, h.validator, schema.Product, &req); err != nil {
		return err
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	product, err := h.productService.CreateProduct(ctx, req.toDomain())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, response.OK(product))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := validateID(c, h.validator)
	if err != nil {
		return err
	}

	var req ProductRequest
	if err := decodeBody(c, h.validator, schema.Product, &req); err != nil {
		return err
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	product, err := h.productService.UpdateProduct(ctx, id, req.toDomain())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.OK(product))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := validateID(c, h.validator)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	if err := h.productService.DeleteProduct(ctx, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Deleted())
}

func (h *ProductHandler) Categories(c echo.Context) error {
	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	categories, err := h.productService.Categories(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.OK(categories))
}

func listResponse(data any, count int, page query.Page) response.ListEnvelope {
	return response.List(data, count, page.Total, response.Pagination{
		Page:  page.Page,
		Limit: page.Limit,
		Pages: page.Pages,
	})
}
