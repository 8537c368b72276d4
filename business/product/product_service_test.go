package product

import (
	"context"
	"testing"

	"kledje/domain"
	"kledje/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) List(ctx context.Context, params query.Params) ([]domain.Product, query.Page, error) {
	args := m.Called(ctx, params)
	products, _ := args.Get(0).([]domain.Product)
	return products, args.Get(1).(query.Page), args.Error(2)
}

func (m *mockProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Product)
	return p, args.Error(1)
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProductRepository) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]string)
	return c, args.Error(1)
}

func TestListProductsBuildsParams(t *testing.T) {
	ctx := context.Background()
	repo := new(mockProductRepository)
	svc := NewProductService(repo)

	q := map[string]any{"page": 2, "limit": 5, "sort": "price", "category": "honey", "featured": "true"}
	repo.On("List", ctx, mock.MatchedBy(func(p query.Params) bool {
		return p.Page == 2 && p.Limit == 5 && p.Sort == query.Sort{Field: "price"} && len(p.Filters) == 2
	})).Return([]domain.Product{{ID: "p1"}}, query.Page{Total: 6, Page: 2, Limit: 5, Pages: 2}, nil)

	products, page, err := svc.ListProducts(ctx, q)
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 2, page.Pages)
	repo.AssertExpectations(t)
}

func TestGetProductNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(mockProductRepository)
	svc := NewProductService(repo)

	repo.On("FindByID", ctx, "missing").Return(nil, domain.ErrNotFound)

	_, err := svc.GetProductByID(ctx, "missing")
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.KindNotFound, appErr.Kind)
	assert.Equal(t, domain.MsgProductNotFound, appErr.Message)
}

func TestUpdateProductRefetches(t *testing.T) {
	ctx := context.Background()
	repo := new(mockProductRepository)
	svc := NewProductService(repo)

	repo.On("Update", ctx, mock.MatchedBy(func(p *domain.Product) bool { return p.ID == "p1" })).Return(nil)
	repo.On("FindByID", ctx, "p1").Return(&domain.Product{ID: "p1", Name: "Sidr honey", InStock: true}, nil)

	got, err := svc.UpdateProduct(ctx, "p1", &domain.Product{Name: "Sidr honey", InStock: true})
	require.NoError(t, err)
	assert.Equal(t, "Sidr honey", got.Name)
	repo.AssertExpectations(t)
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	repo := new(mockProductRepository)
	svc := NewProductService(repo)

	repo.On("Delete", ctx, "p1").Return(nil)
	repo.On("Delete", ctx, "gone").Return(domain.ErrNotFound)

	require.NoError(t, svc.DeleteProduct(ctx, "p1"))
	assert.True(t, domain.IsKind(svc.DeleteProduct(ctx, "gone"), domain.KindNotFound))
}
