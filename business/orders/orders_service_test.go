package orders

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"kledje/domain"
	"kledje/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type mockOrdersRepository struct {
	mock.Mock
}

func (m *mockOrdersRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrdersRepository) GetAllOrders(ctx context.Context, params query.Params) ([]domain.Order, query.Page, error) {
	args := m.Called(ctx, params)
	orders, _ := args.Get(0).([]domain.Order)
	return orders, args.Get(1).(query.Page), args.Error(2)
}

func (m *mockOrdersRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*domain.Order)
	return o, args.Error(1)
}

func (m *mockOrdersRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockOrdersRepository) Stats(ctx context.Context) (*domain.OrderStats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*domain.OrderStats)
	return s, args.Error(1)
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []domain.EmailMessage
	err  error
}

func (r *recordingMailer) SendEmail(_ context.Context, msg domain.EmailMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return r.err
}

func newOrder(email string) *domain.Order {
	return &domain.Order{
		Items: datatypes.JSONSlice[domain.OrderItem]{
			{ID: "p1", Name: "Rose soap", Price: 10, Quantity: 2},
			{ID: "p2", Name: "Lip balm", Price: 5, Quantity: 1},
		},
		CustomerInfo: datatypes.NewJSONType(domain.CustomerInfo{
			FirstName: "Mona", LastName: "Adel", Phone: "01012345678",
			Email: email, City: "Cairo", Address: "12 Tahrir St",
		}),
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	repo := new(mockOrdersRepository)
	mailer := &recordingMailer{}
	svc := NewOrdersService(repo, mailer, nil)

	repo.On("CreateOrder", ctx, mock.Anything).Return(nil)

	order := newOrder("mona@example.com")
	order.Total = 1
	order.Status = domain.OrderStatusDelivered

	got, err := svc.CreateOrder(ctx, order)
	require.NoError(t, err)
	svc.Wait()

	assert.Equal(t, 25.0, got.Total)
	assert.Equal(t, domain.OrderStatusPlaced, got.Status)
	assert.Equal(t, domain.PaymentCOD, got.PaymentMethod)
	assert.Regexp(t, regexp.MustCompile(`^KLD-\d+$`), got.ID)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "تأكيد الطلب #"+got.ID, mailer.sent[0].Subject)
	assert.Contains(t, mailer.sent[0].HTML, "الدفع عند الاستلام")
	assert.Contains(t, mailer.sent[0].HTML, "25.00")
}

func TestCreateOrderSurvivesMailFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(mockOrdersRepository)
	mailer := &recordingMailer{err: errors.New("smtp down")}
	svc := NewOrdersService(repo, mailer, nil)

	repo.On("CreateOrder", ctx, mock.Anything).Return(nil)

	_, err := svc.CreateOrder(ctx, newOrder("mona@example.com"))
	require.NoError(t, err)
	svc.Wait()
	assert.Len(t, mailer.sent, 1)
}

func TestCreateOrderWithoutEmailSendsNothing(t *testing.T) {
	ctx := context.Background()
	repo := new(mockOrdersRepository)
	mailer := &recordingMailer{}
	svc := NewOrdersService(repo, mailer, nil)

	repo.On("CreateOrder", ctx, mock.Anything).Return(nil)

	_, err := svc.CreateOrder(ctx, newOrder(""))
	require.NoError(t, err)
	svc.Wait()
	assert.Empty(t, mailer.sent)
}

func TestIDGeneratorIsMonotonic(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	gen := NewIDGenerator(func() time.Time { return fixed })

	assert.Equal(t, "KLD-1700000000000", gen.Next())
	assert.Equal(t, "KLD-1700000000001", gen.Next())
	assert.Equal(t, "KLD-1700000000002", gen.Next())
}

func TestTotalAvoidsFloatDrift(t *testing.T) {
	items := []domain.OrderItem{{Price: 0.1, Quantity: 3}, {Price: 0.2, Quantity: 1}}
	assert.Equal(t, 0.5, Total(items))
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := new(mockOrdersRepository)
	mailer := &recordingMailer{}
	svc := NewOrdersService(repo, mailer, nil)

	_, err := svc.UpdateStatus(ctx, "KLD-1", "lost")
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.MsgInvalidStatus, appErr.Message)

	repo.On("UpdateStatus", ctx, "KLD-404", domain.OrderStatusShipped).Return(domain.ErrNotFound)
	_, err = svc.UpdateStatus(ctx, "KLD-404", domain.OrderStatusShipped)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	stored := newOrder("mona@example.com")
	stored.ID = "KLD-1"
	stored.Status = domain.OrderStatusShipped
	repo.On("UpdateStatus", ctx, "KLD-1", domain.OrderStatusShipped).Return(nil)
	repo.On("GetOrder", ctx, "KLD-1").Return(stored, nil)

	got, err := svc.UpdateStatus(ctx, "KLD-1", domain.OrderStatusShipped)
	require.NoError(t, err)
	svc.Wait()
	assert.Equal(t, domain.OrderStatusShipped, got.Status)
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].HTML, "تم الشحن")
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "قيد التجهيز", StatusLabel(domain.OrderStatusProcessing))
	assert.Equal(t, "returned", StatusLabel("returned"))
}
