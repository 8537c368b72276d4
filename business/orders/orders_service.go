package orders

import (
	"context"
	"errors"
	"sync"
	"time"

	"kledje/domain"
	"kledje/internal/query"
	"kledje/pkg/logger"
	"kledje/pkg/metrics"

	"github.com/shopspring/decimal"
)

type OrdersRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetAllOrders(ctx context.Context, params query.Params) ([]domain.Order, query.Page, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Stats(ctx context.Context) (*domain.OrderStats, error)
}

type Mailer interface {
	SendEmail(ctx context.Context, msg domain.EmailMessage) error
}

const emailTimeout = 15 * time.Second

type OrdersService struct {
	orderRepo OrdersRepository
	mailer    Mailer
	ids       *IDGenerator
	wg        sync.WaitGroup
}

func NewOrdersService(orderRepo OrdersRepository, mailer Mailer, ids *IDGenerator) *OrdersService {
	if ids == nil {
		ids = NewIDGenerator(time.Now)
	}

	return &OrdersService{
		orderRepo: orderRepo,
		mailer:    mailer,
		ids:       ids,
	}
}

// CreateOrder assigns the id, total and initial status server-side. Client
// supplied values for those fields are ignored.
func (s *OrdersService) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	order.ID = s.ids.Next()
	order.Total = Total(order.Items)
	order.Status = domain.OrderStatusPlaced
	if order.PaymentMethod == "" {
		order.PaymentMethod = domain.PaymentCOD
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		logger.Error("Failed to create order", "error", err)
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	logger.Info("Order placed", "order_id", order.ID, "total", order.Total)

	if msg, ok, err := confirmationEmail(order); err != nil {
		logger.Error("Failed to render confirmation email", "order_id", order.ID, "error", err)
	} else if ok {
		s.send("order_confirmation", msg)
	}

	return order, nil
}

func (s *OrdersService) GetAllOrders(ctx context.Context, q map[string]any) ([]domain.Order, query.Page, error) {
	params := query.FromPagination(q, query.OrderFilters(q))

	orders, page, err := s.orderRepo.GetAllOrders(ctx, params)
	if err != nil {
		logger.Error("Failed to list orders", "error", err)
		return nil, query.Page{}, err
	}

	return orders, page, nil
}

func (s *OrdersService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orderRepo.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	return order, nil
}

// UpdateStatus allows any transition between the known statuses.
func (s *OrdersService) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	if !domain.IsValidOrderStatus(status) {
		return nil, domain.NewValidationError(domain.MsgInvalidStatus)
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("Failed to update order status", "order_id", id, "error", err)
		}
		return nil, notFound(err)
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.OrderStatusChanges.WithLabelValues(status).Inc()
	logger.Info("Order status updated", "order_id", id, "status", status)

	if msg, ok, err := statusEmail(order); err != nil {
		logger.Error("Failed to render status email", "order_id", id, "error", err)
	} else if ok {
		s.send("status_update", msg)
	}

	return order, nil
}

func (s *OrdersService) Stats(ctx context.Context) (*domain.OrderStats, error) {
	stats, err := s.orderRepo.Stats(ctx)
	if err != nil {
		logger.Error("Failed to compute order stats", "error", err)
		return nil, err
	}

	return stats, nil
}

// Wait blocks until every queued email has been attempted.
func (s *OrdersService) Wait() {
	s.wg.Wait()
}

// send delivers in the background. A failed email never fails the order.
func (s *OrdersService) send(template string, msg domain.EmailMessage) {
	if s.mailer == nil {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), emailTimeout)
		defer cancel()

		if err := s.mailer.SendEmail(ctx, msg); err != nil {
			metrics.EmailsSent.WithLabelValues(template, "error").Inc()
			logger.Warn("Failed to send email", "template", template, "to", msg.ToEmail, "error", err)
			return
		}

		metrics.EmailsSent.WithLabelValues(template, "ok").Inc()
	}()
}

// Total sums price*quantity in decimal and rounds to two places.
func Total(items []domain.OrderItem) float64 {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return sum.Round(2).InexactFloat64()
}

func notFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewNotFoundError(domain.MsgOrderNotFound, err)
	}
	return err
}
