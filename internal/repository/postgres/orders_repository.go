package postgres

import (
	"context"
	"fmt"

	"kledje/domain"
	"kledje/internal/query"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

func (r *OrdersRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	if err := r.DB.WithContext(ctx).Create(order).Error; err != nil {
		return storeError("create order", err)
	}

	return nil
}

func (r *OrdersRepository) GetAllOrders(ctx context.Context, params query.Params) ([]domain.Order, query.Page, error) {
	var orders []domain.Order

	page, err := query.Run(ctx, r.DB, &domain.Order{}, params, &orders)
	if err != nil {
		return nil, query.Page{}, err
	}

	return orders, page, nil
}

func (r *OrdersRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order

	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, storeError("find order", err)
	}

	return &order, nil
}

func (r *OrdersRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result := r.DB.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return storeError("update order status", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("update order status: %w", domain.ErrNotFound)
	}

	return nil
}

// Stats counts all orders, sums revenue over delivered orders only and groups
// counts by status.
func (r *OrdersRepository) Stats(ctx context.Context) (*domain.OrderStats, error) {
	stats := &domain.OrderStats{OrdersByStatus: map[string]int64{}}

	db := r.DB.WithContext(ctx)

	if err := db.Model(&domain.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, storeError("count orders", err)
	}

	err := db.Model(&domain.Order{}).
		Select("COALESCE(SUM(total), 0)").
		Where("status = ?", domain.OrderStatusDelivered).
		Scan(&stats.TotalRevenue).Error
	if err != nil {
		return nil, storeError("sum revenue", err)
	}

	var rows []struct {
		Status string
		Count  int64
	}
	err = db.Model(&domain.Order{}).
		Select("status, COUNT(*) AS count").
		Where("status IS NOT NULL").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, storeError("count orders by status", err)
	}

	for _, row := range rows {
		stats.OrdersByStatus[row.Status] = row.Count
	}

	return stats, nil
}
