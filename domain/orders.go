package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.orders (
//     id              TEXT PRIMARY KEY,            -- KLD-<unix millis>
//     items           JSONB NOT NULL,
//     total           NUMERIC NOT NULL,
//     customer_info   JSONB NOT NULL,
//     payment_method  TEXT NOT NULL DEFAULT 'cod',
//     status          TEXT NOT NULL DEFAULT 'placed',
//     created_at      TIMESTAMPTZ DEFAULT NOW(),
//     updated_at      TIMESTAMPTZ DEFAULT NOW()
// );

const (
	OrderStatusPlaced     = "placed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"

	PaymentCOD    = "cod"
	PaymentCard   = "card"
	PaymentWallet = "wallet"
)

var OrderStatuses = []string{
	OrderStatusPlaced,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type OrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type CustomerInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	City      string `json:"city"`
	Address   string `json:"address"`
	Notes     string `json:"notes,omitempty"`
}

type Order struct {
	ID            string                          `gorm:"column:id;primaryKey" json:"id"`
	Items         datatypes.JSONSlice[OrderItem]  `gorm:"column:items;not null" json:"items"`
	Total         float64                         `gorm:"column:total;type:numeric;not null" json:"total"`
	CustomerInfo  datatypes.JSONType[CustomerInfo] `gorm:"column:customer_info;not null" json:"customer_info"`
	PaymentMethod string                          `gorm:"column:payment_method;not null" json:"payment_method"`
	Status        string                          `gorm:"column:status;not null;index" json:"status"`
	CreatedAt     time.Time                       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time                       `gorm:"column:updated_at" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderStats struct {
	TotalOrders    int64            `json:"totalOrders"`
	TotalRevenue   float64          `json:"totalRevenue"`
	OrdersByStatus map[string]int64 `json:"ordersByStatus"`
}
