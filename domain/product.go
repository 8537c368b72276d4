package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CREATE TABLE public.products (
//     id              UUID PRIMARY KEY,
//     name            TEXT NOT NULL,
//     name_en         TEXT,
//     description     TEXT,
//     price           NUMERIC NOT NULL,
//     original_price  NUMERIC,
//     discount        INTEGER NOT NULL DEFAULT 0,
//     category        TEXT NOT NULL,
//     image           TEXT,
//     ingredients     JSONB,
//     featured        BOOLEAN NOT NULL DEFAULT FALSE,
//     in_stock        BOOLEAN NOT NULL DEFAULT TRUE,
//     created_at      TIMESTAMPTZ DEFAULT NOW(),
//     updated_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID            string                      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name          string                      `gorm:"column:name;not null" json:"name"`
	NameEn        *string                     `gorm:"column:name_en" json:"name_en"`
	Description   *string                     `gorm:"column:description" json:"description"`
	Price         float64                     `gorm:"column:price;type:numeric;not null" json:"price"`
	OriginalPrice *float64                    `gorm:"column:original_price;type:numeric" json:"original_price"`
	Discount      int                         `gorm:"column:discount;not null" json:"discount"`
	Category      string                      `gorm:"column:category;not null;index" json:"category"`
	Image         *string                     `gorm:"column:image" json:"image"`
	Ingredients   datatypes.JSONSlice[string] `gorm:"column:ingredients" json:"ingredients"`
	Featured      bool                        `gorm:"column:featured;not null" json:"featured"`
	InStock       bool                        `gorm:"column:in_stock;not null" json:"in_stock"`
	CreatedAt     time.Time                   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time                   `gorm:"column:updated_at" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
