package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CREATE TABLE public.offers (
//     id           UUID PRIMARY KEY,
//     title        TEXT NOT NULL,
//     description  TEXT,
//     discount     INTEGER NOT NULL,
//     category     TEXT,
//     end_date     TIMESTAMPTZ,
//     active       BOOLEAN NOT NULL DEFAULT TRUE,
//     created_at   TIMESTAMPTZ DEFAULT NOW(),
//     updated_at   TIMESTAMPTZ DEFAULT NOW()
// );

type Offer struct {
	ID          string     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"column:title;not null" json:"title"`
	Description *string    `gorm:"column:description" json:"description"`
	Discount    int        `gorm:"column:discount;not null" json:"discount"`
	Category    *string    `gorm:"column:category" json:"category"`
	EndDate     *time.Time `gorm:"column:end_date" json:"end_date"`
	Active      bool       `gorm:"column:active;not null" json:"active"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Offer) TableName() string {
	return "offers"
}

func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// Expired reports whether the offer has an end date at or before now.
func (o Offer) Expired(now time.Time) bool {
	return o.EndDate != nil && !o.EndDate.After(now)
}
