package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product rows are never physically removed once an order references
// them; IsDeleted hides them from the storefront instead.
type Product struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string          `gorm:"size:512" json:"image"` // uploaded file URL
	IsDeleted   bool            `gorm:"default:false;index" json:"is_deleted"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Derived via aggregation over ratings, never stored.
	AverageRating float64 `gorm:"-:migration;->" json:"average_rating"`
	RatingCount   int64   `gorm:"-:migration;->" json:"rating_count"`
}

func (Product) TableName() string {
	return "products"
}
