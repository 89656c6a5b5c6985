package model

import (
	"time"
)

// Cart is one-to-one with a user and created lazily on the first add.
// The row survives order placement; only its items are cleared.
type Cart struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Cart) TableName() string {
	return "carts"
}

type CartItem struct {
	ID        uint `gorm:"primarykey" json:"id"`
	CartID    uint `gorm:"not null;index" json:"cart_id"`
	ProductID uint `gorm:"not null;index" json:"product_id"`
	Quantity  int  `gorm:"not null;default:1" json:"quantity"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
