package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

// ValidOrderStatuses is the full set accepted by the admin status update.
var ValidOrderStatuses = []OrderStatus{
	OrderStatusApproved,
	OrderStatusShipped,
	OrderStatusDelivered,
}

func (s OrderStatus) Valid() bool {
	for _, v := range ValidOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Order is an immutable snapshot of the cart at placement time. Deleting
// the shipping address nulls AddressID; the order itself is preserved.
type Order struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	AddressID   *uint           `gorm:"index" json:"address_id,omitempty"`
	Status      OrderStatus     `gorm:"type:varchar(20);default:'approved'" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	User    User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Address *Address    `gorm:"foreignKey:AddressID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"address,omitempty"`
	Items   []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem copies the product's unit price at purchase time so later
// price changes never affect historical orders.
type OrderItem struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null;default:1" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`

	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
