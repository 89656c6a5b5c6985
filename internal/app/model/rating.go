package model

import (
	"time"
)

// Rating holds a single 1..5 score. One per (user, product), enforced by
// a pre-insert existence check in the service layer.
type Rating struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Score     int       `gorm:"not null" json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}

func (Rating) TableName() string {
	return "ratings"
}
