package model

import (
	"time"
)

// Address is a shipping address. At most one address per user carries
// IsDefault; this is maintained by clearing the flag on the user's other
// rows before setting it, not by a schema constraint. Rows are deleted
// outright; orders that referenced one keep a NULL AddressID.
type Address struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Phone      string    `gorm:"size:15;not null" json:"phone"`
	Street     string    `gorm:"size:255;not null" json:"street"`
	City       string    `gorm:"size:100;not null" json:"city"`
	State      string    `gorm:"size:100;not null" json:"state"`
	Country    string    `gorm:"size:100;not null" json:"country"`
	PostalCode string    `gorm:"size:20;not null" json:"postal_code"`
	IsDefault  bool      `gorm:"default:false" json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Address) TableName() string {
	return "addresses"
}
