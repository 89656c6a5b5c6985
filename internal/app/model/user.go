package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// User accounts start inactive and must be approved by an admin before
// the first login. Block/unblock toggles IsActive afterwards.
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	FirstName    string         `gorm:"not null" json:"first_name"`
	LastName     string         `json:"last_name"`
	Role         UserRole       `gorm:"type:varchar(20);default:'customer'" json:"role"`
	IsActive     bool           `gorm:"default:false" json:"is_active"`
	LastLoginAt  *time.Time     `json:"last_login_at,omitempty"` // nil until the first successful login
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Addresses []Address `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
}

func (User) TableName() string {
	return "users"
}
