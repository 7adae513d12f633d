package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleSeller   = "seller"
	RoleCustomer = "customer"
)

type User struct {
	ID          string    `gorm:"size:36;not null;uniqueIndex;primary_key"`
	FirstName   string    `gorm:"size:100;not null"`
	LastName    string    `gorm:"size:100;not null"`
	Email       string    `gorm:"size:100;not null;uniqueIndex"`
	Password    string    `gorm:"size:255;not null"`
	PhoneNumber string    `gorm:"size:20"`
	Role        string    `gorm:"size:20;default:'customer';not null"`
	Enabled     bool      `gorm:"default:true;not null"`
	Addresses   []Address `gorm:"foreignKey:UserID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSeller, RoleCustomer:
		return true
	}
	return false
}
