package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddressType string

const (
	AddressTypeHome  AddressType = "HOME"
	AddressTypeWork  AddressType = "WORK"
	AddressTypeOther AddressType = "OTHER"
)

const DefaultCountry = "India"

type Address struct {
	ID           string      `gorm:"size:36;not null;uniqueIndex;primary_key"`
	UserID       string      `gorm:"size:36;not null;index"`
	FullName     string      `gorm:"size:255;not null"`
	PhoneNumber  string      `gorm:"size:20"`
	AddressLine1 string      `gorm:"size:255;not null"`
	AddressLine2 string      `gorm:"size:255"`
	City         string      `gorm:"size:100;not null"`
	State        string      `gorm:"size:100"`
	Country      string      `gorm:"size:100;not null"`
	ZipCode      string      `gorm:"size:20"`
	IsDefault    bool        `gorm:"default:false;not null"`
	Type         AddressType `gorm:"size:10;default:'HOME';not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (a *Address) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}
