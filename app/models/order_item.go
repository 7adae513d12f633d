package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	ID          string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	OrderID     string          `gorm:"size:36;not null;index"`
	ProductID   string          `gorm:"size:36;not null;index"`
	ProductName string          `gorm:"size:255;not null"`
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	CreatedAt   time.Time
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}
