package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID            string           `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name          string           `gorm:"size:255;not null;index"`
	Description   string           `gorm:"type:text"`
	Price         decimal.Decimal  `gorm:"type:decimal(16,2);not null"`
	DiscountPrice *decimal.Decimal `gorm:"type:decimal(16,2)"`
	StockQuantity int              `gorm:"not null;default:0"`
	Brand         string           `gorm:"size:100"`
	Sku           string           `gorm:"size:100;index"`
	ImageURL      string           `gorm:"size:500"`
	CategoryID    string           `gorm:"size:36;not null;index"`
	Category      *Category        `gorm:"foreignKey:CategoryID"`
	SellerID      *string          `gorm:"size:36;index"`
	Featured      bool             `gorm:"default:false;not null"`
	Active        bool             `gorm:"default:true;not null;index"`
	AverageRating decimal.Decimal  `gorm:"type:decimal(3,2);default:0"`
	TotalReviews  int              `gorm:"default:0;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

// UnitPrice is the price a new cart line captures.
func (p *Product) UnitPrice() decimal.Decimal {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}
