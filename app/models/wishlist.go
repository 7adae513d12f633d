package models

import "time"

type WishlistItem struct {
	UserID    string   `gorm:"size:36;primaryKey"`
	ProductID string   `gorm:"size:36;primaryKey"`
	Product   *Product `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time
}

func (WishlistItem) TableName() string {
	return "user_wishlist"
}
