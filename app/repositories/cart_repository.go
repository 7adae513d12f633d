package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/wishcrate/app/models"
	"gorm.io/gorm"
)

type CartRepository interface {
	FindByUserID(ctx context.Context, tx *gorm.DB, userID string) (*models.Cart, error)
	CreateCart(ctx context.Context, tx *gorm.DB, cart *models.Cart) error
	GetCartWithItems(ctx context.Context, tx *gorm.DB, cartID string) (*models.Cart, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db}
}

func (r *cartRepository) FindByUserID(ctx context.Context, tx *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := conn(ctx, r.db, tx).Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) CreateCart(ctx context.Context, tx *gorm.DB, cart *models.Cart) error {
	return conn(ctx, r.db, tx).Create(cart).Error
}

func (r *cartRepository) GetCartWithItems(ctx context.Context, tx *gorm.DB, cartID string) (*models.Cart, error) {
	var cart models.Cart
	err := conn(ctx, r.db, tx).
		Preload("CartItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("CartItems.Product").
		First(&cart, "id = ?", cartID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}
