package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/wishcrate/app/models"
	"gorm.io/gorm"
)

type CartItemRepository interface {
	Add(ctx context.Context, tx *gorm.DB, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, tx *gorm.DB, itemID string, qty int) error
	Delete(ctx context.Context, tx *gorm.DB, itemID string) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.CartItem, error)
	GetCartAndProduct(ctx context.Context, tx *gorm.DB, cartID, productID string) (*models.CartItem, error)
	ClearCartItems(ctx context.Context, tx *gorm.DB, cartID string) error
}

type cartItemRepository struct {
	db *gorm.DB
}

func NewCartItemRepository(db *gorm.DB) CartItemRepository {
	return &cartItemRepository{db}
}

func (r *cartItemRepository) Add(ctx context.Context, tx *gorm.DB, item *models.CartItem) error {
	return conn(ctx, r.db, tx).Omit("Product").Create(item).Error
}

func (r *cartItemRepository) UpdateQuantity(ctx context.Context, tx *gorm.DB, itemID string, qty int) error {
	return conn(ctx, r.db, tx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", qty).Error
}

func (r *cartItemRepository) Delete(ctx context.Context, tx *gorm.DB, itemID string) error {
	return conn(ctx, r.db, tx).Delete(&models.CartItem{}, "id = ?", itemID).Error
}

func (r *cartItemRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.CartItem, error) {
	var item models.CartItem
	err := conn(ctx, r.db, tx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartItemRepository) GetCartAndProduct(ctx context.Context, tx *gorm.DB, cartID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	err := conn(ctx, r.db, tx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartItemRepository) ClearCartItems(ctx context.Context, tx *gorm.DB, cartID string) error {
	return conn(ctx, r.db, tx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
