package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/wishcrate/app/models"
	"gorm.io/gorm"
)

type AddressRepository interface {
	FindAddressByID(ctx context.Context, id string) (*models.Address, error)
	FindAddressesByUserID(ctx context.Context, userID string) ([]models.Address, error)
	CountByUserID(ctx context.Context, tx *gorm.DB, userID string) (int64, error)
	CreateAddress(ctx context.Context, tx *gorm.DB, address *models.Address) error
	ClearDefault(ctx context.Context, tx *gorm.DB, userID string) error
	DeleteAddress(ctx context.Context, id string) error
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) FindAddressByID(ctx context.Context, id string) (*models.Address, error) {
	var address models.Address
	err := r.db.WithContext(ctx).First(&address, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) FindAddressesByUserID(ctx context.Context, userID string) ([]models.Address, error) {
	var addresses []models.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at ASC").
		Find(&addresses).Error
	return addresses, err
}

func (r *addressRepository) CountByUserID(ctx context.Context, tx *gorm.DB, userID string) (int64, error) {
	var count int64
	err := conn(ctx, r.db, tx).Model(&models.Address{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *addressRepository) CreateAddress(ctx context.Context, tx *gorm.DB, address *models.Address) error {
	return conn(ctx, r.db, tx).Create(address).Error
}

func (r *addressRepository) ClearDefault(ctx context.Context, tx *gorm.DB, userID string) error {
	return conn(ctx, r.db, tx).
		Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}

func (r *addressRepository) DeleteAddress(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Address{}, "id = ?", id).Error
}
