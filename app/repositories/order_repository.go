package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Rakhulsr/wishcrate/app/models"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Order, error)
	FindByNumber(ctx context.Context, tx *gorm.DB, orderNumber string) (*models.Order, error)
	FindByUserID(ctx context.Context, userID string, page PageRequest) ([]models.Order, int64, error)
	FindAll(ctx context.Context, status models.OrderStatus, page PageRequest) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, orderID string, status models.OrderStatus, deliveredDate *time.Time) error
	TransitionStatus(ctx context.Context, tx *gorm.DB, orderID string, from []models.OrderStatus, to models.OrderStatus) (bool, error)
	UpdatePaymentStatus(ctx context.Context, tx *gorm.DB, orderID string, status models.PaymentStatus) error
	UpdatePaymentTransaction(ctx context.Context, tx *gorm.DB, orderID, transactionID string) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.OrderStatus) (int64, error)
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return conn(ctx, r.db, tx).Omit("OrderItems").Create(order).Error
}

func (r *gormOrderRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Order, error) {
	var order models.Order
	err := conn(ctx, r.db, tx).Preload("OrderItems").First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) FindByNumber(ctx context.Context, tx *gorm.DB, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := conn(ctx, r.db, tx).Preload("OrderItems").First(&order, "order_number = ?", orderNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) paged(query *gorm.DB, page PageRequest) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	if err := query.Session(&gorm.Session{}).Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("OrderItems").
		Order("order_date DESC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&orders).Error
	return orders, total, err
}

func (r *gormOrderRepository) FindByUserID(ctx context.Context, userID string, page PageRequest) ([]models.Order, int64, error) {
	return r.paged(r.db.WithContext(ctx).Where("user_id = ?", userID), page)
}

func (r *gormOrderRepository) FindAll(ctx context.Context, status models.OrderStatus, page PageRequest) ([]models.Order, int64, error) {
	query := r.db.WithContext(ctx)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	return r.paged(query, page)
}

func (r *gormOrderRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, orderID string, status models.OrderStatus, deliveredDate *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if deliveredDate != nil {
		updates["delivered_date"] = *deliveredDate
	}
	return conn(ctx, r.db, tx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(updates).Error
}

// TransitionStatus moves the order to `to` only while its status is one of
// `from`. It reports false when no row matched.
func (r *gormOrderRepository) TransitionStatus(ctx context.Context, tx *gorm.DB, orderID string, from []models.OrderStatus, to models.OrderStatus) (bool, error) {
	result := conn(ctx, r.db, tx).
		Model(&models.Order{}).
		Where("id = ? AND status IN ?", orderID, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *gormOrderRepository) UpdatePaymentStatus(ctx context.Context, tx *gorm.DB, orderID string, status models.PaymentStatus) error {
	return conn(ctx, r.db, tx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("payment_status", status).Error
}

func (r *gormOrderRepository) UpdatePaymentTransaction(ctx context.Context, tx *gorm.DB, orderID, transactionID string) error {
	return conn(ctx, r.db, tx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("payment_transaction_id", transactionID).Error
}

func (r *gormOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error
	return count, err
}

func (r *gormOrderRepository) CountByStatus(ctx context.Context, status models.OrderStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
