package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rakhulsr/wishcrate/app/auth"
	"github.com/Rakhulsr/wishcrate/app/metrics"
	"github.com/Rakhulsr/wishcrate/app/models"
	"github.com/Rakhulsr/wishcrate/app/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var cancellableStatuses = []models.OrderStatus{models.OrderStatusPending, models.OrderStatusConfirmed}

type OrderService struct {
	db          *gorm.DB
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		db:          db,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger.Named("order"),
		now:         time.Now,
	}
}

func (s *OrderService) ListOrders(ctx context.Context, caller auth.Identity, page repositories.PageRequest) (*Page[OrderDTO], error) {
	orders, total, err := s.orderRepo.FindByUserID(ctx, caller.UserID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return newPage(toOrderDTOs(orders), page, total), nil
}

func (s *OrderService) GetOrder(ctx context.Context, caller auth.Identity, orderID string) (*OrderDTO, error) {
	order, err := s.orderRepo.GetByID(ctx, nil, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, notFound("order", orderID)
	}
	if !caller.Owns(order.UserID) {
		return nil, ErrUnauthorized
	}
	return toOrderDTO(order), nil
}

// CancelOrder is allowed for the owner while the order is PENDING or
// CONFIRMED. The status flip is conditional, so a concurrent second cancel
// finds no matching row and cannot restore stock twice.
func (s *OrderService) CancelOrder(ctx context.Context, caller auth.Identity, orderID string) (*OrderDTO, error) {
	var cancelled *models.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.GetByID(ctx, tx, orderID)
		if err != nil {
			return fmt.Errorf("failed to get order: %w", err)
		}
		if order == nil {
			return notFound("order", orderID)
		}
		if !caller.Owns(order.UserID) {
			return ErrUnauthorized
		}

		ok, err := s.orderRepo.TransitionStatus(ctx, tx, order.ID, cancellableStatuses, models.OrderStatusCancelled)
		if err != nil {
			return fmt.Errorf("failed to cancel order: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: order %s cannot be cancelled", ErrInvalidStateTransition, order.OrderNumber)
		}

		for _, item := range order.OrderItems {
			if err := s.productRepo.IncrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return fmt.Errorf("failed to restore stock for product %s: %w", item.ProductID, err)
			}
		}

		order.Status = models.OrderStatusCancelled
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordCancellation()
	s.logger.Info("order cancelled", zap.String("order_number", cancelled.OrderNumber), zap.String("user_id", caller.UserID))
	return toOrderDTO(cancelled), nil
}

func ParseOrderStatus(value string) (models.OrderStatus, error) {
	status := models.OrderStatus(strings.ToUpper(strings.TrimSpace(value)))
	if !status.Valid() {
		return "", invalid("unknown order status %q", value)
	}
	return status, nil
}

// UpdateOrderStatus sets the status without transition checks. DELIVERED
// stamps the delivery date.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID, value string) (*OrderDTO, error) {
	status, err := ParseOrderStatus(value)
	if err != nil {
		return nil, err
	}

	var updated *models.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.GetByID(ctx, tx, orderID)
		if err != nil {
			return fmt.Errorf("failed to get order: %w", err)
		}
		if order == nil {
			return notFound("order", orderID)
		}

		var deliveredDate *time.Time
		if status == models.OrderStatusDelivered {
			now := s.now()
			deliveredDate = &now
		}
		if err := s.orderRepo.UpdateStatus(ctx, tx, order.ID, status, deliveredDate); err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		order.Status = status
		if deliveredDate != nil {
			order.DeliveredDate = deliveredDate
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order status updated", zap.String("order_number", updated.OrderNumber), zap.String("status", string(status)))
	return toOrderDTO(updated), nil
}

func (s *OrderService) ListAllOrders(ctx context.Context, statusFilter string, page repositories.PageRequest) (*Page[OrderDTO], error) {
	var status models.OrderStatus
	if statusFilter != "" {
		parsed, err := ParseOrderStatus(statusFilter)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	orders, total, err := s.orderRepo.FindAll(ctx, status, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return newPage(toOrderDTOs(orders), page, total), nil
}

func toOrderDTOs(orders []models.Order) []OrderDTO {
	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, *toOrderDTO(&orders[i]))
	}
	return dtos
}
