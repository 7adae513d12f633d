package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Rakhulsr/wishcrate/app/auth"
	"github.com/Rakhulsr/wishcrate/app/metrics"
	"github.com/Rakhulsr/wishcrate/app/models"
	"github.com/Rakhulsr/wishcrate/app/repositories"
	"github.com/Rakhulsr/wishcrate/app/utils/calc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const estimatedDeliveryDays = 7

type PlaceOrderRequest struct {
	ShippingAddress map[string]string
	PaymentMethod   string
}

type CheckoutService struct {
	db            *gorm.DB
	cartRepo      repositories.CartRepository
	cartItemRepo  repositories.CartItemRepository
	productRepo   repositories.ProductRepository
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	logger        *zap.Logger
	now           func() time.Time
}

func NewCheckoutService(
	db *gorm.DB,
	cartRepo repositories.CartRepository,
	cartItemRepo repositories.CartItemRepository,
	productRepo repositories.ProductRepository,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		db:            db,
		cartRepo:      cartRepo,
		cartItemRepo:  cartItemRepo,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		logger:        logger.Named("checkout"),
		now:           time.Now,
	}
}

func shippingFromFields(fields map[string]string) models.ShippingAddress {
	return models.ShippingAddress{
		FullName:     fields["fullName"],
		PhoneNumber:  fields["phoneNumber"],
		AddressLine1: fields["addressLine1"],
		AddressLine2: fields["addressLine2"],
		City:         fields["city"],
		State:        fields["state"],
		Country:      fields["country"],
		ZipCode:      fields["zipCode"],
	}
}

func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return "WC" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + suffix
}

func parsePaymentMethod(value string) (models.PaymentMethod, error) {
	if value == "" {
		return models.PaymentMethodCOD, nil
	}
	method := models.PaymentMethod(strings.ToUpper(value))
	if !method.Valid() {
		return "", invalid("unknown payment method %q", value)
	}
	return method, nil
}

// PlaceOrder turns the caller's cart into an order. Stock decrement, order
// creation and cart clearing commit together or not at all.
func (s *CheckoutService) PlaceOrder(ctx context.Context, caller auth.Identity, req PlaceOrderRequest) (*OrderDTO, error) {
	method, err := parsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var order *models.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := s.cartRepo.FindByUserID(ctx, tx, caller.UserID)
		if err != nil {
			return fmt.Errorf("failed to get cart: %w", err)
		}
		if cart == nil {
			return ErrEmptyCart
		}

		cart, err = s.cartRepo.GetCartWithItems(ctx, tx, cart.ID)
		if err != nil {
			return fmt.Errorf("failed to get cart with items: %w", err)
		}
		if cart == nil || len(cart.CartItems) == 0 {
			return ErrEmptyCart
		}

		subtotal := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(cart.CartItems))

		for _, cartItem := range cart.CartItems {
			if cartItem.Product == nil || !cartItem.Product.Active {
				return notFound("product", cartItem.ProductID)
			}
			ok, err := s.productRepo.DecrementStock(ctx, tx, cartItem.ProductID, cartItem.Quantity)
			if err != nil {
				return fmt.Errorf("failed to reserve stock for product %s: %w", cartItem.ProductID, err)
			}
			if !ok {
				return s.stockError(ctx, tx, cartItem)
			}

			lineTotal := calc.LineTotal(cartItem.Price, cartItem.Quantity)
			subtotal = subtotal.Add(lineTotal)

			name := ""
			if cartItem.Product != nil {
				name = cartItem.Product.Name
			}
			orderItems = append(orderItems, models.OrderItem{
				ProductID:   cartItem.ProductID,
				ProductName: name,
				Quantity:    cartItem.Quantity,
				Price:       cartItem.Price,
				Subtotal:    lineTotal,
			})
		}

		tax := calc.CalculateTax(subtotal)
		shipping := calc.ShippingCost()
		now := s.now()
		address := shippingFromFields(req.ShippingAddress)

		order = &models.Order{
			OrderNumber:       newOrderNumber(now),
			UserID:            caller.UserID,
			Subtotal:          subtotal,
			Tax:               tax,
			ShippingCost:      shipping,
			TotalAmount:       calc.CalculateGrandTotal(subtotal, tax, shipping),
			Status:            models.OrderStatusPending,
			PaymentStatus:     models.PaymentStatusPending,
			PaymentMethod:     method,
			ShippingAddress:   address,
			BillingAddress:    address,
			EstimatedDelivery: now.AddDate(0, 0, estimatedDeliveryDays),
			OrderDate:         now,
		}
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		if err := s.orderItemRepo.BulkCreate(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
		order.OrderItems = orderItems

		if err := s.cartItemRepo.ClearCartItems(ctx, tx, cart.ID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		metrics.RecordCheckout(checkoutOutcome(err))
		s.logger.Info("checkout rejected", zap.String("user_id", caller.UserID), zap.Error(err))
		return nil, err
	}

	metrics.RecordCheckout("placed")
	s.logger.Info("order placed",
		zap.String("order_number", order.OrderNumber),
		zap.String("user_id", caller.UserID),
		zap.String("total", order.TotalAmount.String()),
	)
	return toOrderDTO(order), nil
}

func (s *CheckoutService) stockError(ctx context.Context, tx *gorm.DB, item models.CartItem) error {
	product, err := s.productRepo.FindByID(ctx, tx, item.ProductID)
	if err != nil {
		return fmt.Errorf("failed to get product %s: %w", item.ProductID, err)
	}
	if product == nil {
		return notFound("product", item.ProductID)
	}
	return &InsufficientStockError{
		ProductID:   product.ID,
		ProductName: product.Name,
		Available:   product.StockQuantity,
		Requested:   item.Quantity,
	}
}

func checkoutOutcome(err error) string {
	switch {
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
