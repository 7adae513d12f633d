package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rakhulsr/wishcrate/app/auth"
	"github.com/Rakhulsr/wishcrate/app/metrics"
	"github.com/Rakhulsr/wishcrate/app/models"
	"github.com/Rakhulsr/wishcrate/app/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type NotificationPayload struct {
	TransactionStatus string `json:"transaction_status"`
	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
	GrossAmount       string `json:"gross_amount"`
	StatusCode        string `json:"status_code"`
}

type PaymentService struct {
	db        *gorm.DB
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	gateway   PaymentGateway
	appURL    string
	logger    *zap.Logger
}

// NewPaymentService accepts a nil gateway; payment operations then fail with
// ErrPaymentUnavailable.
func NewPaymentService(db *gorm.DB, orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, gateway PaymentGateway, appURL string, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		db:        db,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		gateway:   gateway,
		appURL:    strings.TrimRight(appURL, "/"),
		logger:    logger.Named("payment"),
	}
}

func (s *PaymentService) InitiatePayment(ctx context.Context, caller auth.Identity, orderID string) (*PaymentDTO, error) {
	if s.gateway == nil {
		return nil, ErrPaymentUnavailable
	}

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
	if order.PaymentStatus != models.PaymentStatusPending || order.Status == models.OrderStatusCancelled {
		return nil, fmt.Errorf("%w: order %s is not awaiting payment", ErrInvalidStateTransition, order.OrderNumber)
	}

	user, err := s.userRepo.FindByID(ctx, order.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	req := PaymentRequest{
		OrderNumber: order.OrderNumber,
		GrossAmount: order.TotalAmount,
		FinishURL:   s.appURL + "/orders/" + order.ID,
	}
	if user != nil {
		req.FirstName = user.FirstName
		req.LastName = user.LastName
		req.Email = user.Email
		req.Phone = user.PhoneNumber
	}

	session, err := s.gateway.CreateTransaction(ctx, req)
	if err != nil {
		s.logger.Error("payment initiation failed", zap.String("order_number", order.OrderNumber), zap.Error(err))
		return nil, fmt.Errorf("failed to initiate payment: %w", err)
	}

	if err := s.orderRepo.UpdatePaymentTransaction(ctx, nil, order.ID, session.Token); err != nil {
		return nil, fmt.Errorf("failed to store payment transaction: %w", err)
	}

	return &PaymentDTO{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Token:       session.Token,
		RedirectURL: session.RedirectURL,
	}, nil
}

// paymentOutcome maps a verified gateway status to the payment status it
// implies. ok is false when the status does not settle anything yet.
func paymentOutcome(status *GatewayStatus) (models.PaymentStatus, bool, error) {
	switch status.TransactionStatus {
	case "capture", "settlement":
		switch status.FraudStatus {
		case "", "accept":
			return models.PaymentStatusPaid, true, nil
		case "challenge":
			return "", false, nil
		default:
			return models.PaymentStatusFailed, true, nil
		}
	case "pending", "authorize":
		return "", false, nil
	case "deny", "expire", "cancel", "failure":
		return models.PaymentStatusFailed, true, nil
	case "refund", "partial_refund":
		return models.PaymentStatusRefunded, true, nil
	default:
		return "", false, invalid("unhandled transaction status %q", status.TransactionStatus)
	}
}

func allowedPaymentChange(from, to models.PaymentStatus) bool {
	switch from {
	case models.PaymentStatusPending:
		return to != models.PaymentStatusPending
	case models.PaymentStatusPaid:
		return to == models.PaymentStatusRefunded
	default:
		return false
	}
}

// orderClosed reports whether the order's stock has already been released.
func orderClosed(status models.OrderStatus) bool {
	return status == models.OrderStatusCancelled || status == models.OrderStatusReturned
}

// HandleNotification re-verifies the notified transaction with the gateway
// before touching the order, so a forged callback cannot mark an order paid.
func (s *PaymentService) HandleNotification(ctx context.Context, payload NotificationPayload) (*NotificationResult, error) {
	if s.gateway == nil {
		return nil, ErrPaymentUnavailable
	}
	if payload.OrderID == "" {
		return nil, invalid("order_id is required")
	}

	status, err := s.gateway.TransactionStatus(ctx, payload.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify transaction: %w", err)
	}
	if status.TransactionStatus != payload.TransactionStatus {
		s.logger.Warn("notification status differs from gateway",
			zap.String("order_number", payload.OrderID),
			zap.String("notified", payload.TransactionStatus),
			zap.String("verified", status.TransactionStatus),
		)
	}

	target, settles, err := paymentOutcome(status)
	if err != nil {
		return nil, err
	}

	var result *NotificationResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByNumber(ctx, tx, payload.OrderID)
		if err != nil {
			return fmt.Errorf("failed to find order: %w", err)
		}
		if order == nil {
			return notFound("order", payload.OrderID)
		}

		result = &NotificationResult{
			OrderNumber:   order.OrderNumber,
			PaymentStatus: order.PaymentStatus,
			OrderStatus:   order.Status,
		}
		if !settles || !allowedPaymentChange(order.PaymentStatus, target) {
			return nil
		}
		if target == models.PaymentStatusPaid && orderClosed(order.Status) {
			s.logger.Warn("settlement for closed order ignored, refund required",
				zap.String("order_number", order.OrderNumber),
				zap.String("order_status", string(order.Status)),
				zap.String("transaction_id", status.TransactionID),
			)
			return nil
		}

		if err := s.orderRepo.UpdatePaymentStatus(ctx, tx, order.ID, target); err != nil {
			return fmt.Errorf("failed to update payment status: %w", err)
		}
		if status.TransactionID != "" {
			if err := s.orderRepo.UpdatePaymentTransaction(ctx, tx, order.ID, status.TransactionID); err != nil {
				return fmt.Errorf("failed to store transaction id: %w", err)
			}
		}
		if target == models.PaymentStatusPaid {
			confirmed, err := s.orderRepo.TransitionStatus(ctx, tx, order.ID, []models.OrderStatus{models.OrderStatusPending}, models.OrderStatusConfirmed)
			if err != nil {
				return fmt.Errorf("failed to confirm order: %w", err)
			}
			if confirmed {
				result.OrderStatus = models.OrderStatusConfirmed
			}
		}

		result.PaymentStatus = target
		result.Changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordPaymentNotification(string(result.PaymentStatus))
	s.logger.Info("payment notification processed",
		zap.String("order_number", result.OrderNumber),
		zap.String("payment_status", string(result.PaymentStatus)),
		zap.Bool("changed", result.Changed),
	)
	return result, nil
}
