package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusReturned   OrderStatus = "RETURNED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned:
		return true
	}
	return false
}

// Cancellable reports whether a customer may still cancel an order in this status.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

func (s PaymentStatus) Final() bool {
	return s == PaymentStatusPaid || s == PaymentStatusFailed || s == PaymentStatusRefunded
}

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentMethodPaypal     PaymentMethod = "PAYPAL"
	PaymentMethodStripe     PaymentMethod = "STRIPE"
	PaymentMethodCOD        PaymentMethod = "COD"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodPaypal,
		PaymentMethodStripe, PaymentMethodCOD:
		return true
	}
	return false
}

// ShippingAddress is the address snapshot stored on an order.
type ShippingAddress struct {
	FullName     string `gorm:"size:255"`
	PhoneNumber  string `gorm:"size:20"`
	AddressLine1 string `gorm:"size:255"`
	AddressLine2 string `gorm:"size:255"`
	City         string `gorm:"size:100"`
	State        string `gorm:"size:100"`
	Country      string `gorm:"size:100"`
	ZipCode      string `gorm:"size:20"`
}

type Order struct {
	ID                   string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	OrderNumber          string          `gorm:"size:64;not null;uniqueIndex"`
	UserID               string          `gorm:"size:36;not null;index"`
	OrderItems           []OrderItem     `gorm:"foreignKey:OrderID"`
	Subtotal             decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	Tax                  decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	ShippingCost         decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	TotalAmount          decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	Status               OrderStatus     `gorm:"size:20;not null;index"`
	PaymentStatus        PaymentStatus   `gorm:"size:20;not null"`
	PaymentMethod        PaymentMethod   `gorm:"size:20"`
	PaymentTransactionID string          `gorm:"size:255;index"`
	ShippingAddress      ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_"`
	BillingAddress       ShippingAddress `gorm:"embedded;embeddedPrefix:billing_"`
	TrackingNumber       string          `gorm:"size:100"`
	EstimatedDelivery    time.Time
	DeliveredDate        *time.Time
	OrderDate            time.Time `gorm:"not null"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
