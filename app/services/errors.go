package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound               = errors.New("resource not found")
	ErrUnauthorized           = errors.New("not allowed to access this resource")
	ErrInsufficientStock      = errors.New("insufficient product stock")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrInvalidStateTransition = errors.New("invalid order state transition")
	ErrConflict               = errors.New("resource already exists")
	ErrValidation             = errors.New("invalid input")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrPaymentUnavailable     = errors.New("payment gateway is not configured")
)

// InsufficientStockError names the product that could not cover a request.
// It matches ErrInsufficientStock with errors.Is.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product '%s': available %d, requested %d", e.ProductName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

func notFound(what, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, what, id)
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
