package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrEmptyCart          = errors.New("empty cart")
	ErrOrderNotPayable    = errors.New("order not payable")
	ErrAmountMismatch     = errors.New("amount mismatch")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrConfirmationFailed = errors.New("payment confirmation failed")
	ErrOrderNotResolved   = errors.New("order not resolved")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrForbidden          = errors.New("forbidden")
)

// InsufficientStockError reports which product blocked order creation.
type InsufficientStockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d", e.ProductID, e.Requested, e.Available)
}

// IsInsufficientStock reports whether err is an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}
