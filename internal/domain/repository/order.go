package repository

import (
	"context"

	"github.com/sxtvrno/storefront/internal/domain/model"
)

// OrderRepository persists order headers, their immutable line snapshots and
// the payment-driven status transitions.
type OrderRepository interface {
	// CreateWithLines writes the header and lines and clears the source cart
	// in one transaction. Stock is revalidated under row locks; a shortfall
	// aborts the whole operation with InsufficientStockError.
	CreateWithLines(ctx context.Context, order *model.Order, owner model.CartOwner) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	// MarkPaid flips CREATED to PAID, inserts the payment row and decrements
	// stock for every line, all in one transaction. Returns false when the
	// order was already in a payment-terminal status; nothing is written in
	// that case.
	MarkPaid(ctx context.Context, orderID int64, payment model.Payment) (bool, error)
	// MarkCancelled flips a non-terminal order to CANCELLED. Returns false
	// when the order was already terminal.
	MarkCancelled(ctx context.Context, orderID int64) (bool, error)
	// SetFulfillment performs an administrative transition guarded by the
	// expected current status. Returns false when the guard did not match.
	SetFulfillment(ctx context.Context, orderID int64, from, to model.OrderStatus) (bool, error)
}
