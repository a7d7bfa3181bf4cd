package usecase

import (
	"context"

	domainErrors "github.com/sxtvrno/storefront/internal/domain/errors"
	"github.com/sxtvrno/storefront/internal/domain/model"
	"github.com/sxtvrno/storefront/internal/domain/repository"
)

// fulfillmentTransitions lists the administrator-driven moves allowed after
// an order is paid.
var fulfillmentTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPaid:           {model.OrderStatusPreparing},
	model.OrderStatusPreparing:      {model.OrderStatusReadyForPickup, model.OrderStatusDelivered},
	model.OrderStatusReadyForPickup: {model.OrderStatusDelivered},
}

func fulfillmentAllowed(from, to model.OrderStatus) bool {
	for _, next := range fulfillmentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderUseCase covers order reads and post-payment fulfillment transitions.
type OrderUseCase struct {
	orders   repository.OrderRepository
	payments repository.PaymentRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, payments repository.PaymentRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, payments: payments}
}

// Get returns an order visible to the principal: its owner or any admin.
func (u *OrderUseCase) Get(ctx context.Context, principal model.Principal, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != principal.UserID && !principal.Admin() {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// ListByCustomer returns the customer's orders, newest first.
func (u *OrderUseCase) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	return u.orders.ListByCustomer(ctx, customerID)
}

// ListAll returns every order. Administrative only.
func (u *OrderUseCase) ListAll(ctx context.Context) ([]model.Order, error) {
	return u.orders.ListAll(ctx)
}

// Payments returns the order's payment history, visibility-checked the same
// way as Get.
func (u *OrderUseCase) Payments(ctx context.Context, principal model.Principal, orderID int64) ([]model.Payment, error) {
	if _, err := u.Get(ctx, principal, orderID); err != nil {
		return nil, err
	}
	return u.payments.ListByOrder(ctx, orderID)
}

// UpdateFulfillment moves a paid order along the fulfillment chain. The
// target must be reachable from the order's current status; the repository
// guard makes the transition safe against concurrent admins.
func (u *OrderUseCase) UpdateFulfillment(ctx context.Context, orderID int64, to model.OrderStatus) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !fulfillmentAllowed(order.Status, to) {
		return nil, domainErrors.ErrInvalidTransition
	}

	applied, err := u.orders.SetFulfillment(ctx, orderID, order.Status, to)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, domainErrors.ErrInvalidTransition
	}
	return u.orders.GetByID(ctx, orderID)
}
