package model

import "time"

// OrderStatus describes the order lifecycle. PAID and CANCELLED are the
// payment-terminal states; the remaining post-payment states are
// administrator-driven fulfillment.
type OrderStatus string

const (
	OrderStatusCreated        OrderStatus = "CREATED"
	OrderStatusPaid           OrderStatus = "PAID"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
)

// PaymentTerminal reports whether no further payment-driven transition may
// occur from this status.
func (s OrderStatus) PaymentTerminal() bool {
	return s != OrderStatusCreated
}

// OrderLine is an immutable (product, quantity, unit price) triple
// snapshotted from the cart when the order is created.
type OrderLine struct {
	ProductID int64
	Quantity  int
	UnitPrice int64
}

// Subtotal returns unit price times quantity.
func (l OrderLine) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Order is the header plus its line snapshot. Lines and Total never change
// after creation; only Status and UpdatedAt move.
type Order struct {
	ID              int64
	CustomerID      int64
	ShippingAddress string
	Total           int64
	Status          OrderStatus
	Lines           []OrderLine
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StorePickup reports whether the order has no shipping address.
func (o *Order) StorePickup() bool {
	return o.ShippingAddress == ""
}
