package model

import "time"

// PaymentStatus is the gateway-reported outcome persisted with a payment.
type PaymentStatus string

const (
	PaymentStatusAuthorized PaymentStatus = "AUTHORIZED"
	PaymentStatusRefunded   PaymentStatus = "REFUNDED"
)

// Payment records one confirmed gateway transaction for an order. Rows are
// append-only and written only after a successful commit call.
type Payment struct {
	ID                int64
	OrderID           int64
	Token             string
	BuyOrder          string
	Amount            int64
	Status            PaymentStatus
	AuthorizationCode string
	CreatedAt         time.Time
}
