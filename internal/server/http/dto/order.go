package dto

import "time"

// OrderLineResponse is one immutable order line.
type OrderLineResponse struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
	Subtotal  int64 `json:"subtotal"`
}

// OrderResponse is the order header with its line snapshot.
type OrderResponse struct {
	ID              int64               `json:"id"`
	Status          string              `json:"status"`
	Total           int64               `json:"total"`
	ShippingAddress string              `json:"shipping_address,omitempty"`
	Lines           []OrderLineResponse `json:"lines,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// PaymentResponse is one settled gateway transaction.
type PaymentResponse struct {
	ID                int64     `json:"id"`
	OrderID           int64     `json:"order_id"`
	BuyOrder          string    `json:"buy_order"`
	Amount            int64     `json:"amount"`
	Status            string    `json:"status"`
	AuthorizationCode string    `json:"authorization_code,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// StatusUpdateRequest moves an order along the fulfillment chain.
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}
