package dto

// CreateOrderRequest turns the cart into an order.
type CreateOrderRequest struct {
	ShippingAddress string `json:"shipping_address"`
}

// PaymentCreateRequest opens a gateway transaction. OrderID is optional: when
// absent the customer's cart is converted into an order first. Amount, when
// present, is validated against the order total.
type PaymentCreateRequest struct {
	OrderID         *int64 `json:"order_id"`
	ShippingAddress string `json:"shipping_address"`
	Amount          *int64 `json:"amount"`
}

// PaymentCreateResponse carries the gateway redirect data.
type PaymentCreateResponse struct {
	OrderID int64  `json:"order_id"`
	Token   string `json:"token"`
	URL     string `json:"url"`
}

// PaymentConfirmRequest settles a transaction after the redirect back.
type PaymentConfirmRequest struct {
	Token string `json:"token" binding:"required"`
}

// PaymentConfirmResponse reports the settlement outcome.
type PaymentConfirmResponse struct {
	Status            string         `json:"status"`
	Order             *OrderResponse `json:"order,omitempty"`
	Amount            int64          `json:"amount"`
	AuthorizationCode string         `json:"authorization_code"`
	ResponseCode      int            `json:"response_code"`
	AlreadyPaid       bool           `json:"already_paid,omitempty"`
}

// RefundRequest nullifies part or all of an order's payment.
type RefundRequest struct {
	OrderID int64 `json:"order_id" binding:"required"`
	Amount  int64 `json:"amount" binding:"required"`
}

// RefundResponse reports the gateway's refund outcome.
type RefundResponse struct {
	Type            string `json:"type"`
	NullifiedAmount int64  `json:"nullified_amount"`
	Balance         int64  `json:"balance"`
}
