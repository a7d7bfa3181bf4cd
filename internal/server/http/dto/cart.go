package dto

// CartItemRequest adds a product to the cart.
type CartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

// QuantityRequest replaces a cart line's quantity.
type QuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartItemResponse is one cart line.
type CartItemResponse struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	LineTotal int64 `json:"line_total"`
}

// CartResponse is the cart with its display total.
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total int64              `json:"total"`
}
