package dto

// ProductResponse describes a catalog entry.
type ProductResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Price  int64  `json:"price"`
	Stock  int    `json:"stock"`
	Active bool   `json:"active"`
}

// StockUpdateRequest sets a product's stock level.
type StockUpdateRequest struct {
	Stock *int `json:"stock" binding:"required"`
}
