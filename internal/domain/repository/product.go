package repository

import (
	"context"

	"github.com/sxtvrno/storefront/internal/domain/model"
)

// ProductRepository reads catalog data and applies administrative stock
// adjustments. The payment-driven stock decrement lives in OrderRepository so
// it stays inside the paid transaction.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, activeOnly bool) ([]model.Product, error)
	UpdateStock(ctx context.Context, id int64, stock int) error
}
