package usecase

import (
	"context"

	domainErrors "github.com/sxtvrno/storefront/internal/domain/errors"
	"github.com/sxtvrno/storefront/internal/domain/model"
	"github.com/sxtvrno/storefront/internal/domain/repository"
)

// ProductUseCase exposes catalog reads and administrative stock adjustment.
type ProductUseCase struct {
	products repository.ProductRepository
}

// NewProductUseCase constructs ProductUseCase.
func NewProductUseCase(products repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{products: products}
}

// List returns catalog products. Customers see active products only;
// administrators pass activeOnly=false to see everything.
func (u *ProductUseCase) List(ctx context.Context, activeOnly bool) ([]model.Product, error) {
	return u.products.List(ctx, activeOnly)
}

// Get returns a single product by id.
func (u *ProductUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// SetStock replaces a product's stock level. Administrative only.
func (u *ProductUseCase) SetStock(ctx context.Context, id int64, stock int) error {
	if stock < 0 {
		return domainErrors.ErrInvalidQuantity
	}
	return u.products.UpdateStock(ctx, id, stock)
}
