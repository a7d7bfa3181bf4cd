package usecase

import (
	"context"

	domainErrors "github.com/sxtvrno/storefront/internal/domain/errors"
	"github.com/sxtvrno/storefront/internal/domain/model"
	"github.com/sxtvrno/storefront/internal/domain/repository"
)

// CartUseCase encapsulates cart mutation rules: quantity validation, the
// clamp against current stock and line-total repricing.
type CartUseCase struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository, products repository.ProductRepository) *CartUseCase {
	return &CartUseCase{carts: carts, products: products}
}

// Get returns the owner's cart, creating an empty one on first access.
func (u *CartUseCase) Get(ctx context.Context, owner model.CartOwner) (*model.Cart, error) {
	return u.carts.GetOrCreate(ctx, owner)
}

// AddItem adds quantity units of a product to the cart. The resulting line
// quantity is clamped to the product's current stock and the line total is
// repriced at the current product price.
func (u *CartUseCase) AddItem(ctx context.Context, owner model.CartOwner, productID int64, quantity int) (*model.Cart, error) {
	if quantity <= 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}

	cart, err := u.carts.GetOrCreate(ctx, owner)
	if err != nil {
		return nil, err
	}

	existing := 0
	if line, ok := cart.Item(productID); ok {
		existing = line.Quantity
	}

	return u.setLine(ctx, owner, productID, existing+quantity)
}

// SetQuantity replaces the line quantity outright. Zero removes the line;
// anything above current stock is clamped down to it.
func (u *CartUseCase) SetQuantity(ctx context.Context, owner model.CartOwner, productID int64, quantity int) (*model.Cart, error) {
	if quantity < 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}
	if quantity == 0 {
		return u.RemoveItem(ctx, owner, productID)
	}
	if _, err := u.carts.GetOrCreate(ctx, owner); err != nil {
		return nil, err
	}
	return u.setLine(ctx, owner, productID, quantity)
}

// RemoveItem deletes the product's line from the cart.
func (u *CartUseCase) RemoveItem(ctx context.Context, owner model.CartOwner, productID int64) (*model.Cart, error) {
	if _, err := u.carts.GetOrCreate(ctx, owner); err != nil {
		return nil, err
	}
	if err := u.carts.SetItem(ctx, owner, productID, 0, 0); err != nil {
		return nil, err
	}
	return u.carts.Get(ctx, owner)
}

// Clear empties the cart.
func (u *CartUseCase) Clear(ctx context.Context, owner model.CartOwner) error {
	if _, err := u.carts.GetOrCreate(ctx, owner); err != nil {
		return err
	}
	return u.carts.Clear(ctx, owner)
}

func (u *CartUseCase) setLine(ctx context.Context, owner model.CartOwner, productID int64, quantity int) (*model.Cart, error) {
	product, err := u.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, domainErrors.ErrProductUnavailable
	}

	// Over-requests clamp silently; a sold-out product clamps to zero and
	// the line is dropped.
	if quantity > product.Stock {
		quantity = product.Stock
	}

	lineTotal := product.Price * int64(quantity)
	if err := u.carts.SetItem(ctx, owner, productID, quantity, lineTotal); err != nil {
		return nil, err
	}
	return u.carts.Get(ctx, owner)
}
