package repository

import (
	"context"

	"github.com/sxtvrno/storefront/internal/domain/model"
)

// CartRepository manages per-owner carts. Implementations serialize mutations
// to the same owner's cart; different owners never block each other.
type CartRepository interface {
	// GetOrCreate returns the owner's cart, creating an empty one lazily.
	GetOrCreate(ctx context.Context, owner model.CartOwner) (*model.Cart, error)
	// Get returns the owner's cart or ErrNotFound.
	Get(ctx context.Context, owner model.CartOwner) (*model.Cart, error)
	// SetItem upserts a line with the given quantity and cached line total.
	// Quantity zero removes the line.
	SetItem(ctx context.Context, owner model.CartOwner, productID int64, quantity int, lineTotal int64) error
	// Clear removes all lines from the owner's cart.
	Clear(ctx context.Context, owner model.CartOwner) error
	// Merge folds the anonymous session cart into the customer's cart,
	// summing quantities clamped to current stock, then deletes the
	// anonymous cart. The whole operation is atomic.
	Merge(ctx context.Context, sessionID string, customerID int64) error
}
