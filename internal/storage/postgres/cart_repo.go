package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/sxtvrno/storefront/internal/domain/errors"
	"github.com/sxtvrno/storefront/internal/domain/model"
)

func (r *cartRepository) GetOrCreate(ctx context.Context, owner model.CartOwner) (*model.Cart, error) {
	if err := r.ensure(ctx, owner); err != nil {
		return nil, err
	}
	return r.Get(ctx, owner)
}

func (r *cartRepository) ensure(ctx context.Context, owner model.CartOwner) error {
	var err error
	if owner.Anonymous() {
		_, err = r.storage.pool.Exec(ctx,
			`INSERT INTO carts (session_id) VALUES ($1) ON CONFLICT (session_id) DO NOTHING`, owner.SessionID)
	} else {
		_, err = r.storage.pool.Exec(ctx,
			`INSERT INTO carts (customer_id) VALUES ($1) ON CONFLICT (customer_id) DO NOTHING`, owner.CustomerID)
	}
	return err
}

func (r *cartRepository) Get(ctx context.Context, owner model.CartOwner) (*model.Cart, error) {
	query := `SELECT id, customer_id, session_id, created_at, updated_at FROM carts WHERE customer_id=$1`
	arg := any(owner.CustomerID)
	if owner.Anonymous() {
		query = `SELECT id, customer_id, session_id, created_at, updated_at FROM carts WHERE session_id=$1`
		arg = owner.SessionID
	}

	var cart model.Cart
	err := r.storage.pool.QueryRow(ctx, query, arg).Scan(&cart.ID, &cart.CustomerID, &cart.SessionID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	const itemsQuery = `SELECT product_id, quantity, line_total FROM cart_items WHERE cart_id=$1 ORDER BY product_id`
	rows, err := r.storage.pool.Query(ctx, itemsQuery, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.LineTotal); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &cart, nil
}

// lockCart takes a row lock on the owner's cart, serializing concurrent
// mutations of the same cart without blocking other owners.
func (r *cartRepository) lockCart(ctx context.Context, tx pgx.Tx, owner model.CartOwner) (int64, error) {
	query := `SELECT id FROM carts WHERE customer_id=$1 FOR UPDATE`
	arg := any(owner.CustomerID)
	if owner.Anonymous() {
		query = `SELECT id FROM carts WHERE session_id=$1 FOR UPDATE`
		arg = owner.SessionID
	}
	var id int64
	if err := tx.QueryRow(ctx, query, arg).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domainErrors.ErrNotFound
		}
		return 0, err
	}
	return id, nil
}

func (r *cartRepository) SetItem(ctx context.Context, owner model.CartOwner, productID int64, quantity int, lineTotal int64) error {
	if err := r.ensure(ctx, owner); err != nil {
		return err
	}
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		cartID, err := r.lockCart(ctx, tx, owner)
		if err != nil {
			return err
		}

		if quantity <= 0 {
			if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1 AND product_id=$2`, cartID, productID); err != nil {
				return err
			}
		} else {
			const upsert = `INSERT INTO cart_items (cart_id, product_id, quantity, line_total)
                            VALUES ($1, $2, $3, $4)
                            ON CONFLICT (cart_id, product_id) DO UPDATE
                            SET quantity = EXCLUDED.quantity, line_total = EXCLUDED.line_total`
			if _, err := tx.Exec(ctx, upsert, cartID, productID, quantity, lineTotal); err != nil {
				return err
			}
		}

		_, err = tx.Exec(ctx, `UPDATE carts SET updated_at=NOW() WHERE id=$1`, cartID)
		return err
	})
}

func (r *cartRepository) Clear(ctx context.Context, owner model.CartOwner) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		cartID, err := r.lockCart(ctx, tx, owner)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil
			}
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, cartID); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `UPDATE carts SET updated_at=NOW() WHERE id=$1`, cartID)
		return err
	})
}

func (r *cartRepository) Merge(ctx context.Context, sessionID string, customerID int64) error {
	if err := r.ensure(ctx, model.CustomerOwner(customerID)); err != nil {
		return err
	}
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		srcID, err := r.lockCart(ctx, tx, model.SessionOwner(sessionID))
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil
			}
			return err
		}
		dstID, err := r.lockCart(ctx, tx, model.CustomerOwner(customerID))
		if err != nil {
			return err
		}

		// Quantities sum and clamp to current stock; line totals track the
		// current price, matching regular cart mutations.
		const merge = `INSERT INTO cart_items (cart_id, product_id, quantity, line_total)
                       SELECT $2, ci.product_id, LEAST(ci.quantity, p.stock),
                              LEAST(ci.quantity, p.stock)::bigint * p.price
                       FROM cart_items ci
                       JOIN products p ON p.id = ci.product_id
                       WHERE ci.cart_id = $1 AND LEAST(ci.quantity, p.stock) > 0
                       ON CONFLICT (cart_id, product_id) DO UPDATE
                       SET quantity = LEAST(cart_items.quantity + EXCLUDED.quantity,
                               (SELECT stock FROM products WHERE id = cart_items.product_id)),
                           line_total = LEAST(cart_items.quantity + EXCLUDED.quantity,
                               (SELECT stock FROM products WHERE id = cart_items.product_id))::bigint
                               * (SELECT price FROM products WHERE id = cart_items.product_id)`
		if _, err := tx.Exec(ctx, merge, srcID, dstID); err != nil {
			return err
		}

		// Cascade removes the anonymous items with the cart row.
		if _, err := tx.Exec(ctx, `DELETE FROM carts WHERE id=$1`, srcID); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `UPDATE carts SET updated_at=NOW() WHERE id=$1`, dstID)
		return err
	})
}
