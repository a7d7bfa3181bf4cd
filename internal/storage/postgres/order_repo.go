package postgres

import (
	"context"
	"errors"
	"sort"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/sxtvrno/storefront/internal/domain/errors"
	"github.com/sxtvrno/storefront/internal/domain/model"
)

func (r *orderRepository) CreateWithLines(ctx context.Context, order *model.Order, owner model.CartOwner) (*model.Order, error) {
	lines := make([]model.OrderLine, len(order.Lines))
	copy(lines, order.Lines)
	// Stable lock order across concurrent checkouts.
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })

	created := *order
	created.Lines = lines
	created.Status = model.OrderStatusCreated

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, line := range lines {
			var stock int
			err := tx.QueryRow(ctx, `SELECT stock FROM products WHERE id=$1 FOR UPDATE`, line.ProductID).Scan(&stock)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return domainErrors.ErrNotFound
				}
				return err
			}
			if stock < line.Quantity {
				return &domainErrors.InsufficientStockError{ProductID: line.ProductID, Requested: line.Quantity, Available: stock}
			}
		}

		const insertOrder = `INSERT INTO orders (customer_id, shipping_address, total, status)
                             VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, insertOrder, created.CustomerID, created.ShippingAddress, created.Total, created.Status).
			Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt); err != nil {
			return err
		}

		const insertLine = `INSERT INTO order_lines (order_id, product_id, quantity, unit_price) VALUES ($1, $2, $3, $4)`
		for _, line := range lines {
			if _, err := tx.Exec(ctx, insertLine, created.ID, line.ProductID, line.Quantity, line.UnitPrice); err != nil {
				return err
			}
		}

		clearQuery := `DELETE FROM cart_items USING carts
                       WHERE cart_items.cart_id = carts.id AND carts.customer_id = $1`
		arg := any(owner.CustomerID)
		if owner.Anonymous() {
			clearQuery = `DELETE FROM cart_items USING carts
                          WHERE cart_items.cart_id = carts.id AND carts.session_id = $1`
			arg = owner.SessionID
		}
		_, err := tx.Exec(ctx, clearQuery, arg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT id, customer_id, shipping_address, total, status, created_at, updated_at FROM orders WHERE id=$1`
	var o model.Order
	err := r.storage.pool.QueryRow(ctx, query, id).
		Scan(&o.ID, &o.CustomerID, &o.ShippingAddress, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	const linesQuery = `SELECT product_id, quantity, unit_price FROM order_lines WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, linesQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line model.OrderLine
		if err := rows.Scan(&line.ProductID, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, err
		}
		o.Lines = append(o.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	const query = `SELECT id, customer_id, shipping_address, total, status, created_at, updated_at
                   FROM orders WHERE customer_id=$1 ORDER BY created_at DESC`
	return r.scanOrders(ctx, query, customerID)
}

func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT id, customer_id, shipping_address, total, status, created_at, updated_at
                   FROM orders ORDER BY created_at DESC`
	return r.scanOrders(ctx, query)
}

func (r *orderRepository) scanOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.ShippingAddress, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, orderID int64, payment model.Payment) (bool, error) {
	applied := false
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// Conditional flip: zero affected rows means a concurrent or replayed
		// confirmation already settled the order, so nothing else runs.
		const flip = `UPDATE orders SET status=$2, updated_at=NOW() WHERE id=$1 AND status=$3`
		tag, err := tx.Exec(ctx, flip, orderID, model.OrderStatusPaid, model.OrderStatusCreated)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		applied = true

		const insertPayment = `INSERT INTO payments (order_id, token, buy_order, amount, status, authorization_code)
                               VALUES ($1, $2, $3, $4, $5, $6)`
		if _, err := tx.Exec(ctx, insertPayment, orderID, payment.Token, payment.BuyOrder,
			payment.Amount, payment.Status, payment.AuthorizationCode); err != nil {
			return err
		}

		rows, err := tx.Query(ctx, `SELECT product_id, quantity FROM order_lines WHERE order_id=$1 ORDER BY product_id`, orderID)
		if err != nil {
			return err
		}
		type decrement struct {
			productID int64
			quantity  int
		}
		var decrements []decrement
		for rows.Next() {
			var d decrement
			if err := rows.Scan(&d.productID, &d.quantity); err != nil {
				rows.Close()
				return err
			}
			decrements = append(decrements, d)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		const decrementStock = `UPDATE products SET stock = GREATEST(stock - $2, 0) WHERE id=$1`
		for _, d := range decrements {
			if _, err := tx.Exec(ctx, decrementStock, d.productID, d.quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

func (r *orderRepository) MarkCancelled(ctx context.Context, orderID int64) (bool, error) {
	const query = `UPDATE orders SET status=$2, updated_at=NOW() WHERE id=$1 AND status=$3`
	tag, err := r.storage.pool.Exec(ctx, query, orderID, model.OrderStatusCancelled, model.OrderStatusCreated)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *orderRepository) SetFulfillment(ctx context.Context, orderID int64, from, to model.OrderStatus) (bool, error) {
	const query = `UPDATE orders SET status=$2, updated_at=NOW() WHERE id=$1 AND status=$3`
	tag, err := r.storage.pool.Exec(ctx, query, orderID, to, from)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
