package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/sxtvrno/storefront/internal/domain/errors"
	"github.com/sxtvrno/storefront/internal/domain/model"
)

func (r *paymentRepository) GetAuthorizedByOrder(ctx context.Context, orderID int64) (*model.Payment, error) {
	const query = `SELECT id, order_id, token, buy_order, amount, status, authorization_code, created_at
                   FROM payments WHERE order_id=$1 AND status=$2
                   ORDER BY created_at DESC LIMIT 1`
	var p model.Payment
	err := r.storage.pool.QueryRow(ctx, query, orderID, model.PaymentStatusAuthorized).
		Scan(&p.ID, &p.OrderID, &p.Token, &p.BuyOrder, &p.Amount, &p.Status, &p.AuthorizationCode, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.Payment, error) {
	const query = `SELECT id, order_id, token, buy_order, amount, status, authorization_code, created_at
                   FROM payments WHERE order_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.Token, &p.BuyOrder, &p.Amount, &p.Status, &p.AuthorizationCode, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *paymentRepository) MarkRefunded(ctx context.Context, paymentID int64) error {
	const query = `UPDATE payments SET status=$2 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, paymentID, model.PaymentStatusRefunded)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
