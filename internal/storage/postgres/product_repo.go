package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/sxtvrno/storefront/internal/domain/errors"
	"github.com/sxtvrno/storefront/internal/domain/model"
)

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT id, name, price, stock, active, created_at FROM products WHERE id=$1`
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.Active, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context, activeOnly bool) ([]model.Product, error) {
	query := `SELECT id, name, price, stock, active, created_at FROM products ORDER BY id`
	if activeOnly {
		query = `SELECT id, name, price, stock, active, created_at FROM products WHERE active ORDER BY id`
	}
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) UpdateStock(ctx context.Context, id int64, stock int) error {
	const query = `UPDATE products SET stock=$2 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, stock)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
