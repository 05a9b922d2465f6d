package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/subhub/subhub/internal/config"
	"github.com/subhub/subhub/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepo struct {
	pool   *pgxpool.Pool
	tables config.Tables
}

func NewOrderRepo(pool *pgxpool.Pool, t config.Tables) *OrderRepo {
	return &OrderRepo{pool: pool, tables: t}
}

func (r *OrderRepo) qt(tbl string) string { return qt(r.tables.Schema, tbl) }

func (r *OrderRepo) Upsert(ctx context.Context, o *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (order_uid, customer_id, status, total_cents, currency, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (order_uid) DO UPDATE SET
		  customer_id=EXCLUDED.customer_id,
		  status=EXCLUDED.status,
		  total_cents=EXCLUDED.total_cents,
		  currency=EXCLUDED.currency,
		  created_at=EXCLUDED.created_at
	`, r.qt(r.tables.Order)),
		o.ID, o.CustomerID, o.Status, o.TotalCents, o.Currency, o.CreatedAt,
	)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE owner_uid=$1`, r.qt(r.tables.Item)), o.ID); err != nil {
		return err
	}
	batch := &pgx.Batch{}
	for _, it := range o.Items {
		batch.Queue(fmt.Sprintf(`
			INSERT INTO %s (owner_uid, product_id, variation_id, name, quantity, total_cents, sign_up_fee_cents)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, r.qt(r.tables.Item)),
			o.ID, it.ProductID, it.VariationID, it.Name, it.Quantity, it.TotalCents, it.SignUpFeeCents,
		)
	}
	if br := tx.SendBatch(ctx, batch); br != nil {
		if err := br.Close(); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT order_uid, customer_id, status, total_cents, currency, created_at
		FROM %s WHERE order_uid=$1
	`, r.qt(r.tables.Order)), id).Scan(
		&o.ID, &o.CustomerID, &o.Status, &o.TotalCents, &o.Currency, &o.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT product_id, variation_id, name, quantity, total_cents, sign_up_fee_cents
		FROM %s WHERE owner_uid=$1
	`, r.qt(r.tables.Item)), id)
	if err != nil {
		return &o, err
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.LineItem
		if err := rows.Scan(&it.ProductID, &it.VariationID, &it.Name, &it.Quantity,
			&it.TotalCents, &it.SignUpFeeCents); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	return &o, rows.Err()
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	ct, err := r.pool.Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET status=$2 WHERE order_uid=$1
	`, r.qt(r.tables.Order)), id, status)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
