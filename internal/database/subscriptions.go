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

type SubscriptionRepo struct {
	pool   *pgxpool.Pool
	tables config.Tables
}

func NewSubscriptionRepo(pool *pgxpool.Pool, t config.Tables) *SubscriptionRepo {
	return &SubscriptionRepo{pool: pool, tables: t}
}

func (r *SubscriptionRepo) qt(tbl string) string { return qt(r.tables.Schema, tbl) }

func (r *SubscriptionRepo) Upsert(ctx context.Context, s *domain.Subscription) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (subscription_uid, customer_id, status, billing_period, billing_interval,
		  length, trial_period, trial_length, sign_up_fee_cents, recurring_cents, currency,
		  next_payment_at, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (subscription_uid) DO UPDATE SET
		  customer_id=EXCLUDED.customer_id,
		  status=EXCLUDED.status,
		  billing_period=EXCLUDED.billing_period,
		  billing_interval=EXCLUDED.billing_interval,
		  length=EXCLUDED.length,
		  trial_period=EXCLUDED.trial_period,
		  trial_length=EXCLUDED.trial_length,
		  sign_up_fee_cents=EXCLUDED.sign_up_fee_cents,
		  recurring_cents=EXCLUDED.recurring_cents,
		  currency=EXCLUDED.currency,
		  next_payment_at=EXCLUDED.next_payment_at,
		  created_at=EXCLUDED.created_at
	`, r.qt(r.tables.Subscription)),
		s.ID, s.CustomerID, s.Status, s.BillingPeriod, s.BillingInterval,
		s.Length, nullablePeriod(s.TrialPeriod), s.TrialLength, s.SignUpFeeCents, s.RecurringCents,
		s.Currency, s.NextPaymentAt, s.CreatedAt,
	)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE owner_uid=$1`, r.qt(r.tables.Item)), s.ID); err != nil {
		return err
	}
	batch := &pgx.Batch{}
	for _, it := range s.Items {
		batch.Queue(fmt.Sprintf(`
			INSERT INTO %s (owner_uid, product_id, variation_id, name, quantity, total_cents, sign_up_fee_cents)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, r.qt(r.tables.Item)),
			s.ID, it.ProductID, it.VariationID, it.Name, it.Quantity, it.TotalCents, it.SignUpFeeCents,
		)
	}
	if br := tx.SendBatch(ctx, batch); br != nil {
		if err := br.Close(); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *SubscriptionRepo) GetByID(ctx context.Context, id string) (*domain.Subscription, error) {
	var (
		s     domain.Subscription
		trial *string
	)
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT subscription_uid, customer_id, status, billing_period, billing_interval, length,
		       trial_period, trial_length, sign_up_fee_cents, recurring_cents, currency,
		       next_payment_at, created_at
		FROM %s WHERE subscription_uid=$1
	`, r.qt(r.tables.Subscription)), id).Scan(
		&s.ID, &s.CustomerID, &s.Status, &s.BillingPeriod, &s.BillingInterval, &s.Length,
		&trial, &s.TrialLength, &s.SignUpFeeCents, &s.RecurringCents, &s.Currency,
		&s.NextPaymentAt, &s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if trial != nil {
		s.TrialPeriod = domain.BillingPeriod(*trial)
	}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT product_id, variation_id, name, quantity, total_cents, sign_up_fee_cents
		FROM %s WHERE owner_uid=$1
	`, r.qt(r.tables.Item)), id)
	if err != nil {
		return &s, err
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.LineItem
		if err := rows.Scan(&it.ProductID, &it.VariationID, &it.Name, &it.Quantity,
			&it.TotalCents, &it.SignUpFeeCents); err != nil {
			return nil, err
		}
		s.Items = append(s.Items, it)
	}
	return &s, rows.Err()
}

func (r *SubscriptionRepo) UpdateStatus(ctx context.Context, id string, status domain.SubscriptionStatus) error {
	ct, err := r.pool.Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET status=$2 WHERE subscription_uid=$1
	`, r.qt(r.tables.Subscription)), id, status)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SubscriptionRepo) RecentSubscriptionIDs(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT subscription_uid FROM %s
		ORDER BY created_at DESC NULLS LAST
		LIMIT $1
	`, r.qt(r.tables.Subscription)), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func nullablePeriod(p domain.BillingPeriod) *string {
	if p == "" {
		return nil
	}
	s := string(p)
	return &s
}
