package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/subhub/subhub/internal/config"
	"github.com/subhub/subhub/internal/domain"
	"github.com/subhub/subhub/internal/pricing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProductRepo stores subscription products, their variations and the
// persisted price-range meta. It backs both the product schema API and the
// pricing cache (VariationSource + MetaStore).
type ProductRepo struct {
	pool   *pgxpool.Pool
	tables config.Tables
}

func NewProductRepo(pool *pgxpool.Pool, t config.Tables) *ProductRepo {
	return &ProductRepo{pool: pool, tables: t}
}

func (r *ProductRepo) qt(tbl string) string { return qt(r.tables.Schema, tbl) }

func (r *ProductRepo) Upsert(ctx context.Context, p *domain.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (product_id, type, billing_period, billing_interval,
		  subscription_length, trial_length, trial_period, sign_up_fee_cents)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (product_id) DO UPDATE SET
		  type=EXCLUDED.type,
		  billing_period=EXCLUDED.billing_period,
		  billing_interval=EXCLUDED.billing_interval,
		  subscription_length=EXCLUDED.subscription_length,
		  trial_length=EXCLUDED.trial_length,
		  trial_period=EXCLUDED.trial_period,
		  sign_up_fee_cents=EXCLUDED.sign_up_fee_cents
	`, r.qt(r.tables.Product)),
		p.ID, p.Type, p.Scheme.BillingPeriod, p.Scheme.BillingInterval,
		p.Scheme.SubscriptionLength, p.Scheme.TrialLength,
		nullablePeriod(p.Scheme.TrialPeriod), p.Scheme.SignUpFeeCents,
	)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE product_id=$1`, r.qt(r.tables.Variation)), p.ID); err != nil {
		return err
	}
	batch := &pgx.Batch{}
	for _, v := range p.Variations {
		batch.Queue(fmt.Sprintf(`
			INSERT INTO %s (variation_id, product_id, price_cents, sign_up_fee_cents, trial_length, visible)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, r.qt(r.tables.Variation)),
			v.ID, p.ID, v.PriceCents, v.SignUpFeeCents, v.TrialLength, v.Visible,
		)
	}
	if br := tx.SendBatch(ctx, batch); br != nil {
		if err := br.Close(); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var (
		p     domain.Product
		trial *string
	)
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT product_id, type, billing_period, billing_interval,
		       subscription_length, trial_length, trial_period, sign_up_fee_cents
		FROM %s WHERE product_id=$1
	`, r.qt(r.tables.Product)), id).Scan(
		&p.ID, &p.Type, &p.Scheme.BillingPeriod, &p.Scheme.BillingInterval,
		&p.Scheme.SubscriptionLength, &p.Scheme.TrialLength, &trial, &p.Scheme.SignUpFeeCents,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if trial != nil {
		p.Scheme.TrialPeriod = domain.BillingPeriod(*trial)
	}

	p.Variations, err = r.Variations(ctx, id)
	return &p, err
}

// Variations implements pricing.VariationSource.
func (r *ProductRepo) Variations(ctx context.Context, productID string) ([]domain.Variation, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT variation_id, price_cents, sign_up_fee_cents, trial_length, visible
		FROM %s WHERE product_id=$1
	`, r.qt(r.tables.Variation)), productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vars []domain.Variation
	for rows.Next() {
		var v domain.Variation
		if err := rows.Scan(&v.ID, &v.PriceCents, &v.SignUpFeeCents, &v.TrialLength, &v.Visible); err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
	return vars, rows.Err()
}

// SaveRange implements pricing.MetaStore.
func (r *ProductRepo) SaveRange(ctx context.Context, productID string, cr pricing.CachedRange) error {
	ct, err := r.pool.Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET range_min_cents=$2, range_max_cents=$3, range_hash=$4
		WHERE product_id=$1
	`, r.qt(r.tables.Product)),
		productID, cr.MinCents, cr.MaxCents, cr.Hash,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LoadRange implements pricing.MetaStore.
func (r *ProductRepo) LoadRange(ctx context.Context, productID string) (pricing.CachedRange, bool, error) {
	var (
		cr       pricing.CachedRange
		min, max *int64
		hash     *string
	)
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT range_min_cents, range_max_cents, range_hash
		FROM %s WHERE product_id=$1
	`, r.qt(r.tables.Product)), productID).Scan(&min, &max, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return cr, false, nil
	}
	if err != nil {
		return cr, false, err
	}
	if min == nil || max == nil || hash == nil {
		return cr, false, nil
	}
	cr.MinCents, cr.MaxCents, cr.Hash = *min, *max, *hash
	return cr, true, nil
}
