package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/subhub/subhub/internal/config"
	"github.com/subhub/subhub/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RetryRepo is the Postgres backing for the retry store. The rule payload is
// kept as JSONB so the ladder can evolve without migrations.
type RetryRepo struct {
	pool   *pgxpool.Pool
	tables config.Tables
}

func NewRetryRepo(pool *pgxpool.Pool, t config.Tables) *RetryRepo {
	return &RetryRepo{pool: pool, tables: t}
}

func (r *RetryRepo) qt(tbl string) string { return qt(r.tables.Schema, tbl) }

func (r *RetryRepo) Save(ctx context.Context, rec *domain.RetryRecord) error {
	rule, err := json.Marshal(rec.Rule)
	if err != nil {
		return fmt.Errorf("marshal retry rule: %w", err)
	}

	_, err = r.pool.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (retry_id, order_uid, status, date, rule)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (retry_id) DO UPDATE SET
		  status=EXCLUDED.status,
		  date=EXCLUDED.date,
		  rule=EXCLUDED.rule
	`, r.qt(r.tables.Retry)),
		rec.ID, rec.OrderID, rec.Status, rec.Date, rule,
	)
	return err
}

func (r *RetryRepo) Get(ctx context.Context, id string) (*domain.RetryRecord, error) {
	rec, err := r.scanOne(r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT retry_id, order_uid, status, date, rule
		FROM %s WHERE retry_id=$1
	`, r.qt(r.tables.Retry)), id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rec, err
}

func (r *RetryRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT count(*) FROM %s
	`, r.qt(r.tables.Retry))).Scan(&n)
	return n, err
}

func (r *RetryRepo) CountForOrder(ctx context.Context, orderID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT count(*) FROM %s WHERE order_uid=$1
	`, r.qt(r.tables.Retry)), orderID).Scan(&n)
	return n, err
}

func (r *RetryRepo) IDsForOrder(ctx context.Context, orderID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT retry_id FROM %s WHERE order_uid=$1
		ORDER BY date DESC
	`, r.qt(r.tables.Retry)), orderID)
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

func (r *RetryRepo) LastForOrder(ctx context.Context, orderID string) (*domain.RetryRecord, error) {
	rec, err := r.scanOne(r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT retry_id, order_uid, status, date, rule
		FROM %s WHERE order_uid=$1
		ORDER BY date DESC
		LIMIT 1
	`, r.qt(r.tables.Retry)), orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rec, err
}

func (r *RetryRepo) DeleteForOrder(ctx context.Context, orderID string) error {
	_, err := r.pool.Exec(ctx, fmt.Sprintf(`
		DELETE FROM %s WHERE order_uid=$1
	`, r.qt(r.tables.Retry)), orderID)
	return err
}

func (r *RetryRepo) DueBefore(ctx context.Context, now time.Time, limit int) ([]*domain.RetryRecord, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT retry_id, order_uid, status, date, rule
		FROM %s WHERE status=$1 AND date<=$2
		ORDER BY date ASC
		LIMIT $3
	`, r.qt(r.tables.Retry)), domain.RetryPending, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var due []*domain.RetryRecord
	for rows.Next() {
		rec, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		due = append(due, rec)
	}
	return due, rows.Err()
}

func (r *RetryRepo) scanOne(row pgx.Row) (*domain.RetryRecord, error) {
	var (
		rec  domain.RetryRecord
		rule []byte
	)
	if err := row.Scan(&rec.ID, &rec.OrderID, &rec.Status, &rec.Date, &rule); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rule, &rec.Rule); err != nil {
		return nil, fmt.Errorf("unmarshal retry rule: %w", err)
	}
	return &rec, nil
}
