package database

import (
	"context"
	"fmt"

	"github.com/subhub/subhub/internal/config"
	"github.com/subhub/subhub/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RelationRepo persists order->subscription relations as (order, meta key,
// subscription) rows. The meta key keeps the attachment convention visible in
// the data, so external consumers of the table can filter by key directly.
type RelationRepo struct {
	pool   *pgxpool.Pool
	tables config.Tables
	prefix string
}

func NewRelationRepo(pool *pgxpool.Pool, t config.Tables, metaPrefix string) *RelationRepo {
	return &RelationRepo{pool: pool, tables: t, prefix: metaPrefix}
}

func (r *RelationRepo) qt(tbl string) string { return qt(r.tables.Schema, tbl) }

func (r *RelationRepo) Add(ctx context.Context, rel domain.Relation) error {
	_, err := r.pool.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (order_uid, meta_key, subscription_uid)
		VALUES ($1,$2,$3)
		ON CONFLICT DO NOTHING
	`, r.qt(r.tables.Relation)),
		rel.OrderID, rel.Type.MetaKey(r.prefix), rel.SubscriptionID,
	)
	return err
}

func (r *RelationRepo) OrdersFor(ctx context.Context, subscriptionID string, types ...domain.RelationType) ([]string, error) {
	keys := make([]string, 0, len(types))
	for _, t := range types {
		keys = append(keys, t.MetaKey(r.prefix))
	}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT DISTINCT order_uid FROM %s
		WHERE subscription_uid=$1 AND meta_key = ANY($2)
		ORDER BY order_uid DESC
	`, r.qt(r.tables.Relation)), subscriptionID, keys)
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

func (r *RelationRepo) SubscriptionsFor(ctx context.Context, orderID string, t domain.RelationType) ([]string, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT subscription_uid FROM %s
		WHERE order_uid=$1 AND meta_key=$2
	`, r.qt(r.tables.Relation)), orderID, t.MetaKey(r.prefix))
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

func (r *RelationRepo) Delete(ctx context.Context, rel domain.Relation) error {
	_, err := r.pool.Exec(ctx, fmt.Sprintf(`
		DELETE FROM %s WHERE order_uid=$1 AND meta_key=$2 AND subscription_uid=$3
	`, r.qt(r.tables.Relation)),
		rel.OrderID, rel.Type.MetaKey(r.prefix), rel.SubscriptionID,
	)
	return err
}

func (r *RelationRepo) DeleteForOrder(ctx context.Context, orderID string) error {
	_, err := r.pool.Exec(ctx, fmt.Sprintf(`
		DELETE FROM %s WHERE order_uid=$1
	`, r.qt(r.tables.Relation)), orderID)
	return err
}
