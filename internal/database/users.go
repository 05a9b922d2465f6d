package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/subhub/subhub/internal/access"
	"github.com/subhub/subhub/internal/config"
	"github.com/subhub/subhub/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo backs the access manager: it stores user roles and answers the
// active-subscription check from the subscriptions table.
type UserRepo struct {
	pool   *pgxpool.Pool
	tables config.Tables
}

func NewUserRepo(pool *pgxpool.Pool, t config.Tables) *UserRepo {
	return &UserRepo{pool: pool, tables: t}
}

func (r *UserRepo) qt(tbl string) string { return qt(r.tables.Schema, tbl) }

func (r *UserRepo) Get(ctx context.Context, id string) (*access.User, error) {
	var roles []string
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT roles FROM %s WHERE user_id=$1
	`, r.qt(r.tables.User)), id).Scan(&roles)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	u := &access.User{ID: id, Roles: make([]access.Role, 0, len(roles))}
	for _, role := range roles {
		u.Roles = append(u.Roles, access.Role(role))
	}
	return u, nil
}

func (r *UserRepo) SetRoles(ctx context.Context, id string, roles []access.Role) error {
	raw := make([]string, 0, len(roles))
	for _, role := range roles {
		raw = append(raw, string(role))
	}

	ct, err := r.pool.Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET roles=$2 WHERE user_id=$1
	`, r.qt(r.tables.User)), id, raw)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HasActiveSubscriptions implements access.ActiveChecker.
func (r *UserRepo) HasActiveSubscriptions(ctx context.Context, userID string) (bool, error) {
	var active bool
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT EXISTS(SELECT 1 FROM %s WHERE customer_id=$1 AND status=$2)
	`, r.qt(r.tables.Subscription)), userID, domain.SubscriptionActive).Scan(&active)
	return active, err
}
