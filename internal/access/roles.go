// Package access gates what users may do with subscriptions and keeps user
// roles in step with subscription lifecycle changes.
package access

import (
	"context"

	"go.uber.org/zap"
)

//go:generate mockgen -source internal/access/roles.go -destination=internal/access/roles_mock_test.go -package=access

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleCustomer   Role = "customer"
	RoleSubscriber Role = "subscriber"
)

type User struct {
	ID    string `json:"user_id"`
	Roles []Role `json:"roles"`
}

func (u *User) Has(r Role) bool {
	for _, have := range u.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// Privileged users manage the store; lifecycle transitions must never
// rewrite their roles.
func (u *User) Privileged() bool {
	return u.Has(RoleAdmin) || u.Has(RoleManager)
}

type UserStore interface {
	Get(ctx context.Context, id string) (*User, error)
	SetRoles(ctx context.Context, id string, roles []Role) error
}

// ActiveChecker answers whether a user still holds any active subscription.
type ActiveChecker interface {
	HasActiveSubscriptions(ctx context.Context, userID string) (bool, error)
}

type Manager struct {
	store  UserStore
	active ActiveChecker
	logger *zap.Logger
}

func NewManager(store UserStore, active ActiveChecker, logger *zap.Logger) *Manager {
	return &Manager{store: store, active: active, logger: logger}
}

// OnSubscriptionActivated grants the subscriber role. Idempotent; privileged
// accounts are left alone.
func (m *Manager) OnSubscriptionActivated(ctx context.Context, userID string) error {
	u, err := m.store.Get(ctx, userID)
	if err != nil {
		return err
	}
	if u.Privileged() || u.Has(RoleSubscriber) {
		return nil
	}

	roles := append(withoutRole(u.Roles, RoleCustomer), RoleSubscriber)
	if err := m.store.SetRoles(ctx, userID, roles); err != nil {
		return err
	}
	m.logger.Info("subscriber role granted", zap.String("user_id", userID))
	return nil
}

// OnSubscriptionEnded reverts the user to the customer role once their last
// subscription has ended.
func (m *Manager) OnSubscriptionEnded(ctx context.Context, userID string) error {
	u, err := m.store.Get(ctx, userID)
	if err != nil {
		return err
	}
	if u.Privileged() || !u.Has(RoleSubscriber) {
		return nil
	}

	stillActive, err := m.active.HasActiveSubscriptions(ctx, userID)
	if err != nil {
		return err
	}
	if stillActive {
		return nil
	}

	roles := append(withoutRole(u.Roles, RoleSubscriber), RoleCustomer)
	if err := m.store.SetRoles(ctx, userID, roles); err != nil {
		return err
	}
	m.logger.Info("subscriber role revoked", zap.String("user_id", userID))
	return nil
}

func withoutRole(roles []Role, drop Role) []Role {
	out := make([]Role, 0, len(roles))
	for _, r := range roles {
		if r != drop {
			out = append(out, r)
		}
	}
	return out
}
