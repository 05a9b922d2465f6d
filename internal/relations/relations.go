// Package relations maps subscriptions to their generated orders through
// tagged attachments keyed by relation type.
package relations

import (
	"context"
	"fmt"

	"github.com/subhub/subhub/internal/domain"

	"go.uber.org/zap"
)

//go:generate mockgen -source internal/relations/relations.go -destination=internal/relations/relations_mock_test.go -package=relations

type Store interface {
	Add(ctx context.Context, rel domain.Relation) error
	OrdersFor(ctx context.Context, subscriptionID string, types ...domain.RelationType) ([]string, error)
	SubscriptionsFor(ctx context.Context, orderID string, t domain.RelationType) ([]string, error)
	Delete(ctx context.Context, rel domain.Relation) error
	DeleteForOrder(ctx context.Context, orderID string) error
}

type Manager struct {
	store  Store
	logger *zap.Logger
}

func NewManager(store Store, logger *zap.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// Link attaches an order to a subscription under the given relation type.
// Linking is additive: an order may carry several relations of the same type.
func (m *Manager) Link(ctx context.Context, orderID, subscriptionID string, t domain.RelationType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidRelationType, t)
	}
	if orderID == "" || subscriptionID == "" {
		return fmt.Errorf("order and subscription ids are required")
	}

	rel := domain.Relation{OrderID: orderID, Type: t, SubscriptionID: subscriptionID}
	if err := m.store.Add(ctx, rel); err != nil {
		return err
	}

	m.logger.Info("order linked to subscription",
		zap.String("order_uid", orderID),
		zap.String("subscription_uid", subscriptionID),
		zap.String("relation", string(t)),
	)
	return nil
}

// RelatedOrders lists order IDs related to a subscription. With no types
// given, all relation types are included.
func (m *Manager) RelatedOrders(ctx context.Context, subscriptionID string, types ...domain.RelationType) ([]string, error) {
	if len(types) == 0 {
		types = []domain.RelationType{domain.RelationRenewal, domain.RelationSwitch, domain.RelationResubscribe}
	}
	for _, t := range types {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRelationType, t)
		}
	}
	return m.store.OrdersFor(ctx, subscriptionID, types...)
}

// RelatedSubscriptions lists subscription IDs an order is attached to under
// one relation type.
func (m *Manager) RelatedSubscriptions(ctx context.Context, orderID string, t domain.RelationType) ([]string, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRelationType, t)
	}
	return m.store.SubscriptionsFor(ctx, orderID, t)
}

// Unlink removes one relation. Nothing else is touched: deleting a relation
// never cascades into the order or the subscription.
func (m *Manager) Unlink(ctx context.Context, orderID, subscriptionID string, t domain.RelationType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidRelationType, t)
	}
	return m.store.Delete(ctx, domain.Relation{OrderID: orderID, Type: t, SubscriptionID: subscriptionID})
}

// UnlinkAll drops every relation the order carries.
func (m *Manager) UnlinkAll(ctx context.Context, orderID string) error {
	if err := m.store.DeleteForOrder(ctx, orderID); err != nil {
		return err
	}
	m.logger.Info("order relations removed", zap.String("order_uid", orderID))
	return nil
}
