// Package retries holds the payment-retry bookkeeping: the store contract for
// retry records and the rule ladder that decides what each attempt does.
package retries

import (
	"context"
	"time"

	"github.com/subhub/subhub/internal/domain"
)

// Store is the abstract contract for retry-record persistence. Backends are
// pluggable: in-memory for tests, Postgres and Redis for real deployments.
type Store interface {
	// Save inserts or replaces a record by its ID.
	Save(ctx context.Context, rec *domain.RetryRecord) error
	// Get fetches one record; domain.ErrNotFound when absent.
	Get(ctx context.Context, id string) (*domain.RetryRecord, error)
	// Count returns the total number of stored records.
	Count(ctx context.Context) (int, error)
	// CountForOrder returns the number of records attached to an order.
	CountForOrder(ctx context.Context, orderID string) (int, error)
	// IDsForOrder lists record IDs for an order, newest first.
	IDsForOrder(ctx context.Context, orderID string) ([]string, error)
	// LastForOrder fetches the most recent record for an order;
	// domain.ErrNotFound when the order has none.
	LastForOrder(ctx context.Context, orderID string) (*domain.RetryRecord, error)
	// DeleteForOrder drops every record attached to an order.
	DeleteForOrder(ctx context.Context, orderID string) error
	// DueBefore lists pending records whose date has passed, oldest first.
	DueBefore(ctx context.Context, now time.Time, limit int) ([]*domain.RetryRecord, error)
}
