package service

import (
	"context"
	"time"

	"github.com/subhub/subhub/internal/domain"
	"github.com/subhub/subhub/internal/observability"
	"go.uber.org/zap"
)

//go:generate mockgen -source internal/application/service/service.go -destination=internal/application/service/service_mock_test.go -package=service

type Cache interface {
	Set(*domain.Subscription)
	Get(string) (*domain.Subscription, bool)
}

type Storage interface {
	Upsert(context.Context, *domain.Subscription) error
	GetByID(context.Context, string) (*domain.Subscription, error)
	UpdateStatus(ctx context.Context, id string, status domain.SubscriptionStatus) error
}

// Roles reacts to subscription lifecycle transitions.
type Roles interface {
	OnSubscriptionActivated(ctx context.Context, userID string) error
	OnSubscriptionEnded(ctx context.Context, userID string) error
}

type Service struct {
	cache   Cache
	storage Storage
	roles   Roles
	logger  *zap.Logger
	metrics observability.Metrics
}

func NewService(cache Cache, storage Storage, roles Roles, logger *zap.Logger, metrics observability.Metrics) *Service {
	return &Service{
		cache:   cache,
		storage: storage,
		roles:   roles,
		logger:  logger,
		metrics: metrics,
	}
}

func (s *Service) UpsertWithStats(ctx context.Context, sub *domain.Subscription) (UpsertStats, error) {
	var st UpsertStats

	t0 := time.Now()
	if err := s.storage.Upsert(ctx, sub); err != nil {
		s.logger.Error(
			"Error while upserting subscription in db",
			zap.Error(err),
		)
		return st, err
	}
	st.DBWriteMs = float64(time.Since(t0).Microseconds()) / 1000.0

	s.cache.Set(sub)

	s.metrics.ObserveUpsert(st.DBWriteMs)
	s.logger.Info("Subscription upserted",
		zap.String("subscription_uid", sub.ID),
		zap.Float64("db_write_ms", st.DBWriteMs),
	)

	return st, nil
}

func (s *Service) Upsert(ctx context.Context, sub *domain.Subscription) error {
	_, err := s.UpsertWithStats(ctx, sub)
	return err
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Subscription, error) {
	sub, _, err := s.GetByIDWithStats(ctx, id)
	return sub, err
}

func (s *Service) GetByIDWithStats(ctx context.Context, id string) (*domain.Subscription, LookupStats, error) {
	var st LookupStats

	// Try cache
	tCacheStart := time.Now()
	if sub, ok := s.cache.Get(id); ok {
		st.Source = SourceCache
		st.CacheMs = convertToMs(tCacheStart)
		s.metrics.IncCacheHit()
		s.metrics.ObserveLookup(string(st.Source), st.CacheMs, 0)

		s.logger.Info("Subscription fetched from cache",
			zap.String("subscription_uid", id),
			zap.Float64("cache_ms", st.CacheMs),
		)

		return sub, st, nil
	}

	// Try DB
	s.metrics.IncCacheMiss()
	st.CacheMs = convertToMs(tCacheStart)

	tDbStart := time.Now()
	sub, err := s.storage.GetByID(ctx, id)
	if err != nil {
		s.logger.Error(
			"Can't find subscription",
			zap.String("subscription_uid", id),
			zap.Error(err),
			zap.Float64("cache_ms", st.CacheMs),
		)
		return nil, st, err
	}

	st.Source = SourceDB
	st.DBMs = convertToMs(tDbStart)

	s.cache.Set(sub)

	// metrics
	s.metrics.ObserveLookup(string(st.Source), st.CacheMs, st.DBMs)
	s.logger.Info("Subscription fetched from DB",
		zap.String("subscription_uid", id),
		zap.Float64("cache_ms", st.CacheMs),
		zap.Float64("db_ms", st.DBMs),
	)

	return sub, st, nil
}

// Activate flips the subscription to active and grants the owner the
// subscriber role.
func (s *Service) Activate(ctx context.Context, id string) error {
	return s.transition(ctx, id, domain.SubscriptionActive)
}

// Cancel ends the subscription; the owner keeps the subscriber role only
// while other active subscriptions remain.
func (s *Service) Cancel(ctx context.Context, id string) error {
	return s.transition(ctx, id, domain.SubscriptionCancelled)
}

// SetStatus applies an arbitrary status transition, with the same cache and
// role bookkeeping as Activate and Cancel.
func (s *Service) SetStatus(ctx context.Context, id string, status domain.SubscriptionStatus) error {
	return s.transition(ctx, id, status)
}

func (s *Service) transition(ctx context.Context, id string, status domain.SubscriptionStatus) error {
	sub, err := s.storage.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.UpdateStatus(ctx, id, status); err != nil {
		s.logger.Error("Error while updating subscription status",
			zap.String("subscription_uid", id),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return err
	}

	sub.Status = status
	s.cache.Set(sub)

	if s.roles != nil {
		var roleErr error
		if status == domain.SubscriptionActive {
			roleErr = s.roles.OnSubscriptionActivated(ctx, sub.CustomerID)
		} else if sub.HasEnded() {
			roleErr = s.roles.OnSubscriptionEnded(ctx, sub.CustomerID)
		}
		// Role bookkeeping must not undo the status change.
		if roleErr != nil {
			s.logger.Warn("Role transition failed",
				zap.String("subscription_uid", id),
				zap.String("customer_id", sub.CustomerID),
				zap.Error(roleErr),
			)
		}
	}

	s.logger.Info("Subscription status changed",
		zap.String("subscription_uid", id),
		zap.String("status", string(status)),
	)
	return nil
}
