package cache

import (
	"context"

	"github.com/subhub/subhub/internal/domain"

	lru "github.com/hashicorp/golang-lru/v2"
)

//go:generate mockgen -source internal/cache/cache.go -destination=internal/cache/cache_mock_test.go -package=cache

type repo interface {
	GetByID(ctx context.Context, id string) (*domain.Subscription, error)
	RecentSubscriptionIDs(ctx context.Context, limit int) ([]string, error)
}

type Cache struct {
	size int
	lru  *lru.Cache[string, domain.Subscription]
}

func New(size int) (*Cache, error) {
	c, err := lru.New[string, domain.Subscription](size)
	if err != nil {
		return nil, err
	}
	return &Cache{
		size: size,
		lru:  c,
	}, nil
}

// Warm preloads the most recently created subscriptions. Errors are ignored:
// a cold cache only costs extra lookups.
func (c *Cache) Warm(ctx context.Context, repo repo) {
	if ids, err := repo.RecentSubscriptionIDs(ctx, c.size); err == nil {
		for _, id := range ids {
			if s, err := repo.GetByID(ctx, id); err == nil {
				c.Set(s)
			}
		}
	}
}

func (c *Cache) Get(id string) (*domain.Subscription, bool) {
	sub, ok := c.lru.Get(id)
	return &sub, ok
}

func (c *Cache) Set(sub *domain.Subscription) {
	c.lru.Add(sub.ID, *sub)
}
