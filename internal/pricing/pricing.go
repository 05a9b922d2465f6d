// Package pricing computes and caches the (min, max) price range across the
// visible variations of a variable subscription product. Cached entries are
// validated against a fingerprint of the variation ID set, so adding or
// removing a variation invalidates the range without explicit bookkeeping.
package pricing

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/subhub/subhub/internal/domain"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source internal/pricing/pricing.go -destination=internal/pricing/pricing_mock_test.go -package=pricing

var ErrNoVisibleVariations = errors.New("product has no visible variations")

type VariationSource interface {
	Variations(ctx context.Context, productID string) ([]domain.Variation, error)
}

// MetaStore is the persisted level of the cache; it survives restarts.
type MetaStore interface {
	SaveRange(ctx context.Context, productID string, r CachedRange) error
	LoadRange(ctx context.Context, productID string) (CachedRange, bool, error)
}

type Range struct {
	MinCents int64 `json:"min_cents"`
	MaxCents int64 `json:"max_cents"`
}

// Format renders the range for display, with a "from" prefix when the
// variations do not all share one price.
func (r Range) Format(currency string) string {
	if r.MinCents == r.MaxCents {
		return formatCents(r.MinCents, currency)
	}
	return "from " + formatCents(r.MinCents, currency)
}

func formatCents(cents int64, currency string) string {
	return fmt.Sprintf("%s %d.%02d", currency, cents/100, cents%100)
}

// CachedRange couples a range with the fingerprint of the variation set it
// was computed from.
type CachedRange struct {
	Range
	Hash string `json:"hash"`
}

// Fingerprint hashes the variation ID set. Order does not matter. Visibility
// is not part of the hash: only adding or removing a variation invalidates,
// toggling one hidden serves the cached range until the set changes.
func Fingerprint(variations []domain.Variation) string {
	ids := make([]string, 0, len(variations))
	for _, v := range variations {
		ids = append(ids, v.ID)
	}
	sort.Strings(ids)
	sum := md5.Sum([]byte(strings.Join(ids, "|")))
	return hex.EncodeToString(sum[:])
}

type Cache struct {
	source VariationSource
	meta   MetaStore
	lru    *lru.Cache[string, CachedRange]
	logger *zap.Logger
}

// New builds the two-level cache. meta may be nil, which leaves only the
// in-process level.
func New(size int, source VariationSource, meta MetaStore, logger *zap.Logger) (*Cache, error) {
	c, err := lru.New[string, CachedRange](size)
	if err != nil {
		return nil, err
	}
	return &Cache{
		source: source,
		meta:   meta,
		lru:    c,
		logger: logger,
	}, nil
}

// Range returns the price range over the product's visible variations,
// serving from cache when the variation set has not changed.
func (c *Cache) Range(ctx context.Context, productID string) (Range, error) {
	variations, err := c.source.Variations(ctx, productID)
	if err != nil {
		return Range{}, err
	}
	hash := Fingerprint(variations)

	if cached, ok := c.lru.Get(productID); ok && cached.Hash == hash {
		return cached.Range, nil
	}

	if c.meta != nil {
		cached, ok, err := c.meta.LoadRange(ctx, productID)
		if err != nil {
			c.logger.Warn("persisted range load failed",
				zap.String("product_id", productID),
				zap.Error(err),
			)
		} else if ok && cached.Hash == hash {
			c.lru.Add(productID, cached)
			return cached.Range, nil
		}
	}

	r, err := compute(variations)
	if err != nil {
		return Range{}, err
	}

	cached := CachedRange{Range: r, Hash: hash}
	c.lru.Add(productID, cached)
	if c.meta != nil {
		if err := c.meta.SaveRange(ctx, productID, cached); err != nil {
			c.logger.Warn("persisted range save failed",
				zap.String("product_id", productID),
				zap.Error(err),
			)
		}
	}
	return r, nil
}

func compute(variations []domain.Variation) (Range, error) {
	var (
		r     Range
		found bool
	)
	for _, v := range variations {
		if !v.Visible {
			continue
		}
		if !found || v.PriceCents < r.MinCents {
			r.MinCents = v.PriceCents
		}
		if !found || v.PriceCents > r.MaxCents {
			r.MaxCents = v.PriceCents
		}
		found = true
	}
	if !found {
		return Range{}, ErrNoVisibleVariations
	}
	return r, nil
}
