package retries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/subhub/subhub/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps retry records as JSON values with two indexes: a per-order
// list of record IDs and a sorted set of pending records scored by due time.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func recordKey(id string) string         { return "retry:" + id }
func orderKey(orderID string) string     { return "retry:order:" + orderID }
func (s *RedisStore) pendingKey() string { return "retry:pending" }
func (s *RedisStore) idsKey() string     { return "retry:ids" }

func (s *RedisStore) Save(ctx context.Context, rec *domain.RetryRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal retry record: %w", err)
	}

	exists, err := s.client.Exists(ctx, recordKey(rec.ID)).Result()
	if err != nil {
		return fmt.Errorf("redis exists failed: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, recordKey(rec.ID), data, s.ttl)
	if exists == 0 {
		pipe.LPush(ctx, orderKey(rec.OrderID), rec.ID)
		pipe.SAdd(ctx, s.idsKey(), rec.ID)
		if s.ttl > 0 {
			pipe.Expire(ctx, orderKey(rec.OrderID), s.ttl)
		}
	}
	if rec.Status == domain.RetryPending {
		pipe.ZAdd(ctx, s.pendingKey(), redis.Z{Score: float64(rec.Date.Unix()), Member: rec.ID})
	} else {
		pipe.ZRem(ctx, s.pendingKey(), rec.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.RetryRecord, error) {
	data, err := s.client.Get(ctx, recordKey(id)).Result()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var rec domain.RetryRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		// Corrupt data is useless; drop it.
		s.client.Del(ctx, recordKey(id))
		return nil, fmt.Errorf("failed to unmarshal retry record: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) Count(ctx context.Context) (int, error) {
	n, err := s.client.SCard(ctx, s.idsKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("redis scard failed: %w", err)
	}
	return int(n), nil
}

func (s *RedisStore) CountForOrder(ctx context.Context, orderID string) (int, error) {
	n, err := s.client.LLen(ctx, orderKey(orderID)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis llen failed: %w", err)
	}
	return int(n), nil
}

func (s *RedisStore) IDsForOrder(ctx context.Context, orderID string) ([]string, error) {
	ids, err := s.client.LRange(ctx, orderKey(orderID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange failed: %w", err)
	}
	return ids, nil
}

func (s *RedisStore) LastForOrder(ctx context.Context, orderID string) (*domain.RetryRecord, error) {
	id, err := s.client.LIndex(ctx, orderKey(orderID), 0).Result()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("redis lindex failed: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *RedisStore) DeleteForOrder(ctx context.Context, orderID string) error {
	ids, err := s.IDsForOrder(ctx, orderID)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, recordKey(id))
		pipe.ZRem(ctx, s.pendingKey(), id)
		pipe.SRem(ctx, s.idsKey(), id)
	}
	pipe.Del(ctx, orderKey(orderID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (s *RedisStore) DueBefore(ctx context.Context, now time.Time, limit int) ([]*domain.RetryRecord, error) {
	rng := &redis.ZRangeBy{Min: "-inf", Max: fmt.Sprintf("%d", now.Unix())}
	if limit > 0 {
		rng.Count = int64(limit)
	}
	ids, err := s.client.ZRangeByScore(ctx, s.pendingKey(), rng).Result()
	if err != nil {
		return nil, fmt.Errorf("redis zrangebyscore failed: %w", err)
	}

	due := make([]*domain.RetryRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := s.Get(ctx, id)
		if err == domain.ErrNotFound {
			// Record expired out from under the index.
			s.client.ZRem(ctx, s.pendingKey(), id)
			continue
		}
		if err != nil {
			return nil, err
		}
		due = append(due, rec)
	}
	return due, nil
}
