package retries

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/subhub/subhub/internal/domain"
)

// MemoryStore is a mutex-guarded in-memory Store, used in tests and as a
// fallback backend when no database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]domain.RetryRecord
	// byOrder keeps insertion order per order, newest last.
	byOrder map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]domain.RetryRecord),
		byOrder: make(map[string][]string),
	}
}

func (s *MemoryStore) Save(_ context.Context, rec *domain.RetryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[rec.ID]; !exists {
		s.byOrder[rec.OrderID] = append(s.byOrder[rec.OrderID], rec.ID)
	}
	s.records[rec.ID] = *rec
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.RetryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func (s *MemoryStore) CountForOrder(_ context.Context, orderID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byOrder[orderID]), nil
}

func (s *MemoryStore) IDsForOrder(_ context.Context, orderID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.byOrder[orderID]
	ids := make([]string, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		ids = append(ids, stored[i])
	}
	return ids, nil
}

func (s *MemoryStore) LastForOrder(_ context.Context, orderID string) (*domain.RetryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.byOrder[orderID]
	if len(stored) == 0 {
		return nil, domain.ErrNotFound
	}
	rec := s.records[stored[len(stored)-1]]
	return &rec, nil
}

func (s *MemoryStore) DeleteForOrder(_ context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.byOrder[orderID] {
		delete(s.records, id)
	}
	delete(s.byOrder, orderID)
	return nil
}

func (s *MemoryStore) DueBefore(_ context.Context, now time.Time, limit int) ([]*domain.RetryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var due []*domain.RetryRecord
	for id := range s.records {
		rec := s.records[id]
		if rec.Due(now) {
			due = append(due, &rec)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].Date.Before(due[j].Date) })
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}
