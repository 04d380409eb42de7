package catalog

import (
	"context"
	"sync"

	"concierge-backend/internal/model"
)

// MemoryStore is a map-backed catalog for tests and local runs without
// Postgres. It honors the same contract as Store: missing ids yield
// (nil, nil) and existing records are immutable.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]model.RestaurantRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]model.RestaurantRecord)}
}

func (s *MemoryStore) GetByID(_ context.Context, businessID string) (*model.RestaurantRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[businessID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *MemoryStore) Put(_ context.Context, rec *model.RestaurantRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.BusinessID]; ok {
		return nil
	}
	s.records[rec.BusinessID] = *rec
	return nil
}
