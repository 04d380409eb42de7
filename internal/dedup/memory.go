package dedup

import (
	"context"
	"sync"
)

// MemorySet is the in-process equivalent of RedisSet for tests and local runs.
type MemorySet struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func NewMemorySet() *MemorySet {
	return &MemorySet{ids: make(map[string]struct{})}
}

func (s *MemorySet) Seen(_ context.Context, requestID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[requestID]; ok {
		return true, nil
	}
	s.ids[requestID] = struct{}{}
	return false, nil
}
