package cuisine

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
)

// MemoryIndex is a map-backed index for tests and local runs without Redis.
// Selection is uniform over current members via math/rand.
type MemoryIndex struct {
	mu      sync.RWMutex
	entries map[string][]string
	seen    map[string]map[string]struct{}
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		entries: make(map[string][]string),
		seen:    make(map[string]map[string]struct{}),
	}
}

func normalize(cuisine string) string {
	return strings.ToLower(strings.TrimSpace(cuisine))
}

func (i *MemoryIndex) RandomByCuisine(_ context.Context, cuisine string) (string, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	ids := i.entries[normalize(cuisine)]
	if len(ids) == 0 {
		return "", nil
	}
	return ids[rand.IntN(len(ids))], nil
}

func (i *MemoryIndex) Add(_ context.Context, cuisine, businessID string) error {
	key := normalize(cuisine)
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.seen[key] == nil {
		i.seen[key] = make(map[string]struct{})
	}
	if _, ok := i.seen[key][businessID]; ok {
		return nil
	}
	i.seen[key][businessID] = struct{}{}
	i.entries[key] = append(i.entries[key], businessID)
	return nil
}
