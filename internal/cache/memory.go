package cache

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store. Entries do not survive the
// process.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	response, ok := s.entries[key]
	return response, ok, nil
}

func (s *MemoryStore) Put(ctx context.Context, key string, response string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = response
	return nil
}

func (s *MemoryStore) Purge(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]string)
	return nil
}

func (s *MemoryStore) Len(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.entries)), nil
}
