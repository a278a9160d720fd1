package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/renato0307/spotter/internal/ports"
)

// MemoryKVStore is an in-memory ports.KeyValueStore.
// Failures can be injected per operation to exercise error paths.
type MemoryKVStore struct {
	entries map[string]string
	failGet error
	failRem error
	failSet error
	mu      sync.Mutex
}

// Verify interface compliance at compile time
var _ ports.KeyValueStore = (*MemoryKVStore)(nil)

// NewMemoryKVStore creates an empty in-memory store
func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{entries: make(map[string]string)}
}

// FailGet makes every Get return err (nil restores normal behaviour)
func (s *MemoryKVStore) FailGet(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failGet = err
}

// FailSet makes every Set return err (nil restores normal behaviour)
func (s *MemoryKVStore) FailSet(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSet = err
}

// FailRemove makes every Remove return err (nil restores normal behaviour)
func (s *MemoryKVStore) FailRemove(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failRem = err
}

// Get implements ports.KeyValueStore.Get
func (s *MemoryKVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet != nil {
		return "", false, s.failGet
	}
	value, ok := s.entries[key]
	return value, ok, nil
}

// Set implements ports.KeyValueStore.Set
func (s *MemoryKVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet != nil {
		return s.failSet
	}
	s.entries[key] = value
	return nil
}

// Remove implements ports.KeyValueStore.Remove
func (s *MemoryKVStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failRem != nil {
		return s.failRem
	}
	delete(s.entries, key)
	return nil
}

// Keys lists stored keys with the given prefix
func (s *MemoryKVStore) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
