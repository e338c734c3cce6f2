// internal/infra/memstore/store.go

// Package memstore is a flat in-memory key-value document store mirroring the
// browser cache the observation dashboard originally read from. It backs the
// "memory" storage backend and serves as the test double for the Postgres
// repositories.
package memstore

import (
	"sort"
	"sync"
)

type Store struct {
	mu   sync.RWMutex
	docs map[string]string
}

func NewStore() *Store {
	return &Store{docs: make(map[string]string)}
}

func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = value
}

func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.docs[key]
	return v, ok
}

func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, key)
}

// Keys returns all keys sharing the prefix, sorted, so scans over the store
// have a stable order.
func (s *Store) Keys(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0)
	for k := range s.docs {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
