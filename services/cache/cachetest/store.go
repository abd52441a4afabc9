// Package cachetest provides an in-memory cache.Store for tests.
package cachetest

import (
	// Go Internal Packages
	"context"
	"sync"
	"time"

	// Local Packages
	cache "tx-guard/services/cache"
)

type item struct {
	value []byte
	ttl   time.Duration
}

// Store records every write with its TTL. Entries never expire; tests inspect
// the TTL instead. GetErr and SetErr make the next calls fail.
type Store struct {
	mu     sync.Mutex
	items  map[string]item
	GetErr error
	SetErr error
	Gets   int
	Sets   int
}

func NewStore() *Store {
	return &Store{items: make(map[string]item)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Gets++
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	it, ok := s.items[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return append([]byte(nil), it.value...), nil
}

func (s *Store) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Sets++
	if s.SetErr != nil {
		return s.SetErr
	}
	s.items[key] = item{value: append([]byte(nil), value...), ttl: ttl}
	return nil
}

// TTL returns the TTL of the last write to key.
func (s *Store) TTL(key string) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[key]
	return it.ttl, ok
}

func (s *Store) Has(key string) bool {
	_, ok := s.TTL(key)
	return ok
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
