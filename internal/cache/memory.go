package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	entry     Entry
	expiresAt time.Time // zero means never
}

// MemoryStore is an in-process Store guarded by a RWMutex
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	clock Clock
}

// NewMemoryStore creates an empty store. A nil clock uses time.Now.
func NewMemoryStore(clock Clock) *MemoryStore {
	return &MemoryStore{items: make(map[string]memoryItem), clock: clock}
}

func (s *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	s.mu.RLock()
	item, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return Entry{}, false, nil
	}
	if s.expired(item) {
		s.mu.Lock()
		// re-check, another writer may have refreshed the key
		if current, ok := s.items[key]; ok && s.expired(current) {
			delete(s.items, key)
		}
		s.mu.Unlock()
		return Entry{}, false, nil
	}
	return cloneEntry(item.entry), true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value Entry, ttl time.Duration) error {
	item := memoryItem{entry: cloneEntry(value)}
	if ttl > 0 {
		item.expiresAt = s.clock.now().Add(ttl)
	}
	s.mu.Lock()
	s.items[key] = item
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	s.items = make(map[string]memoryItem)
	s.mu.Unlock()
	return nil
}

// Len counts entries that have not expired
func (s *MemoryStore) Len(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, item := range s.items {
		if !s.expired(item) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) expired(item memoryItem) bool {
	return !item.expiresAt.IsZero() && !s.clock.now().Before(item.expiresAt)
}
