package cache

import (
	"container/list"
	"context"
	"itinerary-route-service/internal/domain"
	"slices"
	"sync"
	"time"
)

type memoryEntry struct {
	key         string
	suggestions []domain.PlaceSuggestion
	storedAt    time.Time
}

// MemoryGeocodeCache is a bounded in-process LRU with an optional TTL.
// It is safe for concurrent use.
type MemoryGeocodeCache struct {
	mu    sync.Mutex
	size  int
	ttl   time.Duration
	order *list.List
	items map[string]*list.Element
	now   func() time.Time
}

// NewMemoryGeocodeCache keeps at most size entries; ttl <= 0 disables expiry.
func NewMemoryGeocodeCache(size int, ttl time.Duration) *MemoryGeocodeCache {
	if size <= 0 {
		size = 256
	}
	return &MemoryGeocodeCache{
		size:  size,
		ttl:   ttl,
		order: list.New(),
		items: make(map[string]*list.Element, size),
		now:   time.Now,
	}
}

func (m *MemoryGeocodeCache) Get(_ context.Context, key string) ([]domain.PlaceSuggestion, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}

	entry := el.Value.(*memoryEntry)
	if m.ttl > 0 && m.now().Sub(entry.storedAt) > m.ttl {
		m.order.Remove(el)
		delete(m.items, key)
		return nil, false, nil
	}

	m.order.MoveToFront(el)
	return slices.Clone(entry.suggestions), true, nil
}

func (m *MemoryGeocodeCache) Put(_ context.Context, key string, suggestions []domain.PlaceSuggestion) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.items[key]; ok {
		entry := el.Value.(*memoryEntry)
		entry.suggestions = slices.Clone(suggestions)
		entry.storedAt = m.now()
		m.order.MoveToFront(el)
		return nil
	}

	m.items[key] = m.order.PushFront(&memoryEntry{
		key:         key,
		suggestions: slices.Clone(suggestions),
		storedAt:    m.now(),
	})

	for m.order.Len() > m.size {
		oldest := m.order.Back()
		m.order.Remove(oldest)
		delete(m.items, oldest.Value.(*memoryEntry).key)
	}

	return nil
}

func (m *MemoryGeocodeCache) entries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}
