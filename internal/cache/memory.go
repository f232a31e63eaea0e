package cache

import (
	"context"
	"sync"
	"time"

	"farmhub/internal/models"
)

// MemoryCache is a process-local fallback for deployments without
// redis.
type MemoryCache struct {
	mu       sync.RWMutex
	products []models.RankedProduct
	expires  time.Time
	ttl      time.Duration
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl}
}

func (m *MemoryCache) GetTopProducts(context.Context) ([]models.RankedProduct, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.products == nil || time.Now().After(m.expires) {
		return nil, ErrCacheMiss
	}
	return m.products, nil
}

func (m *MemoryCache) SetTopProducts(_ context.Context, products []models.RankedProduct) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = products
	m.expires = time.Now().Add(m.ttl)
	return nil
}

func (m *MemoryCache) InvalidateTopProducts(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = nil
	return nil
}
