package service

import (
	"context"
	"sync"
	"time"

	"legalconsult-backend/models"
	"legalconsult-backend/observability"
)

// DefaultFirmContextTTL is how long a derived firm context is served
const DefaultFirmContextTTL = time.Hour

// FirmContextProvider returns the context layered into prompts for a firm
type FirmContextProvider interface {
	Get(ctx context.Context, firmID string) (*models.FirmContext, error)
}

type firmCacheEntry struct {
	value     *models.FirmContext
	expiresAt time.Time
}

// FirmContextCache is an in-process cache-aside store of firm contexts.
// Entries expire a fixed TTL after they are written, regardless of access,
// and expiry is checked lazily against the injected clock. Derivation runs
// outside the lock, so concurrent misses for one firm may each derive and the
// last write wins.
type FirmContextCache struct {
	mu      sync.Mutex
	entries map[string]firmCacheEntry

	source  FirmKnowledgeSource
	ttl     time.Duration
	clock   Clock
	metrics *observability.ConsultationMetrics
}

// FirmCacheOption is a functional option for FirmContextCache
type FirmCacheOption func(*FirmContextCache)

// FirmCacheWithTTL sets the entry lifetime
func FirmCacheWithTTL(ttl time.Duration) FirmCacheOption {
	return func(c *FirmContextCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// FirmCacheWithClock sets the clock used for expiry
func FirmCacheWithClock(clock Clock) FirmCacheOption {
	return func(c *FirmContextCache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// FirmCacheWithMetrics records hits and misses
func FirmCacheWithMetrics(m *observability.ConsultationMetrics) FirmCacheOption {
	return func(c *FirmContextCache) {
		c.metrics = m
	}
}

// NewFirmContextCache creates a cache that derives missing entries from source
func NewFirmContextCache(source FirmKnowledgeSource, opts ...FirmCacheOption) *FirmContextCache {
	c := &FirmContextCache{
		entries: make(map[string]firmCacheEntry),
		source:  source,
		ttl:     DefaultFirmContextTTL,
		clock:   SystemClock{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached context for firmID, deriving and storing it on a
// miss or after expiry. The returned value is shared and must not be modified.
func (c *FirmContextCache) Get(ctx context.Context, firmID string) (*models.FirmContext, error) {
	now := c.clock.Now()

	c.mu.Lock()
	entry, ok := c.entries[firmID]
	if ok && now.Before(entry.expiresAt) {
		c.mu.Unlock()
		c.metrics.FirmCacheHit()
		return entry.value, nil
	}
	c.mu.Unlock()
	c.metrics.FirmCacheMiss()

	value, err := c.source.DeriveFirmContext(ctx, firmID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	stored := c.clock.Now()
	c.evictExpiredLocked(stored)
	c.entries[firmID] = firmCacheEntry{value: value, expiresAt: stored.Add(c.ttl)}
	return value, nil
}

// Len returns the number of unexpired entries
func (c *FirmContextCache) Len() int {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.entries {
		if now.Before(e.expiresAt) {
			n++
		}
	}
	return n
}

func (c *FirmContextCache) evictExpiredLocked(now time.Time) {
	for id, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, id)
		}
	}
}
