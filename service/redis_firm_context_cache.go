package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"legalconsult-backend/logger"
	"legalconsult-backend/models"
	"legalconsult-backend/observability"

	"github.com/redis/go-redis/v9"
)

const firmContextKeyPrefix = "firm:context:"

// RedisFirmContextCache shares firm contexts between service instances.
// Entries are written with SET ... EX ttl so Redis expires them. Redis errors
// degrade to deriving the context directly.
type RedisFirmContextCache struct {
	client  redis.Cmdable
	source  FirmKnowledgeSource
	ttl     time.Duration
	metrics *observability.ConsultationMetrics
	logger  logger.Logger
}

// NewRedisFirmContextCache creates a Redis-backed firm context cache
func NewRedisFirmContextCache(
	client redis.Cmdable,
	source FirmKnowledgeSource,
	ttl time.Duration,
	metrics *observability.ConsultationMetrics,
	log logger.Logger,
) *RedisFirmContextCache {
	if ttl <= 0 {
		ttl = DefaultFirmContextTTL
	}
	return &RedisFirmContextCache{
		client:  client,
		source:  source,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger.OrNoOp(log),
	}
}

func firmContextKey(firmID string) string {
	return firmContextKeyPrefix + firmID
}

// Get returns the firm's context from Redis, deriving and storing it on a miss
func (c *RedisFirmContextCache) Get(ctx context.Context, firmID string) (*models.FirmContext, error) {
	key := firmContextKey(firmID)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var fc models.FirmContext
		if jsonErr := json.Unmarshal(raw, &fc); jsonErr == nil {
			c.metrics.FirmCacheHit()
			return &fc, nil
		}
		c.logger.Warn("discarding undecodable firm context", map[string]interface{}{"firm_id": firmID})
	case !errors.Is(err, redis.Nil):
		c.logger.WithError(err).Warn("firm context cache read failed", map[string]interface{}{"firm_id": firmID})
	}
	c.metrics.FirmCacheMiss()

	value, err := c.source.DeriveFirmContext(ctx, firmID)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return value, nil
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.WithError(err).Warn("firm context cache write failed", map[string]interface{}{"firm_id": firmID})
	}
	return value, nil
}
