package geocoding

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gdugdh24/matchdotcom-backend/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const cacheKeyPrefix = "geocode:"

// RedisCache remembers successful lookups so repeated addresses skip the
// rate-limited upstream. Failures are never cached, and a broken cache only
// costs a direct lookup.
type RedisCache struct {
	next   Source
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewRedisCache(next Source, client *redis.Client, ttl time.Duration, logger *logrus.Logger) *RedisCache {
	return &RedisCache{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(query string) string {
	sum := sha1.Sum([]byte(strings.ToLower(query)))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *RedisCache) Lookup(ctx context.Context, query string) (domain.Coordinates, error) {
	key := cacheKey(query)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var coords domain.Coordinates
		if jsonErr := json.Unmarshal(raw, &coords); jsonErr == nil {
			cacheTotal.WithLabelValues(cacheHit).Inc()
			return coords, nil
		}
		c.logger.WithField("key", key).Warn("discarding corrupt geocode cache entry")
	case !errors.Is(err, redis.Nil):
		c.logger.WithError(err).Warn("geocode cache read failed")
	}
	cacheTotal.WithLabelValues(cacheMiss).Inc()

	coords, err := c.next.Lookup(ctx, query)
	if err != nil {
		return coords, err
	}

	if payload, err := json.Marshal(coords); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.WithError(err).Warn("geocode cache write failed")
		}
	}
	return coords, nil
}
