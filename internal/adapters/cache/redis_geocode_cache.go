package cache

import (
	"context"
	"errors"
	"fmt"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "geocode:"

// RedisGeocodeCache stores suggestions as JSON values with a TTL.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

func (r *RedisGeocodeCache) Get(ctx context.Context, key string) (_ []domain.PlaceSuggestion, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.redis.Get")(&err)

	if r.Client == nil {
		return nil, false, errors.New("geocode cache: redis client is nil")
	}

	b, err := r.Client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get geocode cache: redis get %q: %w", key, err)
	}

	out, err := decodeSuggestions(b)
	if err != nil {
		return nil, false, fmt.Errorf("get geocode cache: %w", err)
	}
	return out, true, nil
}

func (r *RedisGeocodeCache) Put(ctx context.Context, key string, suggestions []domain.PlaceSuggestion) error {
	if r.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	b, err := encodeSuggestions(suggestions)
	if err != nil {
		return fmt.Errorf("insert geocode cache: %w", err)
	}

	if err := r.Client.Set(ctx, redisKeyPrefix+key, b, r.TTL).Err(); err != nil {
		return fmt.Errorf("insert geocode cache: redis set %q: %w", key, err)
	}
	return nil
}
