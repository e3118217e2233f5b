package cache

import (
	"context"
	"itinerary-route-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMiniredis creates a miniredis server and a client connected to it.
func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestRedisGeocodeCacheRoundTrip(t *testing.T) {
	mr, client := setupMiniredis(t)
	c := NewRedisGeocodeCache(client, time.Hour)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "it|roma")
	require.NoError(t, err)
	assert.False(t, ok)

	in := []domain.PlaceSuggestion{{
		DisplayName: "Roma, Lazio, Italia",
		CountryName: "Italia",
		Point:       domain.GeoPoint{Lat: 41.9028, Lon: 12.4964},
	}}
	require.NoError(t, c.Put(ctx, "it|roma", in))

	assert.True(t, mr.Exists("geocode:it|roma"))
	assert.Equal(t, time.Hour, mr.TTL("geocode:it|roma"))

	got, ok, err := c.Get(ctx, "it|roma")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in, got)

	mr.FastForward(2 * time.Hour)
	_, ok, err = c.Get(ctx, "it|roma")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisGeocodeCacheCorruptValue(t *testing.T) {
	mr, client := setupMiniredis(t)
	c := NewRedisGeocodeCache(client, 0)

	require.NoError(t, mr.Set("geocode:en|paris", "{not json"))

	_, ok, err := c.Get(context.Background(), "en|paris")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRedisGeocodeCacheServerDown(t *testing.T) {
	mr, client := setupMiniredis(t)
	c := NewRedisGeocodeCache(client, 0)
	mr.Close()

	_, _, err := c.Get(context.Background(), "en|paris")
	assert.Error(t, err)
	assert.Error(t, c.Put(context.Background(), "en|paris", nil))
}
