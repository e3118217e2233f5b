package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "nominatim", cfg.Geocoder.Provider)
	assert.Equal(t, 5, cfg.Geocoder.Limit)
	assert.Equal(t, 10*time.Second, cfg.Geocoder.Timeout)
	assert.Equal(t, 1, cfg.Geocoder.MaxAttempts)
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 6, cfg.Route.Concurrency)
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("GEOCODER_PROVIDER", " Google ")
	t.Setenv("GEOCODER_API_KEY", "secret")
	t.Setenv("GEOCODER_LIMIT", "8")
	t.Setenv("GEOCODER_TIMEOUT", "3s")
	t.Setenv("GEOCODER_MAX_ATTEMPTS", "3")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("CACHE_TTL", "1h")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("ROUTE_CONCURRENCY", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "google", cfg.Geocoder.Provider)
	assert.Equal(t, "secret", cfg.Geocoder.APIKey)
	assert.Equal(t, 8, cfg.Geocoder.Limit)
	assert.Equal(t, 3*time.Second, cfg.Geocoder.Timeout)
	assert.Equal(t, 3, cfg.Geocoder.MaxAttempts)
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "redis:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 2, cfg.Route.Concurrency)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown provider", map[string]string{"GEOCODER_PROVIDER": "bing"}, `unknown GEOCODER_PROVIDER "bing"`},
		{"google without key", map[string]string{"GEOCODER_PROVIDER": "google"}, "GEOCODER_API_KEY is required for google"},
		{"ors without key", map[string]string{"GEOCODER_PROVIDER": "ors"}, "GEOCODER_API_KEY is required for ors"},
		{"geonames without username", map[string]string{"GEOCODER_PROVIDER": "geonames"}, "GEOCODER_USERNAME is required"},
		{"zero limit", map[string]string{"GEOCODER_LIMIT": "0"}, "GEOCODER_LIMIT must be positive"},
		{"unknown cache", map[string]string{"CACHE_BACKEND": "memcached"}, `unknown CACHE_BACKEND "memcached"`},
		{"postgres without url", map[string]string{"CACHE_BACKEND": "postgres"}, "DATABASE_URL is required"},
		{"bad port", map[string]string{"PORT": "70000"}, "PORT must be 1-65535"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGet(t *testing.T) {
	t.Setenv("ITINERARY_TEST_KEY", "value")
	assert.Equal(t, "value", Get("ITINERARY_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", Get("ITINERARY_TEST_MISSING", "fallback"))
}
