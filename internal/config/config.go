package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Cache backends accepted by CACHE_BACKEND.
const (
	CacheNone     = "none"
	CacheMemory   = "memory"
	CacheRedis    = "redis"
	CachePostgres = "postgres"
)

type Config struct {
	Port      int
	LogLevel  string
	LogFormat string
	Geocoder  GeocoderConfig
	Cache     CacheConfig
	Route     RouteConfig
}

type GeocoderConfig struct {
	Provider    string
	BaseURL     string
	APIKey      string
	Username    string
	Limit       int
	Timeout     time.Duration
	MaxAttempts int
	UserAgent   string
}

type CacheConfig struct {
	Backend     string
	Size        int
	TTL         time.Duration
	RedisAddr   string
	DatabaseURL string
}

type RouteConfig struct {
	Concurrency int
}

// Load reads an optional .env file, then the environment, and validates
// the result. Keys map to upper-case env vars: geocoder.api_key reads
// GEOCODER_API_KEY.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, using environment variables")
	}

	v := viper.New()

	v.SetDefault("port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("geocoder.provider", "nominatim")
	v.SetDefault("geocoder.base_url", "")
	v.SetDefault("geocoder.api_key", "")
	v.SetDefault("geocoder.username", "")
	v.SetDefault("geocoder.limit", 5)
	v.SetDefault("geocoder.timeout", 10*time.Second)
	v.SetDefault("geocoder.max_attempts", 1)
	v.SetDefault("geocoder.user_agent", "")
	v.SetDefault("cache.backend", CacheMemory)
	v.SetDefault("cache.size", 256)
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("database.url", "")
	v.SetDefault("route.concurrency", 6)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Port:      v.GetInt("port"),
		LogLevel:  v.GetString("log.level"),
		LogFormat: v.GetString("log.format"),
		Geocoder: GeocoderConfig{
			Provider:    strings.ToLower(strings.TrimSpace(v.GetString("geocoder.provider"))),
			BaseURL:     v.GetString("geocoder.base_url"),
			APIKey:      v.GetString("geocoder.api_key"),
			Username:    v.GetString("geocoder.username"),
			Limit:       v.GetInt("geocoder.limit"),
			Timeout:     v.GetDuration("geocoder.timeout"),
			MaxAttempts: v.GetInt("geocoder.max_attempts"),
			UserAgent:   v.GetString("geocoder.user_agent"),
		},
		Cache: CacheConfig{
			Backend:     strings.ToLower(strings.TrimSpace(v.GetString("cache.backend"))),
			Size:        v.GetInt("cache.size"),
			TTL:         v.GetDuration("cache.ttl"),
			RedisAddr:   v.GetString("redis.addr"),
			DatabaseURL: v.GetString("database.url"),
		},
		Route: RouteConfig{
			Concurrency: v.GetInt("route.concurrency"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Sprintf("PORT must be 1-65535, got %d", c.Port))
	}

	switch c.Geocoder.Provider {
	case "nominatim", "mock":
	case "geonames":
		if c.Geocoder.Username == "" && c.Geocoder.APIKey == "" {
			errs = append(errs, "GEOCODER_USERNAME is required for geonames")
		}
	case "google", "ors":
		if c.Geocoder.APIKey == "" {
			errs = append(errs, fmt.Sprintf("GEOCODER_API_KEY is required for %s", c.Geocoder.Provider))
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown GEOCODER_PROVIDER %q", c.Geocoder.Provider))
	}

	if c.Geocoder.Limit <= 0 {
		errs = append(errs, "GEOCODER_LIMIT must be positive")
	}
	if c.Geocoder.Timeout <= 0 {
		errs = append(errs, "GEOCODER_TIMEOUT must be positive")
	}
	if c.Geocoder.MaxAttempts <= 0 {
		errs = append(errs, "GEOCODER_MAX_ATTEMPTS must be positive")
	}

	switch c.Cache.Backend {
	case CacheNone:
	case CacheMemory:
		if c.Cache.Size <= 0 {
			errs = append(errs, "CACHE_SIZE must be positive")
		}
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			errs = append(errs, "REDIS_ADDR is required for the redis cache")
		}
	case CachePostgres:
		if c.Cache.DatabaseURL == "" {
			errs = append(errs, "DATABASE_URL is required for the postgres cache")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown CACHE_BACKEND %q", c.Cache.Backend))
	}

	if c.Route.Concurrency <= 0 {
		errs = append(errs, "ROUTE_CONCURRENCY must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Get returns the env var key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
