package main

import (
	"context"
	"errors"
	"fmt"
	"itinerary-route-service/internal/adapters/cache"
	"itinerary-route-service/internal/adapters/geocoding"
	"itinerary-route-service/internal/api"
	"itinerary-route-service/internal/config"
	"itinerary-route-service/internal/platform/db"
	"itinerary-route-service/internal/platform/obs"
	"itinerary-route-service/internal/ports"
	"itinerary-route-service/internal/services"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// main is the application composition root.
// It wires the configured geocoding provider and cache behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	obs.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var geocoder ports.Geocoder
	geocoder, err = geocoding.New(geocoding.Config{
		Provider:    cfg.Geocoder.Provider,
		BaseURL:     cfg.Geocoder.BaseURL,
		APIKey:      cfg.Geocoder.APIKey,
		Username:    cfg.Geocoder.Username,
		Limit:       cfg.Geocoder.Limit,
		Timeout:     cfg.Geocoder.Timeout,
		MaxAttempts: cfg.Geocoder.MaxAttempts,
		UserAgent:   cfg.Geocoder.UserAgent,
	})
	if err != nil {
		log.Fatal(err)
	}

	store, closeStore, err := openGeocodeCache(ctx, cfg.Cache)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	if store != nil {
		geocoder = cache.NewCachedGeocoder(geocoder, store)
	}

	resolver := services.NewRouteResolver(geocoder, cfg.Route.Concurrency)
	router := api.NewRouter(geocoder, resolver)

	// Timeouts allow a full itinerary to resolve against a slow provider.
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("server shutdown failed")
		}
	}()

	log.WithFields(log.Fields{
		"addr":     srv.Addr,
		"provider": cfg.Geocoder.Provider,
		"cache":    cfg.Cache.Backend,
	}).Info("server listening")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// openGeocodeCache builds the configured cache backend. A nil cache means
// caching is disabled.
func openGeocodeCache(ctx context.Context, cfg config.CacheConfig) (ports.GeocodeCache, func(), error) {
	noop := func() {}

	switch cfg.Backend {
	case config.CacheNone:
		return nil, noop, nil
	case config.CacheMemory:
		return cache.NewMemoryGeocodeCache(cfg.Size, cfg.TTL), noop, nil
	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("open geocode cache: ping redis %s: %w", cfg.RedisAddr, err)
		}
		return cache.NewRedisGeocodeCache(client, cfg.TTL), func() { _ = client.Close() }, nil
	case config.CachePostgres:
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("open geocode cache: %w", err)
		}
		if err := cache.InitSchema(ctx, conn); err != nil {
			_ = conn.Close()
			return nil, noop, fmt.Errorf("open geocode cache: %w", err)
		}
		return cache.NewSQLGeocodeCache(conn, cfg.TTL), func() { _ = conn.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("open geocode cache: unknown backend %q", cfg.Backend)
	}
}
