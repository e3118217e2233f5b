package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/obs"
	"strings"
	"time"
)

// SQLGeocodeCache is a Postgres-backed cache mapping lookup keys to
// suggestion lists. Entries older than TTL are treated as misses.
type SQLGeocodeCache struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewSQLGeocodeCache(db *sql.DB, ttl time.Duration) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db, TTL: ttl}
}

// Fetch cached suggestions for the given key.
func (s *SQLGeocodeCache) Get(
	ctx context.Context,
	key string,
) (_ []domain.PlaceSuggestion, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.sql.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("geocode cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, false, nil
	}

	q := `
	SELECT suggestions, updated_at
    FROM geocode_cache
    WHERE cache_key = $1;
	`

	var raw []byte
	var updatedAt time.Time
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&raw, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	if s.TTL > 0 && time.Since(updatedAt) > s.TTL {
		return nil, false, nil
	}

	out, err := decodeSuggestions(raw)
	if err != nil {
		return nil, false, fmt.Errorf("get geocode cache: key=%q: %w", key, err)
	}

	return out, true, nil
}

// Store the suggestion list for key, replacing any previous entry.
func (s *SQLGeocodeCache) Put(ctx context.Context, key string, suggestions []domain.PlaceSuggestion) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("insert geocode cache: empty key")
	}

	raw, err := encodeSuggestions(suggestions)
	if err != nil {
		return fmt.Errorf("insert geocode cache: %w", err)
	}

	q := `
	INSERT INTO geocode_cache (cache_key, suggestions, updated_at)
    VALUES ($1, $2::jsonb, now())
	ON CONFLICT (cache_key) DO UPDATE
	SET suggestions = EXCLUDED.suggestions,
		updated_at = EXCLUDED.updated_at;
	`

	if _, err := s.DB.ExecContext(ctx, q, key, string(raw)); err != nil {
		return fmt.Errorf("insert geocode cache key=%q: %w", key, err)
	}

	return nil
}
