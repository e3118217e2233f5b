package geocoding

import (
	"context"
	"fmt"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/metrics"
	"itinerary-route-service/internal/platform/obs"
	"itinerary-route-service/internal/ports"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultLimit = 5
	MaxLimit     = 10
)

// Provider names accepted by New.
const (
	ProviderNominatim = "nominatim"
	ProviderGeoNames  = "geonames"
	ProviderGoogle    = "google"
	ProviderORS       = "ors"
	ProviderMock      = "mock"
)

// Config holds the settings shared by all HTTP providers.
// Zero values fall back to provider defaults.
type Config struct {
	Provider    string
	BaseURL     string
	APIKey      string
	Username    string
	Limit       int
	Timeout     time.Duration
	MaxAttempts int
	UserAgent   string
	HTTPClient  HTTPDoer
}

func (c Config) limit() int {
	switch {
	case c.Limit <= 0:
		return DefaultLimit
	case c.Limit > MaxLimit:
		return MaxLimit
	}
	return c.Limit
}

func (c Config) baseURL(fallback string) string {
	if c.BaseURL == "" {
		return fallback
	}
	return strings.TrimRight(c.BaseURL, "/")
}

// New selects a provider implementation by name.
func New(cfg Config) (ports.Geocoder, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderNominatim, "":
		return NewNominatim(cfg), nil
	case ProviderGeoNames:
		return NewGeoNames(cfg), nil
	case ProviderGoogle:
		return NewGoogle(cfg), nil
	case ProviderORS:
		return NewORS(cfg), nil
	case ProviderMock:
		return DemoGeocoder(), nil
	default:
		return nil, fmt.Errorf("new geocoder: unknown provider %q", cfg.Provider)
	}
}

// normalize collapses whitespace so equivalent queries look the same.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type lookupFunc func(ctx context.Context, query, language string) ([]domain.PlaceSuggestion, error)

// run applies the contract shared by every provider: empty queries never
// reach the network, failures yield no suggestions, and every call is
// timed and counted.
func run(
	ctx context.Context,
	provider string,
	query string,
	language string,
	lookup lookupFunc,
) (_ []domain.PlaceSuggestion, err error) {
	query = normalize(query)
	if query == "" {
		return nil, nil
	}

	defer obs.Time(ctx, provider+".Geocode")(&err)

	start := time.Now()
	out, err := lookup(ctx, query, strings.TrimSpace(language))
	metrics.GeocodeDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.GeocodeRequests.WithLabelValues(provider, string(KindOf(err))).Inc()
		return nil, err
	}

	outcome := "ok"
	if len(out) == 0 {
		outcome = "empty"
	}
	metrics.GeocodeRequests.WithLabelValues(provider, outcome).Inc()

	return out, nil
}

// parsePoint converts provider coordinates (strings or numbers) into a
// validated point.
func parsePoint(lat, lon string) (domain.GeoPoint, error) {
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("parse latitude %q: %w", lat, err)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("parse longitude %q: %w", lon, err)
	}
	return domain.NewGeoPoint(la, lo)
}
