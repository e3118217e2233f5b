package ports

import (
	"context"
	"itinerary-route-service/internal/domain"
)

// Contract for resolving free-text place names into ranked suggestions.
type Geocoder interface {
	// Return suggestions best match first. An empty query yields no
	// suggestions and no error. Failures yield no suggestions and a
	// non-nil error describing the failure kind.
	Geocode(ctx context.Context, query string, language string) ([]domain.PlaceSuggestion, error)
}
