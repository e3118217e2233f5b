package ports

import (
	"context"
	"itinerary-route-service/internal/domain"
)

// Port: storage for previously resolved geocode lookups keyed by
// normalized (query, language).
type GeocodeCache interface {
	// Return cached suggestions and whether the key was present.
	Get(ctx context.Context, key string) ([]domain.PlaceSuggestion, bool, error)
	// Store suggestions under the given key.
	Put(ctx context.Context, key string, suggestions []domain.PlaceSuggestion) error
}
