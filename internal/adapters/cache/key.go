package cache

import (
	"encoding/json"
	"fmt"
	"itinerary-route-service/internal/domain"
	"strings"
)

// Key builds the cache key for a lookup. Whitespace is collapsed and case
// folded so equivalent queries share an entry. An empty query yields "".
func Key(query, language string) string {
	q := strings.ToLower(strings.Join(strings.Fields(query), " "))
	if q == "" {
		return ""
	}
	lang := strings.ToLower(strings.TrimSpace(language))
	return lang + "|" + q
}

// cachedSuggestion is the stored representation of a suggestion.
type cachedSuggestion struct {
	DisplayName string  `json:"display_name"`
	CountryName string  `json:"country_name,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

func encodeSuggestions(in []domain.PlaceSuggestion) ([]byte, error) {
	rows := make([]cachedSuggestion, 0, len(in))
	for _, s := range in {
		rows = append(rows, cachedSuggestion{
			DisplayName: s.DisplayName,
			CountryName: s.CountryName,
			Lat:         s.Point.Lat,
			Lon:         s.Point.Lon,
		})
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("encode suggestions: %w", err)
	}
	return b, nil
}

func decodeSuggestions(b []byte) ([]domain.PlaceSuggestion, error) {
	var rows []cachedSuggestion
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}
	out := make([]domain.PlaceSuggestion, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.PlaceSuggestion{
			DisplayName: r.DisplayName,
			CountryName: r.CountryName,
			Point:       domain.GeoPoint{Lat: r.Lat, Lon: r.Lon},
		})
	}
	return out, nil
}
