package dto

import (
	"itinerary-route-service/internal/domain"

	"github.com/mmcloughlin/geohash"
)

// Geohash precision for map marker keys (~5m cells).
const geohashPrecision = 9

type GeoPointResponse struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Geohash string  `json:"geohash"`
}

type SuggestionResponse struct {
	DisplayName string `json:"display_name"`
	CountryName string `json:"country_name,omitempty"`
	GeoPointResponse
}

type GeocodeResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
}

func NewGeoPointResponse(p domain.GeoPoint) GeoPointResponse {
	return GeoPointResponse{
		Lat:     p.Lat,
		Lon:     p.Lon,
		Geohash: geohash.EncodeWithPrecision(p.Lat, p.Lon, geohashPrecision),
	}
}

func NewGeocodeResponse(suggestions []domain.PlaceSuggestion) GeocodeResponse {
	res := GeocodeResponse{Suggestions: make([]SuggestionResponse, 0, len(suggestions))}
	for _, s := range suggestions {
		res.Suggestions = append(res.Suggestions, SuggestionResponse{
			DisplayName:      s.DisplayName,
			CountryName:      s.CountryName,
			GeoPointResponse: NewGeoPointResponse(s.Point),
		})
	}
	return res
}
