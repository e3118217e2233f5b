package dto

import (
	"itinerary-route-service/internal/domain"

	"github.com/twpayne/go-polyline"
)

type RouteRequest struct {
	Itinerary []string `json:"itinerary"`
	Language  string   `json:"language"`
}

type RouteResponse struct {
	Coordinates       []GeoPointResponse `json:"coordinates"`
	TotalDistanceKm   float64            `json:"total_distance_km"`
	RoundedDistanceKm int                `json:"rounded_distance_km"`
	Unresolved        []int              `json:"unresolved"`
	// Google encoded polyline of the path, for map overlays.
	Polyline string `json:"polyline"`
}

func NewRouteResponse(r domain.RouteResult) RouteResponse {
	res := RouteResponse{
		Coordinates:       make([]GeoPointResponse, 0, len(r.Coordinates)),
		TotalDistanceKm:   r.TotalDistanceKm,
		RoundedDistanceKm: r.RoundedKm(),
		Unresolved:        make([]int, 0, len(r.Unresolved)),
		Polyline:          EncodePolyline(r.Coordinates),
	}
	for _, p := range r.Coordinates {
		res.Coordinates = append(res.Coordinates, NewGeoPointResponse(p))
	}
	res.Unresolved = append(res.Unresolved, r.Unresolved...)
	return res
}

// EncodePolyline encodes points in the Google polyline format.
func EncodePolyline(points []domain.GeoPoint) string {
	if len(points) == 0 {
		return ""
	}
	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, []float64{p.Lat, p.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}
