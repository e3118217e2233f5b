package dto

import (
	"itinerary-route-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-polyline"
)

func TestEncodePolyline(t *testing.T) {
	// Reference example from the Google polyline algorithm docs.
	points := []domain.GeoPoint{
		{Lat: 38.5, Lon: -120.2},
		{Lat: 40.7, Lon: -120.95},
		{Lat: 43.252, Lon: -126.453},
	}
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", EncodePolyline(points))
	assert.Equal(t, "", EncodePolyline(nil))
}

func TestNewRouteResponse(t *testing.T) {
	rome := domain.GeoPoint{Lat: 41.9028, Lon: 12.4964}
	naples := domain.GeoPoint{Lat: 40.8518, Lon: 14.2681}

	res := NewRouteResponse(domain.RouteResult{
		Coordinates:     []domain.GeoPoint{rome, naples},
		TotalDistanceKm: 188.43,
		Unresolved:      []int{2},
	})

	require.Len(t, res.Coordinates, 2)
	assert.Equal(t, 41.9028, res.Coordinates[0].Lat)
	assert.Len(t, res.Coordinates[0].Geohash, geohashPrecision)
	assert.Equal(t, "sr2y", res.Coordinates[0].Geohash[:4])
	assert.Equal(t, 188, res.RoundedDistanceKm)
	assert.Equal(t, []int{2}, res.Unresolved)

	coords, _, err := polyline.DecodeCoords([]byte(res.Polyline))
	require.NoError(t, err)
	require.Len(t, coords, 2)
	assert.InDelta(t, naples.Lat, coords[1][0], 1e-5)
	assert.InDelta(t, naples.Lon, coords[1][1], 1e-5)
}

func TestNewRouteResponseEmpty(t *testing.T) {
	res := NewRouteResponse(domain.RouteResult{})

	assert.NotNil(t, res.Coordinates)
	assert.NotNil(t, res.Unresolved)
	assert.Empty(t, res.Polyline)
	assert.Zero(t, res.RoundedDistanceKm)
}
