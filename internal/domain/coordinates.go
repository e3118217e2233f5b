package domain

import "errors"

var ErrInvalidCoordinates = errors.New("invalid coordinates: latitude must be [-90, 90], longitude must be [-180, 180]")

// Immutable geographic point in decimal degrees.
// Points are produced by geocoding adapters from provider responses.
type GeoPoint struct {
	Lat float64
	Lon float64
}

// NewGeoPoint validates the latitude/longitude ranges before building a point.
func NewGeoPoint(lat, lon float64) (GeoPoint, error) {
	p := GeoPoint{Lat: lat, Lon: lon}
	if !p.Valid() {
		return GeoPoint{}, ErrInvalidCoordinates
	}
	return p, nil
}

func (p GeoPoint) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Return coordinates as [lon, lat] for GeoJSON/KML compatibility.
func (p GeoPoint) CoordsToList() []float64 { return []float64{p.Lon, p.Lat} }
