package domain

// Normalized result of a geocode lookup.
// Providers return a ranked list; the first element is the best match.
type PlaceSuggestion struct {
	DisplayName string
	Point       GeoPoint
	CountryName string
}
