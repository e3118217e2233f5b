package geocoding

import (
	"context"
	"encoding/json"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/obs"
	"net/http"
	"net/url"
	"strconv"
)

const orsBaseURL = "https://api.openrouteservice.org"

type orsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Label   string `json:"label"`
			Country string `json:"country"`
		} `json:"properties"`
	} `json:"features"`
}

// ORS resolves places through OpenRouteService (/geocode/search).
// The API key is sent in the Authorization header.
type ORS struct {
	transport *transport
	baseURL   string
	apiKey    string
	limit     int
}

func NewORS(cfg Config) *ORS {
	return &ORS{
		transport: newTransport(cfg),
		baseURL:   cfg.baseURL(orsBaseURL),
		apiKey:    cfg.APIKey,
		limit:     cfg.limit(),
	}
}

func (o *ORS) Geocode(ctx context.Context, query, language string) ([]domain.PlaceSuggestion, error) {
	return run(ctx, ProviderORS, query, language, o.lookup)
}

func (o *ORS) lookup(ctx context.Context, query, language string) ([]domain.PlaceSuggestion, error) {
	if o.apiKey == "" {
		return nil, &Error{Kind: KindCredential, Provider: ProviderORS, Query: query, Err: ErrCredential}
	}

	params := url.Values{}
	params.Set("text", query)
	params.Set("size", strconv.Itoa(o.limit))
	if language != "" {
		params.Set("lang", language)
	}

	header := http.Header{}
	header.Set("Authorization", o.apiKey)

	body, err := o.transport.get(ctx, ProviderORS, query, o.baseURL+"/geocode/search", params, header)
	if err != nil {
		return nil, err
	}

	var decoded orsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &Error{Kind: KindParse, Provider: ProviderORS, Query: query, Err: err}
	}

	out := make([]domain.PlaceSuggestion, 0, len(decoded.Features))
	for _, f := range decoded.Features {
		coords := f.Geometry.Coordinates
		if len(coords) != 2 {
			obs.Logger(ctx).WithField("place", f.Properties.Label).Debug("ors: skip place with invalid coordinate format")
			continue
		}

		// GeoJSON order is [lon, lat].
		point, err := domain.NewGeoPoint(coords[1], coords[0])
		if err != nil {
			obs.Logger(ctx).WithError(err).WithField("place", f.Properties.Label).Debug("ors: skip place")
			continue
		}

		out = append(out, domain.PlaceSuggestion{
			DisplayName: f.Properties.Label,
			Point:       point,
			CountryName: f.Properties.Country,
		})
		if len(out) == o.limit {
			break
		}
	}

	return out, nil
}
