package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/obs"
	"net/url"
	"slices"
)

const googleBaseURL = "https://maps.googleapis.com"

type googleResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress  string `json:"formatted_address"`
		AddressComponents []struct {
			LongName string   `json:"long_name"`
			Types    []string `json:"types"`
		} `json:"address_components"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Google resolves places through the Google Geocoding API.
// An API key is required.
type Google struct {
	transport *transport
	baseURL   string
	apiKey    string
	limit     int
}

func NewGoogle(cfg Config) *Google {
	return &Google{
		transport: newTransport(cfg),
		baseURL:   cfg.baseURL(googleBaseURL),
		apiKey:    cfg.APIKey,
		limit:     cfg.limit(),
	}
}

func (g *Google) Geocode(ctx context.Context, query, language string) ([]domain.PlaceSuggestion, error) {
	return run(ctx, ProviderGoogle, query, language, g.lookup)
}

func (g *Google) lookup(ctx context.Context, query, language string) ([]domain.PlaceSuggestion, error) {
	if g.apiKey == "" {
		return nil, &Error{Kind: KindCredential, Provider: ProviderGoogle, Query: query, Err: ErrCredential}
	}

	params := url.Values{}
	params.Set("address", query)
	params.Set("key", g.apiKey)
	if language != "" {
		params.Set("language", language)
	}

	body, err := g.transport.get(ctx, ProviderGoogle, query, g.baseURL+"/maps/api/geocode/json", params, nil)
	if err != nil {
		return nil, err
	}

	var decoded googleResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &Error{Kind: KindParse, Provider: ProviderGoogle, Query: query, Err: err}
	}

	switch decoded.Status {
	case "OK":
	case "ZERO_RESULTS":
		return []domain.PlaceSuggestion{}, nil
	case "":
		return nil, &Error{Kind: KindParse, Provider: ProviderGoogle, Query: query, Err: errors.New("missing status field")}
	default:
		return nil, &Error{
			Kind:     KindProvider,
			Provider: ProviderGoogle,
			Query:    query,
			Err:      fmt.Errorf("status %s: %s", decoded.Status, decoded.ErrorMessage),
		}
	}

	out := make([]domain.PlaceSuggestion, 0, min(len(decoded.Results), g.limit))
	for _, r := range decoded.Results {
		loc := r.Geometry.Location
		point, err := domain.NewGeoPoint(loc.Lat, loc.Lng)
		if err != nil {
			obs.Logger(ctx).WithError(err).WithField("place", r.FormattedAddress).Debug("google: skip place")
			continue
		}

		country := ""
		for _, c := range r.AddressComponents {
			if slices.Contains(c.Types, "country") {
				country = c.LongName
				break
			}
		}

		out = append(out, domain.PlaceSuggestion{
			DisplayName: r.FormattedAddress,
			Point:       point,
			CountryName: country,
		})
		if len(out) == g.limit {
			break
		}
	}

	return out, nil
}
