package poi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/citywander/trip-planner/pkg/config"
	"github.com/citywander/trip-planner/pkg/httpclient"
	"github.com/citywander/trip-planner/pkg/logger"
	"go.uber.org/zap"
)

const placesPageSize = 100

// PlacesSource produces a candidate pool around a location. The production
// implementation is Geoapify; tests hand the filter a static pool instead.
type PlacesSource interface {
	Search(ctx context.Context, lat, lng, radiusMeters float64) ([]Candidate, error)
}

// GeoapifyClient queries the Geoapify Places API for the raw candidate pool.
// It fetches broadly by category; radius precision and relevance ranking stay
// in the filter so the external call can remain coarse and cacheable.
type GeoapifyClient struct {
	client     *httpclient.Client
	apiKey     string
	categories []string
}

// NewGeoapifyClient creates a places client from configuration
func NewGeoapifyClient(cfg config.PlacesConfig) *GeoapifyClient {
	return &GeoapifyClient{
		client: httpclient.NewClient(cfg.BaseURL, 15*time.Second, httpclient.WithDefaultRetry()),
		apiKey: cfg.APIKey,
		// Geoapify wants top-level category roots; fine-grained selection
		// happens in the allow-list filter
		categories: []string{"tourism", "heritage", "entertainment.museum", "catering", "accommodation"},
	}
}

// Search fetches places within a circle around the given location
func (g *GeoapifyClient) Search(ctx context.Context, lat, lng, radiusMeters float64) ([]Candidate, error) {
	params := url.Values{}
	params.Set("categories", strings.Join(g.categories, ","))
	params.Set("filter", fmt.Sprintf("circle:%f,%f,%d", lng, lat, int(radiusMeters)))
	params.Set("limit", fmt.Sprintf("%d", placesPageSize))
	params.Set("apiKey", g.apiKey)

	resp, err := g.client.Get(ctx, "/v2/places?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geoapify places request failed: %w", err)
	}

	var placesResp geoapifyPlacesResponse
	if err := json.Unmarshal(resp, &placesResp); err != nil {
		return nil, fmt.Errorf("failed to parse geoapify places response: %w", err)
	}

	candidates := make([]Candidate, 0, len(placesResp.Features))
	for _, feature := range placesResp.Features {
		props := feature.Properties
		if props.Name == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			ID:          props.PlaceID,
			Name:        props.Name,
			Category:    primaryCategory(props.Categories),
			Latitude:    props.Lat,
			Longitude:   props.Lon,
			Description: props.Formatted,
		})
	}

	logger.DebugContext(ctx, "geoapify places search completed",
		zap.Int("features", len(placesResp.Features)),
		zap.Int("candidates", len(candidates)),
	)

	return candidates, nil
}

// primaryCategory picks the most specific category Geoapify returned.
// The API lists ancestors first, so the longest dotted path is the leaf.
func primaryCategory(categories []string) string {
	best := ""
	for _, c := range categories {
		if strings.Count(c, ".") > strings.Count(best, ".") || best == "" {
			best = c
		}
	}
	return best
}

// Geoapify API structures

type geoapifyPlacesResponse struct {
	Features []geoapifyFeature `json:"features"`
}

type geoapifyFeature struct {
	Properties geoapifyProperties `json:"properties"`
}

type geoapifyProperties struct {
	PlaceID    string   `json:"place_id"`
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	Formatted  string   `json:"formatted"`
}
