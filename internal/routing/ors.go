package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/citywander/trip-planner/pkg/httpclient"
)

// ORSProvider implements DirectionsProvider against the OpenRouteService
// directions API. Requires an API key, so it only participates in provider
// selection when one is configured.
type ORSProvider struct {
	client *httpclient.Client
	apiKey string
}

// NewORSProvider creates a new OpenRouteService provider
func NewORSProvider(baseURL, apiKey string, timeout time.Duration) *ORSProvider {
	return &ORSProvider{
		client: httpclient.NewClient(baseURL, timeout),
		apiKey: apiKey,
	}
}

// Name returns the provider name
func (p *ORSProvider) Name() Provider {
	return ProviderORS
}

// HealthCheck verifies the API key against a short known-good route
func (p *ORSProvider) HealthCheck(ctx context.Context) error {
	_, err := p.ComputeLeg(ctx,
		Coordinate{Latitude: 49.41461, Longitude: 8.681495},
		Coordinate{Latitude: 49.420318, Longitude: 8.687872},
		ModeWalking,
	)
	if err != nil && !errors.Is(err, ErrNoRouteFound) {
		return fmt.Errorf("openrouteservice health check failed: %w", err)
	}
	return nil
}

// ComputeLeg requests one origin->destination route and normalizes it
func (p *ORSProvider) ComputeLeg(ctx context.Context, origin, destination Coordinate, mode TravelMode) (*Leg, error) {
	body := orsDirectionsRequest{
		// ORS takes lng,lat pairs
		Coordinates: [][]float64{
			{origin.Longitude, origin.Latitude},
			{destination.Longitude, destination.Latitude},
		},
		Instructions: true,
	}

	headers := map[string]string{"Authorization": p.apiKey}
	path := fmt.Sprintf("/v2/directions/%s", orsProfile(mode))

	resp, err := p.client.Post(ctx, path, body, headers)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			// ORS reports unroutable pairs as 404 with error code 2009
			return nil, ErrNoRouteFound
		}
		return nil, fmt.Errorf("%w: openrouteservice request failed: %v", ErrRoutingUnavailable, err)
	}

	var orsResp orsDirectionsResponse
	if err := json.Unmarshal(resp, &orsResp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse openrouteservice response: %v", ErrRoutingUnavailable, err)
	}

	if len(orsResp.Routes) == 0 {
		return nil, ErrNoRouteFound
	}

	return p.convertRoute(&orsResp.Routes[0], origin, destination), nil
}

func (p *ORSProvider) convertRoute(route *orsRoute, origin, destination Coordinate) *Leg {
	leg := &Leg{
		From:            origin,
		To:              destination,
		DistanceMeters:  route.Summary.Distance,
		DurationMinutes: int(math.Ceil(route.Summary.Duration / 60.0)),
		Geometry:        decodePolyline(route.Geometry),
		Provider:        ProviderORS,
	}

	if len(leg.Geometry) < 2 {
		leg.Geometry = []Coordinate{origin, destination}
	}

	for _, segment := range route.Segments {
		for _, step := range segment.Steps {
			leg.Steps = append(leg.Steps, Step{
				Instruction:     step.Instruction,
				Maneuver:        orsManeuver(step.Type),
				DistanceMeters:  step.Distance,
				DurationSeconds: int(math.Round(step.Duration)),
			})
		}
	}

	return leg
}

func orsProfile(mode TravelMode) string {
	switch mode {
	case ModeCycling:
		return "cycling-regular"
	case ModeDriving:
		return "driving-car"
	default:
		return "foot-walking"
	}
}

// orsManeuver maps ORS integer instruction types to categorical maneuvers
func orsManeuver(instructionType int) string {
	switch instructionType {
	case 0:
		return "turn-left"
	case 1:
		return "turn-right"
	case 2:
		return "turn-sharp-left"
	case 3:
		return "turn-sharp-right"
	case 4:
		return "turn-slight-left"
	case 5:
		return "turn-slight-right"
	case 6:
		return "continue"
	case 7:
		return "roundabout-enter"
	case 8:
		return "roundabout-exit"
	case 9:
		return "uturn"
	case 10:
		return "arrive"
	case 11:
		return "depart"
	case 12:
		return "keep-left"
	case 13:
		return "keep-right"
	default:
		return "continue"
	}
}

// OpenRouteService API structures

type orsDirectionsRequest struct {
	Coordinates  [][]float64 `json:"coordinates"`
	Instructions bool        `json:"instructions"`
}

type orsDirectionsResponse struct {
	Routes []orsRoute `json:"routes"`
}

type orsRoute struct {
	Summary  orsSummary   `json:"summary"`
	Geometry string       `json:"geometry"`
	Segments []orsSegment `json:"segments"`
}

type orsSummary struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}

type orsSegment struct {
	Distance float64   `json:"distance"`
	Duration float64   `json:"duration"`
	Steps    []orsStep `json:"steps"`
}

type orsStep struct {
	Distance    float64 `json:"distance"`
	Duration    float64 `json:"duration"`
	Type        int     `json:"type"`
	Instruction string  `json:"instruction"`
	Name        string  `json:"name,omitempty"`
}
