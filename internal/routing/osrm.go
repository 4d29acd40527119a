package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/citywander/trip-planner/pkg/httpclient"
	"github.com/citywander/trip-planner/pkg/logger"
	"go.uber.org/zap"
)

// OSRMProvider implements DirectionsProvider against an OSRM route server.
// OSRM needs no API key, only a base URL, which makes it the default
// fallback backend.
type OSRMProvider struct {
	client  *httpclient.Client
	baseURL string
}

// NewOSRMProvider creates a new OSRM provider
func NewOSRMProvider(baseURL string, timeout time.Duration) *OSRMProvider {
	return &OSRMProvider{
		client:  httpclient.NewClient(baseURL, timeout),
		baseURL: baseURL,
	}
}

// Name returns the provider name
func (p *OSRMProvider) Name() Provider {
	return ProviderOSRM
}

// HealthCheck issues a minimal route request to verify the server responds
func (p *OSRMProvider) HealthCheck(ctx context.Context) error {
	_, err := p.ComputeLeg(ctx,
		Coordinate{Latitude: 52.517, Longitude: 13.388},
		Coordinate{Latitude: 52.523, Longitude: 13.397},
		ModeWalking,
	)
	if err != nil && err != ErrNoRouteFound {
		return fmt.Errorf("osrm health check failed: %w", err)
	}
	return nil
}

// ComputeLeg requests one origin->destination route and normalizes it
func (p *OSRMProvider) ComputeLeg(ctx context.Context, origin, destination Coordinate, mode TravelMode) (*Leg, error) {
	// OSRM takes lng,lat pairs in the path
	path := fmt.Sprintf("/route/v1/%s/%f,%f;%f,%f?overview=full&geometries=geojson&steps=true",
		osrmProfile(mode),
		origin.Longitude, origin.Latitude,
		destination.Longitude, destination.Latitude,
	)

	resp, err := p.client.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: osrm request failed: %v", ErrRoutingUnavailable, err)
	}

	var osrmResp osrmRouteResponse
	if err := json.Unmarshal(resp, &osrmResp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse osrm response: %v", ErrRoutingUnavailable, err)
	}

	switch osrmResp.Code {
	case "Ok":
	case "NoRoute", "NoSegment":
		return nil, ErrNoRouteFound
	default:
		return nil, fmt.Errorf("%w: osrm error: %s - %s", ErrRoutingUnavailable, osrmResp.Code, osrmResp.Message)
	}

	if len(osrmResp.Routes) == 0 {
		return nil, ErrNoRouteFound
	}

	return p.convertRoute(&osrmResp.Routes[0], origin, destination), nil
}

func (p *OSRMProvider) convertRoute(route *osrmRoute, origin, destination Coordinate) *Leg {
	leg := &Leg{
		From:            origin,
		To:              destination,
		DistanceMeters:  route.Distance,
		DurationMinutes: int(math.Ceil(route.Duration / 60.0)),
		Provider:        ProviderOSRM,
	}

	// GeoJSON geometry is lng-first; normalize to lat-first
	for _, pair := range route.Geometry.Coordinates {
		if len(pair) < 2 {
			continue
		}
		leg.Geometry = append(leg.Geometry, Coordinate{Latitude: pair[1], Longitude: pair[0]})
	}

	if len(leg.Geometry) < 2 {
		logger.Debug("osrm geometry below floor, substituting straight line",
			zap.Int("points", len(leg.Geometry)),
		)
		leg.Geometry = []Coordinate{origin, destination}
	}

	for _, osrmLeg := range route.Legs {
		for _, step := range osrmLeg.Steps {
			leg.Steps = append(leg.Steps, Step{
				Instruction:     osrmInstruction(step),
				Maneuver:        osrmManeuver(step.Maneuver.Type, step.Maneuver.Modifier),
				DistanceMeters:  step.Distance,
				DurationSeconds: int(math.Round(step.Duration)),
			})
		}
	}

	return leg
}

func osrmProfile(mode TravelMode) string {
	switch mode {
	case ModeCycling:
		return "bike"
	case ModeDriving:
		return "driving"
	default:
		return "foot"
	}
}

// osrmInstruction builds a readable instruction from the maneuver fields;
// OSRM does not return instruction text itself.
func osrmInstruction(step osrmStep) string {
	switch step.Maneuver.Type {
	case "depart":
		if step.Name != "" {
			return fmt.Sprintf("Head out on %s", step.Name)
		}
		return "Head out"
	case "arrive":
		return "You have arrived at your destination"
	}

	action := "Continue"
	switch step.Maneuver.Modifier {
	case "left", "sharp left":
		action = "Turn left"
	case "slight left":
		action = "Bear left"
	case "right", "sharp right":
		action = "Turn right"
	case "slight right":
		action = "Bear right"
	case "uturn":
		action = "Make a U-turn"
	case "straight":
		action = "Continue straight"
	}

	if step.Name != "" {
		return fmt.Sprintf("%s onto %s", action, step.Name)
	}
	return action
}

func osrmManeuver(maneuverType, modifier string) string {
	switch maneuverType {
	case "depart", "arrive":
		return maneuverType
	}
	if modifier == "" {
		return maneuverType
	}
	return fmt.Sprintf("%s-%s", maneuverType, modifier)
}

// OSRM API response structures

type osrmRouteResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message,omitempty"`
	Routes  []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Distance float64      `json:"distance"`
	Duration float64      `json:"duration"`
	Geometry osrmGeometry `json:"geometry"`
	Legs     []osrmLeg    `json:"legs"`
}

type osrmGeometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

type osrmLeg struct {
	Distance float64    `json:"distance"`
	Duration float64    `json:"duration"`
	Steps    []osrmStep `json:"steps"`
}

type osrmStep struct {
	Distance float64      `json:"distance"`
	Duration float64      `json:"duration"`
	Name     string       `json:"name"`
	Maneuver osrmManeuverInfo `json:"maneuver"`
}

type osrmManeuverInfo struct {
	Type     string `json:"type"`
	Modifier string `json:"modifier,omitempty"`
}
