package routing

import "errors"

// Provider identifies a directions backend
type Provider string

const (
	ProviderOSRM Provider = "osrm"
	ProviderORS  Provider = "openrouteservice"
)

// TravelMode selects the routing profile for a leg request
type TravelMode string

const (
	ModeWalking TravelMode = "walking"
	ModeCycling TravelMode = "cycling"
	ModeDriving TravelMode = "driving"
)

// Routing failure taxonomy. Both are absorbed by the leg planner and turned
// into degraded legs; they never reach the end user as blocking errors.
var (
	// ErrRoutingUnavailable means no provider is configured or the provider
	// could not be reached.
	ErrRoutingUnavailable = errors.New("routing provider unavailable")

	// ErrNoRouteFound means the provider responded but reported no path
	// between the two points.
	ErrNoRouteFound = errors.New("no route found")
)

// Coordinate represents a geographic point, latitude first
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Step is a single normalized turn instruction within a leg. Ordering within
// a leg is provider order and is preserved as-is.
type Step struct {
	Instruction     string  `json:"instruction"`
	Maneuver        string  `json:"maneuver,omitempty"`
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds int     `json:"duration_seconds"`
}

// Leg is one routed segment between two consecutive stops. Legs are computed
// once and never mutated.
type Leg struct {
	FromID          string       `json:"from_id,omitempty"`
	ToID            string       `json:"to_id,omitempty"`
	From            Coordinate   `json:"from"`
	To              Coordinate   `json:"to"`
	DistanceMeters  float64      `json:"distance_meters"`
	DurationMinutes int          `json:"duration_minutes"`
	Geometry        []Coordinate `json:"geometry"`
	Steps           []Step       `json:"steps"`
	Degraded        bool         `json:"degraded,omitempty"`
	Provider        Provider     `json:"provider,omitempty"`
}

// RoutePoint is one element of the ordered stop sequence handed to the leg
// planner. Element 0 is the traveller's current position.
type RoutePoint struct {
	ID       string     `json:"id"`
	Name     string     `json:"name,omitempty"`
	Category string     `json:"category,omitempty"`
	Coord    Coordinate `json:"coord"`
}
