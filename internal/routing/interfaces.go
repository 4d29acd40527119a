package routing

import "context"

// DirectionsProvider computes one normalized leg between two points.
//
// Implementations must standardize: coordinate order (lat-first), durations
// (whole minutes, rounded up), geometry (plain ordered coordinate list), and
// step shape (free-text instruction plus categorical maneuver type).
type DirectionsProvider interface {
	ComputeLeg(ctx context.Context, origin, destination Coordinate, mode TravelMode) (*Leg, error)
	HealthCheck(ctx context.Context) error
	Name() Provider
}
