package trip

import (
	"context"
	"time"

	"github.com/citywander/trip-planner/internal/routing"
	"github.com/citywander/trip-planner/pkg/geo"
	"github.com/citywander/trip-planner/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SanitizeStops drops stops with out-of-range coordinates before leg
// computation. Dropped stops are logged, never a crash; the remaining order
// is preserved.
func SanitizeStops(ctx context.Context, stops []Stop) []Stop {
	valid := make([]Stop, 0, len(stops))
	for _, s := range stops {
		if !geo.ValidCoordinate(s.Latitude, s.Longitude) {
			logger.WarnContext(ctx, "dropping stop with invalid coordinates",
				zap.String("stop_id", s.ID),
				zap.String("stop_name", s.Name),
				zap.Float64("latitude", s.Latitude),
				zap.Float64("longitude", s.Longitude),
			)
			continue
		}
		valid = append(valid, s)
	}
	return valid
}

// RoutePoints builds the ordered point sequence for the leg planner: the
// traveller's position first, then every stop in proposal order.
func RoutePoints(originLat, originLng float64, stops []Stop) []routing.RoutePoint {
	points := make([]routing.RoutePoint, 0, len(stops)+1)
	points = append(points, routing.RoutePoint{
		ID:   "origin",
		Name: "Current location",
		Coord: routing.Coordinate{
			Latitude:  originLat,
			Longitude: originLng,
		},
	})
	for _, s := range stops {
		points = append(points, routing.RoutePoint{
			ID:       s.ID,
			Name:     s.Name,
			Category: s.Category,
			Coord: routing.Coordinate{
				Latitude:  s.Latitude,
				Longitude: s.Longitude,
			},
		})
	}
	return points
}

// Assemble builds the final itinerary from a validated proposal and its
// computed legs. Narrative fields (name, description, stop order, visit
// durations) come from the proposal; distance and duration totals are
// re-summed from the legs, with visit time added on top, so the displayed
// numbers always reflect the walked route rather than the composer's guess.
func Assemble(proposal *Proposal, stops []Stop, legs []routing.Leg, mode routing.TravelMode) *Itinerary {
	it := &Itinerary{
		ID:             uuid.New().String(),
		Name:           proposal.Name,
		Description:    proposal.Description,
		Mode:           mode,
		Stops:          stops,
		Legs:           legs,
		MergedGeometry: mergeGeometries(legs),
		CreatedAt:      time.Now().UTC(),
	}

	for _, leg := range legs {
		it.TotalDistanceMeters += leg.DistanceMeters
		it.TotalDurationMinutes += leg.DurationMinutes
	}
	for _, s := range stops {
		it.TotalDurationMinutes += s.VisitDurationMinutes
	}

	return it
}

// mergeGeometries concatenates the legs' geometries into one continuous
// line. Leg i's last point equals leg i+1's first point, so each leg after
// the first contributes its geometry minus that duplicate boundary point.
func mergeGeometries(legs []routing.Leg) []routing.Coordinate {
	if len(legs) == 0 {
		return []routing.Coordinate{}
	}

	size := 0
	for _, leg := range legs {
		size += len(leg.Geometry)
	}

	merged := make([]routing.Coordinate, 0, size)
	merged = append(merged, legs[0].Geometry...)
	for _, leg := range legs[1:] {
		if len(leg.Geometry) > 1 {
			merged = append(merged, leg.Geometry[1:]...)
		}
	}
	return merged
}
