package trip

import (
	"errors"
	"time"

	"github.com/citywander/trip-planner/internal/routing"
)

var (
	// ErrMalformedProposal means the composed trip proposal is missing
	// required fields. This is never silently degraded: fabricating a stop's
	// location would mislead the traveller, so planning fails instead.
	ErrMalformedProposal = errors.New("malformed trip proposal")

	// ErrItineraryNotFound means no stored itinerary exists under the ID
	ErrItineraryNotFound = errors.New("itinerary not found")
)

// Stop is a waypoint the traveller visits, with how long they plan to stay
type Stop struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Category             string  `json:"category,omitempty"`
	Latitude             float64 `json:"latitude"`
	Longitude            float64 `json:"longitude"`
	Description          string  `json:"description,omitempty"`
	VisitDurationMinutes int     `json:"visit_duration_minutes,omitempty"`
}

// Proposal is one composed trip option before legs are computed. Stop order,
// names and visit durations are authoritative; the distance and duration
// estimates are provisional until real legs replace them.
type Proposal struct {
	Name                     string  `json:"name"`
	Description              string  `json:"description,omitempty"`
	Stops                    []Stop  `json:"stops"`
	EstimatedDistanceMeters  float64 `json:"estimated_distance_meters,omitempty"`
	EstimatedDurationMinutes int     `json:"estimated_duration_minutes,omitempty"`
}

// Itinerary is a complete planned trip: ordered stops, computed legs, and
// the merged geometry for drawing the whole route as one line. Totals are
// re-summed from legs, never copied from the proposal.
type Itinerary struct {
	ID                   string               `json:"id"`
	Name                 string               `json:"name"`
	Description          string               `json:"description,omitempty"`
	Mode                 routing.TravelMode   `json:"mode"`
	Stops                []Stop               `json:"stops"`
	Legs                 []routing.Leg        `json:"legs"`
	TotalDistanceMeters  float64              `json:"total_distance_meters"`
	TotalDurationMinutes int                  `json:"total_duration_minutes"`
	MergedGeometry       []routing.Coordinate `json:"merged_geometry"`
	CreatedAt            time.Time            `json:"created_at"`
}

// StepCount returns the number of turn instructions across all legs
func (it *Itinerary) StepCount() int {
	count := 0
	for _, leg := range it.Legs {
		count += len(leg.Steps)
	}
	return count
}
