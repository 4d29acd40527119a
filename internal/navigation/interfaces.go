package navigation

import (
	"context"

	"github.com/citywander/trip-planner/internal/trip"
)

// ItinerarySource supplies the itinerary a session navigates over
type ItinerarySource interface {
	GetItinerary(ctx context.Context, id string) (*trip.Itinerary, error)
}

// Service is the navigation surface exposed to handlers. All operations
// require an active session; transitions persist the moved cursor.
type Service interface {
	Current(ctx context.Context, itineraryID string) (*StepView, error)
	Advance(ctx context.Context, itineraryID string) (*StepView, error)
	Retreat(ctx context.Context, itineraryID string) (*StepView, error)
	JumpTo(ctx context.Context, itineraryID string, index int) (*StepView, error)
}
