package trip

import "context"

// PlannerService is the trip planning surface exposed to handlers
type PlannerService interface {
	// PlanTrip runs the full pipeline: candidate search, filtering,
	// composition, leg routing, assembly. Returns one itinerary per
	// accepted trip option.
	PlanTrip(ctx context.Context, req PlanRequest) ([]*Itinerary, error)

	// GetItinerary loads a stored itinerary
	GetItinerary(ctx context.Context, id string) (*Itinerary, error)

	// Activate makes an itinerary the active navigation target, starting a
	// fresh navigation session at step 0.
	Activate(ctx context.Context, id string) (*Itinerary, error)

	// Discard removes a stored itinerary and its navigation session
	Discard(ctx context.Context, id string) error
}

// SessionLifecycle is what trip planning needs from navigation sessions:
// starting one on activation and discarding it when the itinerary goes away.
type SessionLifecycle interface {
	Start(ctx context.Context, itineraryID string) error
	Clear(ctx context.Context, itineraryID string) error
}
