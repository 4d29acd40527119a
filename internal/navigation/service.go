package navigation

import (
	"context"

	"github.com/citywander/trip-planner/pkg/logger"
	"go.uber.org/zap"
)

type service struct {
	itineraries ItinerarySource
	sessions    *SessionStore
}

// NewService creates the navigation service
func NewService(itineraries ItinerarySource, sessions *SessionStore) Service {
	return &service{
		itineraries: itineraries,
		sessions:    sessions,
	}
}

func (s *service) Current(ctx context.Context, itineraryID string) (*StepView, error) {
	return s.transition(ctx, itineraryID, func(*Navigator) {})
}

func (s *service) Advance(ctx context.Context, itineraryID string) (*StepView, error) {
	return s.transition(ctx, itineraryID, (*Navigator).Advance)
}

func (s *service) Retreat(ctx context.Context, itineraryID string) (*StepView, error) {
	return s.transition(ctx, itineraryID, (*Navigator).Retreat)
}

func (s *service) JumpTo(ctx context.Context, itineraryID string, index int) (*StepView, error) {
	return s.transition(ctx, itineraryID, func(n *Navigator) {
		n.JumpTo(index)
	})
}

// transition rebuilds the navigator from the stored itinerary and cursor,
// applies one cursor operation, and persists the result. Stored cursors are
// re-clamped on load so a shrunken itinerary cannot leave the cursor out of
// range.
func (s *service) transition(ctx context.Context, itineraryID string, apply func(*Navigator)) (*StepView, error) {
	it, err := s.itineraries.GetItinerary(ctx, itineraryID)
	if err != nil {
		return nil, err
	}

	cursor, err := s.sessions.Cursor(ctx, itineraryID)
	if err != nil {
		return nil, err
	}

	nav := NewNavigator(it)
	if nav.TotalSteps() == 0 {
		return nil, ErrNoNavigableSteps
	}

	nav.JumpTo(cursor)
	apply(nav)

	if nav.Index() != cursor {
		if err := s.sessions.SetCursor(ctx, itineraryID, nav.Index()); err != nil {
			return nil, err
		}
		logger.DebugContext(ctx, "navigation cursor moved",
			zap.String("itinerary_id", itineraryID),
			zap.Int("from", cursor),
			zap.Int("to", nav.Index()),
		)
	}

	return nav.Current(), nil
}
