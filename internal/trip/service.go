package trip

import (
	"context"
	"errors"
	"fmt"

	"github.com/citywander/trip-planner/internal/poi"
	"github.com/citywander/trip-planner/internal/routing"
	"github.com/citywander/trip-planner/pkg/config"
	"github.com/citywander/trip-planner/pkg/geo"
	"github.com/citywander/trip-planner/pkg/logger"
	"go.uber.org/zap"
)

// ErrInvalidOrigin means the request's origin is outside valid ranges
var ErrInvalidOrigin = errors.New("origin coordinates out of range")

// PlanRequest carries the traveller's position and what they asked for
type PlanRequest struct {
	OriginLatitude  float64
	OriginLongitude float64
	FreeText        string
	RadiusMeters    float64
	Mode            routing.TravelMode
}

type plannerService struct {
	places    poi.PlacesSource
	filter    *poi.Filter
	proposer  TripProposer
	legs      *routing.LegPlanner
	store     *Store
	sessions  SessionLifecycle
	filterCfg config.FilterConfig
}

// NewPlannerService wires the planning pipeline
func NewPlannerService(
	places poi.PlacesSource,
	filter *poi.Filter,
	proposer TripProposer,
	legs *routing.LegPlanner,
	store *Store,
	sessions SessionLifecycle,
	filterCfg config.FilterConfig,
) PlannerService {
	return &plannerService{
		places:    places,
		filter:    filter,
		proposer:  proposer,
		legs:      legs,
		store:     store,
		sessions:  sessions,
		filterCfg: filterCfg,
	}
}

func (s *plannerService) PlanTrip(ctx context.Context, req PlanRequest) ([]*Itinerary, error) {
	if !geo.ValidCoordinate(req.OriginLatitude, req.OriginLongitude) {
		return nil, ErrInvalidOrigin
	}

	radius := req.RadiusMeters
	if radius <= 0 {
		radius = s.filterCfg.DefaultRadiusMeters
	}
	mode := req.Mode
	if mode == "" {
		mode = routing.ModeWalking
	}

	pool, err := s.places.Search(ctx, req.OriginLatitude, req.OriginLongitude, radius)
	if err != nil {
		return nil, fmt.Errorf("candidate search failed: %w", err)
	}

	candidates := s.filter.ApplyGrouped(pool, req.OriginLatitude, req.OriginLongitude, radius, req.FreeText, poi.GroupCaps{
		Historical: s.filterCfg.MaxHistorical,
		Food:       s.filterCfg.MaxFood,
		Lodging:    s.filterCfg.MaxLodging,
	})

	logger.InfoContext(ctx, "candidate pool filtered",
		zap.Int("pool", len(pool)),
		zap.Int("candidates", len(candidates)),
		zap.Float64("radius_meters", radius),
	)

	proposals, err := s.proposer.Propose(ctx, ProposalRequest{
		OriginLatitude:  req.OriginLatitude,
		OriginLongitude: req.OriginLongitude,
		FreeText:        req.FreeText,
		Candidates:      candidates,
	})
	if err != nil {
		return nil, err
	}

	itineraries := make([]*Itinerary, 0, len(proposals))
	for i := range proposals {
		it, err := s.buildItinerary(ctx, &proposals[i], req, mode)
		if err != nil {
			return nil, err
		}
		itineraries = append(itineraries, it)
	}

	return itineraries, nil
}

// buildItinerary routes and assembles one trip option
func (s *plannerService) buildItinerary(ctx context.Context, proposal *Proposal, req PlanRequest, mode routing.TravelMode) (*Itinerary, error) {
	stops := SanitizeStops(ctx, proposal.Stops)
	if len(stops) == 0 {
		return nil, fmt.Errorf("%w: no stops with valid coordinates", ErrMalformedProposal)
	}

	points := RoutePoints(req.OriginLatitude, req.OriginLongitude, stops)
	legs := s.legs.ComputeLegs(ctx, points, mode)

	it := Assemble(proposal, stops, legs, mode)
	if err := s.store.Save(ctx, it); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "itinerary assembled",
		zap.String("itinerary_id", it.ID),
		zap.Int("stops", len(it.Stops)),
		zap.Int("legs", len(it.Legs)),
		zap.Float64("total_distance_meters", it.TotalDistanceMeters),
		zap.Int("total_duration_minutes", it.TotalDurationMinutes),
	)

	return it, nil
}

func (s *plannerService) GetItinerary(ctx context.Context, id string) (*Itinerary, error) {
	return s.store.Get(ctx, id)
}

func (s *plannerService) Activate(ctx context.Context, id string) (*Itinerary, error) {
	it, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Start(ctx, it.ID); err != nil {
		return nil, fmt.Errorf("failed to start navigation session: %w", err)
	}

	logger.InfoContext(ctx, "itinerary activated", zap.String("itinerary_id", it.ID))
	return it, nil
}

func (s *plannerService) Discard(ctx context.Context, id string) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}

	if err := s.sessions.Clear(ctx, id); err != nil {
		logger.WarnContext(ctx, "failed to clear navigation session",
			zap.String("itinerary_id", id),
			zap.Error(err),
		)
	}

	return s.store.Delete(ctx, id)
}
