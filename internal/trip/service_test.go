package trip

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/citywander/trip-planner/internal/poi"
	"github.com/citywander/trip-planner/internal/routing"
	"github.com/citywander/trip-planner/pkg/config"
	"github.com/citywander/trip-planner/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ========================================
// MOCK: Redis ClientInterface
// ========================================

type mockRedisClient struct {
	mock.Mock
}

func (m *mockRedisClient) SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *mockRedisClient) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockRedisClient) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *mockRedisClient) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockRedisClient) Expire(ctx context.Context, key string, expiration time.Duration) error {
	args := m.Called(ctx, key, expiration)
	return args.Error(0)
}

func (m *mockRedisClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

// ========================================
// STUBS: pipeline collaborators
// ========================================

type stubPlaces struct {
	pool []poi.Candidate
	err  error
}

func (s *stubPlaces) Search(ctx context.Context, lat, lng, radiusMeters float64) ([]poi.Candidate, error) {
	return s.pool, s.err
}

type stubProposer struct {
	proposals []Proposal
	err       error
	gotReq    ProposalRequest
}

func (s *stubProposer) Propose(ctx context.Context, req ProposalRequest) ([]Proposal, error) {
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.proposals, nil
}

type stubSessions struct {
	started []string
	cleared []string
}

func (s *stubSessions) Start(ctx context.Context, itineraryID string) error {
	s.started = append(s.started, itineraryID)
	return nil
}

func (s *stubSessions) Clear(ctx context.Context, itineraryID string) error {
	s.cleared = append(s.cleared, itineraryID)
	return nil
}

// okProvider routes every pair as a straight two-point leg
type okProvider struct{}

func (okProvider) ComputeLeg(ctx context.Context, origin, destination routing.Coordinate, mode routing.TravelMode) (*routing.Leg, error) {
	return &routing.Leg{
		From:            origin,
		To:              destination,
		DistanceMeters:  150,
		DurationMinutes: 2,
		Geometry:        []routing.Coordinate{origin, destination},
		Steps: []routing.Step{
			{Instruction: "Head out", Maneuver: "depart"},
			{Instruction: "You have arrived at your destination", Maneuver: "arrive"},
		},
		Provider: routing.ProviderOSRM,
	}, nil
}

func (okProvider) HealthCheck(ctx context.Context) error { return nil }
func (okProvider) Name() routing.Provider                { return routing.ProviderOSRM }

// failingProvider refuses every pair
type failingProvider struct{}

func (failingProvider) ComputeLeg(ctx context.Context, origin, destination routing.Coordinate, mode routing.TravelMode) (*routing.Leg, error) {
	return nil, routing.ErrRoutingUnavailable
}

func (failingProvider) HealthCheck(ctx context.Context) error { return nil }
func (failingProvider) Name() routing.Provider                { return routing.ProviderOSRM }

// ========================================
// HELPERS
// ========================================

func twoStopProposal() Proposal {
	return Proposal{
		Name: "Historic stroll",
		Stops: []Stop{
			{ID: "a", Name: "A", Latitude: 40.001, Longitude: -75.0, VisitDurationMinutes: 20},
			{ID: "b", Name: "B", Latitude: 40.001, Longitude: -75.001, VisitDurationMinutes: 10},
		},
	}
}

func createTestService(provider routing.DirectionsProvider, proposer TripProposer) (PlannerService, *mockRedisClient, *stubSessions) {
	redisMock := new(mockRedisClient)
	sessions := &stubSessions{}

	svc := NewPlannerService(
		&stubPlaces{},
		poi.NewFilter(nil),
		proposer,
		routing.NewLegPlanner(provider, time.Second, 4),
		NewStore(redisMock),
		sessions,
		config.FilterConfig{DefaultRadiusMeters: 2000, MaxHistorical: 12, MaxFood: 6, MaxLodging: 4},
	)
	return svc, redisMock, sessions
}

func planRequest() PlanRequest {
	return PlanRequest{
		OriginLatitude:  40.0,
		OriginLongitude: -75.0,
		FreeText:        "historic walking tour",
	}
}

// ========================================
// TESTS: PlanTrip end to end
// ========================================

func TestPlanTrip_ProviderAvailable(t *testing.T) {
	proposer := &stubProposer{proposals: []Proposal{twoStopProposal()}}
	svc, redisMock, _ := createTestService(okProvider{}, proposer)
	redisMock.On("SetWithExpiration", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	itineraries, err := svc.PlanTrip(context.Background(), planRequest())
	require.NoError(t, err)
	require.Len(t, itineraries, 1)

	it := itineraries[0]
	require.Len(t, it.Legs, 2, "origin->A and A->B")

	// Merged geometry spans from the traveller's position to the last stop
	require.NotEmpty(t, it.MergedGeometry)
	assert.Equal(t, routing.Coordinate{Latitude: 40.0, Longitude: -75.0}, it.MergedGeometry[0])
	assert.Equal(t, routing.Coordinate{Latitude: 40.001, Longitude: -75.001}, it.MergedGeometry[len(it.MergedGeometry)-1])

	assert.Greater(t, it.TotalDistanceMeters, 0.0)
	// Leg minutes plus visit minutes
	assert.Equal(t, 2+2+20+10, it.TotalDurationMinutes)

	redisMock.AssertCalled(t, "SetWithExpiration", mock.Anything, "itinerary:"+it.ID, mock.Anything, mock.Anything)
}

func TestPlanTrip_ProviderUnavailableStillAssembles(t *testing.T) {
	proposer := &stubProposer{proposals: []Proposal{twoStopProposal()}}
	svc, redisMock, _ := createTestService(failingProvider{}, proposer)
	redisMock.On("SetWithExpiration", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	itineraries, err := svc.PlanTrip(context.Background(), planRequest())
	require.NoError(t, err, "routing failures must never fail planning")
	require.Len(t, itineraries, 1)

	it := itineraries[0]
	require.Len(t, it.Legs, 2)

	// The A->B leg degrades to the haversine straight line
	legAB := it.Legs[1]
	assert.True(t, legAB.Degraded)
	wantDistance := geo.Haversine(40.001, -75.0, 40.001, -75.001)
	assert.InDelta(t, wantDistance, legAB.DistanceMeters, 0.001)
	assert.Equal(t, geo.WalkingDuration(wantDistance), legAB.DurationMinutes)
}

func TestPlanTrip_MalformedProposalPropagates(t *testing.T) {
	proposer := &stubProposer{err: ErrMalformedProposal}
	svc, _, _ := createTestService(okProvider{}, proposer)

	_, err := svc.PlanTrip(context.Background(), planRequest())
	assert.ErrorIs(t, err, ErrMalformedProposal)
}

func TestPlanTrip_AllStopsInvalidIsMalformed(t *testing.T) {
	proposer := &stubProposer{proposals: []Proposal{{
		Name: "Broken",
		Stops: []Stop{
			{ID: "a", Name: "A", Latitude: 95.0, Longitude: -75.0},
		},
	}}}
	svc, _, _ := createTestService(okProvider{}, proposer)

	_, err := svc.PlanTrip(context.Background(), planRequest())
	assert.ErrorIs(t, err, ErrMalformedProposal)
}

func TestPlanTrip_InvalidOrigin(t *testing.T) {
	svc, _, _ := createTestService(okProvider{}, &stubProposer{})

	_, err := svc.PlanTrip(context.Background(), PlanRequest{
		OriginLatitude:  123.0,
		OriginLongitude: -75.0,
		FreeText:        "anywhere",
	})
	assert.ErrorIs(t, err, ErrInvalidOrigin)
}

// ========================================
// TESTS: lifecycle
// ========================================

func storedItinerary(t *testing.T) (*Itinerary, string) {
	t.Helper()
	it := &Itinerary{
		ID:   "trip-123",
		Name: "Stored trip",
		Legs: []routing.Leg{{
			Geometry: []routing.Coordinate{{Latitude: 40, Longitude: -75}, {Latitude: 40.001, Longitude: -75}},
			Steps:    []routing.Step{{Instruction: "Head out"}},
		}},
	}
	data, err := json.Marshal(it)
	require.NoError(t, err)
	return it, string(data)
}

func TestActivate_StartsSessionAtZero(t *testing.T) {
	svc, redisMock, sessions := createTestService(okProvider{}, &stubProposer{})
	it, data := storedItinerary(t)
	redisMock.On("GetString", mock.Anything, "itinerary:"+it.ID).Return(data, nil)

	got, err := svc.Activate(context.Background(), it.ID)
	require.NoError(t, err)

	assert.Equal(t, it.ID, got.ID)
	assert.Equal(t, []string{it.ID}, sessions.started)
}

func TestDiscard_RemovesItineraryAndSession(t *testing.T) {
	svc, redisMock, sessions := createTestService(okProvider{}, &stubProposer{})
	it, data := storedItinerary(t)
	redisMock.On("GetString", mock.Anything, "itinerary:"+it.ID).Return(data, nil)
	redisMock.On("Delete", mock.Anything, []string{"itinerary:" + it.ID}).Return(nil)

	err := svc.Discard(context.Background(), it.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{it.ID}, sessions.cleared)
	redisMock.AssertCalled(t, "Delete", mock.Anything, []string{"itinerary:" + it.ID})
}
