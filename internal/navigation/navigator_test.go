package navigation

import (
	"testing"

	"github.com/citywander/trip-planner/internal/routing"
	"github.com/citywander/trip-planner/internal/trip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItinerary() *trip.Itinerary {
	return &trip.Itinerary{
		ID: "trip-123",
		Stops: []trip.Stop{
			{ID: "a", Name: "Town Hall", Category: "tourism.sights"},
			{ID: "b", Name: "River Cafe", Category: "catering.cafe"},
		},
		Legs: []routing.Leg{
			{
				Steps: []routing.Step{
					{Instruction: "Head out", Maneuver: "depart"},
					{Instruction: "Turn left onto Main St", Maneuver: "turn-left"},
					{Instruction: "You have arrived at your destination", Maneuver: "arrive"},
				},
			},
			{
				Steps: []routing.Step{
					{Instruction: "Head out", Maneuver: "depart"},
					{Instruction: "You have arrived at your destination", Maneuver: "arrive"},
				},
			},
		},
	}
}

// ========================================
// TESTS: flattening
// ========================================

func TestNavigator_FlattensLegsInOrder(t *testing.T) {
	nav := NewNavigator(testItinerary())

	require.Equal(t, 5, nav.TotalSteps())

	view := nav.Current()
	require.NotNil(t, view)
	assert.Equal(t, 0, view.Index)
	assert.Equal(t, 0, view.LegIndex)
	assert.True(t, view.IsAtStart)
	assert.False(t, view.IsDestination)
}

func TestNavigator_LastStepOfLegCarriesStop(t *testing.T) {
	nav := NewNavigator(testItinerary())

	// Index 2 is the last step of leg 0, arriving at the first stop
	nav.JumpTo(2)
	view := nav.Current()
	require.True(t, view.IsDestination)
	assert.Equal(t, "Town Hall", view.StopName)
	assert.Equal(t, "tourism.sights", view.StopCategory)

	// Index 4 is the last step of leg 1, arriving at the second stop
	nav.JumpTo(4)
	view = nav.Current()
	require.True(t, view.IsDestination)
	assert.Equal(t, "River Cafe", view.StopName)
	assert.True(t, view.IsAtEnd)
}

func TestNavigator_DegradedLegsContributeNoSteps(t *testing.T) {
	it := &trip.Itinerary{
		ID: "trip-degraded",
		Legs: []routing.Leg{
			{Degraded: true, Steps: []routing.Step{}},
			{Degraded: true, Steps: []routing.Step{}},
		},
	}

	nav := NewNavigator(it)
	assert.Equal(t, 0, nav.TotalSteps())
	assert.Nil(t, nav.Current())
}

// ========================================
// TESTS: cursor transitions
// ========================================

func TestNavigator_AdvanceStopsAtEnd(t *testing.T) {
	nav := NewNavigator(testItinerary())

	for i := 0; i < 10; i++ {
		nav.Advance()
	}

	assert.Equal(t, nav.TotalSteps()-1, nav.Index(), "advance at the last step is a no-op")
	assert.True(t, nav.IsAtEnd())
}

func TestNavigator_RetreatStopsAtStart(t *testing.T) {
	nav := NewNavigator(testItinerary())

	nav.Retreat()
	assert.Equal(t, 0, nav.Index(), "retreat at step 0 is a no-op")

	nav.Advance()
	nav.Retreat()
	assert.Equal(t, 0, nav.Index())
}

func TestNavigator_JumpToClamps(t *testing.T) {
	nav := NewNavigator(testItinerary())

	nav.JumpTo(-5)
	assert.Equal(t, 0, nav.Index())

	nav.JumpTo(10_000)
	assert.Equal(t, nav.TotalSteps()-1, nav.Index())

	nav.JumpTo(3)
	assert.Equal(t, 3, nav.Index())
}

func TestNavigator_ProgressReachesOneAtEnd(t *testing.T) {
	nav := NewNavigator(testItinerary())

	nav.JumpTo(nav.TotalSteps() - 1)
	view := nav.Current()
	assert.InDelta(t, 1.0, view.Progress, 1e-9)
}
