package navigation

import (
	"errors"

	"github.com/citywander/trip-planner/internal/routing"
	"github.com/citywander/trip-planner/internal/trip"
)

var (
	// ErrNoActiveSession means the itinerary has not been activated
	ErrNoActiveSession = errors.New("no active navigation session")

	// ErrNoNavigableSteps means every leg degraded to a straight line, so
	// there are no turn instructions to step through.
	ErrNoNavigableSteps = errors.New("itinerary has no navigable steps")
)

// FlatStep is one entry of the global step sequence: a leg's step plus where
// it sits in the trip and, for the last step of a leg, the stop it arrives at.
type FlatStep struct {
	LegIndex      int          `json:"leg_index"`
	StepIndex     int          `json:"step_index"`
	Step          routing.Step `json:"step"`
	IsDestination bool         `json:"is_destination"`
	StopID        string       `json:"stop_id,omitempty"`
	StopName      string       `json:"stop_name,omitempty"`
	StopCategory  string       `json:"stop_category,omitempty"`
}

// StepView is the derived read model for one cursor position
type StepView struct {
	ItineraryID   string       `json:"itinerary_id"`
	Index         int          `json:"index"`
	TotalSteps    int          `json:"total_steps"`
	Step          routing.Step `json:"step"`
	LegIndex      int          `json:"leg_index"`
	IsDestination bool         `json:"is_destination"`
	StopID        string       `json:"stop_id,omitempty"`
	StopName      string       `json:"stop_name,omitempty"`
	StopCategory  string       `json:"stop_category,omitempty"`
	IsAtStart     bool         `json:"is_at_start"`
	IsAtEnd       bool         `json:"is_at_end"`
	Progress      float64      `json:"progress"`
}

// Navigator is the turn-by-turn state machine over an itinerary: a flattened
// global step sequence with stable indices and a single cursor. Transitions
// are purely user-driven; there are no timers and no automatic advancement.
type Navigator struct {
	itineraryID string
	steps       []FlatStep
	cursor      int
}

// NewNavigator flattens the itinerary's legs into the global step sequence.
// Leg i terminates at stop i, so each leg's last step carries that stop's
// name and category for arrival display. Degraded legs contribute no steps.
func NewNavigator(it *trip.Itinerary) *Navigator {
	nav := &Navigator{itineraryID: it.ID}

	for legIdx, leg := range it.Legs {
		for stepIdx, step := range leg.Steps {
			flat := FlatStep{
				LegIndex:  legIdx,
				StepIndex: stepIdx,
				Step:      step,
			}
			if stepIdx == len(leg.Steps)-1 && legIdx < len(it.Stops) {
				stop := it.Stops[legIdx]
				flat.IsDestination = true
				flat.StopID = stop.ID
				flat.StopName = stop.Name
				flat.StopCategory = stop.Category
			}
			nav.steps = append(nav.steps, flat)
		}
	}

	return nav
}

// TotalSteps returns the length of the global step sequence
func (n *Navigator) TotalSteps() int {
	return len(n.steps)
}

// Index returns the current cursor position
func (n *Navigator) Index() int {
	return n.cursor
}

// IsAtStart reports whether the cursor sits on the first step
func (n *Navigator) IsAtStart() bool {
	return n.cursor == 0
}

// IsAtEnd reports whether the cursor sits on the last step
func (n *Navigator) IsAtEnd() bool {
	return len(n.steps) == 0 || n.cursor == len(n.steps)-1
}

// Advance moves one step forward; a no-op at the last step
func (n *Navigator) Advance() {
	if !n.IsAtEnd() {
		n.cursor++
	}
}

// Retreat moves one step back; a no-op at the first step
func (n *Navigator) Retreat() {
	if !n.IsAtStart() {
		n.cursor--
	}
}

// JumpTo moves the cursor to index, clamped into the valid range
func (n *Navigator) JumpTo(index int) {
	if len(n.steps) == 0 {
		n.cursor = 0
		return
	}
	if index < 0 {
		index = 0
	}
	if index > len(n.steps)-1 {
		index = len(n.steps) - 1
	}
	n.cursor = index
}

// Current returns the view for the cursor position, or nil when the
// itinerary has no steps at all.
func (n *Navigator) Current() *StepView {
	if len(n.steps) == 0 {
		return nil
	}

	flat := n.steps[n.cursor]
	return &StepView{
		ItineraryID:   n.itineraryID,
		Index:         n.cursor,
		TotalSteps:    len(n.steps),
		Step:          flat.Step,
		LegIndex:      flat.LegIndex,
		IsDestination: flat.IsDestination,
		StopID:        flat.StopID,
		StopName:      flat.StopName,
		StopCategory:  flat.StopCategory,
		IsAtStart:     n.IsAtStart(),
		IsAtEnd:       n.IsAtEnd(),
		Progress:      float64(n.cursor+1) / float64(len(n.steps)),
	}
}
