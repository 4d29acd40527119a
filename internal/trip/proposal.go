package trip

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Raw proposal shapes. The composer response is loosely structured JSON from
// a text-generation step, so every field is optional at the wire level and
// coordinates are pointers to tell "missing" apart from a legitimate zero.

type rawProposalEnvelope struct {
	Trips []rawTrip `json:"trips"`
}

type rawTrip struct {
	Name                     string    `json:"name"`
	Description              string    `json:"description"`
	Stops                    []rawStop `json:"stops"`
	EstimatedDistanceMeters  float64   `json:"estimated_distance_meters"`
	EstimatedDurationMinutes int       `json:"estimated_duration_minutes"`
}

type rawStop struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Category             string   `json:"category"`
	Latitude             *float64 `json:"latitude"`
	Longitude            *float64 `json:"longitude"`
	Description          string   `json:"description"`
	VisitDurationMinutes int      `json:"visit_duration_minutes"`
}

// ParseProposals validates the untrusted composer response into typed trip
// options. Any structural gap, no trips, a trip without stops, a stop
// missing its name or either coordinate, fails the whole parse with
// ErrMalformedProposal: the proposal is a unit and a partially-valid one is
// worse than none.
func ParseProposals(raw []byte) ([]Proposal, error) {
	var envelope rawProposalEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrMalformedProposal, err)
	}

	if len(envelope.Trips) == 0 {
		return nil, fmt.Errorf("%w: no trip options", ErrMalformedProposal)
	}

	proposals := make([]Proposal, 0, len(envelope.Trips))
	for i, t := range envelope.Trips {
		proposal, err := validateTrip(t)
		if err != nil {
			return nil, fmt.Errorf("trip option %d: %w", i, err)
		}
		proposals = append(proposals, *proposal)
	}

	return proposals, nil
}

func validateTrip(t rawTrip) (*Proposal, error) {
	if len(t.Stops) == 0 {
		return nil, fmt.Errorf("%w: no stops", ErrMalformedProposal)
	}

	stops := make([]Stop, 0, len(t.Stops))
	for i, s := range t.Stops {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: stop %d has no name", ErrMalformedProposal, i)
		}
		if s.Latitude == nil || s.Longitude == nil {
			return nil, fmt.Errorf("%w: stop %q has no coordinates", ErrMalformedProposal, s.Name)
		}

		id := s.ID
		if id == "" {
			id = "stop-" + strconv.Itoa(i)
		}

		stops = append(stops, Stop{
			ID:                   id,
			Name:                 s.Name,
			Category:             s.Category,
			Latitude:             *s.Latitude,
			Longitude:            *s.Longitude,
			Description:          s.Description,
			VisitDurationMinutes: s.VisitDurationMinutes,
		})
	}

	name := t.Name
	if name == "" {
		name = "Unnamed trip"
	}

	return &Proposal{
		Name:                     name,
		Description:              t.Description,
		Stops:                    stops,
		EstimatedDistanceMeters:  t.EstimatedDistanceMeters,
		EstimatedDurationMinutes: t.EstimatedDurationMinutes,
	}, nil
}
