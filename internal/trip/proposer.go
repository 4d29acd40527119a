package trip

import (
	"context"
	"fmt"
	"time"

	"github.com/citywander/trip-planner/internal/poi"
	"github.com/citywander/trip-planner/pkg/config"
	"github.com/citywander/trip-planner/pkg/httpclient"
)

// ProposalRequest is what the composer needs to pick and order stops: where
// the traveller is, what they asked for, and the filtered candidate pool to
// choose from.
type ProposalRequest struct {
	OriginLatitude  float64         `json:"origin_latitude"`
	OriginLongitude float64         `json:"origin_longitude"`
	FreeText        string          `json:"free_text"`
	Candidates      []poi.Candidate `json:"candidates"`
}

// TripProposer turns a candidate pool and a free-text request into trip
// options. The production implementation calls an external composition
// service; its response is always run through the validated proposal parse.
type TripProposer interface {
	Propose(ctx context.Context, req ProposalRequest) ([]Proposal, error)
}

// HTTPProposer posts the proposal request to a configured composer endpoint
type HTTPProposer struct {
	client *httpclient.Client
}

// NewHTTPProposer creates a proposer from configuration
func NewHTTPProposer(cfg config.ProposerConfig) *HTTPProposer {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPProposer{
		client: httpclient.NewClient(cfg.BaseURL, timeout),
	}
}

// Propose requests trip options and validates the response
func (p *HTTPProposer) Propose(ctx context.Context, req ProposalRequest) ([]Proposal, error) {
	resp, err := p.client.Post(ctx, "/v1/compose", req, nil)
	if err != nil {
		return nil, fmt.Errorf("trip composer request failed: %w", err)
	}

	return ParseProposals(resp)
}
