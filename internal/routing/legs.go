package routing

import (
	"context"
	"sync"
	"time"

	"github.com/citywander/trip-planner/pkg/geo"
	"github.com/citywander/trip-planner/pkg/logger"
	"github.com/citywander/trip-planner/pkg/resilience"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var legsComputedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "routing_legs_computed_total",
		Help: "Legs computed, partitioned by outcome (routed or degraded)",
	},
	[]string{"outcome"},
)

// LegPlanner computes one leg per consecutive waypoint pair. Provider
// failures are absorbed here: a failed call yields a straight-line degraded
// leg, never an error, so an itinerary always ends up with exactly N legs
// for N+1 points.
type LegPlanner struct {
	provider      DirectionsProvider
	breaker       *resilience.CircuitBreaker
	legTimeout    time.Duration
	maxConcurrent int
}

// NewLegPlanner creates a leg planner around the resolved provider. A nil
// provider is allowed and means every leg degrades to a straight line.
func NewLegPlanner(provider DirectionsProvider, legTimeout time.Duration, maxConcurrent int) *LegPlanner {
	if legTimeout <= 0 {
		legTimeout = 5 * time.Second
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &LegPlanner{
		provider:      provider,
		legTimeout:    legTimeout,
		maxConcurrent: maxConcurrent,
	}
}

// SetCircuitBreaker guards provider calls with the given breaker
func (p *LegPlanner) SetCircuitBreaker(breaker *resilience.CircuitBreaker) {
	p.breaker = breaker
}

// ComputeLegs computes one leg per consecutive pair of the ordered point
// sequence. Pairs are fanned out concurrently, bounded by the planner's
// concurrency limit to stay inside the provider's rate limit, and collected
// back in input order. Cancelling ctx abandons outstanding calls; affected
// legs come back degraded.
func (p *LegPlanner) ComputeLegs(ctx context.Context, points []RoutePoint, mode TravelMode) []Leg {
	if len(points) < 2 {
		return []Leg{}
	}

	legs := make([]Leg, len(points)-1)
	sem := make(chan struct{}, p.maxConcurrent)
	var wg sync.WaitGroup

	for i := 0; i < len(points)-1; i++ {
		wg.Add(1)
		go func(idx int, from, to RoutePoint) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				legs[idx] = p.degradedLeg(from, to)
				return
			}

			legs[idx] = p.computeLeg(ctx, from, to, mode)
		}(i, points[i], points[i+1])
	}

	wg.Wait()
	return legs
}

// computeLeg calls the provider with a per-leg timeout; any failure,
// including timeout and an open breaker, degrades locally.
func (p *LegPlanner) computeLeg(ctx context.Context, from, to RoutePoint, mode TravelMode) Leg {
	if p.provider == nil {
		return p.degradedLeg(from, to)
	}

	legCtx, cancel := context.WithTimeout(ctx, p.legTimeout)
	defer cancel()

	var leg *Leg
	var err error
	if p.breaker != nil {
		var result interface{}
		result, err = p.breaker.Execute(legCtx, func(ctx context.Context) (interface{}, error) {
			return p.provider.ComputeLeg(ctx, from.Coord, to.Coord, mode)
		})
		if err == nil {
			leg = result.(*Leg)
		}
	} else {
		leg, err = p.provider.ComputeLeg(legCtx, from.Coord, to.Coord, mode)
	}

	if err != nil {
		logger.WarnContext(ctx, "leg routing failed, degrading to straight line",
			zap.String("from", from.ID),
			zap.String("to", to.ID),
			zap.Error(err),
		)
		return p.degradedLeg(from, to)
	}

	leg.FromID = from.ID
	leg.ToID = to.ID
	legsComputedTotal.WithLabelValues("routed").Inc()
	return *leg
}

// degradedLeg builds the straight-line fallback: haversine distance, walking
// duration at 80 m/min rounded up, two-point geometry, no steps.
func (p *LegPlanner) degradedLeg(from, to RoutePoint) Leg {
	distance := geo.Haversine(
		from.Coord.Latitude, from.Coord.Longitude,
		to.Coord.Latitude, to.Coord.Longitude,
	)

	legsComputedTotal.WithLabelValues("degraded").Inc()

	return Leg{
		FromID:          from.ID,
		ToID:            to.ID,
		From:            from.Coord,
		To:              to.Coord,
		DistanceMeters:  distance,
		DurationMinutes: geo.WalkingDuration(distance),
		Geometry:        []Coordinate{from.Coord, to.Coord},
		Steps:           []Step{},
		Degraded:        true,
	}
}
