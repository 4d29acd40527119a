package trip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/citywander/trip-planner/pkg/redis"
)

const (
	itineraryKeyPrefix = "itinerary:"
	itineraryTTL       = 24 * time.Hour
)

// Store keeps planned itineraries in Redis under a TTL. Itineraries are
// ephemeral planning artifacts, not durable records; letting them expire is
// the intended lifecycle.
type Store struct {
	redis redis.ClientInterface
}

// NewStore creates an itinerary store
func NewStore(redisClient redis.ClientInterface) *Store {
	return &Store{redis: redisClient}
}

// Save stores an itinerary, refreshing its TTL
func (s *Store) Save(ctx context.Context, it *Itinerary) error {
	data, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("failed to marshal itinerary: %w", err)
	}

	if err := s.redis.SetWithExpiration(ctx, itineraryKey(it.ID), data, itineraryTTL); err != nil {
		return fmt.Errorf("failed to store itinerary: %w", err)
	}
	return nil
}

// Get loads a stored itinerary by ID
func (s *Store) Get(ctx context.Context, id string) (*Itinerary, error) {
	data, err := s.redis.GetString(ctx, itineraryKey(id))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, ErrItineraryNotFound
		}
		return nil, fmt.Errorf("failed to load itinerary: %w", err)
	}

	var it Itinerary
	if err := json.Unmarshal([]byte(data), &it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal itinerary: %w", err)
	}
	return &it, nil
}

// Delete removes a stored itinerary
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.redis.Delete(ctx, itineraryKey(id))
}

func itineraryKey(id string) string {
	return itineraryKeyPrefix + id
}
