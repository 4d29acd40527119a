package navigation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/citywander/trip-planner/pkg/redis"
)

const (
	sessionKeyPrefix = "navigation:session:"
	sessionTTL       = 24 * time.Hour
)

// SessionStore persists the navigation cursor per active itinerary in Redis.
// Activation resets the cursor to 0; clearing or replacing the itinerary
// discards it. The cursor is the only session state.
type SessionStore struct {
	redis redis.ClientInterface
}

// NewSessionStore creates a session store
func NewSessionStore(redisClient redis.ClientInterface) *SessionStore {
	return &SessionStore{redis: redisClient}
}

// Start begins a fresh session at step 0, replacing any existing cursor
func (s *SessionStore) Start(ctx context.Context, itineraryID string) error {
	return s.SetCursor(ctx, itineraryID, 0)
}

// Cursor loads the current cursor for an itinerary
func (s *SessionStore) Cursor(ctx context.Context, itineraryID string) (int, error) {
	value, err := s.redis.GetString(ctx, sessionKey(itineraryID))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return 0, ErrNoActiveSession
		}
		return 0, fmt.Errorf("failed to load navigation cursor: %w", err)
	}

	cursor, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("corrupt navigation cursor %q: %w", value, err)
	}
	return cursor, nil
}

// SetCursor stores the cursor, refreshing the session TTL
func (s *SessionStore) SetCursor(ctx context.Context, itineraryID string, cursor int) error {
	if err := s.redis.SetWithExpiration(ctx, sessionKey(itineraryID), cursor, sessionTTL); err != nil {
		return fmt.Errorf("failed to store navigation cursor: %w", err)
	}
	return nil
}

// Clear discards the session
func (s *SessionStore) Clear(ctx context.Context, itineraryID string) error {
	return s.redis.Delete(ctx, sessionKey(itineraryID))
}

func sessionKey(itineraryID string) string {
	return sessionKeyPrefix + itineraryID
}
