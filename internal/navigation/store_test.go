package navigation

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"github.com/citywander/trip-planner/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*SessionStore, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	return NewSessionStore(redis.NewFromClient(db)), mock
}

// ========================================
// TESTS: session lifecycle
// ========================================

func TestSessionStore_StartResetsCursorToZero(t *testing.T) {
	store, mock := newTestStore(t)
	mock.ExpectSet("navigation:session:trip-123", 0, 24*time.Hour).SetVal("OK")

	err := store.Start(context.Background(), "trip-123")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionStore_CursorRoundTrip(t *testing.T) {
	store, mock := newTestStore(t)
	mock.ExpectSet("navigation:session:trip-123", 7, 24*time.Hour).SetVal("OK")
	mock.ExpectGet("navigation:session:trip-123").SetVal("7")

	require.NoError(t, store.SetCursor(context.Background(), "trip-123", 7))

	cursor, err := store.Cursor(context.Background(), "trip-123")
	require.NoError(t, err)
	assert.Equal(t, 7, cursor)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionStore_MissingSessionIsNotActive(t *testing.T) {
	store, mock := newTestStore(t)
	mock.ExpectGet("navigation:session:trip-404").RedisNil()

	_, err := store.Cursor(context.Background(), "trip-404")
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestSessionStore_CorruptCursor(t *testing.T) {
	store, mock := newTestStore(t)
	mock.ExpectGet("navigation:session:trip-123").SetVal("not-a-number")

	_, err := store.Cursor(context.Background(), "trip-123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoActiveSession)
}

func TestSessionStore_ClearDiscardsSession(t *testing.T) {
	store, mock := newTestStore(t)
	mock.ExpectDel("navigation:session:trip-123").SetVal(1)

	err := store.Clear(context.Background(), "trip-123")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
