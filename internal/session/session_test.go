package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycast/skycast/internal/session"
)

const testSecret = "sessions-need-a-long-enough-secret"

func newTestManager(t *testing.T, ttl time.Duration) (*session.Manager, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return session.NewManager(client, testSecret, ttl), mr
}

func TestSession_CreateAndResolve(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)
	ctx := context.Background()

	token, err := m.Create(ctx, "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestSession_ResolveGarbageToken(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)

	_, err := m.Resolve(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestSession_ResolveWrongSecret(t *testing.T) {
	m, mr := newTestManager(t, time.Hour)
	ctx := context.Background()

	token, err := m.Create(ctx, "user-1")
	require.NoError(t, err)

	other := session.NewManager(
		redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		"a-completely-different-secret-value",
		time.Hour,
	)
	_, err = other.Resolve(ctx, token)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestSession_DestroyRevokes(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)
	ctx := context.Background()

	token, err := m.Create(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, m.Destroy(ctx, token))

	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, session.ErrNoSession, "destroyed session must not resolve")
}

func TestSession_DestroyGarbageToken(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)
	// Nothing to revoke; must not error.
	require.NoError(t, m.Destroy(context.Background(), "garbage"))
}

func TestSession_ExpiresAfterTTL(t *testing.T) {
	m, mr := newTestManager(t, time.Minute)
	ctx := context.Background()

	token, err := m.Create(ctx, "user-1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, session.ErrNoSession, "session must expire with its TTL")
}

func TestSession_TokensAreDistinct(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)
	ctx := context.Background()

	first, err := m.Create(ctx, "user-1")
	require.NoError(t, err)
	second, err := m.Create(ctx, "user-1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	// Destroying one session must not touch the other.
	require.NoError(t, m.Destroy(ctx, first))
	userID, err := m.Resolve(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestConnect_InvalidURL(t *testing.T) {
	_, err := session.Connect(context.Background(), "not-a-url")
	require.Error(t, err)
}

func TestConnect_UnreachableServer(t *testing.T) {
	_, err := session.Connect(context.Background(), "redis://localhost:19999")
	require.Error(t, err)
}
