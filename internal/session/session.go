// Package session manages login sessions: signed cookie tokens backed
// by a Redis registry so that logout actually revokes.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName is the session cookie set on login.
const CookieName = "skycast_session"

// ErrNoSession is returned when a token is invalid, expired, or revoked.
var ErrNoSession = errors.New("session not found")

// Manager mints and resolves session tokens. A token is an HS256 JWT
// carrying the user id as subject and a random session id; the session
// id must also be live in Redis for the token to resolve.
type Manager struct {
	client *redis.Client
	secret []byte
	ttl    time.Duration
}

// NewManager constructs a Manager signing with secret and keeping
// sessions live for ttl.
func NewManager(client *redis.Client, secret string, ttl time.Duration) *Manager {
	return &Manager{client: client, secret: []byte(secret), ttl: ttl}
}

// key returns the Redis key for the given session id.
func key(sid string) string {
	return "session:" + sid
}

// Create registers a new session for userID and returns the signed token.
func (m *Manager) Create(ctx context.Context, userID string) (string, error) {
	sid := uuid.NewString()
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        sid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}

	if err := m.client.Set(ctx, key(sid), userID, m.ttl).Err(); err != nil {
		return "", fmt.Errorf("registering session: %w", err)
	}

	return token, nil
}

// Resolve returns the user id for a live session token.
// Returns ErrNoSession for invalid, expired, or revoked tokens.
func (m *Manager) Resolve(ctx context.Context, token string) (string, error) {
	claims, err := m.parse(token)
	if err != nil {
		return "", ErrNoSession
	}

	userID, err := m.client.Get(ctx, key(claims.ID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoSession
		}
		return "", fmt.Errorf("looking up session: %w", err)
	}

	if userID != claims.Subject {
		return "", ErrNoSession
	}

	return userID, nil
}

// Destroy revokes the session behind token. Unparsable tokens are
// ignored; there is nothing to revoke.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	claims, err := m.parse(token)
	if err != nil {
		return nil
	}

	if err := m.client.Del(ctx, key(claims.ID)).Err(); err != nil {
		return fmt.Errorf("revoking session: %w", err)
	}
	return nil
}

func (m *Manager) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing session token: %w", err)
	}
	if !parsed.Valid || claims.ID == "" {
		return nil, fmt.Errorf("invalid session claims")
	}
	return claims, nil
}
