package web

import (
	"context"

	"github.com/skycast/skycast/internal/forecast"
)

// ForecastService defines the forecast retrieval flow needed by handlers.
type ForecastService interface {
	Forecast(ctx context.Context, location, userID string) (forecast.Forecast, error)
}

// SessionStore defines the session operations needed by handlers and middleware.
type SessionStore interface {
	Create(ctx context.Context, userID string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	Destroy(ctx context.Context, token string) error
}
