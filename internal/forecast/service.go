package forecast

import (
	"context"
	"log/slog"
)

// fetcher is the interface satisfied by Client.
type fetcher interface {
	Fetch(ctx context.Context, location string) (Forecast, error)
}

// Writer persists a retrieved forecast for a (location, user) pair.
type Writer interface {
	Persist(ctx context.Context, location string, f Forecast, userID string) error
}

// Service retrieves a forecast and records it for the requesting user.
type Service struct {
	client fetcher
	writer Writer
	log    *slog.Logger
}

// NewService constructs a Service from a provider client and a persistence writer.
func NewService(client *Client, writer Writer, log *slog.Logger) *Service {
	return &Service{client: client, writer: writer, log: log}
}

// NewServiceWithFetcher constructs a Service with an injectable fetcher (used in tests).
func NewServiceWithFetcher(client fetcher, writer Writer, log *slog.Logger) *Service {
	return &Service{client: client, writer: writer, log: log}
}

// Forecast fetches the per-day forecast for location and persists it
// under userID. A fetch failure is returned to the caller; a persistence
// failure is logged and the forecast is still returned.
func (s *Service) Forecast(ctx context.Context, location, userID string) (Forecast, error) {
	f, err := s.client.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}

	if err := s.writer.Persist(ctx, location, f, userID); err != nil {
		s.log.Error("persisting forecast failed", "location", location, "user_id", userID, "err", err)
	}

	return f, nil
}
