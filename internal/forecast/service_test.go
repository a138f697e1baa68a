package forecast_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycast/skycast/internal/forecast"
)

type mockFetcher struct {
	fetchFn func(ctx context.Context, location string) (forecast.Forecast, error)
}

func (m *mockFetcher) Fetch(ctx context.Context, location string) (forecast.Forecast, error) {
	return m.fetchFn(ctx, location)
}

type mockWriter struct {
	persistFn func(ctx context.Context, location string, f forecast.Forecast, userID string) error
}

func (m *mockWriter) Persist(ctx context.Context, location string, f forecast.Forecast, userID string) error {
	return m.persistFn(ctx, location, f, userID)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleForecast() forecast.Forecast {
	return forecast.Forecast{
		"2024-03-01": {
			DayOfWeek:     "2024-03-01",
			Icon:          "wi-day-sunny",
			FormattedDate: "2024-03-01 12:00:00",
			Temperature:   18.5,
			Humidity:      40,
			WindSpeed:     3.2,
		},
	}
}

func TestServiceForecast_FetchThenPersist(t *testing.T) {
	var persistedLocation, persistedUser string
	var persisted forecast.Forecast

	f := &mockFetcher{fetchFn: func(_ context.Context, _ string) (forecast.Forecast, error) {
		return sampleForecast(), nil
	}}
	w := &mockWriter{persistFn: func(_ context.Context, location string, fc forecast.Forecast, userID string) error {
		persistedLocation, persisted, persistedUser = location, fc, userID
		return nil
	}}

	svc := forecast.NewServiceWithFetcher(f, w, discardLogger())
	got, err := svc.Forecast(context.Background(), "Paris", "user-1")
	require.NoError(t, err)
	assert.Equal(t, sampleForecast(), got)

	assert.Equal(t, "Paris", persistedLocation)
	assert.Equal(t, "user-1", persistedUser)
	assert.Equal(t, sampleForecast(), persisted)
}

func TestServiceForecast_FetchErrorPropagates(t *testing.T) {
	f := &mockFetcher{fetchFn: func(_ context.Context, location string) (forecast.Forecast, error) {
		return nil, &forecast.RetrievalError{Location: location, Err: fmt.Errorf("provider down")}
	}}
	w := &mockWriter{persistFn: func(_ context.Context, _ string, _ forecast.Forecast, _ string) error {
		t.Fatal("writer must not be called when the fetch fails")
		return nil
	}}

	svc := forecast.NewServiceWithFetcher(f, w, discardLogger())
	_, err := svc.Forecast(context.Background(), "Paris", "user-1")

	var retrievalErr *forecast.RetrievalError
	require.ErrorAs(t, err, &retrievalErr)
}

func TestServiceForecast_PersistFailureStillReturnsForecast(t *testing.T) {
	f := &mockFetcher{fetchFn: func(_ context.Context, _ string) (forecast.Forecast, error) {
		return sampleForecast(), nil
	}}
	w := &mockWriter{persistFn: func(_ context.Context, _ string, _ forecast.Forecast, _ string) error {
		return fmt.Errorf("store down")
	}}

	svc := forecast.NewServiceWithFetcher(f, w, discardLogger())
	got, err := svc.Forecast(context.Background(), "Paris", "user-1")
	require.NoError(t, err, "persistence failure must not hide the forecast")
	assert.Equal(t, sampleForecast(), got)
}
