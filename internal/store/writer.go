// Package store persists forecast records to a Supabase-style REST
// datastore, one record per (location, user) pair.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/skycast/skycast/internal/forecast"
)

// PersistenceError reports a failed interaction with the remote store
// during the existence check or the insert.
type PersistenceError struct {
	Op       string // "check" or "insert"
	Location string
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persisting forecast for %s: %s: %v", e.Location, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Record is the persisted unit: one forecast for one (location, user) pair.
type Record struct {
	UserID    string            `json:"user_id"`
	Location  string            `json:"location"`
	Forecast  forecast.Forecast `json:"forecast"`
	CreatedAt string            `json:"created_at"`
}

// Writer inserts forecast records, skipping pairs that already have one.
// The existence check and the insert are two separate round-trips; the
// store is not asked to enforce uniqueness.
type Writer struct {
	baseURL string
	apiKey  string
	secret  []byte
	client  *http.Client
	log     *slog.Logger
}

// NewWriter constructs a Writer for the store at baseURL, authenticating
// with the static apiKey header and per-call tokens signed with jwtSecret.
func NewWriter(baseURL, apiKey, jwtSecret string, timeout time.Duration, log *slog.Logger) *Writer {
	return &Writer{
		baseURL: baseURL,
		apiKey:  apiKey,
		secret:  []byte(jwtSecret),
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// signToken mints an HS256 token asserting the acting user. No expiry
// claim is set; the store decides whether to require one.
func (w *Writer) signToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": userID})
	signed, err := token.SignedString(w.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Persist inserts a Record for (location, userID) unless one already
// exists. An existing record makes the call an idempotent no-op. A
// transport or HTTP failure on either round-trip aborts with a
// PersistenceError; the insert is never attempted after a failed check.
func (w *Writer) Persist(ctx context.Context, location string, f forecast.Forecast, userID string) error {
	token, err := w.signToken(userID)
	if err != nil {
		return &PersistenceError{Op: "check", Location: location, Err: err}
	}

	existing, err := w.existingRecords(ctx, location, userID, token)
	if err != nil {
		return &PersistenceError{Op: "check", Location: location, Err: err}
	}
	if existing > 0 {
		w.log.Debug("forecast record already exists", "location", location, "user_id", userID)
		return nil
	}

	record := Record{
		UserID:    userID,
		Location:  location,
		Forecast:  f,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := w.insert(ctx, record, token); err != nil {
		return &PersistenceError{Op: "insert", Location: location, Err: err}
	}

	w.log.Debug("forecast record inserted", "location", location, "user_id", userID)
	return nil
}

// existingRecords returns the number of records matching (location, userID).
func (w *Writer) existingRecords(ctx context.Context, location, userID, token string) (int, error) {
	query := url.Values{}
	query.Set("location", "eq."+location)
	query.Set("user_id", "eq."+userID)
	endpoint := w.baseURL + "/rest/v1/weather?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	w.setAuthHeaders(req, token)

	resp, err := w.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("store returned status %d", resp.StatusCode)
	}

	var rows []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return 0, fmt.Errorf("decoding existing records: %w", err)
	}

	return len(rows), nil
}

func (w *Writer) insert(ctx context.Context, record Record, token string) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}

	endpoint := w.baseURL + "/rest/v1/weather"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	w.setAuthHeaders(req, token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("store returned status %d", resp.StatusCode)
	}

	return nil
}

func (w *Writer) setAuthHeaders(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", w.apiKey)
}
