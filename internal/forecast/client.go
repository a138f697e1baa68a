// Package forecast retrieves multi-day forecasts from OpenWeatherMap
// and reshapes them into per-day summaries.
package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RetrievalError reports a failed forecast retrieval: provider
// unreachable, non-success status, or an unparsable response.
type RetrievalError struct {
	Location string
	Err      error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieving forecast for %s: %v", e.Location, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/forecast"

// Client fetches 5-day forecasts from OpenWeatherMap.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient constructs a Client with the given API key and request timeout.
func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{apiKey: apiKey, baseURL: defaultBaseURL, client: &http.Client{Timeout: timeout}}
}

// NewClientWithURL constructs a Client pointing at a custom base URL (for tests).
func NewClientWithURL(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{apiKey: apiKey, baseURL: baseURL, client: &http.Client{Timeout: timeout}}
}

type owmForecastResponse struct {
	List []owmEntry `json:"list"`
}

type owmEntry struct {
	DtTxt   string `json:"dt_txt"`
	Weather []struct {
		Icon string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Fetch retrieves the forecast for a location and groups it by calendar
// day. Entries are processed in provider order, so the last slot for a
// given date wins. A response with zero entries yields an empty (non-nil)
// forecast.
func (c *Client) Fetch(ctx context.Context, location string) (Forecast, error) {
	endpoint := c.baseURL + "?q=" + url.QueryEscape(location) + "&appid=" + c.apiKey + "&units=metric"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &RetrievalError{Location: location, Err: fmt.Errorf("creating request: %w", err)}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &RetrievalError{Location: location, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &RetrievalError{Location: location, Err: fmt.Errorf("provider returned status %d", resp.StatusCode)}
	}

	var raw owmForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &RetrievalError{Location: location, Err: fmt.Errorf("decoding response: %w", err)}
	}

	result := make(Forecast, len(raw.List))
	for i, entry := range raw.List {
		day, err := parseEntryDate(entry.DtTxt)
		if err != nil {
			return nil, &RetrievalError{Location: location, Err: fmt.Errorf("entry %d: %w", i, err)}
		}
		if len(entry.Weather) == 0 {
			return nil, &RetrievalError{Location: location, Err: fmt.Errorf("entry %d: missing weather conditions", i)}
		}

		result[day] = Day{
			DayOfWeek:     day,
			Icon:          IconClass(entry.Weather[0].Icon),
			FormattedDate: entry.DtTxt,
			Temperature:   entry.Main.Temp,
			Humidity:      entry.Main.Humidity,
			WindSpeed:     entry.Wind.Speed,
		}
	}

	return result, nil
}

// parseEntryDate extracts and validates the date portion of a
// "2006-01-02 15:04:05" provider timestamp.
func parseEntryDate(dtTxt string) (string, error) {
	day, _, _ := strings.Cut(dtTxt, " ")
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return "", fmt.Errorf("malformed timestamp %q: %w", dtTxt, err)
	}
	return day, nil
}
