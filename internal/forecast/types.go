package forecast

// Day is one calendar day's summary for a location.
type Day struct {
	DayOfWeek     string  `json:"day_of_week"`
	Icon          string  `json:"icon"`
	FormattedDate string  `json:"formatted_date"`
	Temperature   float64 `json:"temperature"`
	Humidity      int     `json:"humidity"`
	WindSpeed     float64 `json:"wind_speed"`
}

// Forecast maps a date string (YYYY-MM-DD) to that day's summary.
// The provider returns several 3-hour slots per day; only the
// last-seen slot for a given date survives.
type Forecast map[string]Day
