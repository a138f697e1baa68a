package forecast

// iconUnavailable is returned for provider codes not in the table.
const iconUnavailable = "wi-na"

var iconClasses = map[string]string{
	"01d": "wi-day-sunny",
	"02d": "wi-day-cloudy",
	"03d": "wi-cloud",
	"04d": "wi-cloudy",
	"09d": "wi-showers",
	"10d": "wi-rain",
	"11d": "wi-thunderstorm",
	"13d": "wi-snow",
	"50d": "wi-fog",
	"01n": "wi-night-clear",
	"02n": "wi-night-alt-cloudy",
	"03n": "wi-night-alt-cloudy-high",
	"04n": "wi-night-alt-cloudy-high",
	"09n": "wi-night-alt-showers",
	"10n": "wi-night-alt-rain",
	"11n": "wi-night-alt-thunderstorm",
	"13n": "wi-night-alt-snow",
	"50n": "wi-night-fog",
}

// IconClass maps an OpenWeatherMap icon code to a weather-icons display
// class. Unknown codes map to the "unavailable" icon.
func IconClass(code string) string {
	if class, ok := iconClasses[code]; ok {
		return class
	}
	return iconUnavailable
}
