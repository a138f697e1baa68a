package web

import (
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/skycast/skycast/internal/forecast"
	"github.com/skycast/skycast/internal/identity"
	"github.com/skycast/skycast/internal/session"
)

var validate = validator.New()

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	svc        ForecastService
	sessions   SessionStore
	sessionTTL time.Duration
	log        *slog.Logger
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(svc ForecastService, sessions SessionStore, sessionTTL time.Duration, log *slog.Logger) *Handlers {
	return &Handlers{
		svc:        svc,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		log:        log,
	}
}

// forecastPage is the view model for the forecast template.
type forecastPage struct {
	Location string
	Days     []forecast.Day
	Error    string
}

// forecastForm holds the forecast request form fields.
type forecastForm struct {
	Location string `validate:"required"`
}

// LoginForm handles GET /login.
func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	render(w, h.log, "login.html", nil)
}

// Login handles POST /login. The submitted identifier is resolved to a
// valid user id (generating one when needed), a session is created, and
// the browser is redirected to the forecast page.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	userID := identity.Resolve(r.FormValue("user_id"))

	token, err := h.sessions.Create(r.Context(), userID)
	if err != nil {
		h.log.Error("creating session failed", "err", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles GET /logout: revokes the session and clears the cookie.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		if err := h.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			h.log.Warn("revoking session failed", "err", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Index handles GET /: the forecast form with no result yet.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	render(w, h.log, "index.html", forecastPage{})
}

// RequestForecast handles POST /: fetches and persists the forecast for
// the submitted location and renders the per-day list. All failure kinds
// surface to the user the same way, as an empty result with a message.
func (h *Handlers) RequestForecast(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	form := forecastForm{Location: r.FormValue("location")}
	if err := validate.Struct(form); err != nil {
		render(w, h.log, "index.html", forecastPage{Error: "enter a location"})
		return
	}

	f, err := h.svc.Forecast(r.Context(), form.Location, userID)
	if err != nil {
		h.log.Error("forecast request failed", "location", form.Location, "user_id", userID, "err", err)
		render(w, h.log, "index.html", forecastPage{
			Location: form.Location,
			Error:    "no forecast available for " + form.Location,
		})
		return
	}

	render(w, h.log, "index.html", forecastPage{
		Location: form.Location,
		Days:     sortedDays(f),
	})
}

// sortedDays flattens a forecast into a date-ordered slice for display.
func sortedDays(f forecast.Forecast) []forecast.Day {
	dates := make([]string, 0, len(f))
	for date := range f {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	days := make([]forecast.Day, 0, len(dates))
	for _, date := range dates {
		days = append(days, f[date])
	}
	return days
}
