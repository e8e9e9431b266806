package almanac

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/subtlepseudonym/almanac/calendar"
	"github.com/subtlepseudonym/almanac/dynamical"
)

var ErrMissingParam = errors.New("missing parameter")

// Server answers almanac queries over HTTP
type Server struct {
	Logger *log.Logger

	// Now defaults to time.Now
	Now func() time.Time
}

// NewRouter returns the HTTP API with the default clock
func NewRouter(logger *log.Logger) http.Handler {
	s := &Server{Logger: logger, Now: time.Now}
	return s.Router()
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/julian", s.JulianHandler)
	r.Get("/civil", s.CivilHandler)
	r.Get("/convert", s.ConvertHandler)
	r.Get("/deltat", s.DeltaTHandler)
	r.Get("/now", s.NowHandler)

	return r
}

type julianResponse struct {
	Julian   float64  `json:"julian"`
	Modified float64  `json:"modified"`
	Calendar Calendar `json:"calendar"`
	Weekday  string   `json:"weekday"`
	Valid    bool     `json:"valid"`
}

// JulianHandler returns the Julian day for a civil date. Dates that don't
// exist in the calendar are still converted and reported as invalid.
func (s *Server) JulianHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, fmt.Errorf("parse query: %w", err))
		return
	}

	cal, err := calendarParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var civil calendar.Civil
	for _, p := range []struct {
		name     string
		required bool
		dest     *int
	}{
		{"year", true, &civil.Year},
		{"month", true, &civil.Month},
		{"hour", false, &civil.Hour},
		{"minute", false, &civil.Minute},
	} {
		v, err := intParam(r, p.name, p.required)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		*p.dest = v
	}

	civil.Day, err = floatParam(r, "day", true)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	civil.Second, err = floatParam(r, "second", false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	gregorian := cal.AtDate(civil)
	jd := calendar.CivilToJulian(civil, gregorian)

	s.writeJSON(w, r, julianResponse{
		Julian:   jd,
		Modified: calendar.ModifiedJulian(jd),
		Calendar: CalendarOf(gregorian),
		Weekday:  calendar.DayOfWeek(jd).String(),
		Valid:    calendar.IsValid(civil, gregorian),
	})
}

type civilResponse struct {
	calendar.Civil
	Calendar Calendar `json:"calendar"`
	Weekday  string   `json:"weekday"`
	Julian   float64  `json:"julian"`
}

// CivilHandler returns the civil date for a Julian day
func (s *Server) CivilHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, fmt.Errorf("parse query: %w", err))
		return
	}

	cal, err := calendarParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	jd, err := floatParam(r, "jd", true)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	gregorian := cal.AtJulian(jd)
	s.writeJSON(w, r, civilResponse{
		Civil:    calendar.JulianToCivil(jd, gregorian),
		Calendar: CalendarOf(gregorian),
		Weekday:  calendar.DayOfWeek(jd).String(),
		Julian:   jd,
	})
}

type convertResponse struct {
	Julian float64 `json:"julian"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Result float64 `json:"result"`
}

// ConvertHandler converts a Julian day between timescales
func (s *Server) ConvertHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, fmt.Errorf("parse query: %w", err))
		return
	}

	jd, err := floatParam(r, "jd", true)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	frames := make([]dynamical.Frame, 2)
	for i, name := range []string{"from", "to"} {
		if _, ok := r.Form[name]; !ok {
			s.writeError(w, r, fmt.Errorf("%w: %s", ErrMissingParam, name))
			return
		}
		frames[i], err = dynamical.ParseFrame(r.FormValue(name))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	result, err := dynamical.Convert(jd, frames[0], frames[1])
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, convertResponse{
		Julian: jd,
		From:   frames[0].String(),
		To:     frames[1].String(),
		Result: result,
	})
}

type deltaTResponse struct {
	Year         float64 `json:"year"`
	Seconds      float64 `json:"seconds"`
	Regime       string  `json:"regime"`
	Extrapolated bool    `json:"extrapolated"`
}

// DeltaTHandler returns ΔT for a decimal year, or for the middle of a month
// when one is given. The year must be whole when a month is given.
func (s *Server) DeltaTHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, fmt.Errorf("parse query: %w", err))
		return
	}

	var year float64
	if _, ok := r.Form["month"]; ok {
		y, err := intParam(r, "year", true)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		month, err := intParam(r, "month", true)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if month < 1 || month > 12 {
			s.writeError(w, r, calendar.ErrMonthRange)
			return
		}
		year = dynamical.DecimalYear(y, month)
	} else {
		var err error
		year, err = floatParam(r, "year", true)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	e := dynamical.Estimate(year)
	if e.Extrapolated {
		s.logger().Warn("delta t is extrapolated", "year", year)
	}

	s.writeJSON(w, r, deltaTResponse{
		Year:         e.Year,
		Seconds:      e.Seconds,
		Regime:       e.Regime.String(),
		Extrapolated: e.Extrapolated,
	})
}

// NowHandler returns the entry for the current time
func (s *Server) NowHandler(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	s.writeJSON(w, r, FromTime(now()))
}

func (s *Server) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		s.logger().Error("encode response", "path", r.URL.Path, "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger().Debug("bad request", "path", r.URL.Path, "query", r.URL.RawQuery, "err", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func calendarParam(r *http.Request) (Calendar, error) {
	if _, ok := r.Form["calendar"]; !ok {
		return "", fmt.Errorf("%w: calendar", ErrMissingParam)
	}
	return ParseCalendar(r.FormValue("calendar"))
}

func floatParam(r *http.Request, name string, required bool) (float64, error) {
	if _, ok := r.Form[name]; !ok {
		if required {
			return 0, fmt.Errorf("%w: %s", ErrMissingParam, name)
		}
		return 0, nil
	}

	param := r.FormValue(name)
	p, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s param %q: %w", name, param, err)
	}
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, fmt.Errorf("%s: %w", name, calendar.ErrNotFinite)
	}
	return p, nil
}

func intParam(r *http.Request, name string, required bool) (int, error) {
	if _, ok := r.Form[name]; !ok {
		if required {
			return 0, fmt.Errorf("%w: %s", ErrMissingParam, name)
		}
		return 0, nil
	}

	param := r.FormValue(name)
	p, err := strconv.Atoi(param)
	if err != nil {
		return 0, fmt.Errorf("parse %s param %q: %w", name, param, err)
	}
	return p, nil
}
