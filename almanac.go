// Package almanac describes instants in both civil and dynamical time, and
// schedules work around them.
package almanac

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/subtlepseudonym/almanac/calendar"
	"github.com/subtlepseudonym/almanac/dynamical"
)

var ErrUnknownCalendar = errors.New("unknown calendar")

// Calendar selects how civil dates are read and written. Auto switches from
// the Julian to the Gregorian calendar at the 1582 reform.
type Calendar string

const (
	Gregorian Calendar = "gregorian"
	Julian    Calendar = "julian"
	Auto      Calendar = "auto"
)

func ParseCalendar(s string) (Calendar, error) {
	switch c := Calendar(strings.ToLower(s)); c {
	case Gregorian, Julian, Auto:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCalendar, s)
	}
}

// AtJulian reports whether the Gregorian calendar applies to a Julian day
func (c Calendar) AtJulian(jd float64) bool {
	switch c {
	case Gregorian:
		return true
	case Julian:
		return false
	default:
		return calendar.AfterPapalReform(jd)
	}
}

// AtDate reports whether the Gregorian calendar applies to a civil date
func (c Calendar) AtDate(civil calendar.Civil) bool {
	switch c {
	case Gregorian:
		return true
	case Julian:
		return false
	default:
		return calendar.AfterPapalReformDate(civil.Year, civil.Month, civil.FractionalDay())
	}
}

// CalendarOf names the calendar selected by a gregorian flag
func CalendarOf(gregorian bool) Calendar {
	if gregorian {
		return Gregorian
	}
	return Julian
}

// Entry describes a single instant
type Entry struct {
	Civil    calendar.Civil `json:"civil"`
	Calendar Calendar       `json:"calendar"`
	Weekday  string         `json:"weekday"`

	UTC    float64 `json:"utc"`
	TT     float64 `json:"tt"`
	DeltaT float64 `json:"delta_t"`

	// Extrapolated is set when ΔT is outside the observational record
	Extrapolated bool `json:"extrapolated"`
}

// At returns the entry for a Julian day in UTC, dated in the calendar in
// force at the time
func At(jd float64) Entry {
	gregorian := calendar.AfterPapalReform(jd)
	estimate := dynamical.DeltaTAt(jd)

	return Entry{
		Civil:        calendar.JulianToCivil(jd, gregorian),
		Calendar:     CalendarOf(gregorian),
		Weekday:      calendar.DayOfWeek(jd).String(),
		UTC:          jd,
		TT:           jd + estimate.Days(),
		DeltaT:       estimate.Seconds,
		Extrapolated: estimate.Extrapolated,
	}
}

// FromTime returns the entry for t
func FromTime(t time.Time) Entry {
	e := At(calendar.JulianDate(t))
	if e.Calendar == Gregorian {
		// exact to the nanosecond, unlike the round trip through a Julian day
		e.Civil = calendar.FromTime(t)
	}
	return e
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s (JD %.6f UTC, %.6f TT)", e.Civil, e.Calendar, e.UTC, e.TT)
}
