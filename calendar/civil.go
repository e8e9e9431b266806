package calendar

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrNotFinite       = errors.New("field is not finite")
	ErrMonthRange      = errors.New("month out of range")
	ErrDayRange        = errors.New("day out of range")
	ErrHourRange       = errors.New("hour out of range")
	ErrMinuteRange     = errors.New("minute out of range")
	ErrSecondRange     = errors.New("second out of range")
	ErrFractionalClock = errors.New("fractional day combined with time of day")
)

// Civil is a date and time in the Julian or Gregorian calendar. The
// calendar is not stored; callers carry it alongside the value.
//
// Year uses astronomical numbering, so year 0 is 1 BCE and year -1 is
// 2 BCE. Day may carry a fraction for the time of day, in which case Hour,
// Minute and Second are zero.
type Civil struct {
	Year   int     `json:"year"`
	Month  int     `json:"month"`
	Day    float64 `json:"day"`
	Hour   int     `json:"hour"`
	Minute int     `json:"minute"`
	Second float64 `json:"second"`
}

// Date returns a Civil at midnight, or at the time of day carried by a
// fractional day.
func Date(year, month int, day float64) Civil {
	return Civil{Year: year, Month: month, Day: day}
}

// DateTime returns a Civil with the time of day held separately
func DateTime(year, month, day, hour, minute int, second float64) Civil {
	return Civil{
		Year:   year,
		Month:  month,
		Day:    float64(day),
		Hour:   hour,
		Minute: minute,
		Second: second,
	}
}

// FractionalDay returns the day of month with the time of day folded in
func (c Civil) FractionalDay() float64 {
	return c.Day + float64(c.Hour)/24 + float64(c.Minute)/1440 + c.Second/SecondsPerDay
}

// Split returns c with a whole day and the time of day moved into Hour,
// Minute and Second. Values that are already split are returned unchanged.
//
// The month and year are not carried, so a time of day past midnight
// yields a day beyond the end of the month in the same way CivilToJulian
// accepts one.
func (c Civil) Split() Civil {
	if c.Day == math.Floor(c.Day) && c.clockInRange() {
		return c
	}

	f := c.FractionalDay()
	day := math.Floor(f)
	hour, minute, second := splitDay(f - day)

	return Civil{
		Year:   c.Year,
		Month:  c.Month,
		Day:    day,
		Hour:   hour,
		Minute: minute,
		Second: second,
	}
}

// Collapse returns c with the time of day folded into a fractional Day
func (c Civil) Collapse() Civil {
	return Civil{
		Year:  c.Year,
		Month: c.Month,
		Day:   c.FractionalDay(),
	}
}

// Weekday returns the day of the week c falls on
func (c Civil) Weekday(gregorian bool) time.Weekday {
	return DayOfWeek(CivilToJulian(c, gregorian))
}

func (c Civil) String() string {
	s := c.Split()

	// truncate to milliseconds so 59.9996 doesn't print as 60.000
	sec := math.Floor(s.Second*1000+1e-6) / 1000
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%06.3f", s.Year, s.Month, int(s.Day), s.Hour, s.Minute, sec)
}

// Validate checks that c names a real date and time in the given calendar.
// The conversions never call it.
func (c Civil) Validate(gregorian bool) error {
	if !isFinite(c.Day) || !isFinite(c.Second) {
		return ErrNotFinite
	}

	if c.Month < 1 || c.Month > 12 {
		return fmt.Errorf("%w: %d", ErrMonthRange, c.Month)
	}

	day := math.Floor(c.Day)
	days := DaysInMonth(c.Month, IsLeapYear(c.Year, gregorian))
	if day < 1 || day > float64(days) {
		return fmt.Errorf("%w: %g not in 1-%d", ErrDayRange, c.Day, days)
	}

	if day != c.Day && (c.Hour != 0 || c.Minute != 0 || c.Second != 0) {
		return ErrFractionalClock
	}

	if c.Hour < 0 || c.Hour > 23 {
		return fmt.Errorf("%w: %d", ErrHourRange, c.Hour)
	}
	if c.Minute < 0 || c.Minute > 59 {
		return fmt.Errorf("%w: %d", ErrMinuteRange, c.Minute)
	}
	if c.Second < 0 || c.Second >= 60 {
		return fmt.Errorf("%w: %g", ErrSecondRange, c.Second)
	}

	return nil
}

// IsValid reports whether c is a valid date and time in the given calendar
func IsValid(c Civil, gregorian bool) bool {
	return c.Validate(gregorian) == nil
}

func (c Civil) clockInRange() bool {
	return c.Hour >= 0 && c.Hour < 24 &&
		c.Minute >= 0 && c.Minute < 60 &&
		c.Second >= 0 && c.Second < 60
}

// splitDay breaks a fraction of a day in [0, 1) into hours, minutes and
// seconds.
func splitDay(f float64) (int, int, float64) {
	seconds := f * SecondsPerDay

	hour := math.Floor(seconds / 3600)
	seconds -= hour * 3600
	minute := math.Floor(seconds / 60)
	seconds -= minute * 60

	// rounding at the top of the range can land exactly on 24h
	if hour > 23 {
		hour, minute, seconds = 23, 59, math.Nextafter(60, 0)
	}
	if seconds < 0 {
		seconds = 0
	}

	return int(hour), int(minute), seconds
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
