package calendar

import (
	"math"
	"time"
)

// EpochJulianDate is the Julian day of the unix epoch
const EpochJulianDate = 2440587.5

// FromTime returns the civil date and time of t in UTC.
//
// The time package uses the proleptic Gregorian calendar and has no notion
// of leap seconds, so the result is always a Gregorian date.
func FromTime(t time.Time) Civil {
	u := t.UTC()
	return Civil{
		Year:   u.Year(),
		Month:  int(u.Month()),
		Day:    float64(u.Day()),
		Hour:   u.Hour(),
		Minute: u.Minute(),
		Second: float64(u.Second()) + float64(u.Nanosecond())/1e9,
	}
}

// JulianDate returns the Julian day for a particular time in UTC.
//
// Leap seconds are not counted. Go smears them rather than representing
// 23:59:60, so a unix second is always 1/86400 of a day here.
// https://developers.google.com/time/smear
func JulianDate(t time.Time) float64 {
	days := float64(t.Unix()) / SecondsPerDay
	fraction := float64(t.Nanosecond()) / 1e9 / SecondsPerDay
	return days + fraction + EpochJulianDate
}

// Time returns c as a UTC time.Time. Julian calendar dates are converted to
// the Gregorian calendar first.
func (c Civil) Time(gregorian bool) time.Time {
	if !gregorian {
		c = JulianToGregorian(c)
	}
	s := c.Split()

	sec := math.Floor(s.Second)
	nsec := math.Round((s.Second - sec) * 1e9)

	return time.Date(s.Year, time.Month(s.Month), int(s.Day), s.Hour, s.Minute, int(sec), int(nsec), time.UTC)
}

// TimeOf returns the UTC time for a Julian day. The inverse of JulianDate to
// within a few microseconds for dates near the present.
func TimeOf(jd float64) time.Time {
	seconds := (jd - EpochJulianDate) * SecondsPerDay
	whole := math.Floor(seconds)
	nsec := math.Round((seconds - whole) * 1e9)
	return time.Unix(int64(whole), int64(nsec)).UTC()
}
