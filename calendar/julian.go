// Package calendar converts between civil Julian/Gregorian dates and Julian
// Day Numbers.
//
// The algorithms follow Meeus, Astronomical Algorithms, chapter 7, with
// floor used in place of truncation so that dates before -4712 and negative
// Julian days convert consistently.
package calendar

import (
	"math"
)

const (
	// PapalReform is the Julian day of 15 October 1582 00:00 Gregorian, the
	// first day of the Gregorian calendar.
	PapalReform = 2299160.5

	// ModifiedEpoch is the Julian day of the Modified Julian Date epoch,
	// 17 November 1858 00:00.
	ModifiedEpoch = 2400000.5

	SecondsPerDay = 86400 // not including leap seconds
)

// CivilToJulian returns the Julian day for a civil date in the Gregorian
// or Julian calendar.
//
// No range checks are performed. Out of range months and days are applied
// arithmetically, so day 32 of January is 1 February. Use IsValid where
// strict validation is needed.
func CivilToJulian(c Civil, gregorian bool) float64 {
	year, month := c.Year, c.Month
	if month < 3 {
		// January and February are months 13 and 14 of the previous year
		year--
		month += 12
	}

	var b float64
	if gregorian {
		a := math.Floor(float64(year) / 100)
		b = 2 - a + math.Floor(a/4)
	}

	return math.Floor(365.25*float64(year+4716)) +
		math.Floor(30.6001*float64(month+1)) +
		c.FractionalDay() + b - 1524.5
}

// JulianToCivil returns the civil date for a Julian day in the requested
// calendar. The day is returned as a whole number with the time of day in
// Hour, Minute and Second.
//
// The calendar is never inferred from the Julian day. Dates around 1582 are
// valid in both calendars and only the caller knows which one is meant;
// AfterPapalReform is available when the historical cutover is wanted.
func JulianToCivil(jd float64, gregorian bool) Civil {
	z := math.Floor(jd + 0.5)
	f := jd + 0.5 - z

	a := z
	if gregorian {
		alpha := math.Floor((z - 1867216.25) / 36524.25)
		a = z + 1 + alpha - math.Floor(alpha/4)
	}

	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	month := int(e) - 1
	if e >= 14 {
		month = int(e) - 13
	}

	year := int(c) - 4716
	if month <= 2 {
		year = int(c) - 4715
	}

	hour, minute, second := splitDay(f)
	return Civil{
		Year:   year,
		Month:  month,
		Day:    b - d - math.Floor(30.6001*e),
		Hour:   hour,
		Minute: minute,
		Second: second,
	}
}

// AfterPapalReform reports whether jd falls on or after 15 October 1582,
// the date the Gregorian calendar took effect.
func AfterPapalReform(jd float64) bool {
	return jd >= PapalReform
}

// AfterPapalReformDate is AfterPapalReform for a civil date
func AfterPapalReformDate(year, month int, day float64) bool {
	if year != 1582 {
		return year > 1582
	}
	if month != 10 {
		return month > 10
	}
	return day >= 15
}

// ModifiedJulian returns the Modified Julian Date for jd
func ModifiedJulian(jd float64) float64 {
	return jd - ModifiedEpoch
}

func FromModifiedJulian(mjd float64) float64 {
	return mjd + ModifiedEpoch
}

// JulianToGregorian returns the Gregorian date of the instant described by
// c in the Julian calendar.
func JulianToGregorian(c Civil) Civil {
	return JulianToCivil(CivilToJulian(c, false), true)
}

// GregorianToJulian returns the Julian calendar date of the instant
// described by c in the Gregorian calendar.
func GregorianToJulian(c Civil) Civil {
	return JulianToCivil(CivilToJulian(c, true), false)
}
