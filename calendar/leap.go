package calendar

import (
	"math"
	"time"
)

var daysInMonth = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsGregorianLeapYear reports whether year has a 29 February in the
// Gregorian calendar: divisible by 4, except centuries not divisible by 400.
func IsGregorianLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// IsJulianLeapYear reports whether year has a 29 February in the Julian
// calendar, which is every fourth year.
func IsJulianLeapYear(year int) bool {
	return year%4 == 0
}

func IsLeapYear(year int, gregorian bool) bool {
	if gregorian {
		return IsGregorianLeapYear(year)
	}
	return IsJulianLeapYear(year)
}

// DaysInMonth returns the length of month, or 0 when month is not in 1-12
func DaysInMonth(month int, leap bool) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && leap {
		return 29
	}
	return daysInMonth[month-1]
}

func DaysInYear(year int, gregorian bool) int {
	if IsLeapYear(year, gregorian) {
		return 366
	}
	return 365
}

// DayOfWeek returns the day of the week for jd. Days run from noon to noon
// in Julian day numbering, so the offset of 1.5 moves the boundary to
// midnight and aligns day 0 with Sunday.
func DayOfWeek(jd float64) time.Weekday {
	d := math.Mod(math.Floor(jd+1.5), 7)
	if d < 0 {
		d += 7
	}
	return time.Weekday(d)
}

// DayOfYear returns the day of year for jd, starting at 1 on 1 January 00:00
// of year. The time of day is kept as a fraction.
func DayOfYear(jd float64, year int, gregorian bool) float64 {
	return jd - CivilToJulian(Date(year, 1, 1), gregorian) + 1
}

// DayOfYearToDayAndMonth returns the day of month and month for a day of
// year starting at 1.
//
// Meeus, Astronomical Algorithms, chapter 7
func DayOfYearToDayAndMonth(dayOfYear int, leap bool) (day, month int) {
	k := 2
	if leap {
		k = 1
	}

	month = int(math.Floor(9*float64(k+dayOfYear)/275 + 0.98))
	if dayOfYear < 32 {
		month = 1
	}

	day = dayOfYear - int(math.Floor(275*float64(month)/9)) + k*int(math.Floor(float64(month+9)/12)) + 30
	return day, month
}

// FractionalYear returns the year of jd with the elapsed part of the year
// as a fraction, e.g. 2000.5 around 2 July 2000.
func FractionalYear(jd float64, gregorian bool) float64 {
	year := JulianToCivil(jd, gregorian).Year
	start := CivilToJulian(Date(year, 1, 1), gregorian)
	return float64(year) + (jd-start)/float64(DaysInYear(year, gregorian))
}
