package solar

import (
	"math"
)

// J2000 is the Julian day of the J2000.0 epoch, 1 January 2000 12:00 TT
const J2000 = 2451545.0

// DaysSinceJ2000 returns the number of days between jd and the J2000.0 epoch
func DaysSinceJ2000(jd float64) float64 {
	return jd - J2000
}

// MeanAnomaly calculates the fraction of the earth's orbital period
// elapsed since perihelion, in degrees within [0, 360).
//
// https://en.wikipedia.org/wiki/Mean_anomaly
func MeanAnomaly(jd float64) float64 {
	m := math.Mod(357.5291+(0.98560028*DaysSinceJ2000(jd)), 360)
	if m < 0 {
		m += 360
	}
	return m
}

// Radians converts degrees to radians
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
