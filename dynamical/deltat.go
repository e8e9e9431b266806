// Package dynamical converts Julian days between civil time and the uniform
// dynamical timescales used for ephemerides.
//
// ΔT = TT - UT follows the earth's irregular rotation and is only known
// empirically. It is modelled with the piecewise polynomials of Espenak and
// Meeus (2006), the fits used by NASA's eclipse canon.
// https://eclipse.gsfc.nasa.gov/SEcat5/deltatpoly.html
//
// Before -500 and from 2050 on the polynomials are extrapolations rather
// than fits to observations and accuracy degrades the further a date lies
// from the fitted range. Such estimates are flagged as Extrapolated; they
// are still returned.
package dynamical

import (
	"fmt"
	"math"
	"sort"

	"github.com/subtlepseudonym/almanac/calendar"
	"github.com/subtlepseudonym/almanac/solar"
)

// Regime is one band of the ΔT model: a polynomial in
// u = (y - Epoch) / Scale that holds for decimal years in [From, To).
type Regime struct {
	From  float64
	To    float64
	Epoch float64
	Scale float64

	// in increasing order of power
	coefficients []float64

	// Extrapolated is set for bands outside the observational record
	Extrapolated bool
}

// Eval returns ΔT in seconds for decimal year y
func (r Regime) Eval(y float64) float64 {
	u := (y - r.Epoch) / r.Scale

	var dt float64
	for i := len(r.coefficients) - 1; i >= 0; i-- {
		dt = dt*u + r.coefficients[i]
	}
	return dt
}

// Coefficients returns the polynomial coefficients in increasing order of
// power.
func (r Regime) Coefficients() []float64 {
	return append([]float64(nil), r.coefficients...)
}

func (r Regime) Contains(y float64) bool {
	return y >= r.From && y < r.To
}

func (r Regime) String() string {
	return fmt.Sprintf("[%g, %g)", r.From, r.To)
}

// regimes reproduces the Espenak and Meeus (2006) fit as published on the
// NASA eclipse site, with seams at -500, 500, 1600 and so on. The year 948
// is not a seam.
//
// regimes must stay ordered and contiguous. Each To is the next From.
var regimes = []Regime{
	{
		// long-term parabola
		From: math.Inf(-1), To: -500, Epoch: 1820, Scale: 100,
		coefficients: []float64{-20, 0, 32},
		Extrapolated: true,
	},
	{
		From: -500, To: 500, Epoch: 0, Scale: 100,
		coefficients: []float64{10583.6, -1014.41, 33.78311, -5.952053, -0.1798452, 0.022174192, 0.0090316521},
	},
	{
		From: 500, To: 1600, Epoch: 1000, Scale: 100,
		coefficients: []float64{1574.2, -556.01, 71.23472, 0.319781, -0.8503463, -0.005050998, 0.0083572073},
	},
	{
		From: 1600, To: 1700, Epoch: 1600, Scale: 1,
		coefficients: []float64{120, -0.9808, -0.01532, 1.0 / 7129},
	},
	{
		From: 1700, To: 1800, Epoch: 1700, Scale: 1,
		coefficients: []float64{8.83, 0.1603, -0.0059285, 0.00013336, -1.0 / 1174000},
	},
	{
		From: 1800, To: 1860, Epoch: 1800, Scale: 1,
		coefficients: []float64{13.72, -0.332447, 0.0068612, 0.0041116, -0.00037436, 0.0000121272, -0.0000001699, 0.000000000875},
	},
	{
		From: 1860, To: 1900, Epoch: 1860, Scale: 1,
		coefficients: []float64{7.62, 0.5737, -0.251754, 0.01680668, -0.0004473624, 1.0 / 233174},
	},
	{
		From: 1900, To: 1920, Epoch: 1900, Scale: 1,
		coefficients: []float64{-2.79, 1.494119, -0.0598939, 0.0061966, -0.000197},
	},
	{
		From: 1920, To: 1941, Epoch: 1920, Scale: 1,
		coefficients: []float64{21.20, 0.84493, -0.076100, 0.0020936},
	},
	{
		From: 1941, To: 1961, Epoch: 1950, Scale: 1,
		coefficients: []float64{29.07, 0.407, -1.0 / 233, 1.0 / 2547},
	},
	{
		From: 1961, To: 1986, Epoch: 1975, Scale: 1,
		coefficients: []float64{45.45, 1.067, -1.0 / 260, -1.0 / 718},
	},
	{
		From: 1986, To: 2005, Epoch: 2000, Scale: 1,
		coefficients: []float64{63.86, 0.3345, -0.060374, 0.0017275, 0.000651814, 0.00002373599},
	},
	{
		From: 2005, To: 2050, Epoch: 2000, Scale: 1,
		coefficients: []float64{62.92, 0.32217, 0.005589},
	},
	{
		// -20 + 32u² - 0.5628(2150 - y), expanded in u
		From: 2050, To: 2150, Epoch: 1820, Scale: 100,
		coefficients: []float64{-205.724, 56.28, 32},
		Extrapolated: true,
	},
	{
		// long-term parabola
		From: 2150, To: math.Inf(1), Epoch: 1820, Scale: 100,
		coefficients: []float64{-20, 0, 32},
		Extrapolated: true,
	},
}

// Regimes returns a copy of the ΔT model in order of increasing year
func Regimes() []Regime {
	return append([]Regime(nil), regimes...)
}

// Estimation is a ΔT value along with the band of the model it came from
type Estimation struct {
	Year    float64
	Seconds float64
	Regime  Regime

	// Extrapolated is an advisory that the year lies outside the range the
	// model was fitted to. The value is still usable but less accurate.
	Extrapolated bool
}

// Days returns ΔT as a fraction of a day
func (e Estimation) Days() float64 {
	return e.Seconds / calendar.SecondsPerDay
}

// DecimalYear returns the year and month as a decimal year, taking the
// middle of the month.
func DecimalYear(year, month int) float64 {
	return float64(year) + (float64(month)-0.5)/12
}

// seamWidth is the span in years before each seam over which a band is
// blended into the next one
const seamWidth = 1.0

// Estimate returns ΔT for decimal year y. Years outside the table use the
// nearest band, so every finite year has an estimate.
//
// The published bands disagree by up to a quarter second at their seams.
// Over the last year of a band the value is blended linearly into the next
// band, so ΔT is continuous and UTC2TT never runs backwards.
func Estimate(y float64) Estimation {
	idx := sort.Search(len(regimes), func(i int) bool {
		return y < regimes[i].To
	})
	if idx == len(regimes) {
		// +Inf and NaN
		idx = len(regimes) - 1
	}

	r := regimes[idx]
	dt := r.Eval(y)
	if idx+1 < len(regimes) && y > r.To-seamWidth {
		t := (y - (r.To - seamWidth)) / seamWidth
		dt = (1-t)*dt + t*regimes[idx+1].Eval(y)
	}

	return Estimation{
		Year:         y,
		Seconds:      dt,
		Regime:       r,
		Extrapolated: r.Extrapolated,
	}
}

// DeltaT returns ΔT in seconds for decimal year y
func DeltaT(y float64) float64 {
	return Estimate(y).Seconds
}

// JulianEpoch returns jd as a Julian epoch, the year counted in Julian years
// of 365.25 days from J2000.0. It tracks the civil year to within a few
// weeks and, unlike a calendar date, has no seams at month ends or at the
// 1582 reform.
func JulianEpoch(jd float64) float64 {
	return 2000 + solar.DaysSinceJ2000(jd)/365.25
}

// DeltaTAt returns ΔT for a Julian day in UTC, evaluated at its Julian
// epoch so that it varies smoothly with jd.
func DeltaTAt(jd float64) Estimation {
	return Estimate(JulianEpoch(jd))
}
