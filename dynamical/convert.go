package dynamical

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/subtlepseudonym/almanac/calendar"
	"github.com/subtlepseudonym/almanac/solar"
)

// TTMinusTAI is the fixed offset between terrestrial and atomic time in
// seconds
const TTMinusTAI = 32.184

// ΔT changes by well under a millionth of a second per second, so the
// fixed point iteration in TT2UTC settles within a few steps.
const maxIterations = 8

// UTC2TT converts a Julian day in UTC to terrestrial time
func UTC2TT(jd float64) float64 {
	return jd + DeltaTAt(jd).Days()
}

// TT2UTC converts a Julian day in terrestrial time to UTC. ΔT is looked up
// from the UTC date, and UTC2TT is strictly increasing, so the result
// satisfies UTC2TT(TT2UTC(jd)) == jd to rounding.
func TT2UTC(jd float64) float64 {
	utc := jd - DeltaTAt(jd).Days()
	for i := 0; i < maxIterations; i++ {
		next := jd - DeltaTAt(utc).Days()
		if next == utc {
			break
		}
		utc = next
	}
	return utc
}

// TT2TAI converts a Julian day in terrestrial time to atomic time
func TT2TAI(jd float64) float64 {
	return jd - TTMinusTAI/calendar.SecondsPerDay
}

// TAI2TT converts a Julian day in atomic time to terrestrial time
func TAI2TT(jd float64) float64 {
	return jd + TTMinusTAI/calendar.SecondsPerDay
}

// tdbOffset is TDB - TT in seconds. It is periodic with the earth's orbit
// and never exceeds 1.7 milliseconds.
func tdbOffset(jd float64) float64 {
	g := solar.Radians(solar.MeanAnomaly(jd))
	return 0.001658*math.Sin(g) + 0.000014*math.Sin(2*g)
}

// TT2TDB converts a Julian day in terrestrial time to barycentric dynamical
// time
func TT2TDB(jd float64) float64 {
	return jd + tdbOffset(jd)/calendar.SecondsPerDay
}

// TDB2TT converts a Julian day in barycentric dynamical time to terrestrial
// time. The offset changes too slowly for the difference between evaluating
// it at TT or TDB to be representable.
func TDB2TT(jd float64) float64 {
	return jd - tdbOffset(jd)/calendar.SecondsPerDay
}

var ErrUnknownFrame = errors.New("unknown time frame")

// Frame is a timescale a Julian day may be expressed in
type Frame int

const (
	UTC Frame = iota
	TAI
	TT
	TDB
)

var frameNames = map[Frame]string{
	UTC: "UTC",
	TAI: "TAI",
	TT:  "TT",
	TDB: "TDB",
}

func (f Frame) String() string {
	if name, ok := frameNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Frame(%d)", int(f))
}

// Frames returns every supported frame
func Frames() []Frame {
	return []Frame{UTC, TAI, TT, TDB}
}

// ParseFrame returns the frame with the given name, ignoring case
func ParseFrame(s string) (Frame, error) {
	for f, name := range frameNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFrame, s)
}

// Convert expresses a Julian day given in one frame in another
func Convert(jd float64, from, to Frame) (float64, error) {
	if from == to {
		if _, ok := frameNames[from]; !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownFrame, from)
		}
		return jd, nil
	}

	tt, err := toTT(jd, from)
	if err != nil {
		return 0, err
	}
	return fromTT(tt, to)
}

func toTT(jd float64, from Frame) (float64, error) {
	switch from {
	case UTC:
		return UTC2TT(jd), nil
	case TAI:
		return TAI2TT(jd), nil
	case TT:
		return jd, nil
	case TDB:
		return TDB2TT(jd), nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFrame, from)
	}
}

func fromTT(jd float64, to Frame) (float64, error) {
	switch to {
	case UTC:
		return TT2UTC(jd), nil
	case TAI:
		return TT2TAI(jd), nil
	case TT:
		return jd, nil
	case TDB:
		return TT2TDB(jd), nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFrame, to)
	}
}
