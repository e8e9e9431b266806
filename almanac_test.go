package almanac

import (
	"testing"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtlepseudonym/almanac/calendar"
)

func TestParseCalendar(t *testing.T) {
	for _, s := range []string{"gregorian", "Julian", "AUTO"} {
		_, err := ParseCalendar(s)
		assert.NoError(t, err, s)
	}

	_, err := ParseCalendar("hebrew")
	assert.ErrorIs(t, err, ErrUnknownCalendar)
}

func TestCalendar_AtJulian(t *testing.T) {
	assert.True(t, Gregorian.AtJulian(0))
	assert.False(t, Julian.AtJulian(3e6))
	assert.False(t, Auto.AtJulian(calendar.PapalReform-1))
	assert.True(t, Auto.AtJulian(calendar.PapalReform))
}

func TestCalendar_AtDate(t *testing.T) {
	assert.False(t, Auto.AtDate(calendar.Date(1582, 10, 4)))
	assert.True(t, Auto.AtDate(calendar.Date(1582, 10, 15)))
	assert.True(t, Gregorian.AtDate(calendar.Date(1000, 1, 1)))
	assert.False(t, Julian.AtDate(calendar.Date(2000, 1, 1)))
}

func TestAt(t *testing.T) {
	e := At(2451545.0)
	assert.Equal(t, Gregorian, e.Calendar)
	assert.Equal(t, "Saturday", e.Weekday)
	assert.Equal(t, 2000, e.Civil.Year)
	assert.Equal(t, 12, e.Civil.Hour)
	assert.InDelta(t, e.UTC+e.DeltaT/calendar.SecondsPerDay, e.TT, 1e-9)
	assert.False(t, e.Extrapolated)

	before := At(calendar.PapalReform - 1)
	assert.Equal(t, Julian, before.Calendar)
	assert.Equal(t, 4.0, before.Civil.Day)
	assert.Equal(t, "Thursday", before.Weekday)

	assert.True(t, At(calendar.CivilToJulian(calendar.Date(-1000, 1, 1), false)).Extrapolated)
}

func TestFromTime(t *testing.T) {
	tm := time.Date(2024, time.July, 4, 16, 20, 33, 250000000, time.UTC)
	e := FromTime(tm)

	assert.Equal(t, calendar.FromTime(tm), e.Civil)
	assert.Equal(t, "Thursday", e.Weekday)

	// agrees with the sunrise library's own conversion
	assert.InDelta(t, sunrise.TimeToJulianDay(tm), e.UTC, 1e-5)
}

func TestEntry_String(t *testing.T) {
	e := At(2440587.5)
	require.Equal(t, Gregorian, e.Calendar)
	assert.Contains(t, e.String(), "1970-01-01 00:00:00.000 gregorian (JD 2440587.500000 UTC")
}
