package almanac

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	newYork   = Location{Latitude: 40.7128, Longitude: -74.0060}
	northPole = Location{Latitude: 89, Longitude: 0}
)

func TestGetSunset(t *testing.T) {
	set, err := GetSunset(newYork, time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// 20:31 EDT
	expected := time.Date(2024, time.June, 21, 0, 31, 0, 0, time.UTC)
	assert.WithinDuration(t, expected, set, 5*time.Minute)
}

func TestGetSunset_Polar(t *testing.T) {
	_, err := GetSunset(northPole, time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrNoSunset)

	_, err = GetSunset(northPole, time.Date(2024, time.December, 21, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrNoSunset)

	_, err = Sunset(northPole, time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrNoSunset)
}

func TestSunset(t *testing.T) {
	e, err := Sunset(newYork, time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, Gregorian, e.Calendar)
	assert.Equal(t, 2024, e.Civil.Year)
	assert.Equal(t, 6, e.Civil.Month)
	assert.Equal(t, 21.0, e.Civil.Day)
	assert.Equal(t, "Friday", e.Weekday)
}

func TestSunsetSchedule_Next(t *testing.T) {
	var buf bytes.Buffer
	schedule := SunsetSchedule{
		Location: newYork,
		Offset:   -time.Hour,
		Logger:   log.New(&buf),
	}

	now := time.Date(2024, time.June, 20, 12, 0, 0, 0, time.UTC)
	next := schedule.Next(now)
	assert.True(t, next.After(now))
	assert.WithinDuration(t, time.Date(2024, time.June, 20, 23, 31, 0, 0, time.UTC), next, 5*time.Minute)
	assert.Contains(t, buf.String(), "next sunset")

	// once the offset time has passed the following day is used
	after := schedule.Next(next)
	assert.True(t, after.After(next))
	assert.WithinDuration(t, next.Add(24*time.Hour), after, 5*time.Minute)
}

func TestSunsetSchedule_NextPositiveOffset(t *testing.T) {
	schedule := SunsetSchedule{
		Location: newYork,
		Offset:   6 * time.Hour,
		Logger:   log.New(&bytes.Buffer{}),
	}

	// shortly after midnight UTC the previous evening's sunset plus six hours
	// is still ahead
	now := time.Date(2024, time.June, 21, 1, 0, 0, 0, time.UTC)
	next := schedule.Next(now)
	assert.WithinDuration(t, time.Date(2024, time.June, 21, 6, 31, 0, 0, time.UTC), next, 5*time.Minute)
}

func TestSunsetSchedule_NextSkipsPolarDay(t *testing.T) {
	schedule := SunsetSchedule{
		Location: northPole,
		Logger:   log.New(&bytes.Buffer{}),
	}

	now := time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)
	next := schedule.Next(now)
	require.False(t, next.IsZero())
	assert.True(t, next.After(now.AddDate(0, 0, 60)))
}
