package almanac

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nathan-osman/go-sunrise"
)

// maxSunsetSearch bounds how many days a schedule looks ahead. Polar night
// never lasts longer than half a year.
const maxSunsetSearch = 366

var ErrNoSunset = errors.New("sun does not set on this date")

type Location struct {
	Latitude  float64 `json:"latitude" mapstructure:"latitude"`
	Longitude float64 `json:"longitude" mapstructure:"longitude"`
}

// GetSunset returns the time of sunset in UTC on the date of the given time
// in its own location
func GetSunset(location Location, date time.Time) (time.Time, error) {
	_, set := sunrise.SunriseSunset(location.Latitude, location.Longitude, date.Year(), date.Month(), date.Day())
	if set.IsZero() {
		return time.Time{}, ErrNoSunset
	}
	return set, nil
}

// Sunset returns the entry for sunset on the date of the given time
func Sunset(location Location, date time.Time) (Entry, error) {
	set, err := GetSunset(location, date)
	if err != nil {
		return Entry{}, err
	}
	return FromTime(set), nil
}

type SunsetSchedule struct {
	Location Location      `json:"location"`
	Offset   time.Duration `json:"offset"`

	Logger *log.Logger `json:"-"`
}

// Next returns the time of the next sunset after now, shifted by the
// SunsetSchedule's offset. Days without a sunset are skipped. The zero time
// is returned if no sunset is found within a year.
//
// This implements robfig/cron.Schedule
func (s SunsetSchedule) Next(now time.Time) time.Time {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}

	// yesterday's sunset may still be ahead when the offset is positive
	for i := -1; i <= maxSunsetSearch; i++ {
		sunset, err := GetSunset(s.Location, now.AddDate(0, 0, i))
		if err != nil {
			continue
		}

		next := sunset.Add(s.Offset)
		if next.After(now) {
			logger.Info("next sunset", "offset", s.Offset, "time", next.Local().Format(time.RFC3339))
			return next
		}
	}

	logger.Warn("no sunset within a year", "latitude", s.Location.Latitude, "longitude", s.Location.Longitude)
	return time.Time{}
}
