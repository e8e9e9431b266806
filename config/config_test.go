package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtlepseudonym/almanac"
)

func writeConfig(t *testing.T, name, contents string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(filename, []byte(contents), 0o600))
	return filename
}

func TestOpen_YAML(t *testing.T) {
	filename := writeConfig(t, "almanac.yaml", `
listen: ":8080"
log_level: debug
location:
  latitude: 40.7128
  longitude: -74.006
jobs:
  - name: dusk
    schedule: "@sunset -30m"
  - name: hourly
    schedule: "0 * * * *"
`)

	c, err := Open(filename)
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.Listen)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, almanac.Location{Latitude: 40.7128, Longitude: -74.006}, c.Location)
	require.Len(t, c.Jobs, 2)
	assert.Equal(t, Job{Name: "dusk", Schedule: "@sunset -30m"}, c.Jobs[0])
	assert.NoError(t, c.Validate())
}

func TestOpen_JSON(t *testing.T) {
	filename := writeConfig(t, "almanac.json", `{
		"location": {"latitude": 51.4769, "longitude": -0.0005},
		"jobs": [{"name": "noon", "schedule": "0 12 * * *"}]
	}`)

	c, err := Open(filename)
	require.NoError(t, err)

	assert.Equal(t, DefaultListen, c.Listen)
	assert.Equal(t, DefaultLogLevel, c.LogLevel)
	assert.Equal(t, 51.4769, c.Location.Latitude)
	assert.NoError(t, c.Validate())
}

func TestOpen_Environment(t *testing.T) {
	t.Setenv("ALMANAC_LISTEN", ":9999")
	t.Setenv("ALMANAC_LOCATION_LATITUDE", "-33.8688")

	c, err := Open("")
	require.NoError(t, err)
	assert.Equal(t, ":9999", c.Listen)
	assert.Equal(t, -33.8688, c.Location.Latitude)
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Listen:   DefaultListen,
			LogLevel: DefaultLogLevel,
			Location: almanac.Location{Latitude: 10, Longitude: 20},
			Jobs:     []Job{{Name: "dusk", Schedule: "@sunset"}},
		}
	}
	require.NoError(t, valid().Validate())

	c := valid()
	c.Location.Latitude = 91
	assert.ErrorIs(t, c.Validate(), ErrLatitude)

	c = valid()
	c.Location.Longitude = -181
	assert.ErrorIs(t, c.Validate(), ErrLongitude)

	c = valid()
	c.LogLevel = "loud"
	assert.Error(t, c.Validate())

	c = valid()
	c.Jobs[0].Name = ""
	assert.ErrorIs(t, c.Validate(), ErrJobName)

	c = valid()
	c.Jobs[0].Schedule = "every day"
	assert.Error(t, c.Validate())
}

func TestParseSchedule(t *testing.T) {
	loc := almanac.Location{Latitude: 40.7128, Longitude: -74.006}

	schedule, err := ParseSchedule("@sunset -1h30m", loc, nil)
	require.NoError(t, err)
	assert.Equal(t, almanac.SunsetSchedule{Location: loc, Offset: -90 * time.Minute}, schedule)

	schedule, err = ParseSchedule("@sunset", loc, nil)
	require.NoError(t, err)
	assert.Equal(t, almanac.SunsetSchedule{Location: loc}, schedule)

	schedule, err = ParseSchedule("30 6 * * *", loc, nil)
	require.NoError(t, err)
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.January, 1, 6, 30, 0, 0, time.UTC), schedule.Next(now))

	for _, spec := range []string{"@sunset soon", "@sunset 1h extra", "@sunsetx", "* *"} {
		_, err := ParseSchedule(spec, loc, nil)
		assert.Error(t, err, spec)
	}
}
