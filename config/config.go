package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"

	"github.com/subtlepseudonym/almanac"
)

const (
	sunsetPrefix = "@sunset"
	envPrefix    = "almanac"

	DefaultListen   = ":9000"
	DefaultLogLevel = "info"
)

var (
	ErrLatitude  = errors.New("latitude out of range")
	ErrLongitude = errors.New("longitude out of range")
	ErrJobName   = errors.New("job name is required")
)

type Config struct {
	Listen   string           `mapstructure:"listen"`
	LogLevel string           `mapstructure:"log_level"`
	Location almanac.Location `mapstructure:"location"`
	Jobs     []Job            `mapstructure:"jobs"`
}

// Job logs an almanac report on a schedule. Schedule is either a standard
// cron spec or "@sunset" followed by an optional offset such as "-1h".
type Job struct {
	Name     string `mapstructure:"name"`
	Schedule string `mapstructure:"schedule"`
}

// Open reads the config file, which may be JSON, YAML or TOML. Any value can
// be overridden by an environment variable prefixed with ALMANAC_, such as
// ALMANAC_LOCATION_LATITUDE. An empty filename reads defaults and the
// environment only.
func Open(filename string) (*Config, error) {
	v := viper.New()
	v.SetDefault("listen", DefaultListen)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("location.latitude", 0.0)
	v.SetDefault("location.longitude", 0.0)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if filename != "" {
		v.SetConfigFile(filename)
		err := v.ReadInConfig()
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var config Config
	err := v.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		return fmt.Errorf("%w: %g", ErrLatitude, c.Location.Latitude)
	}
	if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return fmt.Errorf("%w: %g", ErrLongitude, c.Location.Longitude)
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	for i, job := range c.Jobs {
		if job.Name == "" {
			return fmt.Errorf("job %d: %w", i, ErrJobName)
		}
		if _, err := ParseSchedule(job.Schedule, c.Location, nil); err != nil {
			return fmt.Errorf("job %q: %w", job.Name, err)
		}
	}

	return nil
}

// ParseSchedule returns the cron schedule for a job's schedule spec
func ParseSchedule(spec string, location almanac.Location, logger *log.Logger) (cron.Schedule, error) {
	if !strings.HasPrefix(spec, sunsetPrefix) {
		schedule, err := cron.ParseStandard(spec)
		if err != nil {
			return nil, fmt.Errorf("parse schedule: %w", err)
		}
		return schedule, nil
	}

	s := strings.Fields(spec)
	if s[0] != sunsetPrefix || len(s) > 2 {
		return nil, fmt.Errorf("parse schedule: unexpected sunset spec %q", spec)
	}

	var offset time.Duration
	if len(s) > 1 {
		var err error
		offset, err = time.ParseDuration(s[1])
		if err != nil {
			return nil, fmt.Errorf("parse sunset offset: %w", err)
		}
	}

	return almanac.SunsetSchedule{
		Location: location,
		Offset:   offset,
		Logger:   logger,
	}, nil
}
