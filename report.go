package almanac

import (
	"time"

	"github.com/charmbracelet/log"
)

// Report logs the almanac entry for the moment it runs
//
// This implements robfig/cron.Job
type Report struct {
	Name   string
	Logger *log.Logger

	// Now defaults to time.Now
	Now func() time.Time
}

func (r Report) Run() {
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	e := FromTime(now())
	logger.Info(r.Name,
		"civil", e.Civil.String(),
		"weekday", e.Weekday,
		"utc", e.UTC,
		"tt", e.TT,
		"delta_t", e.DeltaT,
	)
	if e.Extrapolated {
		logger.Warn("delta t is extrapolated", "job", r.Name, "year", e.Civil.Year)
	}
}
