package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/subtlepseudonym/almanac"
	"github.com/subtlepseudonym/almanac/calendar"
	"github.com/subtlepseudonym/almanac/dynamical"
)

type julianResult struct {
	Civil    calendar.Civil   `json:"civil"`
	Julian   float64          `json:"julian"`
	Modified float64          `json:"modified"`
	Calendar almanac.Calendar `json:"calendar"`
	Weekday  string           `json:"weekday"`
	Valid    bool             `json:"valid"`
}

func NewJulianCommand(rootOpts *RootOptions) *cobra.Command {
	var cal string

	cmd := &cobra.Command{
		Use:   "julian YEAR MONTH DAY [HOUR MINUTE SECOND]",
		Short: "Convert a civil date to a Julian day",
		Long: `Convert a civil date to a Julian day. DAY may carry a fraction for the
time of day. Years are astronomical, so year 0 is 1 BCE. Negative years
must follow "--" so they are not read as flags.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 3 && len(args) != 6 {
				return fmt.Errorf("accepts 3 or 6 args, received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := almanac.ParseCalendar(cal)
			if err != nil {
				return err
			}

			civil, err := parseCivil(args)
			if err != nil {
				return err
			}

			gregorian := c.AtDate(civil)
			if err := civil.Validate(gregorian); err != nil {
				rootOpts.logger.Warn("date does not exist in calendar, converting anyway", "date", civil.String(), "err", err)
			}

			jd := calendar.CivilToJulian(civil, gregorian)
			result := julianResult{
				Civil:    civil,
				Julian:   jd,
				Modified: calendar.ModifiedJulian(jd),
				Calendar: almanac.CalendarOf(gregorian),
				Weekday:  calendar.DayOfWeek(jd).String(),
				Valid:    calendar.IsValid(civil, gregorian),
			}
			text := fmt.Sprintf("%s %s (MJD %s) %s", formatJulian(jd), result.Calendar, formatJulian(result.Modified), result.Weekday)
			return rootOpts.output(cmd.OutOrStdout(), result, text)
		},
	}

	cmd.Flags().StringVarP(&cal, "calendar", "c", string(almanac.Auto), "calendar of the date (gregorian|julian|auto)")
	return cmd
}

type civilResult struct {
	Civil    calendar.Civil   `json:"civil"`
	Julian   float64          `json:"julian"`
	Calendar almanac.Calendar `json:"calendar"`
	Weekday  string           `json:"weekday"`
}

func NewCivilCommand(rootOpts *RootOptions) *cobra.Command {
	var cal string

	cmd := &cobra.Command{
		Use:   "civil JD",
		Short: "Convert a Julian day to a civil date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := almanac.ParseCalendar(cal)
			if err != nil {
				return err
			}

			jd, err := parseFloat("JD", args[0])
			if err != nil {
				return err
			}

			gregorian := c.AtJulian(jd)
			result := civilResult{
				Civil:    calendar.JulianToCivil(jd, gregorian),
				Julian:   jd,
				Calendar: almanac.CalendarOf(gregorian),
				Weekday:  calendar.DayOfWeek(jd).String(),
			}
			text := fmt.Sprintf("%s %s %s", result.Civil, result.Calendar, result.Weekday)
			return rootOpts.output(cmd.OutOrStdout(), result, text)
		},
	}

	cmd.Flags().StringVarP(&cal, "calendar", "c", string(almanac.Auto), "calendar to express the date in (gregorian|julian|auto)")
	return cmd
}

type convertResult struct {
	Julian float64 `json:"julian"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Result float64 `json:"result"`
}

func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "convert JD",
		Short: "Convert a Julian day between timescales",
		Long:  `Convert a Julian day between the UTC, TAI, TT and TDB timescales.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jd, err := parseFloat("JD", args[0])
			if err != nil {
				return err
			}

			fromFrame, err := dynamical.ParseFrame(from)
			if err != nil {
				return err
			}
			toFrame, err := dynamical.ParseFrame(to)
			if err != nil {
				return err
			}

			if fromFrame == dynamical.UTC || toFrame == dynamical.UTC {
				if e := dynamical.DeltaTAt(jd); e.Extrapolated {
					rootOpts.logger.Warn("delta t is extrapolated", "year", e.Year, "seconds", e.Seconds)
				}
			}

			converted, err := dynamical.Convert(jd, fromFrame, toFrame)
			if err != nil {
				return err
			}

			result := convertResult{
				Julian: jd,
				From:   fromFrame.String(),
				To:     toFrame.String(),
				Result: converted,
			}
			return rootOpts.output(cmd.OutOrStdout(), result, formatJulian(converted))
		},
	}

	cmd.Flags().StringVar(&from, "from", dynamical.UTC.String(), "timescale of JD (UTC|TAI|TT|TDB)")
	cmd.Flags().StringVar(&to, "to", dynamical.TT.String(), "timescale to convert to (UTC|TAI|TT|TDB)")
	return cmd
}

// formatJulian prints a Julian day to roughly a tenth of a millisecond
func formatJulian(jd float64) string {
	return strconv.FormatFloat(jd, 'f', 9, 64)
}

func parseFloat(name, arg string) (float64, error) {
	f, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", name, arg, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s: %w", name, calendar.ErrNotFinite)
	}
	return f, nil
}

func parseInt(name, arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", name, arg, err)
	}
	return i, nil
}

func parseCivil(args []string) (calendar.Civil, error) {
	var c calendar.Civil
	var err error

	if c.Year, err = parseInt("year", args[0]); err != nil {
		return c, err
	}
	if c.Month, err = parseInt("month", args[1]); err != nil {
		return c, err
	}
	if c.Day, err = parseFloat("day", args[2]); err != nil {
		return c, err
	}
	if len(args) < 6 {
		return c, nil
	}

	if c.Hour, err = parseInt("hour", args[3]); err != nil {
		return c, err
	}
	if c.Minute, err = parseInt("minute", args[4]); err != nil {
		return c, err
	}
	if c.Second, err = parseFloat("second", args[5]); err != nil {
		return c, err
	}
	return c, nil
}
