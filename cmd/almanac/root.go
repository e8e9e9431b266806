package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands
type RootOptions struct {
	LogLevel string
	Format   string // "text" | "json"

	logger      *log.Logger
	logLevelSet bool
}

var validFormats = []string{"text", "json"}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "almanac",
		Short: "Convert between calendars, Julian days and timescales",
		Long: `Almanac converts civil dates in the Julian and Gregorian calendars to and
from Julian day numbers, and moves Julian days between UTC and the
dynamical timescales TT, TAI and TDB.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, validFormats)
			}

			level, err := log.ParseLevel(opts.LogLevel)
			if err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			opts.logLevelSet = cmd.Flags().Changed("log-level")
			opts.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
				ReportTimestamp: true,
				Level:           level,
			})
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")

	cmd.AddCommand(NewJulianCommand(opts))
	cmd.AddCommand(NewCivilCommand(opts))
	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewDeltaTCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range validFormats {
		if f == format {
			return true
		}
	}
	return false
}

// output writes v as JSON, or the text line otherwise
func (o *RootOptions) output(w io.Writer, v interface{}, text string) error {
	if o.Format == "json" {
		return json.NewEncoder(w).Encode(v)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
