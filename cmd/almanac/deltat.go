package main

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/subtlepseudonym/almanac/dynamical"
)

type deltaTResult struct {
	Year         float64 `json:"year"`
	Seconds      float64 `json:"seconds"`
	Regime       string  `json:"regime"`
	Extrapolated bool    `json:"extrapolated"`
}

func NewDeltaTCommand(rootOpts *RootOptions) *cobra.Command {
	var month int
	var table bool

	cmd := &cobra.Command{
		Use:   "deltat [YEAR]",
		Short: "Estimate ΔT = TT - UT for a year",
		Long: `Estimate ΔT = TT - UT in seconds for a decimal year, defaulting to the
current month. With --month the middle of that month of YEAR is used.
With --table the bands of the model are listed instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if table {
				return writeRegimeTable(cmd)
			}

			var year float64
			switch {
			case len(args) == 0:
				now := time.Now().UTC()
				year = dynamical.DecimalYear(now.Year(), int(now.Month()))
			case month != 0:
				if month < 1 || month > 12 {
					return fmt.Errorf("month out of range: %d", month)
				}
				y, err := parseInt("year", args[0])
				if err != nil {
					return err
				}
				year = dynamical.DecimalYear(y, month)
			default:
				var err error
				year, err = parseFloat("year", args[0])
				if err != nil {
					return err
				}
			}

			e := dynamical.Estimate(year)
			if e.Extrapolated {
				rootOpts.logger.Warn("delta t is extrapolated", "year", year)
			}

			result := deltaTResult{
				Year:         e.Year,
				Seconds:      e.Seconds,
				Regime:       e.Regime.String(),
				Extrapolated: e.Extrapolated,
			}
			text := fmt.Sprintf("%.3f s", e.Seconds)
			return rootOpts.output(cmd.OutOrStdout(), result, text)
		},
	}

	cmd.Flags().IntVarP(&month, "month", "m", 0, "month of YEAR (1-12)")
	cmd.Flags().BoolVar(&table, "table", false, "list the bands of the model")
	return cmd
}

func writeRegimeTable(cmd *cobra.Command) error {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"From", "To", "Epoch", "ΔT at start (s)", "Extrapolated"})
	table.SetBorder(false)
	table.SetCenterSeparator("|")
	table.SetColumnSeparator("|")
	table.SetRowSeparator("-")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)

	for _, r := range dynamical.Regimes() {
		start := "-"
		if !math.IsInf(r.From, 0) {
			start = strconv.FormatFloat(r.Eval(r.From), 'f', 2, 64)
		}

		table.Append([]string{
			formatYear(r.From),
			formatYear(r.To),
			formatYear(r.Epoch),
			start,
			strconv.FormatBool(r.Extrapolated),
		})
	}

	table.Render()
	return nil
}

func formatYear(y float64) string {
	return strconv.FormatFloat(y, 'f', -1, 64)
}
