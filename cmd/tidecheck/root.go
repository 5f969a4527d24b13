package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/spencer-p/tidepool/pkg/check"
	"github.com/spencer-p/tidepool/pkg/config"
	"github.com/spencer-p/tidepool/pkg/noaa"
)

var (
	flagDate      string
	flagTime      string
	flagStation   int
	flagThreshold float64
	flagLookAhead float64
)

var rootCmd = &cobra.Command{
	Use:   "tidecheck",
	Short: "Check whether the next low tide is good for tidepooling",
	Long: `Fetches the day's high/low tide predictions from NOAA and reports whether
the next low tide within the look-ahead window is at or below the threshold.

Defaults come from the same environment variables as the server (STATION,
THRESHOLD, LOOK_AHEAD_HOURS, ...); flags override them.`,
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagDate, "date", "", "day to check, YYYY-MM-DD (default today)")
	flags.IntVar(&flagStation, "station", 0, "NOAA station id")
	rootCmd.Flags().StringVar(&flagTime, "time", "", "reference time on --date, HH:MM (default 09:00, or now without --date)")
	rootCmd.Flags().Float64Var(&flagThreshold, "threshold", 0, "highest good low tide in feet")
	rootCmd.Flags().Float64Var(&flagLookAhead, "lookahead", 0, "hours after the reference time to search")

	rootCmd.AddCommand(hourlyCmd)
}

// loadConfig reads the environment and applies flags that were set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	env, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("station") {
		env.Station = flagStation
	}
	if f := cmd.Flags().Lookup("threshold"); f != nil && f.Changed {
		env.Threshold = flagThreshold
	}
	if f := cmd.Flags().Lookup("lookahead"); f != nil && f.Changed {
		env.LookAheadHours = flagLookAhead
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}
	return env, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	env, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	checker := check.New(noaa.NewClient(env.NOAA()), check.Settings{
		Threshold:      env.Threshold,
		LookAheadHours: env.LookAheadHours,
		Place:          env.Place(),
	})

	day, ref, err := check.ReferenceFromPicker(flagDate, flagTime, env.Location(), time.Now())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), env.FetchTimeout+time.Second)
	defer cancel()
	report, err := checker.Run(ctx, day, ref)
	if err != nil {
		return err
	}

	printReport(cmd.OutOrStdout(), noaa.Station(env.Station), report)
	return nil
}

func printReport(w io.Writer, station noaa.Station, report *check.Report) {
	fmt.Fprintf(w, "Station %s, %s\n", station, report.Date.Format("January 2, 2006"))
	fmt.Fprintln(w, report.Result.Verdict())
	if report.Result.Found && !report.Daylight {
		fmt.Fprintln(w, "That low tide is after dark.")
	}
	fmt.Fprintln(w)
	for _, p := range report.Predictions {
		fmt.Fprintf(w, "%8s  %6.2f ft  %s\n", p.T().Format("3:04 PM"), p.Height, p.Type.Name())
	}
}
