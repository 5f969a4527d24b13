package main

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/spencer-p/tidepool/pkg/noaa"
	"github.com/spencer-p/tidepool/pkg/noaa/splines"
	"github.com/spencer-p/tidepool/pkg/timetricks"
)

var flagStep time.Duration

var hourlyCmd = &cobra.Command{
	Use:   "hourly",
	Short: "Print the estimated tide height through the day",
	Args:  cobra.NoArgs,
	RunE:  runHourly,
}

func init() {
	hourlyCmd.Flags().DurationVar(&flagStep, "step", time.Hour, "time between estimates")
}

func runHourly(cmd *cobra.Command, args []string) error {
	if flagStep <= 0 {
		return fmt.Errorf("--step must be positive, got %s", flagStep)
	}
	env, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	day := timetricks.TrimClock(time.Now().In(env.Location()))
	if flagDate != "" {
		if day, err = timetricks.ParseDate(flagDate, env.Location()); err != nil {
			return err
		}
	}

	preds, err := noaa.NewClient(env.NOAA()).Fetch(cmd.Context(), day)
	if err != nil {
		return fmt.Errorf("failed to fetch from NOAA: %w", err)
	}

	w := cmd.OutOrStdout()
	spl := splines.CurvesBetween(preds)
	for t := day; t.Before(day.Add(24 * time.Hour)); t = t.Add(flagStep) {
		h := spl.Eval(t)
		if math.IsNaN(h) {
			fmt.Fprintf(w, "%s      -\n", t.Format(timetricks.ClockFormat))
			continue
		}
		fmt.Fprintf(w, "%s  %5.2f\n", t.Format(timetricks.ClockFormat), h)
	}
	return nil
}
