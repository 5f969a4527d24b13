// Package check answers "is the next low tide low enough?" for a day and a
// reference instant: it fetches the day's predictions and evaluates them.
package check

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/spencer-p/tidepool/pkg/lowtide"
	"github.com/spencer-p/tidepool/pkg/metrics"
	"github.com/spencer-p/tidepool/pkg/noaa"
	"github.com/spencer-p/tidepool/pkg/noaa/splines"
	"github.com/spencer-p/tidepool/pkg/sunset"
)

// Fetcher retrieves one calendar day of predictions. *noaa.Client is a
// Fetcher.
type Fetcher interface {
	Fetch(ctx context.Context, date time.Time) (noaa.Predictions, error)
}

// Settings are the evaluation constants.
type Settings struct {
	Threshold      float64
	LookAheadHours float64
	Place          sunset.Place
}

// Checker runs checks. It holds no state between calls.
type Checker struct {
	fetcher  Fetcher
	settings Settings
}

func New(fetcher Fetcher, settings Settings) *Checker {
	return &Checker{
		fetcher:  fetcher,
		settings: settings,
	}
}

// Report is everything a presentation needs about one check.
type Report struct {
	Date        time.Time        `json:"date"`
	Predictions noaa.Predictions `json:"predictions"`
	Result      lowtide.Result   `json:"result"`
	// EstimatedHeight is the water height at the reference instant, when the
	// day's predictions bracket it.
	EstimatedHeight *float64 `json:"estimated_height_ft,omitempty"`
	// Daylight is whether the sun is up at the qualifying low tide.
	Daylight bool `json:"daylight"`
}

// Run fetches the predictions for date (zero means today) and evaluates them
// against ref. Fetch errors are returned wrapped, so noaa.IsNetworkError and
// noaa.IsDataFormatError still apply.
func (c *Checker) Run(ctx context.Context, date, ref time.Time) (*Report, error) {
	start := time.Now()
	preds, err := c.fetcher.Fetch(ctx, date)
	metrics.ObserveFetch(fetchOutcome(err), time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from NOAA: %w", err)
	}

	req := lowtide.NewRequest(ref, c.settings.LookAheadHours, c.settings.Threshold)
	result := lowtide.Evaluate(preds, req)
	metrics.ObserveVerdict(verdict(result))

	report := &Report{
		Date:        date,
		Predictions: preds,
		Result:      result,
	}
	if h := splines.CurvesBetween(preds).Eval(ref); !math.IsNaN(h) {
		report.EstimatedHeight = &h
	}
	if result.Found && c.settings.Place.Location != nil {
		report.Daylight = sunset.Daylight(result.Event.T(), c.settings.Place)
	}

	log.Printf("Checked %d predictions against %s: %s",
		len(preds), ref.Format(time.RFC3339), result.Verdict())
	return report, nil
}

func fetchOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.FetchOK
	case noaa.IsNetworkError(err):
		return metrics.FetchNetworkErr
	case noaa.IsDataFormatError(err):
		return metrics.FetchFormatErr
	default:
		return metrics.FetchUnknownErr
	}
}

func verdict(r lowtide.Result) string {
	switch {
	case r.Safe():
		return "yes"
	case r.Found:
		return "no"
	default:
		return "none"
	}
}
