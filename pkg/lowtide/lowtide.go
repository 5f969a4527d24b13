// Package lowtide decides whether the next low tide is low enough to go
// tidepooling.
//
// Evaluate is a pure function of its arguments. The reference instant is
// always supplied by the caller.
package lowtide

import (
	"fmt"
	"time"

	"github.com/spencer-p/tidepool/pkg/noaa"
)

const (
	DefaultThreshold      = 1.5 // feet
	DefaultLookAheadHours = 12

	reasonNoLows = "no low tides in predictions"
)

// Request is the question to answer: is there a low tide within LookAhead of
// Reference, and is it at or below Threshold?
type Request struct {
	Reference time.Time
	LookAhead time.Duration
	Threshold noaa.Height
}

// NewRequest builds a Request from the configured constants.
func NewRequest(ref time.Time, lookAheadHours, threshold float64) Request {
	return Request{
		Reference: ref,
		LookAhead: time.Duration(lookAheadHours * float64(time.Hour)),
		Threshold: noaa.Height(threshold),
	}
}

// Cutoff is the inclusive end of the look-ahead window.
func (r Request) Cutoff() time.Time {
	return r.Reference.Add(r.LookAhead)
}

// InWindow reports whether t lies in [Reference, Cutoff].
func (r Request) InWindow(t time.Time) bool {
	return !t.Before(r.Reference) && !t.After(r.Cutoff())
}

// Evaluate finds the first low tide in the request's window.
//
// Predictions are scanned in time order. Ties keep feed order, so for a feed
// that is already sorted this is the first low tide as delivered.
func Evaluate(preds noaa.Predictions, req Request) Result {
	sawLow := false
	for _, p := range preds.Sorted() {
		// High tide is not interesting
		if p.Type != noaa.LowTide {
			continue
		}
		sawLow = true

		if !req.InWindow(p.T()) {
			continue
		}
		return Result{
			Found:           true,
			Event:           p,
			WithinThreshold: p.Height <= req.Threshold,
			Threshold:       req.Threshold,
			Reference:       req.Reference,
			LookAhead:       req.LookAhead,
		}
	}

	reason := reasonNoLows
	if sawLow {
		reason = fmt.Sprintf("no low tide within %s hrs of %s",
			formatHours(req.LookAhead),
			req.Reference.Format(time.RFC822))
	}
	return Result{
		Reason:    reason,
		Threshold: req.Threshold,
		Reference: req.Reference,
		LookAhead: req.LookAhead,
	}
}

func formatHours(d time.Duration) string {
	return fmt.Sprintf("%g", d.Hours())
}
