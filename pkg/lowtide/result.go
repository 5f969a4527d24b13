package lowtide

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spencer-p/tidepool/pkg/noaa"
	"github.com/spencer-p/tidepool/pkg/timetricks"
)

const timeFmt = "3:04 PM"

// Result is either a qualifying low tide (Found) or the reason none was found.
type Result struct {
	Found bool
	// Event is the qualifying low tide. Only set when Found.
	Event noaa.Prediction
	// WithinThreshold is Event.Height <= Threshold. Only meaningful when
	// Found.
	WithinThreshold bool
	// Reason explains a result that is not Found.
	Reason string

	// The request that produced the result, for rendering.
	Threshold noaa.Height
	Reference time.Time
	LookAhead time.Duration
}

// Safe reports whether there is a qualifying low tide at or below the
// threshold.
func (r Result) Safe() bool {
	return r.Found && r.WithinThreshold
}

// Verdict is the one line answer to show a person.
func (r Result) Verdict() string {
	switch {
	case r.Safe():
		return fmt.Sprintf("Yes! Next low tide at %s is %.2f ft (≤ %g ft).",
			r.Event.T().Format(timeFmt), r.Event.Height, float64(r.Threshold))
	case r.Found:
		return fmt.Sprintf("No. Next low tide is above %g ft.", float64(r.Threshold))
	default:
		return fmt.Sprintf("No. No low tide in next %s hrs.", formatHours(r.LookAhead))
	}
}

func (r Result) String() string {
	if !r.Found {
		return r.Reason
	}
	return fmt.Sprintf("%s, tide is low at %.2f ft", r.PrettyTime(), r.Event.Height)
}

// PrettyTime is a human-readable version of the event time relative to the
// reference day, e.g. "Today at 6:15 AM". Empty when nothing was found.
func (r Result) PrettyTime() string {
	if !r.Found {
		return ""
	}
	t := r.Event.T()
	return fmt.Sprintf("%s at %s", timetricks.Day(t, r.Reference), t.Format(timeFmt))
}

type resultJSON struct {
	Found           bool             `json:"found"`
	Safe            bool             `json:"safe"`
	Event           *noaa.Prediction `json:"event,omitempty"`
	WithinThreshold *bool            `json:"within_threshold,omitempty"`
	Reason          string           `json:"reason,omitempty"`
	Verdict         string           `json:"verdict"`
	PrettyTime      string           `json:"pretty_time,omitempty"`
	Threshold       float64          `json:"threshold_ft"`
	Reference       time.Time        `json:"reference"`
	LookAheadHours  float64          `json:"look_ahead_hours"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{
		Found:          r.Found,
		Safe:           r.Safe(),
		Reason:         r.Reason,
		Verdict:        r.Verdict(),
		PrettyTime:     r.PrettyTime(),
		Threshold:      float64(r.Threshold),
		Reference:      r.Reference,
		LookAheadHours: r.LookAhead.Hours(),
	}
	if r.Found {
		ev := r.Event
		within := r.WithinThreshold
		out.Event = &ev
		out.WithinThreshold = &within
	}
	return json.Marshal(out)
}
