// Package visualize draws a day of tides as an SVG.
package visualize

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/spencer-p/tidepool/pkg/noaa"
	"github.com/spencer-p/tidepool/pkg/noaa/splines"
	"github.com/spencer-p/tidepool/pkg/sunset"
	"github.com/spencer-p/tidepool/pkg/timetricks"
)

const (
	width  = 1200
	height = 300

	// Vertical range of the chart in feet.
	minFeet = -2.0
	maxFeet = 7.0

	sampleStep = 10 * time.Minute
	day        = 24 * time.Hour
)

type Tidal struct {
	date      time.Time
	tidePreds noaa.Predictions
	sunEvents sunset.SunEvents
	threshold noaa.Height

	windowStart, windowEnd time.Time
}

func NewTidal(tidePreds noaa.Predictions, sunEvents sunset.SunEvents, threshold noaa.Height) *Tidal {
	return &Tidal{
		tidePreds: tidePreds,
		sunEvents: sunEvents,
		threshold: threshold,
	}
}

// SetDate picks the calendar day to draw.
func (img *Tidal) SetDate(t time.Time) {
	img.date = timetricks.TrimClock(t)
}

// SetWindow shades the look-ahead window starting at ref.
func (img *Tidal) SetWindow(ref time.Time, lookAhead time.Duration) {
	img.windowStart = ref
	img.windowEnd = ref.Add(lookAhead)
}

func (img *Tidal) Encode(w io.Writer) (int, error) {
	var n int
	var err error
	io := func(nextn int, nexterr error) {
		n += nextn
		if nexterr != nil && err == nil {
			err = nexterr
		}
	}

	io(fmt.Fprintf(w, `<svg viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`, width, height))

	// Draw the sunshine, if we know when it is.
	risex, setx, haveSun := 0, width, false
	if sunup, sundown, ok := img.sun(); ok {
		risex, setx, haveSun = img.timeToX(sunup), img.timeToX(sundown), true
		io(fmt.Fprintf(w, `<rect class="daytime" fill="lightyellow" x="%d" y="%d" width="%d" height="%d"/>`,
			risex, 0, setx-risex, height))
	}

	// Shade the look-ahead window.
	if !img.windowEnd.IsZero() {
		x1 := clamp(img.timeToX(img.windowStart), 0, width)
		x2 := clamp(img.timeToX(img.windowEnd), 0, width)
		if x2 > x1 {
			io(fmt.Fprintf(w, `<rect class="window" fill="#2a9d8f" fill-opacity="15%%" x="%d" y="%d" width="%d" height="%d"/>`,
				x1, 0, x2-x1, height))
		}
	}

	// Draw the tide curve.
	if d := img.curvePath(); d != "" {
		io(fmt.Fprintf(w, `<path class="tide" fill="skyblue" d="%s"/>`, d))
	}

	// Draw the threshold.
	ty := tideHeightToY(img.threshold)
	io(fmt.Fprintf(w, `<line class="threshold" stroke="#e76f51" stroke-dasharray="8 4" x1="0" y1="%d" x2="%d" y2="%d"/>`,
		ty, width, ty))

	// Mark each event.
	for _, p := range img.tidePreds {
		if !timetricks.SameDay(p.T(), img.date) {
			continue
		}
		io(fmt.Fprintf(w, `<circle class="%s" r="4" cx="%d" cy="%d"/>`,
			strings.ToLower(p.Type.Name()), img.timeToX(p.T()), tideHeightToY(p.Height)))
	}

	// Draw the night time shadows.
	if haveSun {
		io(fmt.Fprintf(w, `<rect class="night" fill="blue" fill-opacity="25%%" x="%d" y="%d" width="%d" height="%d"/>`,
			0, 0, risex, height))
		io(fmt.Fprintf(w, `<rect class="night" fill="blue" fill-opacity="25%%" x="%d" y="%d" width="%d" height="%d"/>`,
			setx, 0, width-setx, height))
	}

	// Insert date of this graph as unix.
	io(fmt.Fprintf(w, `<text class="unixtime" visibility="hidden">%d</text>`, img.date.Unix()))

	io(fmt.Fprintf(w, `</svg>`))

	return n, err
}

// curvePath samples the spline across the day and closes it to the bottom
// edge. Empty when there is not enough data for a curve.
func (img *Tidal) curvePath() string {
	spline := splines.CurvesBetween(img.tidePreds)
	if len(spline) == 0 {
		return ""
	}

	var b strings.Builder
	var firstx, lastx int
	started := false
	end := img.date.Add(day)
	for t := img.date; !t.After(end); t = t.Add(sampleStep) {
		h := spline.Eval(t)
		if math.IsNaN(h) {
			continue
		}
		x, y := img.timeToX(t), tideHeightToY(noaa.Height(h))
		if !started {
			fmt.Fprintf(&b, "M %d,%d ", x, y)
			firstx, started = x, true
		} else {
			fmt.Fprintf(&b, "L %d,%d ", x, y)
		}
		lastx = x
	}
	if !started {
		return ""
	}
	fmt.Fprintf(&b, "L %d,%d L %d,%d z", lastx, height, firstx, height)
	return b.String()
}

// sun finds the sunrise and sunset of the drawn day.
func (img *Tidal) sun() (rise, set time.Time, ok bool) {
	for i := 0; i+1 < len(img.sunEvents); i++ {
		e := img.sunEvents[i]
		if e.Event == sunset.Sunrise && timetricks.SameDay(e.Time, img.date) {
			return e.Time, img.sunEvents[i+1].Time, true
		}
	}
	return time.Time{}, time.Time{}, false
}

func (img *Tidal) timeToX(t time.Time) int {
	frac := float64(t.Sub(img.date)) / float64(day)
	return int(math.Round(frac * width))
}

func tideHeightToY(h noaa.Height) int {
	frac := (maxFeet - float64(h)) / (maxFeet - minFeet)
	return clamp(int(math.Round(frac*height)), 0, height)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
