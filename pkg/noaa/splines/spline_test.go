package splines

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/spencer-p/tidepool/pkg/noaa"
)

func ExampleDiscrete() {
	tstart := time.Date(2021, time.April, 3, 10, 30, 0, 0, time.Local)
	preds := noaa.Predictions{{
		Time:   noaa.Time(tstart),
		Height: 10,
	}, {
		Time:   noaa.Time(tstart.Add(1000 * time.Hour)),
		Height: 1,
	}}
	discrete := Discrete(CurvesBetween(preds), 10)
	for i := range discrete {
		fmt.Println(math.Round(discrete[i]))
	}
	// Output:
	// 10
	// 10
	// 9
	// 8
	// 6
	// 5
	// 3
	// 2
	// 1
	// 1
}

func TestEval(t *testing.T) {
	tstart := time.Date(2025, time.May, 23, 0, 0, 0, 0, time.UTC)
	preds := noaa.Predictions{
		{Time: noaa.Time(tstart), Height: 5, Type: noaa.HighTide},
		{Time: noaa.Time(tstart.Add(6 * time.Hour)), Height: 1, Type: noaa.LowTide},
		{Time: noaa.Time(tstart.Add(12 * time.Hour)), Height: 4, Type: noaa.HighTide},
	}
	spl := CurvesBetween(preds)
	if len(spl) != 2 {
		t.Fatalf("got %d curves, want 2", len(spl))
	}

	table := []struct {
		at   time.Duration
		want float64
	}{
		{0, 5},
		{3 * time.Hour, 3}, // midpoint of a symmetric curve
		{6 * time.Hour, 1},
		{9 * time.Hour, 2.5},
		{12 * time.Hour, 4},
	}
	for _, tc := range table {
		got := spl.Eval(tstart.Add(tc.at))
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Eval(+%s) = %f, want %f", tc.at, got, tc.want)
		}
	}

	// Outside the covered span in both directions terminates with NaN.
	if got := spl.Eval(tstart.Add(-time.Minute)); !math.IsNaN(got) {
		t.Errorf("Eval before start = %f, want NaN", got)
	}
	if got := spl.Eval(tstart.Add(13 * time.Hour)); !math.IsNaN(got) {
		t.Errorf("Eval after end = %f, want NaN", got)
	}
}

func TestCurvesBetweenUnsortedAndDuplicate(t *testing.T) {
	tstart := time.Date(2025, time.May, 23, 0, 0, 0, 0, time.UTC)
	preds := noaa.Predictions{
		{Time: noaa.Time(tstart.Add(6 * time.Hour)), Height: 1},
		{Time: noaa.Time(tstart), Height: 5},
		{Time: noaa.Time(tstart), Height: 5},
	}
	spl := CurvesBetween(preds)
	if len(spl) != 1 {
		t.Fatalf("got %d curves, want 1", len(spl))
	}
	if !spl.Start().Equal(tstart) || !spl.End().Equal(tstart.Add(6*time.Hour)) {
		t.Errorf("spline covers %s to %s", spl.Start(), spl.End())
	}
	for _, c := range spl {
		if v := c.Eval(c.Start); math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("degenerate curve evaluates to %f", v)
		}
	}
}
