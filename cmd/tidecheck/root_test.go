package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/spencer-p/tidepool/pkg/check"
	"github.com/spencer-p/tidepool/pkg/lowtide"
	"github.com/spencer-p/tidepool/pkg/noaa"
)

func TestPrintReport(t *testing.T) {
	day := time.Date(2025, time.May, 23, 0, 0, 0, 0, time.UTC)
	preds := noaa.Predictions{
		{Time: noaa.Time(day.Add(41 * time.Minute)), Height: 4.912, Type: noaa.HighTide},
		{Time: noaa.Time(day.Add(6*time.Hour + 15*time.Minute)), Height: 1.2, Type: noaa.LowTide},
	}
	report := &check.Report{
		Date:        day,
		Predictions: preds,
		Result:      lowtide.Evaluate(preds, lowtide.NewRequest(day, 12, 1.5)),
		Daylight:    true,
	}

	var b bytes.Buffer
	printReport(&b, noaa.SantaCruz, report)

	want := "Station 9413745, May 23, 2025\n" +
		"Yes! Next low tide at 6:15 AM is 1.20 ft (≤ 1.5 ft).\n" +
		"\n" +
		"12:41 AM    4.91 ft  High\n" +
		" 6:15 AM    1.20 ft  Low\n"
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Errorf("unexpected output (-want,+got):\n%s", diff)
	}
}

func TestPrintReportAfterDark(t *testing.T) {
	day := time.Date(2025, time.May, 23, 0, 0, 0, 0, time.UTC)
	preds := noaa.Predictions{
		{Time: noaa.Time(day.Add(23 * time.Hour)), Height: 2, Type: noaa.LowTide},
	}
	report := &check.Report{
		Date:        day,
		Predictions: preds,
		Result:      lowtide.Evaluate(preds, lowtide.NewRequest(day.Add(20*time.Hour), 12, 1.5)),
	}

	var b bytes.Buffer
	printReport(&b, noaa.SantaCruz, report)
	if !bytes.Contains(b.Bytes(), []byte("No. Next low tide is above 1.5 ft.\nThat low tide is after dark.\n")) {
		t.Errorf("unexpected output:\n%s", b.String())
	}
}
