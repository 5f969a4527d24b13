package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/spencer-p/tidepool/pkg/check"
	"github.com/spencer-p/tidepool/pkg/noaa"
	"github.com/spencer-p/tidepool/pkg/sunset"
)

// fetcherFunc adapts a function to check.Fetcher.
type fetcherFunc func(ctx context.Context, date time.Time) (noaa.Predictions, error)

func (f fetcherFunc) Fetch(ctx context.Context, date time.Time) (noaa.Predictions, error) {
	return f(ctx, date)
}

var (
	loc = sunset.SantaCruz.Location
	// 05:00 on May 23 in Santa Cruz.
	fixedNow = time.Date(2025, time.May, 23, 5, 0, 0, 0, loc)
)

func dayOf(date time.Time) noaa.Predictions {
	y, m, d := date.Date()
	at := func(hour, minute int) noaa.Time {
		return noaa.Time(time.Date(y, m, d, hour, minute, 0, 0, loc))
	}
	return noaa.Predictions{
		{Time: at(0, 41), Height: 4.91, Type: noaa.HighTide},
		{Time: at(6, 15), Height: 1.2, Type: noaa.LowTide},
		{Time: at(12, 58), Height: 3.85, Type: noaa.HighTide},
		{Time: at(18, 22), Height: -0.41, Type: noaa.LowTide},
	}
}

func newServer(t *testing.T, threshold float64, fetch fetcherFunc) *httptest.Server {
	t.Helper()
	settings := check.Settings{Threshold: threshold, LookAheadHours: 12, Place: sunset.SantaCruz}
	r := mux.NewRouter()
	Register(r, check.New(fetch, settings), Options{
		Station: noaa.SantaCruz,
		Place:   sunset.SantaCruz,
		Now:     func() time.Time { return fixedNow },
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestIndex(t *testing.T) {
	srv := newServer(t, 1.5, func(ctx context.Context, date time.Time) (noaa.Predictions, error) {
		return dayOf(date), nil
	})

	code, body := get(t, srv.URL+"/")
	if code != http.StatusOK {
		t.Fatalf("got status %d: %s", code, body)
	}
	for _, want := range []string{
		"Yes! Next low tide at 6:15 AM is 1.20 ft (≤ 1.5 ft).",
		"Today&#39;s High/Low Tides",
		"<td>6:15 AM</td><td>1.20 ft</td><td>Low</td>",
		"<td>6:22 PM</td><td>-0.41 ft</td><td>Low</td>",
		`value="2025-05-23"`,
		`value="05:00"`,
		"<svg ",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestIndexPickedDate(t *testing.T) {
	var asked time.Time
	srv := newServer(t, 1.0, func(ctx context.Context, date time.Time) (noaa.Predictions, error) {
		asked = date
		return dayOf(date), nil
	})

	code, body := get(t, srv.URL+"/?date=2025-06-01&time=13:00")
	if code != http.StatusOK {
		t.Fatalf("got status %d: %s", code, body)
	}
	if got := asked.Format("20060102"); got != "20250601" {
		t.Errorf("fetched %s, want 20250601", got)
	}
	if !strings.Contains(body, "June 1, 2025 High/Low Tides") {
		t.Errorf("page missing picked date header")
	}
	// From 1 PM the next low tide is at 6:22 PM, below even a 1 ft threshold.
	if !strings.Contains(body, "Yes! Next low tide at 6:22 PM is -0.41 ft") {
		t.Errorf("page missing verdict:\n%s", body)
	}
}

func TestIndexNoLowTide(t *testing.T) {
	srv := newServer(t, 1.5, func(ctx context.Context, date time.Time) (noaa.Predictions, error) {
		return noaa.Predictions{}, nil
	})
	code, body := get(t, srv.URL+"/")
	if code != http.StatusOK {
		t.Fatalf("got status %d", code)
	}
	if !strings.Contains(body, "No. No low tide in next 12 hrs.") {
		t.Errorf("page missing none found verdict:\n%s", body)
	}
}

func TestIndexFetchError(t *testing.T) {
	srv := newServer(t, 1.5, func(ctx context.Context, date time.Time) (noaa.Predictions, error) {
		return nil, &noaa.NetworkError{URL: "http://noaa.test", StatusCode: http.StatusServiceUnavailable}
	})
	code, body := get(t, srv.URL+"/")
	if code != http.StatusBadGateway {
		t.Errorf("got status %d, want %d", code, http.StatusBadGateway)
	}
	if !strings.Contains(body, "Error: Could not reach NOAA") {
		t.Errorf("page does not render the fetch error:\n%s", body)
	}
	if strings.Contains(body, "No low tide") {
		t.Errorf("fetch error rendered as a tide verdict")
	}
}

func TestIndexBadPicker(t *testing.T) {
	srv := newServer(t, 1.5, func(ctx context.Context, date time.Time) (noaa.Predictions, error) {
		t.Errorf("fetched despite a bad date")
		return nil, nil
	})
	if code, _ := get(t, srv.URL+"/?date=tomorrow"); code != http.StatusBadRequest {
		t.Errorf("got status %d, want %d", code, http.StatusBadRequest)
	}
}

func TestAPICheck(t *testing.T) {
	srv := newServer(t, 1.5, func(ctx context.Context, date time.Time) (noaa.Predictions, error) {
		return dayOf(date), nil
	})

	code, body := get(t, srv.URL+"/api/v1/check?date=2025-05-23&time=00:00")
	if code != http.StatusOK {
		t.Fatalf("got status %d: %s", code, body)
	}
	var got struct {
		Predictions []map[string]any `json:"predictions"`
		Result      struct {
			Found           bool    `json:"found"`
			WithinThreshold bool    `json:"within_threshold"`
			Threshold       float64 `json:"threshold_ft"`
			Event           struct {
				Height float64 `json:"v"`
				Type   string  `json:"type"`
			} `json:"event"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("bad json %q: %v", body, err)
	}
	if len(got.Predictions) != 4 {
		t.Errorf("got %d predictions, want 4", len(got.Predictions))
	}
	if !got.Result.Found || !got.Result.WithinThreshold {
		t.Errorf("unexpected result %+v", got.Result)
	}
	if got.Result.Event.Height != 1.2 || got.Result.Event.Type != "L" {
		t.Errorf("unexpected event %+v", got.Result.Event)
	}
}

func TestAPICheckFormatError(t *testing.T) {
	srv := newServer(t, 1.5, func(ctx context.Context, date time.Time) (noaa.Predictions, error) {
		return nil, &noaa.DataFormatError{Field: "type", Err: io.ErrUnexpectedEOF}
	})
	code, body := get(t, srv.URL+"/api/v1/check")
	if code != http.StatusBadGateway {
		t.Errorf("got status %d, want %d", code, http.StatusBadGateway)
	}
	if !strings.Contains(body, "could not read") {
		t.Errorf("unexpected body %s", body)
	}
}
