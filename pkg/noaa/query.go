package noaa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"
)

const (
	NOAA_URL = "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter"
	TIME_FMT = "20060102"

	DefaultApplication = "tidepool_app"
	DefaultDatum       = "MLLW"
	DefaultTimeout     = 10 * time.Second
)

// PredictionQuery is used to query the high/low tides at a station on one
// calendar day; see Client.Fetch.
type PredictionQuery struct {
	Date        time.Time
	Station     Station
	Application string
	Datum       string
}

func (q *PredictionQuery) build() url.Values {
	day := q.Date.Format(TIME_FMT)
	vals := make(url.Values)
	vals.Add("product", "predictions")
	vals.Add("application", q.Application)
	vals.Add("begin_date", day)
	vals.Add("end_date", day)
	vals.Add("datum", q.Datum)
	vals.Add("station", q.Station.String())
	vals.Add("time_zone", "lst_ldt")
	vals.Add("units", "english")
	vals.Add("interval", "hilo")
	vals.Add("format", "json")
	return vals
}

func (q *PredictionQuery) url(base string) (*url.URL, error) {
	addr, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	addr.RawQuery = q.build().Encode()
	return addr, nil
}

// Options configures a Client. Zero fields take the package defaults.
type Options struct {
	BaseURL     string
	Station     Station
	Application string
	Datum       string
	// Location is the station's local time zone, used to read prediction
	// times.
	Location *time.Location
	Timeout  time.Duration
	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

// Client fetches predictions for one configured station.
type Client struct {
	baseURL     string
	station     Station
	application string
	datum       string
	loc         *time.Location
	http        *http.Client
	now         func() time.Time
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	c := &Client{
		baseURL:     opts.BaseURL,
		station:     opts.Station,
		application: opts.Application,
		datum:       opts.Datum,
		loc:         opts.Location,
		http:        opts.HTTPClient,
		now:         time.Now,
	}
	if c.baseURL == "" {
		c.baseURL = NOAA_URL
	}
	if c.station == 0 {
		c.station = SantaCruz
	}
	if c.application == "" {
		c.application = DefaultApplication
	}
	if c.datum == "" {
		c.datum = DefaultDatum
	}
	if c.loc == nil {
		c.loc = time.Local
	}
	if c.http == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.http = &http.Client{Timeout: timeout}
	}
	return c
}

// Station returns the station the client queries.
func (c *Client) Station() Station {
	return c.station
}

// Location returns the time zone prediction times are read in.
func (c *Client) Location() *time.Location {
	return c.loc
}

// Fetch retrieves the high/low predictions for the calendar day of date. A
// zero date means today in the local time zone. Every call performs exactly
// one request.
func (c *Client) Fetch(ctx context.Context, date time.Time) (Predictions, error) {
	if date.IsZero() {
		date = c.now().In(time.Local)
	}
	q := PredictionQuery{
		Date:        date,
		Station:     c.station,
		Application: c.application,
		Datum:       c.datum,
	}

	// Build request URL first
	addr, err := q.url(c.baseURL)
	if err != nil {
		return nil, &NetworkError{URL: c.baseURL, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr.String(), nil)
	if err != nil {
		return nil, &NetworkError{URL: addr.String(), Err: err}
	}

	// Make the request to NOAA
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: addr.String(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{
			URL:        addr.String(),
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var result NOAAResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		// A body cut short by the timeout is a transport problem.
		var netErr net.Error
		if errors.As(err, &netErr) || ctx.Err() != nil {
			return nil, &NetworkError{URL: addr.String(), Err: err}
		}
		return nil, &DataFormatError{Err: err}
	}
	if result.Predictions == nil {
		if result.Error != nil && result.Error.Message != "" {
			return nil, &DataFormatError{Err: fmt.Errorf("%w: %s", errNoPredictions, result.Error.Message)}
		}
		return nil, &DataFormatError{Err: errNoPredictions}
	}

	return normalize(*result.Predictions, c.loc)
}
