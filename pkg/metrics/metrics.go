package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcomes.
const (
	FetchOK         = "ok"
	FetchNetworkErr = "network_error"
	FetchFormatErr  = "format_error"
	FetchUnknownErr = "error"
)

var (
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "request_latency",
			Subsystem: "tidepool",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0, 16.0, 32.0},
		},
		[]string{"verb", "path", "code"},
	)

	fetchLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "noaa_fetch_latency",
			Subsystem: "tidepool",
			Help:      "Latency of NOAA prediction fetches in seconds, by outcome.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	verdicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "verdicts_total",
			Subsystem: "tidepool",
			Help:      "Tide evaluations by verdict.",
		},
		[]string{"verdict"},
	)
)

func init() {
	prometheus.MustRegister(
		requestLatency,
		fetchLatency,
		verdicts,
	)
}

func ObserveRequestLatency(verb, path, code string, latency float64) {
	requestLatency.With(prometheus.Labels{
		"code": code,
		"verb": verb,
		"path": path,
	}).Observe(latency)
}

// ObserveFetch records one NOAA round trip.
func ObserveFetch(outcome string, latency time.Duration) {
	fetchLatency.With(prometheus.Labels{"outcome": outcome}).Observe(latency.Seconds())
}

// ObserveVerdict counts one evaluation result, "yes", "no" or "none".
func ObserveVerdict(verdict string) {
	verdicts.With(prometheus.Labels{"verdict": verdict}).Inc()
}

// Handler serves the registered metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

func LatencyHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := time.Now()
		verb := r.Method
		path := ""
		if r.URL != nil {
			path = r.URL.Path
		}
		rec := &statusRecorder{ResponseWriter: w}

		// Defer metric observing. Any panics in next are reported as 500 errors
		// and then re-thrown.
		defer func() {
			if err := recover(); err != nil {
				ObserveRequestLatency(verb, path, "500", time.Since(t).Seconds())
				panic(err)
			}
			ObserveRequestLatency(verb, path, rec.code(), time.Since(t).Seconds())
		}()

		next.ServeHTTP(rec, r)
	})
}

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) code() string {
	if r.status == 0 {
		// Unset, will be set to 200 by stdlib.
		return "200"
	}
	return strconv.Itoa(r.status)
}
