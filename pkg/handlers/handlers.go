package handlers

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/spencer-p/tidepool/pkg/check"
	"github.com/spencer-p/tidepool/pkg/metrics"
	"github.com/spencer-p/tidepool/pkg/noaa"
	"github.com/spencer-p/tidepool/pkg/sunset"
)

//go:embed static
var content embed.FS

// Runner is satisfied by *check.Checker.
type Runner interface {
	Run(ctx context.Context, date, ref time.Time) (*check.Report, error)
}

// Options describe the station being served.
type Options struct {
	Station noaa.Station
	Place   sunset.Place
	// Now defaults to time.Now.
	Now func() time.Time
}

type server struct {
	runner Runner
	opts   Options
}

func Register(r *mux.Router, runner Runner, opts Options) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &server{runner: runner, opts: opts}

	r.Use(logRequests)
	r.Handle("/", makeServerSideIndex(s)).Methods(http.MethodGet)
	r.Handle("/api/v1/check", makeServeCheck(s)).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler())
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL)
		next.ServeHTTP(w, r)
	})
}

// run reads the picker form values and runs a check.
func (s *server) run(r *http.Request) (time.Time, *check.Report, error) {
	day, ref, err := check.ReferenceFromPicker(
		r.FormValue("date"), r.FormValue("time"), s.opts.Place.Location, s.opts.Now())
	if err != nil {
		return time.Time{}, nil, err
	}
	report, err := s.runner.Run(r.Context(), day, ref)
	return ref, report, err
}

// statusFor maps a failed check to an HTTP status and a message a person can
// read.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, check.ErrBadPicker):
		return http.StatusBadRequest, err.Error()
	case noaa.IsNetworkError(err):
		return http.StatusBadGateway, fmt.Sprintf("Could not reach NOAA: %v", err)
	case noaa.IsDataFormatError(err):
		return http.StatusBadGateway, fmt.Sprintf("NOAA sent data we could not read: %v", err)
	default:
		return http.StatusInternalServerError, fmt.Sprintf("Failed to check tides: %v", err)
	}
}

func makeServeCheck(s *server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, report, err := s.run(r)
		if err != nil {
			code, msg := statusFor(err)
			log.Printf("Failed to check tides: %+v", err)
			writeJSON(w, code, map[string]string{"error": msg})
			return
		}
		writeJSON(w, http.StatusOK, report)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode JSON result: %+v", err)
	}
}
