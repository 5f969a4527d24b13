package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestLatencyHandlerRecordsStatus(t *testing.T) {
	h := LatencyHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	before := testutil.CollectAndCount(requestLatency)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics-test-502", nil))
	if got := testutil.CollectAndCount(requestLatency); got != before+1 {
		t.Errorf("got %d series, want %d", got, before+1)
	}
}

func TestStatusRecorder(t *testing.T) {
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder()}
	if got := rec.code(); got != "200" {
		t.Errorf("unset code = %q, want 200", got)
	}
	rec.WriteHeader(http.StatusNotFound)
	rec.WriteHeader(http.StatusOK)
	if got := rec.code(); got != "404" {
		t.Errorf("code = %q, want first written 404", got)
	}
}

func TestObserveVerdict(t *testing.T) {
	before := testutil.ToFloat64(verdicts.WithLabelValues("yes"))
	ObserveVerdict("yes")
	if got := testutil.ToFloat64(verdicts.WithLabelValues("yes")); got != before+1 {
		t.Errorf("yes = %f, want %f", got, before+1)
	}
}
