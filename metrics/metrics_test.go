package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRequest(http.MethodGet, "/api/courses", 200, 5*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/courses", 200, 5*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/courses/{id}", 404, time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/courses", "200")); got != 2 {
		t.Fatalf("expected 2 requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/courses/{id}", "404")); got != 1 {
		t.Fatalf("expected 1 not found request, got %v", got)
	}
	if got := testutil.CollectAndCount(m.requestDuration); got != 2 {
		t.Fatalf("expected 2 duration series, got %d", got)
	}
}

func TestObserveStore(t *testing.T) {
	m := New(nil)

	m.ObserveStore("insert", "course", time.Millisecond, nil)
	m.ObserveStore("find", "course", time.Millisecond, errors.New("boom"))
	m.ObserveStore("find", "course", time.Millisecond, context.DeadlineExceeded)
	m.ObserveStore("ping", "", time.Millisecond, nil)

	tt := []struct {
		op, collection, result string
	}{
		{"insert", "course", "ok"},
		{"find", "course", "error"},
		{"find", "course", "timeout"},
		{"ping", "-", "ok"},
	}
	for _, tc := range tt {
		if got := testutil.ToFloat64(m.storeOps.WithLabelValues(tc.op, tc.collection, tc.result)); got != 1 {
			t.Fatalf("%v: expected 1 observation, got %v", tc, got)
		}
	}
}

func TestHandler(t *testing.T) {
	m := New(nil)
	m.OrderCreated()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "courses_orders_created_total 1") {
		t.Fatalf("expected the orders counter in the exposition:\n%s", w.Body.String())
	}
}
