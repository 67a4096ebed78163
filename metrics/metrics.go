// Package metrics exposes Prometheus instruments for HTTP traffic and
// document store round trips.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	storeOps        *prometheus.CounterVec
	storeDuration   *prometheus.HistogramVec
	ordersCreated   prometheus.Counter

	gatherer prometheus.Gatherer
}

// New registers the instruments on reg. A nil reg uses a fresh registry, which
// keeps tests independent from the global default one.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "courses_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status code",
		}, []string{"method", "route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "courses_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "courses_store_operations_total",
			Help: "Total number of document store round trips by operation, collection and result",
		}, []string{"op", "collection", "result"}),
		storeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "courses_store_operation_duration_seconds",
			Help:    "Duration of document store round trips in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"op", "collection"}),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courses_orders_created_total",
			Help: "Total number of orders recorded by the mock checkout",
		}),
		gatherer: reg,
	}

	reg.MustRegister(m.requests, m.requestDuration, m.storeOps, m.storeDuration, m.ordersCreated)
	return m
}

func (m *Metrics) ObserveRequest(method, route string, code int, took time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(took.Seconds())
}

// ObserveStore matches docstore.ObserveFunc.
func (m *Metrics) ObserveStore(op, collection string, took time.Duration, err error) {
	if collection == "" {
		collection = "-"
	}
	m.storeOps.WithLabelValues(op, collection, result(err)).Inc()
	m.storeDuration.WithLabelValues(op, collection).Observe(took.Seconds())
}

func (m *Metrics) OrderCreated() {
	m.ordersCreated.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}
