package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/rsacalc/internal/metrics"
)

// Metrics tracks HTTP traffic next to the engine collectors, in the same
// registry.
type Metrics struct {
	engine          *metrics.Collectors
	activeRequests  prometheus.Gauge
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	handler         http.Handler
}

// NewMetrics registers the HTTP collectors in c's registry. A nil c gets a
// fresh metrics.Collectors.
func NewMetrics(c *metrics.Collectors) *Metrics {
	if c == nil {
		c = metrics.New()
	}
	m := &Metrics{
		engine: c,
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metrics.Namespace,
			Name:      "active_requests",
			Help:      "HTTP requests currently being served.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Name:      "requests_total",
			Help:      "HTTP requests served, by route and status code.",
		}, []string{"route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency, by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		handler: c.Handler(),
	}
	c.Registry().MustRegister(m.activeRequests, m.requestsTotal, m.requestDuration)
	return m
}

// Engine returns the engine collectors sharing this registry.
func (m *Metrics) Engine() *metrics.Collectors { return m.engine }

func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// WritePrometheus serves the registry in the exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware counts and times requests per route template. It is
// installed with mux.Router.Use, so only matched routes are labelled.
func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		route := "unknown"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		s.metrics.requestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		s.metrics.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
