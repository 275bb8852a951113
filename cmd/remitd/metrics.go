package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics instruments the HTTP API.
type Metrics struct {
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	txTotal           *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith registers all collectors on the given registerer. Tests use
// it with a private registry so servers can be created independently.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "remitd_http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "remitd_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		txTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "remitd_transactions_total",
			Help: "Total count of ledger transactions by path and result.",
		}, []string{"path", "result"}),
	}
	reg.MustRegister(m.httpRequestsTotal, m.httpDuration, m.txTotal)
	return m
}

// Handler exposes the prometheus scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveTx counts one ledger transaction outcome.
func (m *Metrics) ObserveTx(path string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.txTotal.WithLabelValues(path, result).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// WrapHandler instruments a route with request count and duration.
func (m *Metrics) WrapHandler(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
	})
}
