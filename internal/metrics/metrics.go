// Package metrics holds the prometheus collectors for upstream calls and page requests.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collectors registered against one registry.
type Metrics struct {
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	httpRequests     *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prisoner_profile",
			Name:      "upstream_requests_total",
			Help:      "Upstream API calls by api, operation and status code (0 = transport error).",
		}, []string{"api", "operation", "status"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "prisoner_profile",
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream API call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"api", "operation"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prisoner_profile",
			Name:      "http_requests_total",
			Help:      "Page requests by route and response status.",
		}, []string{"route", "status"}),
	}
	reg.MustRegister(m.upstreamRequests, m.upstreamDuration, m.httpRequests)
	return m
}

// ObserveUpstream records one upstream call.
func (m *Metrics) ObserveUpstream(api, operation string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(api, operation, strconv.Itoa(status)).Inc()
	m.upstreamDuration.WithLabelValues(api, operation).Observe(elapsed.Seconds())
}

// ObserveHTTP records one page request.
func (m *Metrics) ObserveHTTP(route string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
