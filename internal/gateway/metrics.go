package gateway

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// metrics uses a private registry so each Server exposes only its own series.
type metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	upstream *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zittyzoom",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Gateway requests by route and status code.",
		}, []string{"route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "zittyzoom",
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Gateway request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		upstream: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zittyzoom",
			Subsystem: "gateway",
			Name:      "upstream_calls_total",
			Help:      "Provider calls by provider, operation and outcome.",
		}, []string{"provider", "operation", "outcome"}),
	}
	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.upstream,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *metrics) observeRequest(route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// observeUpstream counts a provider call. Outcome is "ok", "not_found" or
// "error".
func (m *metrics) observeUpstream(provider, operation string, err error, notFound ...error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		for _, nf := range notFound {
			if errors.Is(err, nf) {
				outcome = "not_found"
				break
			}
		}
	}
	m.upstream.WithLabelValues(provider, operation, outcome).Inc()
}
