// Package metrics exposes Prometheus collectors for HTTP traffic and the
// notification queue.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/assistitk12/assistitk12/internal/domain/shared/events"
)

const namespace = "assistit"

var _ events.DispatchObserver = (*Metrics)(nil)

type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	notificationsQueued  *prometheus.CounterVec
	notificationsDropped *prometheus.CounterVec
	notificationsHandled *prometheus.CounterVec
}

// New registers every collector on a private registry along with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests, labeled by method, route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		notificationsQueued: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notification",
			Name:      "queued_total",
			Help:      "Notification events accepted by the queue",
		}, []string{"event"}),
		notificationsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notification",
			Name:      "dropped_total",
			Help:      "Notification events dropped because the queue was full",
		}, []string{"event"}),
		notificationsHandled: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notification",
			Name:      "handled_total",
			Help:      "Notification events processed, labeled by result",
		}, []string{"event", "result"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one HTTP request. route is the matched pattern, not
// the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) EventQueued(eventType string) {
	m.notificationsQueued.WithLabelValues(eventType).Inc()
}

func (m *Metrics) EventDropped(eventType string) {
	m.notificationsDropped.WithLabelValues(eventType).Inc()
}

func (m *Metrics) EventHandled(eventType string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.notificationsHandled.WithLabelValues(eventType, result).Inc()
}
