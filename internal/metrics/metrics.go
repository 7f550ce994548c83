package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's Prometheus collectors.
type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	ContactsCreated prometheus.Counter
	ContactsDeleted prometheus.Counter

	gatherer prometheus.Gatherer
}

// New registers the collectors on a fresh registry. Each App gets its own so
// tests can build as many as they like.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contacthub_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "contacthub_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ContactsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "contacthub_contacts_created_total",
			Help: "Total number of contacts created",
		}),
		ContactsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "contacthub_contacts_deleted_total",
			Help: "Total number of contacts deleted",
		}),
		gatherer: reg,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
