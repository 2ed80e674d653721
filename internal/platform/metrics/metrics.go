package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. Outcome labels are
// coarse operational facts; nothing identifier-shaped is ever used as a label.
type Metrics struct {
	Resolutions   *prometheus.CounterVec
	PayParams     *prometheus.CounterVec
	Invoices      *prometheus.CounterVec
	RouteQueries  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		Resolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "satnam_resolutions_total",
			Help: "Identifier resolutions by outcome (ok, not_found, unavailable, timeout).",
		}, []string{"outcome"}),
		PayParams: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "satnam_pay_parameters_total",
			Help: "LNURL-pay phase 1 requests by outcome.",
		}, []string{"outcome"}),
		Invoices: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "satnam_invoices_total",
			Help: "LNURL-pay phase 2 requests by outcome (issued, rejected, not_found, unavailable, timeout).",
		}, []string{"outcome"}),
		RouteQueries: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "satnam_route_queries_total",
			Help: "Route selection queries by outcome.",
		}, []string{"outcome"}),
		HTTPDurations: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "satnam_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}
