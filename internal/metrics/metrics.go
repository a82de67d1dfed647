// Package metrics holds the site's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is a set of collectors bound to one registry.
type Metrics struct {
	Registry        *prometheus.Registry
	PageViews       *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	AvatarFallbacks prometheus.Counter
}

// New registers collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		PageViews: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "page_views_total",
			Help:      "Rendered page views by route.",
		}, []string{"route"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "portfolio",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		AvatarFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "avatar_fallbacks_total",
			Help:      "Home renders that used the avatar placeholder.",
		}),
	}
}
