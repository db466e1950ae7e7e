// internal/app/features/metrics/routes.go
//
// Package metrics serves the Prometheus scrape endpoint for the collectors
// registered by enginemetrics.
package metrics

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes mounts the scrape handler. Typically: r.Mount("/metrics", metrics.Routes(nil)).
// A nil gatherer serves the default registry.
func Routes(g prometheus.Gatherer) chi.Router {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	r := chi.NewRouter()
	r.Handle("/", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return r
}
