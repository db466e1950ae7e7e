// internal/app/system/enginemetrics/enginemetrics.go
//
// Package enginemetrics exposes Prometheus collectors for the rating engine
// and the HTTP layer around it. Collectors register with the default
// registry on package load and are served at /metrics.
package enginemetrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Tenant resolution sources.
const (
	SourceSession = "session"
	SourceStored  = "stored"
	SourceHealed  = "healed"
	SourceNone    = "none"
)

var (
	TenantResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bourbonclub_tenant_resolutions_total",
			Help: "Club resolutions by the source that supplied the club",
		},
		[]string{"source"},
	)

	EnginePassDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bourbonclub_engine_pass_duration_seconds",
			Help:    "Duration of one engine computation over loaded records",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"engine"},
	)

	EngineInputSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bourbonclub_engine_input_records",
			Help:    "Number of records fed into one engine computation",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"engine"},
	)

	AchievementsAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bourbonclub_achievements_awarded_total",
			Help: "Achievements awarded during progress reconciliation",
		},
		[]string{"key"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bourbonclub_http_requests_total",
			Help: "HTTP requests by method, route, and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bourbonclub_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordTenantResolution counts one resolution outcome.
func RecordTenantResolution(source string) {
	TenantResolutions.WithLabelValues(source).Inc()
}

// ObserveEngine records one engine pass.
func ObserveEngine(engine string, inputs int, d time.Duration) {
	EnginePassDuration.WithLabelValues(engine).Observe(d.Seconds())
	EngineInputSize.WithLabelValues(engine).Observe(float64(inputs))
}

// RecordAward counts a newly awarded achievement.
func RecordAward(key string) {
	AchievementsAwarded.WithLabelValues(key).Inc()
}

// RecordHTTPRequest records one completed request.
func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
