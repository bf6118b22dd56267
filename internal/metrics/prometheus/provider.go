package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	contentOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_operations_total",
			Help: "Total number of content operations processed",
		},
		[]string{"kind", "operation", "success"},
	)

	cacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
	)

	cacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	serviceHealth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "service_health",
			Help: "Service health status (1 = healthy, 0 = unhealthy)",
		},
	)
)

type Provider struct{}

func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) IncCacheHits() {
	cacheHitsTotal.Inc()
}

func (p *Provider) IncCacheMisses() {
	cacheMissesTotal.Inc()
}

func (p *Provider) IncContentOperation(kind, operation string, success bool) {
	contentOperationsTotal.WithLabelValues(kind, operation, strconv.FormatBool(success)).Inc()
}

func (p *Provider) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (p *Provider) SetServiceHealth(healthy bool) {
	if healthy {
		serviceHealth.Set(1)
	} else {
		serviceHealth.Set(0)
	}
}
