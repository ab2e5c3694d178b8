package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	settingsSource  *prometheus.CounterVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	upstreamLatency prometheus.Observer
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	settingsSource := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "settings_resolutions_total",
		Help: "Settings reads by the tier that served them",
	}, []string{"source"})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	upstreamLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "upstream_request_seconds",
		Help:    "Latency of upstream WordPress API calls",
		Buckets: prometheus.DefBuckets,
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, settingsSource, cacheHits, cacheMisses, upstreamLatency, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		settingsSource:  settingsSource,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		upstreamLatency: upstreamLatency,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one served request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if s == nil {
		return
	}
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// RecordSettingsSource counts which fallback tier served a settings read.
func (s *MetricsService) RecordSettingsSource(source string) {
	if s == nil {
		return
	}
	s.settingsSource.WithLabelValues(source).Inc()
}

// RecordCacheOperation counts redis cache hits and misses.
func (s *MetricsService) RecordCacheOperation(hit bool) {
	if s == nil {
		return
	}
	if hit {
		s.cacheHits.Inc()
	} else {
		s.cacheMisses.Inc()
	}
}

// ObserveUpstreamRequest records one upstream API call.
func (s *MetricsService) ObserveUpstreamRequest(duration time.Duration) {
	if s == nil {
		return
	}
	s.upstreamLatency.Observe(duration.Seconds())
}
