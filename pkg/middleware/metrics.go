package middleware

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/vglob"
	"github.com/vango-dev/vglob/internal/errors"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vglob").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for compile duration.
	// Default: buckets from 10µs to ~40ms.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vglob",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 13),
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors for one registry.
type Metrics struct {
	compilesTotal   *prometheus.CounterVec
	compileDuration prometheus.Histogram
	compileErrors   *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
	matchesTotal    *prometheus.CounterVec
	wsSessions      prometheus.Gauge
	wsErrors        *prometheus.CounterVec
}

// NewMetrics registers the vglob collectors.
//
// Metrics collected:
//   - vglob_compiles_total: Counter of compilations by status
//   - vglob_compile_duration_seconds: Histogram of compile duration
//   - vglob_compile_errors_total: Counter of compile errors by code
//   - vglob_cache_lookups_total: Counter of cache lookups by result
//   - vglob_matches_total: Counter of evaluated paths by result
//   - vglob_websocket_sessions: Gauge of open live-match sessions
//   - vglob_websocket_errors_total: Counter of WebSocket errors
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		compilesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "compiles_total",
			Help:        "Total number of glob compilations that missed the cache",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		compileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "compile_duration_seconds",
			Help:        "Glob compilation duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		compileErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "compile_errors_total",
			Help:        "Total number of compile errors by error code",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),

		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "cache_lookups_total",
			Help:        "Total compiled-pattern cache lookups by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		matchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "matches_total",
			Help:        "Total paths evaluated against compiled patterns by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		wsSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_sessions",
			Help:        "Number of open live-match WebSocket sessions",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// Middleware returns compile middleware that records into m.
func (m *Metrics) Middleware() vglob.Middleware {
	return func(next vglob.CompileFunc) vglob.CompileFunc {
		return func(ctx context.Context, req vglob.Request) (*vglob.Pattern, error) {
			start := time.Now()
			p, err := next(ctx, req)
			m.compileDuration.Observe(time.Since(start).Seconds())

			status := "success"
			if err != nil {
				status = "error"
				m.compileErrors.WithLabelValues(errorCode(err)).Inc()
			}
			m.compilesTotal.WithLabelValues(status).Inc()
			return p, err
		}
	}
}

// RecordCacheLookup counts a cache lookup. It has the signature
// vglob.WithCacheObserver expects.
func (m *Metrics) RecordCacheLookup(hit bool) {
	m.cacheLookups.WithLabelValues(hitLabel(hit)).Inc()
}

// RecordMatch counts one evaluated path.
func (m *Metrics) RecordMatch(matched bool) {
	result := "miss"
	if matched {
		result = "match"
	}
	m.matchesTotal.WithLabelValues(result).Inc()
}

// RecordSessionOpen counts a live-match session opening.
func (m *Metrics) RecordSessionOpen() {
	m.wsSessions.Inc()
}

// RecordSessionClose counts a live-match session closing.
func (m *Metrics) RecordSessionClose() {
	m.wsSessions.Dec()
}

// RecordWebSocketError records a WebSocket error.
func (m *Metrics) RecordWebSocketError(errorType string) {
	m.wsErrors.WithLabelValues(errorType).Inc()
}

// errorCode keeps the error label bounded to registered codes.
func errorCode(err error) string {
	var ge *errors.GlobError
	if stderrors.As(err, &ge) && ge.Code != "" {
		return ge.Code
	}
	return "unknown"
}

func hitLabel(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// globalMetrics is the singleton used by Prometheus and the Record functions.
// Created on first call to Prometheus().
var (
	globalMetrics   *Metrics
	globalMetricsMu sync.Mutex
)

// Prometheus creates compile middleware backed by the process-wide metrics.
// The first call registers the collectors; options of later calls are
// ignored.
//
// Example:
//
//	c := vglob.NewCompiler(
//	    vglob.WithMiddleware(middleware.Prometheus(middleware.WithNamespace("myapp"))),
//	    vglob.WithCacheObserver(middleware.RecordCacheLookup),
//	)
//
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) vglob.Middleware {
	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = NewMetrics(opts...)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return m.Middleware()
}

// GetMetrics returns the process-wide metrics, or nil if Prometheus has not
// been called.
func GetMetrics() *Metrics {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	return globalMetrics
}

// RecordCacheLookup counts a cache lookup on the process-wide metrics.
func RecordCacheLookup(hit bool) {
	if m := GetMetrics(); m != nil {
		m.RecordCacheLookup(hit)
	}
}

// RecordMatch counts one evaluated path on the process-wide metrics.
func RecordMatch(matched bool) {
	if m := GetMetrics(); m != nil {
		m.RecordMatch(matched)
	}
}
