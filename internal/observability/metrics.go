package observability

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "firehose"

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	dataSourceErrors  prometheus.Counter
	recordsFetched    prometheus.Histogram
	renderDuration    prometheus.Histogram
	runsStored        prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Histogram of HTTP request durations by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dashboard_cache_hits_total",
			Help:      "Dashboard snapshots served from the cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dashboard_cache_misses_total",
			Help:      "Dashboard snapshots rebuilt from the database.",
		}),
		dataSourceErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "data_source_errors_total",
			Help:      "Failed status table queries.",
		}),
		recordsFetched: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "records_fetched",
			Help:      "Status records returned per dashboard build.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dashboard_build_duration_seconds",
			Help:      "Time spent fetching and aggregating one dashboard.",
			Buckets:   prometheus.DefBuckets,
		}),
		runsStored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_stored_total",
			Help:      "Pipeline runs written through the ingestion endpoints.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpDuration,
		m.cacheHits,
		m.cacheMisses,
		m.dataSourceErrors,
		m.recordsFetched,
		m.renderDuration,
		m.runsStored,
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records request count and latency per matched route.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

func (m *Metrics) DataSourceFailure() {
	if m == nil {
		return
	}
	m.dataSourceErrors.Inc()
}

func (m *Metrics) RecordsFetched(n int) {
	if m == nil {
		return
	}
	m.recordsFetched.Observe(float64(n))
}

func (m *Metrics) RenderDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.renderDuration.Observe(d.Seconds())
}

func (m *Metrics) RunsStored(n int) {
	if m == nil {
		return
	}
	m.runsStored.Add(float64(n))
}
