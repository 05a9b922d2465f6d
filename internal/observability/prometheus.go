package observability

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prom exposes the Metrics interface over a Prometheus registry.
type Prom struct {
	registry *prometheus.Registry

	lookupDuration *prometheus.HistogramVec
	upsertDuration prometheus.Histogram
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	kafkaDuration  *prometheus.HistogramVec
	retryOutcomes  *prometheus.CounterVec
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
}

func NewProm() *Prom {
	p := &Prom{
		registry: prometheus.NewRegistry(),

		lookupDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "subhub_lookup_duration_ms",
				Help:    "Subscription lookup duration in milliseconds by source",
				Buckets: prometheus.ExponentialBuckets(0.1, 4, 8),
			},
			[]string{"source"},
		),
		upsertDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "subhub_upsert_duration_ms",
				Help:    "Subscription write duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(0.1, 4, 8),
			},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "subhub_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "subhub_http_request_duration_ms",
				Help:    "HTTP request duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(0.5, 4, 8),
			},
			[]string{"method", "route"},
		),
		kafkaDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "subhub_kafka_process_duration_ms",
				Help:    "Payment event processing duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(0.5, 4, 8),
			},
			[]string{"ok"},
		),
		retryOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "subhub_payment_retries_total",
				Help: "Payment retry outcomes",
			},
			[]string{"outcome"},
		),
		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "subhub_cache_hits_total",
				Help: "Subscription cache hits",
			},
		),
		cacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "subhub_cache_misses_total",
				Help: "Subscription cache misses",
			},
		),
	}

	p.registry.MustRegister(
		p.lookupDuration,
		p.upsertDuration,
		p.httpRequests,
		p.httpDuration,
		p.kafkaDuration,
		p.retryOutcomes,
		p.cacheHits,
		p.cacheMisses,
	)
	return p
}

// Handler serves the /metrics endpoint for this registry.
func (p *Prom) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func (p *Prom) ObserveLookup(source string, cacheMs, dbMs float64) {
	p.lookupDuration.WithLabelValues(source).Observe(cacheMs + dbMs)
}

func (p *Prom) ObserveUpsert(dbWriteMs float64) {
	p.upsertDuration.Observe(dbWriteMs)
}

func (p *Prom) ObserveHTTP(method, route string, status int, durMs float64) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(durMs)
}

func (p *Prom) ObserveKafka(processMs float64, ok bool) {
	p.kafkaDuration.WithLabelValues(strconv.FormatBool(ok)).Observe(processMs)
}

func (p *Prom) ObserveRetry(outcome string) {
	p.retryOutcomes.WithLabelValues(outcome).Inc()
}

func (p *Prom) IncCacheHit()  { p.cacheHits.Inc() }
func (p *Prom) IncCacheMiss() { p.cacheMisses.Inc() }
