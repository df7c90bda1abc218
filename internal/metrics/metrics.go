package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "currency_converter"

// Cache lookup outcomes.
const (
	CacheHit     = "hit"
	CacheMiss    = "miss"
	CacheExpired = "expired"
	CacheCorrupt = "corrupt"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ConversionRequestsTotal prometheus.Counter
	ConversionErrorsTotal   *prometheus.CounterVec
	CacheLookupsTotal       *prometheus.CounterVec
	UpstreamFetchesTotal    *prometheus.CounterVec
	UpstreamFetchDuration   prometheus.Histogram

	gatherer prometheus.Gatherer
}

// NewMetrics registers every collector on reg. Each registry can only hold one
// set, so tests should pass a fresh prometheus.NewRegistry().
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		ConversionRequestsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "conversion_requests_total",
				Help:      "Total number of currency conversion requests",
			},
		),

		ConversionErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "conversion_errors_total",
				Help:      "Failed conversion requests by error kind",
			},
			[]string{"kind"},
		),

		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_cache_lookups_total",
				Help:      "Rate cache lookups by outcome",
			},
			[]string{"outcome"},
		),

		UpstreamFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_fetches_total",
				Help:      "Exchange rate provider calls by outcome",
			},
			[]string{"outcome"},
		),

		UpstreamFetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_fetch_duration_seconds",
				Help:      "Exchange rate provider call duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),

		gatherer: reg,
	}
}

// Handler serves the registry in the Prometheus exposition format. A nil
// *Metrics serves 404.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// The helpers below are no-ops on a nil *Metrics so components can run
// without instrumentation in tests.

func (m *Metrics) ObserveHTTPRequest(path, method string, statusCode int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(path, method).Observe(elapsed.Seconds())
	m.HTTPRequestsTotal.WithLabelValues(path, method, strconv.Itoa(statusCode)).Inc()
}

func (m *Metrics) ObserveCacheLookup(outcome string) {
	if m == nil {
		return
	}
	m.CacheLookupsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveUpstreamFetch(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamFetchesTotal.WithLabelValues(outcome).Inc()
	m.UpstreamFetchDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveConversion() {
	if m == nil {
		return
	}
	m.ConversionRequestsTotal.Inc()
}

func (m *Metrics) ObserveConversionError(kind string) {
	if m == nil {
		return
	}
	m.ConversionErrorsTotal.WithLabelValues(kind).Inc()
}
