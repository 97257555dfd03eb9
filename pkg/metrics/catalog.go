package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics tracks CMS fetches issued by the query engine.
type CatalogMetrics struct {
	fetchDuration *prometheus.HistogramVec
	fetchFailures *prometheus.CounterVec
	staleDropped  prometheus.Counter
	urlWrites     prometheus.Counter
}

// NewCatalogMetrics registers the catalog engine metrics on the provided registerer.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	fetchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cms_fetch_duration_seconds",
		Help:    "Duration of CMS fetches in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource"})
	fetchFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_fetch_failures_total",
		Help: "CMS fetches that failed or returned non-2xx.",
	}, []string{"resource"})
	staleDropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_stale_responses_dropped_total",
		Help: "Catalog responses discarded because a newer request superseded them.",
	})
	urlWrites := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_url_writes_total",
		Help: "Navigable location rewrites performed by the reconciler.",
	})
	reg.MustRegister(fetchDuration, fetchFailures, staleDropped, urlWrites)
	return &CatalogMetrics{
		fetchDuration: fetchDuration,
		fetchFailures: fetchFailures,
		staleDropped:  staleDropped,
		urlWrites:     urlWrites,
	}
}

// ObserveFetch records the duration of one CMS fetch.
func (m *CatalogMetrics) ObserveFetch(resource string, elapsed time.Duration) {
	if m == nil || m.fetchDuration == nil {
		return
	}
	m.fetchDuration.WithLabelValues(normalizeLabel(resource)).Observe(elapsed.Seconds())
}

// IncFetchFailure increments the failure counter for the named resource.
func (m *CatalogMetrics) IncFetchFailure(resource string) {
	if m == nil || m.fetchFailures == nil {
		return
	}
	m.fetchFailures.WithLabelValues(normalizeLabel(resource)).Inc()
}

// IncStaleDropped counts a superseded response that was discarded.
func (m *CatalogMetrics) IncStaleDropped() {
	if m == nil || m.staleDropped == nil {
		return
	}
	m.staleDropped.Inc()
}

// IncURLWrite counts one location rewrite.
func (m *CatalogMetrics) IncURLWrite() {
	if m == nil || m.urlWrites == nil {
		return
	}
	m.urlWrites.Inc()
}
