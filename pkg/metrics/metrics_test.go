package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("/api/products", "GET", 200, 30*time.Millisecond)
	m.Observe("", "GET", 500, time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestCatalogMetricsNilSafe(t *testing.T) {
	var m *CatalogMetrics
	m.ObserveFetch("products", time.Millisecond)
	m.IncFetchFailure("products")
	m.IncStaleDropped()
	m.IncURLWrite()

	unregistered := NewCatalogMetrics(nil)
	unregistered.IncStaleDropped()
}

func TestCatalogMetricsRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCatalogMetrics(reg)

	m.ObserveFetch("products", 10*time.Millisecond)
	m.IncFetchFailure("price-range")
	m.IncStaleDropped()

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(families), 3)
}
