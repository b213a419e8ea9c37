package metric

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/lore/errors"
)

func gatheredNames(t *testing.T, registry *MetricsRegistry) map[string]bool {
	t.Helper()
	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	found := make(map[string]bool)
	for _, mf := range metricFamilies {
		found[mf.GetName()] = true
	}
	return found
}

func TestNewMetricsRegistry(t *testing.T) {
	registry := NewMetricsRegistry()

	assert.NotNil(t, registry)
	assert.NotNil(t, registry.PrometheusRegistry())
	assert.Same(t, registry.Metrics, registry.CoreMetrics())
}

func TestMetricsRegistry_RegisterCounter(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_counter",
		Help: "A test counter",
	})

	err := registry.RegisterCounter("test-service", "test_counter", counter)
	require.NoError(t, err)

	counter.Inc()
	assert.True(t, gatheredNames(t, registry)["test_counter"], "Counter should be registered in Prometheus registry")
}

func TestMetricsRegistry_RegisterGauge(t *testing.T) {
	registry := NewMetricsRegistry()

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "test_gauge",
		Help: "A test gauge",
	})

	err := registry.RegisterGauge("test-service", "test_gauge", gauge)
	require.NoError(t, err)

	gauge.Set(42.0)
	assert.True(t, gatheredNames(t, registry)["test_gauge"], "Gauge should be registered in Prometheus registry")
}

func TestMetricsRegistry_RegisterVectors(t *testing.T) {
	registry := NewMetricsRegistry()

	counterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "test_counter_vec",
		Help: "A test counter vector",
	}, []string{"label"})
	histogramVec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "test_histogram_vec",
		Help:    "A test histogram vector",
		Buckets: prometheus.DefBuckets,
	}, []string{"label"})

	require.NoError(t, registry.RegisterCounterVec("test-service", "test_counter_vec", counterVec))
	require.NoError(t, registry.RegisterHistogramVec("test-service", "test_histogram_vec", histogramVec))

	counterVec.WithLabelValues("a").Inc()
	histogramVec.WithLabelValues("a").Observe(1.5)

	found := gatheredNames(t, registry)
	assert.True(t, found["test_counter_vec"])
	assert.True(t, found["test_histogram_vec"])
}

func TestMetricsRegistry_PreventDuplicateRegistration(t *testing.T) {
	registry := NewMetricsRegistry()

	counter1 := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "duplicate_counter",
		Help: "First counter",
	})
	counter2 := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "duplicate_counter",
		Help: "First counter",
	})

	err := registry.RegisterCounter("service1", "duplicate_counter", counter1)
	require.NoError(t, err)

	// same key: caught by the registry's own bookkeeping
	err = registry.RegisterCounter("service1", "duplicate_counter", counter2)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
	assert.Contains(t, err.Error(), "duplicate metric registration")

	// different key, same prometheus name: caught by prometheus
	err = registry.RegisterCounter("service2", "duplicate_counter", counter2)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
	assert.Contains(t, err.Error(), "prometheus conflict")
}

func TestMetricsRegistry_UnregisterMetric(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "unregister_counter",
		Help: "A counter to unregister",
	})

	require.NoError(t, registry.RegisterCounter("test-service", "unregister_counter", counter))
	assert.True(t, gatheredNames(t, registry)["unregister_counter"])

	assert.True(t, registry.Unregister("test-service", "unregister_counter"))
	assert.False(t, gatheredNames(t, registry)["unregister_counter"])

	assert.False(t, registry.Unregister("test-service", "unregister_counter"))
}

func TestMetricsRegistry_ThreadSafety(t *testing.T) {
	registry := NewMetricsRegistry()

	var wg sync.WaitGroup
	numGoroutines := 10

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			counter := prometheus.NewCounter(prometheus.CounterOpts{
				Name: fmt.Sprintf("concurrent_counter_%d", id),
				Help: "A concurrent counter",
			})

			err := registry.RegisterCounter("concurrent-service",
				fmt.Sprintf("concurrent_counter_%d", id), counter)
			assert.NoError(t, err)
		}(i)
	}

	wg.Wait()

	counterCount := 0
	for name := range gatheredNames(t, registry) {
		if strings.HasPrefix(name, "concurrent_counter_") {
			counterCount++
		}
	}
	assert.Equal(t, numGoroutines, counterCount, "All concurrent counters should be registered")
}

func TestMetricsRegistry_CoreMetricsInitialization(t *testing.T) {
	registry := NewMetricsRegistry()
	core := registry.CoreMetrics()

	// vector metrics only show up in Gather() once a label set exists
	core.RecordFile(StatusOK)
	core.RecordStage(StageParse, time.Millisecond)

	found := gatheredNames(t, registry)
	for _, name := range []string{
		"lore_compiler_files_total",
		"lore_compiler_syntax_errors_total",
		"lore_compiler_unresolved_names_total",
		"lore_compiler_stage_duration_seconds",
		"lore_store_triples",
	} {
		assert.True(t, found[name], "core metric %s should be initialized", name)
	}
}

func TestCoreMetrics_RecordMethods(t *testing.T) {
	core := NewMetrics()

	core.RecordFile(StatusOK)
	core.RecordFile(StatusOK)
	core.RecordFile(StatusUnresolved)
	core.RecordSyntaxError()
	core.RecordUnresolved(3)
	core.RecordUnresolved(2)
	core.RecordStoreTriples(12)
	core.RecordStage(StageResolve, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(core.FilesTotal.WithLabelValues(StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(core.FilesTotal.WithLabelValues(StatusUnresolved)))
	assert.Equal(t, 1.0, testutil.ToFloat64(core.SyntaxErrors))
	assert.Equal(t, 5.0, testutil.ToFloat64(core.UnresolvedNames))
	assert.Equal(t, 12.0, testutil.ToFloat64(core.StoreTriples))
	assert.Equal(t, 1, testutil.CollectAndCount(core.StageDuration))
}

func TestMetricsRegistry_WriteTextfile(t *testing.T) {
	registry := NewMetricsRegistry()
	registry.CoreMetrics().RecordFile(StatusSyntaxError)
	registry.CoreMetrics().RecordStoreTriples(7)

	path := filepath.Join(t.TempDir(), "lore.prom")
	require.NoError(t, registry.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `lore_compiler_files_total{status="syntax_error"} 1`)
	assert.Contains(t, text, "lore_store_triples 7")
}

func TestMetricsRegistry_WriteTextfileBadPath(t *testing.T) {
	registry := NewMetricsRegistry()

	err := registry.WriteTextfile(filepath.Join(t.TempDir(), "missing", "lore.prom"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MetricsRegistry.WriteTextfile")
}
