package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric exported by Lore.
const Namespace = "lore"

// File outcome labels for FilesTotal
const (
	StatusOK          = "ok"
	StatusSyntaxError = "syntax_error"
	StatusUnresolved  = "unresolved"
	StatusUnreadable  = "unreadable"
)

// Stage labels for StageDuration
const (
	StageRead    = "read"
	StageParse   = "parse"
	StageResolve = "resolve"
)

// Metrics contains the core compiler metrics
type Metrics struct {
	FilesTotal      *prometheus.CounterVec
	SyntaxErrors    prometheus.Counter
	UnresolvedNames prometheus.Counter
	StageDuration   *prometheus.HistogramVec
	StoreTriples    prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all compiler metrics
func NewMetrics() *Metrics {
	return &Metrics{
		FilesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "compiler",
				Name:      "files_total",
				Help:      "Total number of files compiled, by outcome",
			},
			[]string{"status"},
		),

		SyntaxErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "compiler",
				Name:      "syntax_errors_total",
				Help:      "Total number of files rejected by the parser",
			},
		),

		UnresolvedNames: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "compiler",
				Name:      "unresolved_names_total",
				Help:      "Total number of name occurrences no directive resolved",
			},
		),

		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Subsystem: "compiler",
				Name:      "stage_duration_seconds",
				Help:      "Time spent per compiler stage in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"stage"},
		),

		StoreTriples: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Subsystem: "store",
				Name:      "triples",
				Help:      "Number of distinct triples held by the store",
			},
		),
	}
}

// RecordFile increments the file counter for an outcome
func (m *Metrics) RecordFile(status string) {
	m.FilesTotal.WithLabelValues(status).Inc()
}

// RecordSyntaxError counts a file rejected by the parser
func (m *Metrics) RecordSyntaxError() {
	m.SyntaxErrors.Inc()
}

// RecordUnresolved adds n unresolved name occurrences
func (m *Metrics) RecordUnresolved(n int) {
	m.UnresolvedNames.Add(float64(n))
}

// RecordStage records time spent in a compiler stage
func (m *Metrics) RecordStage(stage string, duration time.Duration) {
	m.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordStoreTriples updates the store size
func (m *Metrics) RecordStoreTriples(n int) {
	m.StoreTriples.Set(float64(n))
}
