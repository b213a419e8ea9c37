// Package metric provides Prometheus-based metrics for the Lore compiler.
//
// The package offers a registry that owns core compiler metrics (Metrics
// type) and accepts extra collectors from other components such as the
// worker pool (MetricsRegistrar interface).
//
// # Basic Usage
//
//	registry := metric.NewMetricsRegistry()
//	c := compiler.New(compiler.WithMetrics(registry))
//
//	results, err := c.CompileFiles(ctx, paths)
//	...
//	if err := registry.WriteTextfile("lore.prom"); err != nil {
//	    return err
//	}
//
// The CLI is short-lived, so nothing is served over HTTP: WriteTextfile dumps
// the registry in the Prometheus text format for the node exporter textfile
// collector or for inspection.
//
// # Core Metrics
//
//	lore_compiler_files_total{status}              ok, syntax_error, unresolved, unreadable
//	lore_compiler_syntax_errors_total
//	lore_compiler_unresolved_names_total
//	lore_compiler_stage_duration_seconds{stage}    read, parse, resolve
//	lore_store_triples
//
// # Service Metrics
//
// Components register their own collectors under a service name:
//
//	err := registry.RegisterCounter("worker", "compile_submitted_total", counter)
//
// A second registration under the same service and metric name returns an
// Invalid error. Unregister removes a collector again.
//
// # Thread Safety
//
// MetricsRegistry is safe for concurrent use. The Prometheus collectors it
// holds are themselves safe for concurrent use.
package metric
