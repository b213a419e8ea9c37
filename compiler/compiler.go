// Package compiler runs the Lore front-end over source files: each file is
// parsed, then its names are resolved against the file's own directives.
//
// Files are independent of each other, so CompileFiles compiles them in
// parallel on a worker pool. A failing file never affects the others.
package compiler

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/c360/lore/ast"
	"github.com/c360/lore/errors"
	"github.com/c360/lore/metric"
	"github.com/c360/lore/parser"
	"github.com/c360/lore/pkg/worker"
	"github.com/c360/lore/resolver"
)

// Result is the outcome of compiling one file.
type Result struct {
	Path      string
	Source    string
	Structure *ast.Structure
	Err       error
	Duration  time.Duration
}

// OK reports whether the file compiled.
func (r Result) OK() bool {
	return r.Err == nil
}

// Compiler compiles Lore sources.
type Compiler struct {
	logger   *slog.Logger
	registry *metric.MetricsRegistry
	metrics  *metric.Metrics
	workers  int
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger for per-file outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records compiler and worker pool metrics in registry.
func WithMetrics(registry *metric.MetricsRegistry) Option {
	return func(c *Compiler) {
		if registry != nil {
			c.registry = registry
			c.metrics = registry.CoreMetrics()
		}
	}
}

// WithWorkers sets how many files are compiled at once. Values below one
// select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(c *Compiler) {
		if n > 0 {
			c.workers = n
		}
	}
}

// New returns a Compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		logger:  slog.Default(),
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Workers returns the configured parallelism.
func (c *Compiler) Workers() int {
	return c.workers
}

// CompileSource parses and resolves src. It returns a *parser.ParseError
// or a *resolver.UnresolvedNamesError on failure.
func (c *Compiler) CompileSource(filename, src string) (*ast.Structure, error) {
	start := time.Now()
	tree, err := parser.Parse(filename, src)
	c.recordStage(metric.StageParse, start)
	if err != nil {
		c.recordFile(metric.StatusSyntaxError)
		if c.metrics != nil {
			c.metrics.RecordSyntaxError()
		}
		c.logger.Warn("syntax error", "file", filename, "error", err)
		return nil, err
	}

	start = time.Now()
	structure, err := resolver.Resolve(tree)
	c.recordStage(metric.StageResolve, start)
	if err != nil {
		c.recordFile(metric.StatusUnresolved)
		var unresolved *resolver.UnresolvedNamesError
		if stderrors.As(err, &unresolved) {
			if c.metrics != nil {
				c.metrics.RecordUnresolved(len(unresolved.Names))
			}
			c.logger.Warn("unresolved names", "file", filename, "count", len(unresolved.Names))
		}
		return nil, err
	}

	c.recordFile(metric.StatusOK)
	c.logger.Debug("compiled file",
		"file", filename,
		"kinds", len(structure.Kinds),
		"attributes", len(structure.Attributes),
		"relations", len(structure.Relations))
	return structure, nil
}

// CompileFile reads and compiles one file.
func (c *Compiler) CompileFile(path string) Result {
	begin := time.Now()
	result := Result{Path: path}

	start := time.Now()
	data, err := os.ReadFile(path)
	c.recordStage(metric.StageRead, start)
	if err != nil {
		c.recordFile(metric.StatusUnreadable)
		c.logger.Warn("cannot read source", "file", path, "error", err)
		result.Err = errors.WrapFatal(fmt.Errorf("%w: %w", errors.ErrSourceUnreadable, err),
			"Compiler", "CompileFile", "read source")
		result.Duration = time.Since(begin)
		return result
	}

	result.Source = string(data)
	result.Structure, result.Err = c.CompileSource(path, result.Source)
	result.Duration = time.Since(begin)
	return result
}

// CompileFiles compiles every path in parallel. Results are returned in
// input order whether or not the files compiled; the error is only set when
// ctx ends before every file is done.
func (c *Compiler) CompileFiles(ctx context.Context, paths []string) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}

	results := make([]Result, len(paths))
	done := make([]bool, len(paths))
	process := func(ctx context.Context, i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		results[i] = c.CompileFile(paths[i])
		done[i] = true
		return results[i].Err
	}

	opts := []worker.Option[int]{worker.WithLogger[int](c.logger)}
	if c.registry != nil {
		opts = append(opts, worker.WithMetricsRegistry[int](c.registry, "compile"))
	}
	pool := worker.NewPool(min(c.workers, len(paths)), len(paths), process, opts...)

	if err := pool.Start(ctx); err != nil {
		return nil, errors.WrapFatal(err, "Compiler", "CompileFiles", "start worker pool")
	}
	for i := range paths {
		if err := pool.Submit(i); err != nil {
			_ = pool.Stop(context.Background())
			return nil, errors.WrapFatal(err, "Compiler", "CompileFiles", "submit file")
		}
	}
	// Workers exit on their own once ctx ends, so waiting is bounded.
	if err := pool.Stop(context.Background()); err != nil {
		return nil, errors.WrapFatal(err, "Compiler", "CompileFiles", "stop worker pool")
	}

	if err := ctx.Err(); err != nil {
		for i := range results {
			if !done[i] {
				results[i] = Result{Path: paths[i], Err: err}
			}
		}
		return results, err
	}

	stats := pool.Stats()
	c.logger.Debug("compiled files",
		"files", len(paths),
		"failed", stats.Failed,
		"workers", stats.Workers)
	return results, nil
}

// Failed returns the results whose file did not compile.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}

func (c *Compiler) recordStage(stage string, start time.Time) {
	if c.metrics != nil {
		c.metrics.RecordStage(stage, time.Since(start))
	}
}

func (c *Compiler) recordFile(status string) {
	if c.metrics != nil {
		c.metrics.RecordFile(status)
	}
}
