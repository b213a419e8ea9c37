package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360/lore/compiler"
	"github.com/c360/lore/config"
	"github.com/c360/lore/diagnostic"
	"github.com/c360/lore/metric"
	"github.com/c360/lore/store"
)

// errCompileFailed is returned after diagnostics for failing files have
// been written.
var errCompileFailed = stderrors.New("compilation failed")

// app carries the state shared by every subcommand
type app struct {
	stdout io.Writer
	stderr io.Writer

	// Persistent flags
	configPath string
	logLevel   string
	logFormat  string
	metricsOut string
	workers    int

	cfg      *config.Config
	logger   *slog.Logger
	registry *metric.MetricsRegistry
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   appName,
		Short: "Lore - a little language to capture reality",
		Long: `lore compiles ontology schemas written in Lore.

A Lore file declares kinds, attributes and relations, each named by a URI
or by an alias resolved through the file's ` + "`using`" + ` and ` + "`prefix`" + ` directives.

Commands:
  validate  - parse and resolve files, reporting every problem found
  query     - load files into a store and run a graph pattern query
  codegen   - generate GraphQL or YAML from the declarations
  version   - print version information`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", getEnv("LORE_CONFIG", ""),
		"Project configuration file, .yaml, .toml or .json (env: LORE_CONFIG)")
	flags.StringVar(&a.logLevel, "log-level", "",
		"Log level: debug, info, warn, error (env: LORE_LOG_LEVEL)")
	flags.StringVar(&a.logFormat, "log-format", "",
		"Log format: json, text (env: LORE_LOG_FORMAT)")
	flags.StringVar(&a.metricsOut, "metrics-out", "",
		"Write Prometheus metrics to this file after the command (env: LORE_METRICS_FILE)")
	flags.IntVar(&a.workers, "workers", 0,
		"Files compiled in parallel, defaults to the number of CPUs (env: LORE_WORKERS)")

	root.AddCommand(
		newValidateCmd(a),
		newQueryCmd(a),
		newCodegenCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads configuration, applies flag overrides and builds the logger
// and metrics registry.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	loader := config.NewLoader()
	if a.configPath != "" {
		loader.AddLayer(a.configPath)
	}
	loader.AddOverride(a.flagOverrides(cmd))
	loader.EnableValidation(true)

	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = setupLogger(a.stderr, cfg.Log.Level, cfg.Log.Format)
	a.registry = metric.NewMetricsRegistry()

	a.logger.Debug("configuration loaded",
		"config_path", a.configPath,
		"workers", cfg.Workers,
		"targets", cfg.Targets)
	return nil
}

// flagOverrides copies the flags set on the command line over the loaded
// configuration.
func (a *app) flagOverrides(cmd *cobra.Command) func(*config.Config) {
	return func(cfg *config.Config) {
		flags := cmd.Flags()
		if flags.Changed("log-level") {
			cfg.Log.Level = a.logLevel
		}
		if flags.Changed("log-format") {
			cfg.Log.Format = a.logFormat
		}
		if flags.Changed("metrics-out") {
			cfg.MetricsFile = a.metricsOut
		}
		if flags.Changed("workers") {
			cfg.Workers = a.workers
		}
	}
}

// runE wraps a command so metrics are exported whether or not it fails.
func (a *app) runE(fn func(ctx context.Context, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd.Context(), args)
		if werr := a.writeMetrics(); werr != nil {
			return stderrors.Join(err, werr)
		}
		return err
	}
}

func (a *app) writeMetrics() error {
	if a.cfg == nil || a.cfg.MetricsFile == "" {
		return nil
	}
	if err := a.registry.WriteTextfile(a.cfg.MetricsFile); err != nil {
		return err
	}
	a.logger.Debug("metrics written", "path", a.cfg.MetricsFile)
	return nil
}

// inputs returns the files named on the command line, or the configured
// inputs when there are none.
func (a *app) inputs(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	paths, err := a.cfg.ExpandInputs()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input files: pass them as arguments or set `inputs` in the configuration")
	}
	return paths, nil
}

// compile compiles every input and renders diagnostics for the failures.
func (a *app) compile(ctx context.Context, args []string) ([]compiler.Result, error) {
	paths, err := a.inputs(args)
	if err != nil {
		return nil, err
	}

	c := compiler.New(
		compiler.WithLogger(a.logger),
		compiler.WithMetrics(a.registry),
		compiler.WithWorkers(a.cfg.Workers),
	)
	results, err := c.CompileFiles(ctx, paths)
	if err != nil {
		return nil, err
	}

	failed := compiler.Failed(results)
	if len(failed) > 0 {
		r := diagnostic.New(diagnostic.WithColor(colorEnabled(a.stderr)))
		for _, f := range failed {
			if werr := r.Write(a.stderr, f.Err, f.Source); werr != nil {
				return results, werr
			}
		}
		return results, fmt.Errorf("%w: %d of %d files", errCompileFailed, len(failed), len(results))
	}
	return results, nil
}

// loadStore compiles the inputs into a new store. Nothing is stored
// unless every file compiles.
func (a *app) loadStore(ctx context.Context, args []string) (*store.Store, error) {
	results, err := a.compile(ctx, args)
	if err != nil {
		return nil, err
	}
	st := store.New(store.WithLogger(a.logger), store.WithMetrics(a.registry))
	for _, r := range results {
		st.AddTree(r.Path, r.Structure)
	}
	return st, nil
}

func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
