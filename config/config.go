package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/c360/lore/codegen"
	"github.com/c360/lore/errors"
)

// Defaults applied before any layer is loaded
const (
	DefaultOutputDir = "./gen"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	// EnvPrefix prefixes every environment override, e.g. LORE_LOG_LEVEL.
	EnvPrefix = "LORE"
)

// Config is a Lore project configuration
type Config struct {
	// Inputs are files or glob patterns
	Inputs []string `json:"inputs" yaml:"inputs" toml:"inputs"`

	// OutputDir is where codegen writes
	OutputDir string `json:"output_dir" yaml:"output_dir" toml:"output_dir"`

	Targets []string `json:"targets" yaml:"targets" toml:"targets"`

	// Workers is the number of files compiled at once
	Workers int `json:"workers" yaml:"workers" toml:"workers"`

	Log LogConfig `json:"log" yaml:"log" toml:"log"`

	// MetricsFile receives the Prometheus textfile after each command
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty" toml:"metrics_file"`

	// BaseDir anchors relative inputs. LoadFile sets it to the directory of
	// the last layer.
	BaseDir string `json:"-" yaml:"-" toml:"-"`
}

// LogConfig selects the slog handler
type LogConfig struct {
	Level  string `json:"level" yaml:"level" toml:"level"`    // debug, info, warn, error
	Format string `json:"format" yaml:"format" toml:"format"` // json, text
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		OutputDir: DefaultOutputDir,
		Targets:   []string{codegen.TargetGraphQL},
		Workers:   runtime.NumCPU(),
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	if c == nil {
		return &Config{}
	}
	copied := *c
	copied.Inputs = slices.Clone(c.Inputs)
	copied.Targets = slices.Clone(c.Targets)
	return &copied
}

// Loader handles configuration loading with layers and overrides
type Loader struct {
	layers     []string
	overrides  []func(*Config)
	validation bool
	envPrefix  string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		layers:    []string{},
		envPrefix: EnvPrefix,
	}
}

// AddLayer adds a configuration file layer. Later layers override earlier
// ones key by key.
func (l *Loader) AddLayer(path string) {
	l.layers = append(l.layers, path)
}

// AddOverride registers fn to run after the environment overrides and
// before validation. Overrides run in the order they were added.
func (l *Loader) AddOverride(fn func(*Config)) {
	if fn != nil {
		l.overrides = append(l.overrides, fn)
	}
}

// EnableValidation enables or disables configuration validation
func (l *Loader) EnableValidation(enable bool) {
	l.validation = enable
}

// LoadFile loads configuration from a single file
func (l *Loader) LoadFile(path string) (*Config, error) {
	l.layers = []string{path}
	return l.Load()
}

// Load loads and merges all configuration layers
func (l *Loader) Load() (*Config, error) {
	merged, err := toMap(Default())
	if err != nil {
		return nil, errors.WrapFatal(err, "Loader", "Load", "encode defaults")
	}

	for _, path := range l.layers {
		raw, err := loadRaw(path)
		if err != nil {
			return nil, err
		}
		merged = deepMergeMaps(merged, raw)
	}

	cfg, err := fromMap(merged)
	if err != nil {
		return nil, errors.WrapInvalid(fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err),
			"Loader", "Load", "decode configuration")
	}
	if n := len(l.layers); n > 0 {
		cfg.BaseDir = filepath.Dir(l.layers[n-1])
	}

	if err := l.applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	for _, override := range l.overrides {
		override(cfg)
	}

	if l.validation {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// toMap and fromMap round-trip through JSON so every file format merges
// on the same key names.
func toMap(cfg *Config) (map[string]any, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func fromMap(m map[string]any) (*Config, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// deepMergeMaps recursively merges two maps, with override taking precedence
func deepMergeMaps(base, override map[string]any) map[string]any {
	result := make(map[string]any, len(base))
	for k, v := range base {
		result[k] = v
	}

	for k, v := range override {
		if v == nil {
			continue
		}
		if baseMap, ok := base[k].(map[string]any); ok {
			if overrideMap, ok := v.(map[string]any); ok {
				result[k] = deepMergeMaps(baseMap, overrideMap)
				continue
			}
		}
		result[k] = v
	}

	return result
}

// applyEnvOverrides applies environment variable overrides
func (l *Loader) applyEnvOverrides(cfg *Config) error {
	lookup := func(name string) (string, bool, error) {
		key := l.envPrefix + "_" + name
		val := os.Getenv(key)
		if val == "" {
			return "", false, nil
		}
		if err := validateEnvVar(key, val); err != nil {
			return "", false, errors.WrapInvalid(fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err),
				"Loader", "applyEnvOverrides", "read "+key)
		}
		return val, true, nil
	}

	for _, override := range []struct {
		name  string
		apply func(string) error
	}{
		{"LOG_LEVEL", func(v string) error { cfg.Log.Level = v; return nil }},
		{"LOG_FORMAT", func(v string) error { cfg.Log.Format = v; return nil }},
		{"OUTPUT_DIR", func(v string) error { cfg.OutputDir = v; return nil }},
		{"METRICS_FILE", func(v string) error { cfg.MetricsFile = v; return nil }},
		{"TARGETS", func(v string) error { cfg.Targets = splitList(v); return nil }},
		{"WORKERS", func(v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return errors.WrapInvalid(fmt.Errorf("%w: %s_WORKERS: %w", errors.ErrInvalidConfig, l.envPrefix, err),
					"Loader", "applyEnvOverrides", "parse workers")
			}
			cfg.Workers = n
			return nil
		}},
	} {
		val, ok, err := lookup(override.name)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := override.apply(val); err != nil {
			return err
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks if the config is valid. Target names are normalized to
// lower case.
func (c *Config) Validate() error {
	invalid := func(action, format string, args ...any) error {
		return errors.WrapInvalid(
			fmt.Errorf("%w: %s", errors.ErrInvalidConfig, fmt.Sprintf(format, args...)),
			"Config", "Validate", action)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid("check log level", "log.level %q must be one of debug, info, warn, error", c.Log.Level)
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return invalid("check log format", "log.format %q must be json or text", c.Log.Format)
	}

	if c.Workers < 0 {
		return invalid("check workers", "workers must not be negative, got %d", c.Workers)
	}

	if strings.TrimSpace(c.OutputDir) == "" {
		return invalid("check output dir", "output_dir is required")
	}

	if len(c.Targets) == 0 {
		return invalid("check targets", "at least one target is required")
	}
	for i, target := range c.Targets {
		name := strings.ToLower(strings.TrimSpace(target))
		if !slices.Contains(codegen.Targets(), name) {
			return invalid("check targets", "unknown target %q (supported: %s)",
				target, strings.Join(codegen.Targets(), ", "))
		}
		c.Targets[i] = name
	}

	for i, input := range c.Inputs {
		if strings.TrimSpace(input) == "" {
			return invalid("check inputs", "inputs[%d] is empty", i)
		}
		if _, err := filepath.Match(input, ""); err != nil {
			return invalid("check inputs", "inputs[%d] %q: %v", i, input, err)
		}
	}

	return nil
}

// ExpandInputs resolves Inputs into file paths. Glob patterns expand to
// their sorted matches and must match at least one file; plain paths are
// kept as they are. Relative entries are taken from BaseDir. The result
// keeps the order of Inputs without duplicates.
func (c *Config) ExpandInputs() ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			out = append(out, path)
		}
	}

	for _, input := range c.Inputs {
		pattern := input
		if c.BaseDir != "" && !filepath.IsAbs(pattern) {
			pattern = filepath.Join(c.BaseDir, pattern)
		}

		if !strings.ContainsAny(input, "*?[") {
			add(pattern)
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, errors.WrapInvalid(fmt.Errorf("%w: %q: %w", errors.ErrInvalidConfig, input, err),
				"Config", "ExpandInputs", "expand glob")
		}
		if len(matches) == 0 {
			return nil, errors.WrapInvalid(fmt.Errorf("%w: %q matches no files", errors.ErrInvalidConfig, input),
				"Config", "ExpandInputs", "expand glob")
		}
		for _, m := range matches {
			add(m)
		}
	}
	return out, nil
}

// String returns a JSON representation of the config
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
