// Package config loads Lore project configuration.
//
// A project file lists the sources to compile and how to generate code
// from them. JSON, YAML and TOML are accepted; the format follows the file
// extension:
//
//	# lore.yaml
//	inputs:
//	  - schemas/*.lore
//	output_dir: ./gen
//	targets: [graphql, yaml]
//	workers: 4
//	log:
//	  level: info
//	  format: text
//	metrics_file: lore.prom
//
// # Loading
//
// Loader starts from Default() and merges each layer on top, key by key,
// so an override file only needs the keys it changes:
//
//	loader := config.NewLoader()
//	loader.AddLayer("lore.yaml")
//	loader.AddLayer("lore.local.toml")
//	loader.AddOverride(func(c *config.Config) { c.Workers = 4 })
//	loader.EnableValidation(true)
//
//	cfg, err := loader.Load()
//	if err != nil {
//		return err
//	}
//	paths, err := cfg.ExpandInputs()
//
// Overrides run after the environment, so the CLI registers one for its
// flags and validation sees the final values. Environment variables are
// applied after the files: LORE_LOG_LEVEL,
// LORE_LOG_FORMAT, LORE_OUTPUT_DIR, LORE_METRICS_FILE, LORE_WORKERS and
// LORE_TARGETS (comma separated). The CLI reads the config path itself from
// LORE_CONFIG.
//
// # Errors
//
// A missing file is a Fatal error matching errors.ErrConfigNotFound.
// Malformed files and failed validation are Invalid errors matching
// errors.ErrInvalidConfig.
package config
