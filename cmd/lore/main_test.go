package main

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/lore/errors"
)

const dota = `
using dota:ontology:2022

# Heroes carry items
kind Hero { label "Hero" }
kind Item
attr Name

rel Hero hasOne Name
rel Hero carries Item { max 6 }
`

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	for _, key := range []string{"LORE_CONFIG", "LORE_LOG_LEVEL", "LORE_LOG_FORMAT", "LORE_METRICS_FILE", "LORE_WORKERS", "LORE_TARGETS", "LORE_OUTPUT_DIR"} {
		t.Setenv(key, "")
	}
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "lore version "+Version+" (build "+BuildTime+")\n", out)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dota.lore", dota)

	out, stderr, err := execute(t, "validate", path)
	require.NoError(t, err, stderr)
	assert.Equal(t, "ok "+path+" (2 kinds, 1 attributes, 2 relations)\n", out)
}

func TestValidate_DumpAST(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dota.lore", dota)

	out, _, err := execute(t, "validate", "--dump-ast", path)
	require.NoError(t, err)
	assert.Contains(t, out, "dota:ontology:2022/Hero")
	assert.Contains(t, out, "dota:ontology:2022/carries")
	assert.Contains(t, out, "kinds:")
	assert.NotContains(t, out, "prefixes:")
}

func TestValidate_Failures(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "dota.lore", dota)
	syntax := writeFile(t, dir, "syntax.lore", "using dota:x\nkind 42\n")
	unresolved := writeFile(t, dir, "band.lore", "kind Band\n")

	out, stderr, err := execute(t, "validate", good, syntax, unresolved)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errCompileFailed))
	assert.Contains(t, err.Error(), "2 of 3 files")
	assert.Empty(t, out)

	assert.Contains(t, stderr, "error[syntax]")
	assert.Contains(t, stderr, "2 | kind 42")
	assert.Contains(t, stderr, "error[unresolved]: 1 unresolved name")
	assert.Contains(t, stderr, "  * Band")
}

func TestValidate_MissingFile(t *testing.T) {
	_, stderr, err := execute(t, "validate", filepath.Join(t.TempDir(), "missing.lore"))
	require.Error(t, err)
	assert.Contains(t, stderr, "source unreadable")
}

func TestValidate_NoInputs(t *testing.T) {
	_, _, err := execute(t, "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input files")
}

func TestValidate_ConfigInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "schemas/dota.lore", dota)
	writeFile(t, dir, "schemas/more.lore", "using x:y\nkind Z\n")
	cfg := writeFile(t, dir, "lore.yaml", "inputs:\n  - schemas/*.lore\n")

	out, stderr, err := execute(t, "--config", cfg, "validate")
	require.NoError(t, err, stderr)
	assert.Contains(t, out, filepath.Join(dir, "schemas", "dota.lore"))
	assert.Contains(t, out, filepath.Join(dir, "schemas", "more.lore"))
}

func TestQuery(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dota.lore", dota)

	out, stderr, err := execute(t, "query", "-q", "?kind a owl:Class", path)
	require.NoError(t, err, stderr)
	assert.Equal(t,
		"kind: <dota:ontology:2022/Hero>\n"+
			"kind: <dota:ontology:2022/Item>\n",
		out)
}

func TestQuery_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dota.lore", dota)

	_, _, err := execute(t, "query", "-q", "?kind a", path)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidQuery))
}

func TestQuery_RequiresQueryFlag(t *testing.T) {
	_, _, err := execute(t, "query", "x.lore")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query")
}

func TestCodegen(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dota.lore", dota)
	outDir := filepath.Join(dir, "gen")

	out, stderr, err := execute(t, "codegen", "--target", "graphql", "--target", "yaml", "-o", outDir, path)
	require.NoError(t, err, stderr)
	assert.Equal(t,
		"wrote "+filepath.Join(outDir, "schema.graphql")+"\n"+
			"wrote "+filepath.Join(outDir, "ontology.yaml")+"\n",
		out)

	schema, err := os.ReadFile(filepath.Join(outDir, "schema.graphql"))
	require.NoError(t, err)
	assert.Contains(t, string(schema), "dota_ontology_2022__Hero")
	assert.Contains(t, string(schema), "carries: dota_ontology_2022__Item")

	manifest, err := os.ReadFile(filepath.Join(outDir, "ontology.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), "dota:ontology:2022/hasOne")
}

func TestCodegen_ConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dota.lore", dota)
	outDir := filepath.Join(dir, "out")
	cfg := writeFile(t, dir, "lore.toml", "inputs = [\"dota.lore\"]\noutput_dir = \""+filepath.ToSlash(outDir)+"\"\ntargets = [\"yaml\"]\n")

	_, stderr, err := execute(t, "-c", cfg, "codegen")
	require.NoError(t, err, stderr)
	assert.FileExists(t, filepath.Join(outDir, "ontology.yaml"))
	assert.NoFileExists(t, filepath.Join(outDir, "schema.graphql"))
}

func TestCodegen_UnknownTarget(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dota.lore", dota)

	_, _, err := execute(t, "codegen", "--target", "ocaml", "-o", filepath.Join(dir, "gen"), path)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrUnknownTarget))
	assert.NoDirExists(t, filepath.Join(dir, "gen"))
}

func TestCodegen_FailingFileWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.lore", "kind {")
	outDir := filepath.Join(dir, "gen")

	_, _, err := execute(t, "codegen", "-o", outDir, path)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errCompileFailed))
	assert.NoDirExists(t, outDir)
}

func TestMetricsOut(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dota.lore", dota)
	metrics := filepath.Join(dir, "lore.prom")

	_, stderr, err := execute(t, "--metrics-out", metrics, "--workers", "2", "validate", path)
	require.NoError(t, err, stderr)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `lore_compiler_files_total{status="ok"} 1`)
	assert.Contains(t, string(data), "lore_worker_compile_processed_total 1")
}

func TestMetricsOut_WrittenOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.lore", "}")
	metrics := filepath.Join(dir, "lore.prom")

	_, _, err := execute(t, "--metrics-out", metrics, "validate", path)
	require.Error(t, err)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `lore_compiler_files_total{status="syntax_error"} 1`)
}

func TestInvalidFlags(t *testing.T) {
	_, _, err := execute(t, "--log-format", "xml", "version")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidConfig))

	_, _, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "version")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrConfigNotFound))
}

func TestFlagsOverrideConfigBeforeValidation(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "lore.yaml", "log:\n  level: trace\n")

	// --log-level error replaces the invalid file value
	_, _, err := execute(t, "--config", cfgPath, "version")
	require.NoError(t, err)

	cfgPath = writeFile(t, dir, "bad.yaml", "workers: -2\n")
	_, _, err = execute(t, "--config", cfgPath, "version")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidConfig))

	_, _, err = execute(t, "--config", cfgPath, "--workers", "2", "version")
	require.NoError(t, err)
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(&buf, "warn", "json")
	logger.Info("hidden")
	logger.Warn("shown", "file", "dota.lore")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"service":"lore"`)
	assert.Contains(t, out, `"file":"dota.lore"`)
}
