package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360/lore/codegen"
	"github.com/c360/lore/errors"
)

func newValidateCmd(a *app) *cobra.Command {
	var dumpAST bool

	cmd := &cobra.Command{
		Use:   "validate [FILES...]",
		Short: "Parse and resolve Lore files",
		Long: `Parse and resolve every file, reporting syntax errors and unresolved
names. Exits non-zero when any file fails.`,
		RunE: a.runE(func(ctx context.Context, args []string) error {
			results, err := a.compile(ctx, args)
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Fprintf(a.stdout, "ok %s (%d kinds, %d attributes, %d relations)\n",
					r.Path, len(r.Structure.Kinds), len(r.Structure.Attributes), len(r.Structure.Relations))
				if !dumpAST {
					continue
				}
				data, err := codegen.MarshalManifest(codegen.StructureManifest(r.Structure))
				if err != nil {
					return errors.WrapFatal(err, "lore", "validate", "dump declarations")
				}
				fmt.Fprintf(a.stdout, "%s\n", data)
			}
			return nil
		}),
	}
	cmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "Print the resolved declarations of each file")
	return cmd
}

func newQueryCmd(a *app) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "query -q QUERY [FILES...]",
		Short: "Run a graph pattern query over Lore files",
		Example: `  lore query -q '?kind a owl:Class' schemas/*.lore
  lore query -q 'SELECT ?rel ?target WHERE { ?rel rdfs:range ?target }' dota.lore`,
		RunE: a.runE(func(ctx context.Context, args []string) error {
			st, err := a.loadStore(ctx, args)
			if err != nil {
				return err
			}
			result, err := st.Query(query)
			if err != nil {
				return err
			}
			for _, row := range result.Strings() {
				fmt.Fprintln(a.stdout, strings.Join(row, "\t"))
			}
			a.logger.Info("query finished", "rows", result.Len(), "triples", st.Len())
			return nil
		}),
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "The query to run")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}

func newCodegenCmd(a *app) *cobra.Command {
	var (
		targets   []string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "codegen [FILES...]",
		Short: "Generate sources from Lore files",
		Long: fmt.Sprintf(`Generate sources for each target from the declarations of every file.

Targets: %s`, strings.Join(codegen.Targets(), ", ")),
		RunE: a.runE(func(ctx context.Context, args []string) error {
			if len(targets) == 0 {
				targets = a.cfg.Targets
			}
			if outputDir == "" {
				outputDir = a.cfg.OutputDir
			}

			emitters := make([]codegen.Emitter, 0, len(targets))
			for _, target := range targets {
				e, err := codegen.ForTarget(target)
				if err != nil {
					return err
				}
				emitters = append(emitters, e)
			}

			st, err := a.loadStore(ctx, args)
			if err != nil {
				return err
			}

			for _, e := range emitters {
				sources, err := e.Emit(st)
				if err != nil {
					return err
				}
				if err := sources.Write(outputDir); err != nil {
					return err
				}
				for _, name := range sources.Names() {
					fmt.Fprintf(a.stdout, "wrote %s\n", filepath.Join(outputDir, name))
				}
				a.logger.Info("generated sources", "target", e.Target(), "files", len(sources.Sources), "dir", outputDir)
			}
			return nil
		}),
	}
	cmd.Flags().StringSliceVarP(&targets, "target", "t", nil,
		"Target to generate, repeatable (default from configuration: graphql)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "",
		"Output directory for the generated sources (default from configuration: ./gen)")
	return cmd
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			fmt.Fprintf(a.stdout, "%s version %s (build %s)\n", appName, Version, BuildTime)
			return nil
		},
	}
}
