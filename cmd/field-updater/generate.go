package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"field-updater/internal/analyze"
	"field-updater/internal/config"
	"field-updater/internal/debug"
	"field-updater/internal/gen"
	"field-updater/internal/ui"
	"field-updater/internal/watch"
)

type generateOptions struct {
	types  []string
	watch  bool
	dryRun bool
}

func (a *app) newGenerateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate [packages...]",
		Short: "Generate update helpers",
		Long: `Generate update helpers for the records of the given packages (default ".").

Without --type, every struct whose doc comment carries the
` + analyze.DeriveDirective + ` directive is generated. Generation is all or
nothing: if any record cannot be generated, no file is written.`,
		Example: `  field-updater generate
  field-updater generate ./models/... --type Account --type Order
  field-updater generate --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			if opts.watch {
				return a.runWatch(cmd, cfg, args, opts)
			}

			return a.runGenerate(cmd, cfg, args, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.types, "type", "t", nil, "record type names to generate (repeatable)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "regenerate when sources change")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print generated code instead of writing files")

	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, cfg *config.Config, patterns []string, opts generateOptions) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	_, records, err := loadRecords(patterns, opts.types)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		ui.Warning(errOut, "%s", noRecordsHint())
		return nil
	}

	genCfg := gen.ConfigFrom(*cfg)
	genCfg.Fs = a.fs

	g := gen.NewGenerator(genCfg)

	files, err := g.GenerateAll(contextOf(cmd), records)
	ui.Diagnostics(errOut, g.Diagnostics(), debug.Enabled())

	if err != nil {
		return err
	}

	if opts.dryRun {
		for _, f := range files {
			fmt.Fprintf(out, "// %s\n%s\n", f.Path(), f.Content)
		}

		return nil
	}

	results, err := gen.WriteFiles(a.fs, files)
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Changed {
			ui.Success(out, "wrote %s", displayPath(r.Path))
		} else {
			ui.Muted(out, "unchanged %s", displayPath(r.Path))
		}
	}

	return nil
}

func (a *app) runWatch(cmd *cobra.Command, cfg *config.Config, patterns []string, opts generateOptions) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	graph, _, err := loadRecords(patterns, opts.types)
	if err != nil {
		return err
	}

	w, err := watch.NewWatcher(packageDirs(graph), cfg.Output.Suffix, func() error {
		return a.runGenerate(cmd, cfg, patterns, opts)
	})
	if err != nil {
		return err
	}

	w.OnError = func(err error) {
		ui.Error(errOut, "%v", err)
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, dir := range w.Dirs() {
		debug.Debug("watching", "dir", dir)
	}

	ui.Info(out, "watching %d package(s), press Ctrl+C to stop", len(w.Dirs()))

	return w.Run(ctx)
}

func packageDirs(graph *analyze.TypeGraph) []string {
	seen := make(map[string]bool)

	var dirs []string

	for _, pkg := range graph.Packages {
		if pkg.Dir != "" && !seen[pkg.Dir] {
			seen[pkg.Dir] = true
			dirs = append(dirs, pkg.Dir)
		}
	}

	sort.Strings(dirs)

	return dirs
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

// displayPath shortens path relative to the working directory when possible.
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}

	if rel, err := filepath.Rel(wd, path); err == nil && !filepath.IsAbs(rel) && len(rel) < len(path) {
		return rel
	}

	return path
}
