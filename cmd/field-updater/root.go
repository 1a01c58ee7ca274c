package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"field-updater/internal/analyze"
	"field-updater/internal/config"
	"field-updater/internal/debug"
	"field-updater/internal/version"
)

// app holds the state shared by all commands of one invocation.
type app struct {
	fs afero.Fs
	v  *viper.Viper

	configPath string
	debug      bool
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs, v: viper.New()}

	root := &cobra.Command{
		Use:   "field-updater",
		Short: "Generate record update helpers for Go structs",
		Long: `field-updater reads Go struct declarations and generates, per struct T:

  TField           a sealed interface with one variant per eligible field
  T.Str2Col        snake case field name to column
  T.Field2CV       tagged field value to column and value expression
  T.Fields2Active  tagged field values folded into an active model

A field is skipped with the struct tag struct_field:"skip".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			debug.Init(a.debug, cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: search for "+config.FileName+")")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging to stderr")
	config.AddFlags(a.v, flags)

	root.AddCommand(
		a.newGenerateCmd(),
		a.newInspectCmd(),
		a.newInitCmd(),
		newVersionCmd(),
	)

	return root
}

func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.v, a.fs, a.configPath)
	if err != nil {
		return nil, err
	}

	if err := version.Satisfies(cfg.RequiredVersion); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadRecords loads patterns and returns the requested records: the named
// types, or every type carrying the derive directive when none are named.
func loadRecords(patterns, types []string) (*analyze.TypeGraph, []*analyze.Record, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	graph, err := analyze.NewAnalyzer().LoadPackages(patterns...)
	if err != nil {
		return nil, nil, err
	}

	if len(types) == 0 {
		return graph, graph.Derived(), nil
	}

	var records []*analyze.Record

	seen := make(map[analyze.TypeID]bool)

	for _, name := range types {
		found, err := graph.Find(name)
		if err != nil {
			return nil, nil, err
		}

		for _, rec := range found {
			if !seen[rec.ID] {
				seen[rec.ID] = true
				records = append(records, rec)
			}
		}
	}

	return graph, records, nil
}

func noRecordsHint() string {
	return fmt.Sprintf("no records found: mark a struct with %s or pass --type", analyze.DeriveDirective)
}
