package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"field-updater/internal/config"
	"field-updater/internal/ui"
)

// ask is replaced in tests.
var ask ui.Asker = ui.Ask

func (a *app) newInitCmd() *cobra.Command {
	var force, interactive bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.FileName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configPath
			if path == "" {
				path = config.FileName
			}

			exists, err := afero.Exists(a.fs, path)
			if err != nil {
				return err
			}

			if exists && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}

			cfg := config.Default()
			if interactive {
				if err := askConfig(&cfg); err != nil {
					return err
				}
			}

			if err := config.WriteFile(a.fs, &cfg, path); err != nil {
				return err
			}

			ui.Success(cmd.OutOrStdout(), "wrote %s", path)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "ask for the main settings")

	return cmd
}

// askConfig fills the most commonly changed settings of cfg from prompts.
func askConfig(cfg *config.Config) error {
	questions := []struct {
		message string
		help    string
		target  *string
	}{
		{"Skip marker tag key", "fields tagged key:\"skip\" are left out", &cfg.Marker.Group},
		{"Column type", "template, e.g. {{.Type}}Column", &cfg.Collaborators.ColumnType},
		{"Column variant", "template, {{.Field}} is the field's upper camel name", &cfg.Collaborators.ColumnVariant},
		{"Active model type", "template, e.g. {{.Type}}Active", &cfg.Collaborators.ActiveModelType},
		{"Output file suffix", "appended to the snake case record name", &cfg.Output.Suffix},
	}

	for _, q := range questions {
		answer, err := ask(q.message, q.help, *q.target)
		if err != nil {
			return err
		}

		*q.target = answer
	}

	return cfg.Validate()
}
