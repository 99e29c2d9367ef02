package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ahrav/go-adgrader/internal/application"
	"github.com/ahrav/go-adgrader/internal/domain"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate grading configuration",
	}
	cmd.AddCommand(newConfigDefaultsCommand())
	cmd.AddCommand(newConfigValidateCommand(a))
	return cmd
}

func newConfigDefaultsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the default grading configuration as YAML",
		Long: `Print the built-in grading configuration. The output is a complete,
valid configuration file; copy it and keep only the fields you want to change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := application.MarshalConfig(domain.DefaultConfig())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config.yaml>",
		Short: "Validate a grading configuration file",
		Long: `Validate loads the configuration, overlays it on the defaults and checks
it exactly as the grader does before grading.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			registry, err := application.NewDefaultEvaluatorRegistry()
			if err != nil {
				return err
			}
			if _, err := application.NewAccountGrader(cfg, registry, application.WithLogger(a.logger)); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: configuration OK\n", args[0])
			return nil
		},
	}
}
