package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ahrav/go-adgrader/internal/domain"
)

func newCriteriaCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "criteria",
		Short: "List the graded categories and their criteria",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd.Context(), a.v.GetString("config"))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, def := range cfg.ResolveCategories(domain.DefaultCategories()) {
				fmt.Fprintf(w, "%-40s %-44s %4.0f%%\n", def.Name, def.Key, def.Weight)
				for _, c := range def.Criteria {
					fmt.Fprintf(w, "  %-38s %-44s %4.0f%%\n", c.Name, c.Key, c.Weight)
				}
			}
			return nil
		},
	}
}
