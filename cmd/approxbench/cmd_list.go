package main

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-approxbench/report"
)

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List families, references and variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return report.WriteCatalog(cmd.OutOrStdout(), a.catalog)
		},
	}
}
