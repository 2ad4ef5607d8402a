package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"saynope/internal/catalog"
)

func newCountsCmd(rootFlags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "counts",
		Short: "Print the number of reasons per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCatalog(cmd.Context(), rootFlags)
			if err != nil {
				return err
			}
			return runCounts(cmd, c)
		},
	}
}

func runCounts(cmd *cobra.Command, c *catalog.Catalog) error {
	counts := c.Counts()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s (%d)\n", catalog.All, counts.Total)
	for _, name := range counts.Order {
		fmt.Fprintf(out, "%s (%d)\n", name, counts.PerCategory[name])
	}
	return nil
}
