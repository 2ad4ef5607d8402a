package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"saynope/internal/catalog"
	"saynope/internal/validation"
)

type listOptions struct {
	category string
	query    string
}

func newListCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the reasons matching a search, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCatalog(cmd.Context(), rootFlags)
			if err != nil {
				return err
			}
			return runList(cmd, c, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.category, "category", "c", catalog.All, "Category to list")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "Case-insensitive search text")

	return cmd
}

func runList(cmd *cobra.Command, c *catalog.Catalog, opts *listOptions) error {
	if opts.category != catalog.All && !c.Has(opts.category) {
		return newCommandError("list", fmt.Sprintf("category %q", opts.category), errors.New("unknown category"),
			"Run `nope counts` to see the available categories.")
	}

	query := validation.NormalizeQuery(opts.query)
	if ok, msg := validation.ValidateQuery(query); !ok {
		return newCommandError("list", "the --query flag", errors.New(msg),
			fmt.Sprintf("Search with at most %d characters.", validation.MaxQueryLength))
	}

	for _, reason := range c.Filter(query, opts.category) {
		fmt.Fprintln(cmd.OutOrStdout(), reason)
	}
	return nil
}
