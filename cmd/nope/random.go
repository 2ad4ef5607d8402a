package main

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"saynope/internal/catalog"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

type randomOptions struct {
	category string
	copy     bool
	rng      catalog.Rand
}

func newRandomCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &randomOptions{}

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print one random reason",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCatalog(cmd.Context(), rootFlags)
			if err != nil {
				return err
			}
			return runRandom(cmd, c, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.category, "category", "c", catalog.All, "Category to pick from")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Also copy the reason to the clipboard")

	return cmd
}

func runRandom(cmd *cobra.Command, c *catalog.Catalog, opts *randomOptions) error {
	reason, ok := c.PickRandom(opts.category, opts.rng)
	if !ok {
		return newCommandError("pick a reason", fmt.Sprintf("category %q", opts.category), errors.New("no reasons available"),
			"Run `nope counts` to see the available categories.")
	}

	fmt.Fprintln(cmd.OutOrStdout(), reason)

	if opts.copy {
		if err := clipboardWriteAll(reason); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Failed to copy to clipboard:", err)
			return nil
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard!")
	}
	return nil
}
