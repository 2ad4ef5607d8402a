package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"saynope/internal/theme"
)

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "theme [toggle]",
		Short:     "Print or toggle the saved terminal theme",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := theme.NewFileStore()
			if err != nil {
				return newCommandError("theme", "locating the preferences file", err, "Ensure your HOME directory is set correctly.")
			}
			return runTheme(cmd, store, len(args) == 1, lipgloss.HasDarkBackground())
		},
	}
	return cmd
}

func runTheme(cmd *cobra.Command, store theme.Store, toggle, prefersDark bool) error {
	mode, err := theme.Current(store, prefersDark)
	if err != nil {
		return newCommandError("theme", "reading the saved theme", err, "Delete the preferences file to reset it.")
	}

	if toggle {
		mode, err = theme.ToggleAndSave(store, mode)
		if err != nil {
			return newCommandError("theme", "saving the theme", err, "Check permissions on your config directory.")
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), mode)
	return nil
}
