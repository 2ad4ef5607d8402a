package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"saynope/internal/theme"
	"saynope/internal/tui"
)

func newBrowseCmd(rootFlags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Search, filter and copy reasons in an interactive view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rootFlags)
			if err != nil {
				return err
			}
			c, err := openConfigured(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			opts := tui.Options{
				Title:   cfg.SiteTitle,
				Tagline: cfg.SiteTagline,
				Mode:    theme.Resolve("", lipgloss.HasDarkBackground()),
			}
			if store, err := theme.NewFileStore(); err != nil {
				log.Warn().Err(err).Msg("theme preference will not be saved")
			} else {
				opts.Store = store
				mode, err := theme.Current(store, lipgloss.HasDarkBackground())
				if err != nil {
					log.Warn().Err(err).Msg("failed to read theme preference")
				}
				opts.Mode = mode
			}

			return tui.Run(c, opts)
		},
	}
}
