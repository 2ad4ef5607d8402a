package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"saynope/internal/catalog"
	"saynope/internal/config"
	"saynope/internal/logging"
	"saynope/internal/source"
)

type rootFlags struct {
	catalogPath string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "nope",
		Short:         "Find the perfect way to say no",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := logging.Setup(logging.Options{
				Level:         flags.logLevel,
				HumanReadable: true,
				Writer:        cmd.ErrOrStderr(),
			})
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&flags.catalogPath, "catalog", "", "Read reasons from a JSON or YAML file instead of the configured source")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newListCmd(flags))
	cmd.AddCommand(newRandomCmd(flags))
	cmd.AddCommand(newCountsCmd(flags))
	cmd.AddCommand(newBrowseCmd(flags))
	cmd.AddCommand(newSeedCmd(flags))
	cmd.AddCommand(newThemeCmd())

	return cmd
}

// loadConfig reads the environment and applies the --catalog override.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg := config.Load()

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		return nil, newCommandError("load config", "reading CONFIG_FILE", err, "Check the YAML syntax of your config file.")
	}
	yamlCfg.Apply(cfg)

	if flags.catalogPath != "" {
		cfg.CatalogSource = config.SourceFile
		cfg.CatalogFile = flags.catalogPath
	}
	return cfg, nil
}

// openCatalog loads the catalog the server would serve. Read commands never
// migrate or seed the database.
func openCatalog(ctx context.Context, flags *rootFlags) (*catalog.Catalog, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	return openConfigured(ctx, cfg)
}

func openConfigured(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	c, err := source.OpenCatalog(ctx, cfg)
	if err != nil {
		return nil, newCommandError("load reasons", fmt.Sprintf("opening the %s catalog", cfg.CatalogSource), err,
			"Check --catalog, CATALOG_SOURCE and DATABASE_URL.")
	}
	return c, nil
}

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error {
	return e.cause
}
