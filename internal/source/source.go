// Package source resolves the configured catalog source and the optional
// database backing it.
package source

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"saynope/data"
	"saynope/internal/catalog"
	"saynope/internal/config"
	"saynope/internal/db"
)

// Result is an opened catalog and, when configured, its database.
type Result struct {
	Catalog *catalog.Catalog
	DB      *db.DB
}

// Close releases the database connection, if any.
func (r *Result) Close() {
	if r != nil && r.DB != nil {
		r.DB.Close()
	}
}

// Open connects to the database when one is configured, runs migrations,
// optionally seeds it, and loads the catalog from the configured source.
func Open(ctx context.Context, cfg *config.Config) (*Result, error) {
	res := &Result{}

	if cfg.HasDatabase() {
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		res.DB = database

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			res.Close()
			return nil, err
		}
		log.Info().Msg("migrations completed successfully")

		if cfg.SeedCatalog {
			doc, err := SeedDocument(cfg)
			if err != nil {
				res.Close()
				return nil, err
			}
			if err := database.SeedCatalog(ctx, doc); err != nil {
				res.Close()
				return nil, fmt.Errorf("seed catalog: %w", err)
			}
			log.Info().Int("reasons", doc.TotalReasons).Msg("catalog seeded")
		}
	}

	c, err := load(ctx, cfg, res.DB)
	if err != nil {
		res.Close()
		return nil, err
	}
	res.Catalog = c

	log.Info().
		Str("source", cfg.CatalogSource).
		Int("categories", len(c.Categories())).
		Int("reasons", c.Total()).
		Msg("catalog loaded")

	return res, nil
}

// OpenCatalog loads the configured catalog without side effects. The
// database is used only for the postgres source, and it is neither migrated
// nor seeded.
func OpenCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	var database *db.DB
	if cfg.CatalogSource == config.SourcePostgres && cfg.HasDatabase() {
		d, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		database = d
	}
	return load(ctx, cfg, database)
}

func load(ctx context.Context, cfg *config.Config, database *db.DB) (*catalog.Catalog, error) {
	switch cfg.CatalogSource {
	case config.SourceEmbedded, "":
		return catalog.Embedded()
	case config.SourceFile:
		return catalog.LoadFile(cfg.CatalogFile)
	case config.SourcePostgres:
		if database == nil {
			return nil, fmt.Errorf("catalog source %q requires DATABASE_URL", cfg.CatalogSource)
		}
		doc, err := database.LoadCatalog(ctx)
		if err != nil {
			return nil, fmt.Errorf("load catalog from database: %w", err)
		}
		return catalog.FromDocument(doc)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
	}
}

// SeedDocument returns the document to import into the database: the
// configured file when set, otherwise the embedded catalog.
func SeedDocument(cfg *config.Config) (*catalog.Document, error) {
	if cfg.CatalogFile != "" {
		return catalog.ReadDocument(cfg.CatalogFile)
	}

	doc, err := catalog.Decode(data.Reasons, catalog.FormatJSON)
	if err != nil {
		return nil, err
	}
	if err := catalog.Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
