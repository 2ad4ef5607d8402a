package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// Branding text is easier to manage in YAML than in env vars.
type YAMLConfig struct {
	Site    SiteConfig    `yaml:"site"`
	Catalog CatalogConfig `yaml:"catalog"`
}

// SiteConfig overrides branding values.
type SiteConfig struct {
	Title      string `yaml:"title"`
	Tagline    string `yaml:"tagline"`
	Footer     string `yaml:"footer"`
	AuthorName string `yaml:"author_name"`
	AuthorURL  string `yaml:"author_url"`
	SourceURL  string `yaml:"source_url"`
}

// CatalogConfig overrides where the catalog is read from.
type CatalogConfig struct {
	Source string `yaml:"source"` // embedded, file or postgres
	File   string `yaml:"file"`
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("CONFIG_FILE", "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Apply copies every non-empty YAML value over the env configuration.
func (y *YAMLConfig) Apply(cfg *Config) {
	if y == nil {
		return
	}
	override(&cfg.SiteTitle, y.Site.Title)
	override(&cfg.SiteTagline, y.Site.Tagline)
	override(&cfg.SiteFooter, y.Site.Footer)
	override(&cfg.SiteAuthorName, y.Site.AuthorName)
	override(&cfg.SiteAuthorURL, y.Site.AuthorURL)
	override(&cfg.SiteSourceURL, y.Site.SourceURL)
	override(&cfg.CatalogSource, y.Catalog.Source)
	override(&cfg.CatalogFile, y.Catalog.File)
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
