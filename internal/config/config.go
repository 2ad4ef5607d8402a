package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"

	"saynope/internal/validation"
)

// Catalog sources.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env      string // "development", "production", etc.
	LogLevel string

	// Server
	ServerAddr string
	BaseURL    string

	// Catalog
	CatalogSource string `validate:"oneof=embedded file postgres"`
	CatalogFile   string `validate:"required_if=CatalogSource file"`
	SeedCatalog   bool   // Import the embedded/file catalog into Postgres at startup

	// Database
	DatabaseURL string `validate:"required_if=CatalogSource postgres"`

	// Redis backs sessions and rate limiting when set
	RedisURL string

	// TLS
	TLSEnabled  bool
	TLSCertFile string `validate:"required_if=TLSEnabled true"`
	TLSKeyFile  string `validate:"required_if=TLSEnabled true"`
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// Session
	SessionSecret string `validate:"min=32"` // Used for encrypting cookies

	// CORS
	CORSOrigins string // Comma-separated allowed origins for the JSON API

	// Features
	MetricsEnabled bool
	RateLimitMax   int `validate:"gte=0"` // Requests per minute per IP, 0 disables

	// Site Branding
	SiteTitle      string // env: SITE_TITLE, default: "1000 Ways to Say No"
	SiteTagline    string // env: SITE_TAGLINE
	SiteFooter     string // env: SITE_FOOTER
	SiteAuthorName string // env: SITE_AUTHOR_NAME
	SiteAuthorURL  string `validate:"omitempty,url"` // env: SITE_AUTHOR_URL
	SiteSourceURL  string `validate:"omitempty,url"` // env: SITE_SOURCE_URL
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:            getEnv("ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		ServerAddr:     getEnv("SERVER_ADDR", ":3000"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:3000"),
		CatalogSource:  getEnv("CATALOG_SOURCE", SourceEmbedded),
		CatalogFile:    getEnv("CATALOG_FILE", ""),
		SeedCatalog:    getEnv("SEED_CATALOG", "") != "",
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		TLSEnabled:     getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:      getEnv("TLS_CA_FILE", ""),
		SessionSecret:  getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		CORSOrigins:    getEnv("CORS_ORIGINS", ""),
		MetricsEnabled: getEnv("METRICS_ENABLED", "") != "",
		RateLimitMax:   getEnvInt("RATE_LIMIT_MAX", 100),

		SiteTitle:      getEnv("SITE_TITLE", "1000 Ways to Say No"),
		SiteTagline:    getEnv("SITE_TAGLINE", "Find the perfect way to decline with style, humor, or honesty"),
		SiteFooter:     getEnv("SITE_FOOTER", "Made with care"),
		SiteAuthorName: getEnv("SITE_AUTHOR_NAME", ""),
		SiteAuthorURL:  getEnv("SITE_AUTHOR_URL", ""),
		SiteSourceURL:  getEnv("SITE_SOURCE_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// Validate checks field constraints such as a file path for the file source.
func (c *Config) Validate() error {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	if err := validateInst.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for name, value := range map[string]string{
		"SITE_AUTHOR_URL": c.SiteAuthorURL,
		"SITE_SOURCE_URL": c.SiteSourceURL,
	} {
		if value == "" {
			continue
		}
		if ok, msg := validation.ValidateURL(value); !ok {
			return fmt.Errorf("invalid configuration: %s: %s", name, msg)
		}
	}
	return nil
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsMTLSEnabled returns true if mTLS is configured with a CA file.
func (c *Config) IsMTLSEnabled() bool {
	return c.TLSEnabled && c.TLSCAFile != ""
}

// HasDatabase reports whether a Postgres connection is configured.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}
