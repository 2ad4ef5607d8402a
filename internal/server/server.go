package server

import (
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/encryptcookie"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/gofiber/template/html/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"saynope/internal/config"
	"saynope/internal/handlers"
	"saynope/internal/theme"
	"saynope/web"
)

// Options carries the optional collaborators of the server.
type Options struct {
	// Storage backs sessions and rate limiting. Nil keeps both in memory.
	Storage fiber.Storage
	// AccessLog receives the request log. Nil uses os.Stdout.
	AccessLog io.Writer
}

// Server is the saynope web surface.
type Server struct {
	App *fiber.App
	Cfg *config.Config
}

// New builds the Fiber app with the view engine and the middleware stack.
func New(cfg *config.Config, opts Options) *Server {
	engine := html.NewFileSystem(http.FS(web.Views()), ".html")
	engine.Reload(cfg.IsDev())

	app := fiber.New(fiber.Config{
		Views:        engine,
		ViewsLayout:  "layouts/main",
		ErrorHandler: errorHandler(cfg),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	accessLog := opts.AccessLog
	if accessLog == nil {
		accessLog = os.Stdout
	}
	app.Use(logger.New(logger.Config{
		Stream: accessLog,
		Format: "[${time}] ${respHeader:X-Request-ID} ${ip} ${status} - ${latency} ${method} ${path} ${error}\n",
	}))

	// The JSON API is the only cross-origin surface.
	corsOrigins := cfg.BaseURL
	if cfg.CORSOrigins != "" {
		corsOrigins = cfg.CORSOrigins
	}
	app.Use("/api", cors.New(cors.Config{
		AllowOrigins: strings.Split(corsOrigins, ","),
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       86400,
	}))

	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: deriveEncryptionKey(cfg.SessionSecret),
	}))

	sessionMiddleware, _ := session.NewWithStore(session.Config{
		Storage:        opts.Storage,
		CookieSecure:   cfg.TLSEnabled || !cfg.IsDev(),
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		KeyGenerator:   uuid.NewString,
	})
	app.Use(sessionMiddleware)

	if cfg.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Storage:    opts.Storage,
			Max:        cfg.RateLimitMax,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"status": "error",
					"error":  "Rate limit exceeded. Please try again later.",
				})
			},
		}))
	}

	app.Get("/static/*", static.New("", static.Config{
		FS: web.Static(),
	}))

	return &Server{
		App: app,
		Cfg: cfg,
	}
}

// errorHandler renders the error view with the site branding.
func errorHandler(cfg *config.Config) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		} else {
			log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		}

		mode := theme.Resolve(c.Cookies(theme.Key), handlers.PrefersDark(c))
		return c.Status(code).Render("error", handlers.MergeBranding(fiber.Map{
			"Title":   "Error",
			"Message": message,
			"Theme":   mode.String(),
		}, cfg))
	}
}

// Start listens on ServerAddr, with TLS and client certificates when configured.
func (s *Server) Start() error {
	if s.Cfg.TLSEnabled {
		tlsConfig, err := buildTLSConfig(s.Cfg)
		if err != nil {
			return err
		}
		listenConfig := fiber.ListenConfig{
			CertFile:      s.Cfg.TLSCertFile,
			CertKeyFile:   s.Cfg.TLSKeyFile,
			TLSConfigFunc: func(tc *tls.Config) { *tc = *tlsConfig },
		}
		if s.Cfg.IsMTLSEnabled() {
			log.Info().Str("addr", s.Cfg.ServerAddr).Msg("starting server with mTLS")
		} else {
			log.Info().Str("addr", s.Cfg.ServerAddr).Msg("starting server with TLS")
		}
		return s.App.Listen(s.Cfg.ServerAddr, listenConfig)
	}
	log.Info().Str("addr", s.Cfg.ServerAddr).Msg("starting server")
	return s.App.Listen(s.Cfg.ServerAddr, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown stops accepting connections and drains in-flight requests.
func (s *Server) Shutdown() error {
	return s.App.Shutdown()
}

// deriveEncryptionKey turns SESSION_SECRET into the 32-byte key encryptcookie expects.
func deriveEncryptionKey(secret string) string {
	hash := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(hash[:])
}

// buildTLSConfig requires client certificates signed by TLSCAFile when one is set.
func buildTLSConfig(cfg *config.Config) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	if cfg.TLSCAFile != "" {
		caCert, err := os.ReadFile(cfg.TLSCAFile)
		if err != nil {
			return nil, fmt.Errorf("read CA file: %w", err)
		}

		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, errors.New("parse CA certificate: no certificates found")
		}

		tlsConfig.ClientCAs = caCertPool
		tlsConfig.ClientAuth = tls.RequireAndVerifyClientCert
	}

	return tlsConfig, nil
}
