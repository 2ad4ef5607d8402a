package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/storage/redis/v3"
	"github.com/rs/zerolog/log"

	"saynope/internal/config"
	"saynope/internal/logging"
	"saynope/internal/metrics"
	"saynope/internal/server"
	"saynope/internal/source"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	accessLog, err := logging.Setup(logging.Options{
		Level:         cfg.LogLevel,
		HumanReadable: cfg.IsDev(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure logging")
	}

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config file")
	}
	yamlCfg.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	opened, err := source.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open catalog")
	}
	defer opened.Close()

	var storage fiber.Storage
	if cfg.RedisURL != "" {
		store := redis.New(redis.Config{URL: cfg.RedisURL})
		defer store.Close()
		storage = store
		log.Info().Msg("sessions and rate limits stored in redis")
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		if opened.DB != nil {
			m = metrics.New(opened.Catalog, opened.DB)
		} else {
			m = metrics.New(opened.Catalog, nil)
		}
	}

	srv := server.New(cfg, server.Options{
		Storage:   storage,
		AccessLog: accessLog,
	})
	srv.RegisterRoutes(server.Deps{
		Catalog: opened.Catalog,
		DB:      opened.DB,
		Metrics: m,
	})

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Error().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := srv.Shutdown(); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	m.Flush()
	log.Info().Msg("server exited")
}
