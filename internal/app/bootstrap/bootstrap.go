package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	ratingservice "expoawards/contexts/exhibition/rating-service"
	ratingpostgres "expoawards/contexts/exhibition/rating-service/adapters/postgres"
	winnersengine "expoawards/contexts/exhibition/winners-engine"
	winnerspostgres "expoawards/contexts/exhibition/winners-engine/adapters/postgres"
	"expoawards/internal/platform/config"
	"expoawards/internal/platform/db"
	"expoawards/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	winnersRepo := winnerspostgres.NewRepository(pg.DB, logger)
	winnersModule := winnersengine.NewModule(winnersengine.Dependencies{
		Awards:     winnersRepo,
		Winners:    winnersRepo,
		Previews:   winnersRepo,
		Clock:      winnerspostgres.SystemClock{},
		IDGen:      winnerspostgres.UUIDGenerator{},
		PreviewTTL: cfg.PreviewTTL,
		Logger:     logger,
	})

	ratingRepo := ratingpostgres.NewRepository(pg.DB, logger)
	ratingModule := ratingservice.NewModule(ratingservice.Dependencies{
		Ratings:     ratingRepo,
		Projects:    ratingRepo,
		Exhibitions: ratingRepo,
		Roster:      ratingRepo,
		Clock:       ratingpostgres.SystemClock{},
		IDGen:       ratingpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	server := httpserver.New(winnersModule, ratingModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
