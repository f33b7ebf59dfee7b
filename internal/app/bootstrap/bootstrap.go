package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	contestengine "memearena/contexts/meme-arena/contest-engine"
	contestpostgres "memearena/contexts/meme-arena/contest-engine/adapters/postgres"
	memefeed "memearena/contexts/meme-arena/meme-feed"
	"memearena/contexts/meme-arena/meme-feed/adapters/blob"
	feedpostgres "memearena/contexts/meme-arena/meme-feed/adapters/postgres"
	"memearena/internal/platform/config"
	"memearena/internal/platform/db"
	"memearena/internal/platform/httpserver"
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

	contestRepo := contestpostgres.NewRepository(pg.DB, logger)
	contestModule := contestengine.NewModule(contestengine.Dependencies{
		Contests: contestRepo,
		Entries:  contestRepo,
		Votes:    contestRepo,
		Winners:  contestRepo,
		Memes:    contestRepo,
		Clock:    contestpostgres.SystemClock{},
		IDGen:    contestpostgres.UUIDGenerator{},
		Logger:   logger,
	})

	blobs, err := blob.NewDiskStore(cfg.MediaDir, cfg.PublicBaseURL)
	if err != nil {
		return nil, err
	}
	feedRepo := feedpostgres.NewRepository(pg.DB, logger)
	feedModule := memefeed.NewModule(memefeed.Dependencies{
		Memes:     feedRepo,
		Blobs:     blobs,
		Clock:     feedpostgres.SystemClock{},
		IDGen:     feedpostgres.UUIDGenerator{},
		FeedLimit: cfg.FeedLimit,
		Logger:    logger,
	})

	server := httpserver.New(contestModule, feedModule, logger, normalizeAddr(cfg.HTTPPort), httpserver.Options{
		AdminToken: cfg.AdminToken,
		MediaDir:   cfg.MediaDir,
	})
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
