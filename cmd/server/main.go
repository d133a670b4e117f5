package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/oggyb/muzz-match/internal/app"
	"github.com/oggyb/muzz-match/internal/cache"
	"github.com/oggyb/muzz-match/internal/config"
	"github.com/oggyb/muzz-match/internal/db"
	"github.com/oggyb/muzz-match/internal/events"
	"github.com/oggyb/muzz-match/internal/logger"
	"github.com/oggyb/muzz-match/internal/server"
	"github.com/oggyb/muzz-match/internal/service/match"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L() // slog.Logger pointer

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		os.Exit(1)
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(ctx); err != nil {
		log.Error("failed to connect to redis", "err", err)
		os.Exit(1)
	}
	defer redisCache.Close()

	// Init match event publisher
	var publisher events.Publisher = events.Noop{}
	if cfg.NATS.URL != "" {
		p, err := events.Connect(cfg.NATS.URL, cfg.NATS.Subject, log)
		if err != nil {
			log.Error("failed to connect to nats", "err", err)
			os.Exit(1)
		}
		publisher = p
	} else {
		log.Warn("NATS_URL not set, match events are dropped")
	}
	defer publisher.Close()

	// Inject dependencies into app context
	appCtx := app.New(cfg, database, redisCache, publisher, log)

	registrars := []server.Registrar{
		match.NewRegistrar(appCtx),
	}

	if cfg.App.ENV == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	sqlDB, err := database.DB()
	if err != nil {
		log.Error("failed to get sql db", "err", err)
		os.Exit(1)
	}
	ops := server.NewHTTPHandler(log,
		server.ReadinessCheck{Name: "db", Check: sqlDB.PingContext},
		server.ReadinessCheck{Name: "redis", Check: redisCache.Ping},
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.StartGRPCServer(gctx, cfg, log, registrars...)
	})
	g.Go(func() error {
		return server.StartHTTPServer(gctx, cfg.HTTP.Addr, ops, log)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
