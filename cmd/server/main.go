package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/oggyb/osmatch/internal/app"
	"github.com/oggyb/osmatch/internal/cache"
	"github.com/oggyb/osmatch/internal/config"
	"github.com/oggyb/osmatch/internal/db"
	"github.com/oggyb/osmatch/internal/logger"
	"github.com/oggyb/osmatch/internal/server"
	"github.com/oggyb/osmatch/internal/service/match"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return err
	}

	// Redis is only needed by the redis-backed Interest Ledger
	var redisCache *cache.RedisCache
	if cfg.Store.Ledger == config.LedgerRedis {
		redisCache = cache.NewRedisCache(cfg)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			log.Error("failed to connect to redis", "err", err)
			return err
		}
	}

	appCtx, err := app.New(cfg, database, redisCache, log)
	if err != nil {
		log.Error("failed to build app context", "err", err)
		return err
	}

	if cfg.App.ENV == "development" {
		stats, err := db.SeedTestData(ctx, database, appCtx.Interests, db.SeedOptions{Reset: true})
		if err != nil {
			log.Error("failed to seed", "err", err)
		} else {
			log.Info("seeded demo data", "profiles", stats.Profiles, "likes", stats.Interests)
		}
	}

	registrars := []server.Registrar{
		match.NewRegistrar(appCtx),
	}

	log.Info("starting gRPC server",
		"addr", cfg.GRPC.Host+":"+cfg.GRPC.Port,
		"ledger", cfg.Store.Ledger,
		"db_driver", cfg.DB.Driver,
	)

	if err := server.StartGRPCServer(ctx, cfg, registrars...); err != nil {
		log.Error("gRPC server stopped", "err", err)
		return err
	}
	log.Info("gRPC server stopped")
	return nil
}
