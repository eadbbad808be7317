package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oggyb/osmatch/internal/app"
	"github.com/oggyb/osmatch/internal/cache"
	"github.com/oggyb/osmatch/internal/config"
	"github.com/oggyb/osmatch/internal/db"
	"github.com/oggyb/osmatch/internal/logger"
)

var (
	minimal   bool
	perGender int
	osList    []string
	reset     bool
	randSeed  int64
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed demo profiles and likes",
	Long: `Populate the database configured through the usual env vars
(DB_DRIVER, MYSQL_DSN / SQLITE_DSN, ...) with demo data. Likes are written
to the ledger selected by LEDGER_BACKEND, so a redis ledger needs REDIS_ADDR.

By default a random dataset is generated: --per-os profiles of each gender
for every OS in --os, and a like graph in which every third like is
reciprocated. --minimal instead writes the small fixed dataset used by
the service tests.`,
	SilenceUsage: true,
	RunE:         runSeed,
}

func init() {
	rootCmd.Flags().BoolVar(&minimal, "minimal", false, "write the fixed minimal dataset (always resets)")
	rootCmd.Flags().IntVar(&perGender, "per-os", 5, "profiles per gender per OS")
	rootCmd.Flags().StringSliceVar(&osList, "os", nil, "operating systems to populate (default: first four known)")
	rootCmd.Flags().BoolVar(&reset, "reset", false, "clear profiles and interests first")
	rootCmd.Flags().Int64Var(&randSeed, "seed", 0, "random seed for a reproducible like graph (0 = time based)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg := config.New()
	logger.InitFromConfig(cfg)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	database, err := db.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}

	var redisCache *cache.RedisCache
	if cfg.Store.Ledger == config.LedgerRedis {
		redisCache = cache.NewRedisCache(cfg)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
	}

	appCtx, err := app.New(cfg, database, redisCache, logger.L())
	if err != nil {
		return fmt.Errorf("failed to build app context: %w", err)
	}

	if minimal {
		if err := db.SeedMinimalTestData(ctx, database, appCtx.Interests); err != nil {
			return fmt.Errorf("failed to seed: %w", err)
		}
		logger.Info("minimal seeding completed", "ledger", cfg.Store.Ledger)
		return nil
	}

	stats, err := db.SeedTestData(ctx, database, appCtx.Interests, db.SeedOptions{
		OperatingSystems: osList,
		PerGender:        perGender,
		Reset:            reset,
		RandSeed:         randSeed,
	})
	if err != nil {
		return fmt.Errorf("failed to seed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d profiles and %d likes\n", stats.Profiles, stats.Interests)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
