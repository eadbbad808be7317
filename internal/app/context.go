package app

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/oggyb/osmatch/internal/cache"
	"github.com/oggyb/osmatch/internal/clock"
	"github.com/oggyb/osmatch/internal/config"
	"github.com/oggyb/osmatch/internal/engine"
	"github.com/oggyb/osmatch/internal/repository"
	"github.com/oggyb/osmatch/internal/store"
)

// AppContext holds shared dependencies (config, DB, Redis, logger) and the
// matching engine wired over them.
type AppContext struct {
	Config     *config.Config
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Logger     *slog.Logger

	Profiles  store.ProfileStore
	Interests store.InterestLedger
	Engine    *engine.Engine
}

// New creates a new AppContext. The Interest Ledger adapter is picked by
// cfg.Store.Ledger; rdb may be nil unless the Redis ledger is selected.
func New(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache, logger *slog.Logger) (*AppContext, error) {
	clk := clock.NewSystem()

	var ledger store.InterestLedger
	switch cfg.Store.Ledger {
	case config.LedgerSQL, "":
		ledger = repository.NewInterestRepository(db)
	case config.LedgerRedis:
		if rdb == nil {
			return nil, fmt.Errorf("ledger backend %q needs a redis client", cfg.Store.Ledger)
		}
		ledger = cache.NewInterestLedger(rdb, clk)
	default:
		return nil, fmt.Errorf("unknown ledger backend %q", cfg.Store.Ledger)
	}

	profiles := repository.NewProfileRepository(db)

	return &AppContext{
		Config:     cfg,
		DB:         db,
		RedisCache: rdb,
		Logger:     logger,
		Profiles:   profiles,
		Interests:  ledger,
		Engine: engine.New(profiles, ledger, logger, engine.Options{
			CandidateLimit:      cfg.Match.CandidateLimit,
			ProfileFetchTimeout: cfg.Match.ProfileFetchTimeout,
			HydrateWait:         cfg.Match.HydrateWait,
			Clock:               clk,
		}),
	}, nil
}
