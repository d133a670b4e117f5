package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/oggyb/muzz-match/internal/cache"
	"github.com/oggyb/muzz-match/internal/config"
	"github.com/oggyb/muzz-match/internal/events"
)

// AppContext holds shared dependencies (Config, DB, Redis, Publisher, Logger)
type AppContext struct {
	Config     *config.Config
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Publisher  events.Publisher
	Logger     *slog.Logger
}

// New creates a new AppContext.
// A nil publisher drops match events; a nil Redis disables vote rate limiting.
func New(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache, pub events.Publisher, logger *slog.Logger) *AppContext {
	if cfg == nil {
		cfg = config.New()
	}
	if pub == nil {
		pub = events.Noop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AppContext{
		Config:     cfg,
		DB:         db,
		RedisCache: rdb,
		Publisher:  pub,
		Logger:     logger,
	}
}
