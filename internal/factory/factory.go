package factory

import (
	"errors"
	"io"
	"log/slog"

	"gameledger/internal/dependencies/clock"
	"gameledger/internal/events"
	"gameledger/internal/model"
	"gameledger/internal/services/access"
	"gameledger/internal/services/leaderboard"
	"gameledger/internal/services/ledger"
	"gameledger/internal/services/metering"
	"gameledger/internal/storage"
	"gameledger/internal/storage/memory"
	redisstorage "gameledger/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock   clock.Clock
	Meter   metering.Meter
	Emitter events.Emitter

	// Services
	AccessService      *access.Service
	MeteringService    *metering.Service
	LeaderboardService *leaderboard.Service
	LedgerController   *ledger.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Owner is the immutable owner account (required)
	Owner model.AccountID
	// PricePerByte is the default storage price until the owner sets one
	PricePerByte uint64
	// Leaderboard holds the cache staleness thresholds (optional)
	// If zero value, defaults to leaderboard.DefaultConfig()
	Leaderboard leaderboard.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// MeterDisabled swaps in the zero-footprint meter for hosts that do
	// not charge for storage
	MeterDisabled bool
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	if cfg.Owner == "" {
		return nil, errors.New("Owner is required")
	}

	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	var meter metering.Meter = metering.NewStorageMeter(store)
	if cfg.MeterDisabled {
		meter = &metering.NullMeter{}
	}

	lbCfg := cfg.Leaderboard
	if lbCfg.ReadStaleness == 0 || lbCfg.WriteStaleness == 0 {
		lbCfg = leaderboard.DefaultConfig()
	}

	return newWithDependencies(store, clock.New(), meter, events.NewLogEmitter(logger), cfg.Owner, cfg.PricePerByte, lbCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	meter metering.Meter,
	emitter events.Emitter,
	owner model.AccountID,
	pricePerByte uint64,
	lbCfg leaderboard.Config,
	logger *slog.Logger,
) *App {
	accessService := access.New(store, owner, logger)
	meteringService := metering.New(store, accessService, pricePerByte, logger)
	leaderboardService := leaderboard.New(store, accessService, clk, lbCfg, logger)
	ledgerController := ledger.NewController(store, accessService, meteringService, meter, leaderboardService, emitter, clk, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		Meter:              meter,
		Emitter:            emitter,
		AccessService:      accessService,
		MeteringService:    meteringService,
		LeaderboardService: leaderboardService,
		LedgerController:   ledgerController,
	}
}
