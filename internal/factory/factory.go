package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/squadup/squadup/internal/dependencies/clock"
	"github.com/squadup/squadup/internal/dependencies/ident"
	"github.com/squadup/squadup/internal/services/auth"
	"github.com/squadup/squadup/internal/services/catalog"
	"github.com/squadup/squadup/internal/services/lfg"
	"github.com/squadup/squadup/internal/services/matchledger"
	"github.com/squadup/squadup/internal/services/matchmaking"
	"github.com/squadup/squadup/internal/services/message"
	"github.com/squadup/squadup/internal/services/profile"
	"github.com/squadup/squadup/internal/storage"
	"github.com/squadup/squadup/internal/storage/memory"
	redisstorage "github.com/squadup/squadup/internal/storage/redis"
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
	Clock clock.Clock
	IDs   ident.Generator

	// Services
	AuthService        *auth.Service
	ProfileService     *profile.Service
	CatalogService     *catalog.Service
	MatchmakingService *matchmaking.Service
	LedgerService      *matchledger.Service
	LFGService         *lfg.Service
	MessageService     *message.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

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

	clk := clock.New()
	ids := ident.New()

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, ids, authCfg), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, ids ident.Generator, authCfg auth.Config) *App {
	authService := auth.New(store, clk, ids, authCfg)
	profileService := profile.New(store, clk)
	catalogService := catalog.New(store, ids)
	matchmakingService := matchmaking.New(store)
	ledgerService := matchledger.New(store, clk, ids)
	lfgService := lfg.New(store, clk, ids)
	messageService := message.New(store, clk, ids)

	return &App{
		Storage:            store,
		Clock:              clk,
		IDs:                ids,
		AuthService:        authService,
		ProfileService:     profileService,
		CatalogService:     catalogService,
		MatchmakingService: matchmakingService,
		LedgerService:      ledgerService,
		LFGService:         lfgService,
		MessageService:     messageService,
	}
}
