package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/eruditgame/erudit-server/internal/api/sse"
	"github.com/eruditgame/erudit-server/internal/dependencies/clock"
	"github.com/eruditgame/erudit-server/internal/dependencies/random"
	"github.com/eruditgame/erudit-server/internal/services/auth"
	"github.com/eruditgame/erudit-server/internal/services/dictionary"
	"github.com/eruditgame/erudit-server/internal/services/economy"
	"github.com/eruditgame/erudit-server/internal/services/game"
	"github.com/eruditgame/erudit-server/internal/services/scoring"
	"github.com/eruditgame/erudit-server/internal/storage"
	filestorage "github.com/eruditgame/erudit-server/internal/storage/file"
	"github.com/eruditgame/erudit-server/internal/storage/memory"
	redisstorage "github.com/eruditgame/erudit-server/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeFile   = "file"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DictionaryService *dictionary.Service
	ScoringService    *scoring.Service
	EconomyService    *economy.Service
	GameController    *game.Controller
	AuthService       *auth.Service
	HubManager        *sse.HubManager
	Broadcaster       *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// DictionaryPath is the path to the dictionary file (optional)
	// If empty, dictionary must be loaded manually
	DictionaryPath string
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "file")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// FileDir is the data directory (required if StorageType is "file")
	FileDir string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
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
	case StorageTypeFile:
		if cfg.FileDir == "" {
			return nil, errors.New("FileDir required when StorageType is file")
		}
		fileStore, err := filestorage.New(cfg.FileDir)
		if err != nil {
			return nil, err
		}
		store = fileStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'file'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	app := newWithDependencies(store, clk, rnd, authCfg, logger)

	// Load the word list when a path is configured. The app still runs
	// without one; the API then skips word checks
	if cfg.DictionaryPath != "" {
		if err := app.DictionaryService.LoadFromFile(context.Background(), cfg.DictionaryPath); err != nil {
			logger.Warn("could not load dictionary, word checks disabled",
				slog.String("path", cfg.DictionaryPath),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Info("dictionary loaded",
				slog.String("path", cfg.DictionaryPath),
				slog.Int("words", app.DictionaryService.WordCount()),
			)
		}
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	// Create services
	dictService := dictionary.New(store)
	scoringService := scoring.New()
	economyService := economy.New(rnd, logger)
	gameController := game.NewController(store, scoringService, economyService, clk, rnd, logger)
	authService := auth.New(store, clk, authCfg)
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)

	// Engine events flow out through the SSE broadcaster
	gameController.SetPublisher(broadcaster)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		DictionaryService: dictService,
		ScoringService:    scoringService,
		EconomyService:    economyService,
		GameController:    gameController,
		AuthService:       authService,
		HubManager:        hubManager,
		Broadcaster:       broadcaster,
	}
}
