// Package app wires configuration, storage, cache and the merge engine into
// one initialized application core shared by every entry point.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pmoiseev/moneta/internal/cache"
	"github.com/pmoiseev/moneta/internal/common"
	"github.com/pmoiseev/moneta/internal/interfaces"
	"github.com/pmoiseev/moneta/internal/ledger"
	"github.com/pmoiseev/moneta/internal/storage"
)

// App holds the initialized application core.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Storage     interfaces.StorageManager
	Cache       *cache.DataCache
	Ledger      *ledger.Ledger
	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp loads configuration, opens storage and warms the cache from the
// durable ledger. configPath may be empty, in which case MONETA_CONFIG and
// the binary directory are consulted.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("MONETA_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "moneta.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/moneta.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Ledger.Path != "" && !filepath.IsAbs(config.Storage.Ledger.Path) {
		config.Storage.Ledger.Path = filepath.Join(binDir, config.Storage.Ledger.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	dataCache := cache.New()
	if err := dataCache.Reload(context.Background(), storageManager.Ledger()); err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to warm cache: %w", err)
	}

	a := &App{
		Config:      config,
		Logger:      logger,
		Storage:     storageManager,
		Cache:       dataCache,
		Ledger:      ledger.New(logger, storageManager.Ledger(), dataCache),
		StartupTime: time.Now(),
	}

	logger.Info().
		Str("environment", config.Environment).
		Int("records", dataCache.Snapshot().RecordCount()).
		Dur("startup", time.Since(startupStart)).
		Msg("Application initialized")

	return a, nil
}

// Close releases storage resources.
func (a *App) Close() {
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("Storage close failed")
		}
	}
}
