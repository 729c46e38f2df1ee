// Package app wires configuration, storage, clients, and services into one
// shared core used by cmd/financepro-server.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"financepro/internal/clients/finnhub"
	"financepro/internal/common"
	"financepro/internal/interfaces"
	"financepro/internal/services/analytics"
	ledgersvc "financepro/internal/services/ledger"
	quotesvc "financepro/internal/services/quote"
	"financepro/internal/storage/surrealdb"
)

// App holds all initialized services and clients.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	QuoteClient      interfaces.QuoteClient
	LedgerService    interfaces.LedgerService
	AnalyticsService interfaces.AnalyticsService
	QuoteService     interfaces.QuoteService
	StartupTime      time.Time

	schedulerCancel context.CancelFunc
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, clients, and services.
// configPath may be empty, in which case the default resolution is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("FINANCEPRO_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "financepro.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/financepro.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := surrealdb.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if config.Clients.Finnhub.APIKey == "" {
		logger.Warn().Msg("Finnhub API key not configured - portfolio views will use transaction prices")
	}

	quoteClient := finnhub.NewClient(config.Clients.Finnhub.APIKey,
		finnhub.WithBaseURL(config.Clients.Finnhub.BaseURL),
		finnhub.WithRateLimit(config.Clients.Finnhub.RateLimit),
		finnhub.WithTimeout(config.Clients.Finnhub.GetTimeout()),
		finnhub.WithLogger(logger),
	)

	quoteService := quotesvc.NewService(quoteClient, storageManager.QuoteStore(), logger)
	ledgerService := ledgersvc.NewService(storageManager, logger)
	analyticsService := analytics.NewService(storageManager, quoteService, logger)

	a := &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		QuoteClient:      quoteClient,
		LedgerService:    ledgerService,
		AnalyticsService: analyticsService,
		QuoteService:     quoteService,
		StartupTime:      startupStart,
	}

	logger.Info().
		Str("environment", config.Environment).
		Dur("elapsed", time.Since(startupStart)).
		Msg("Application initialized")

	return a, nil
}

// Close stops background work and releases resources.
func (a *App) Close() error {
	if a.schedulerCancel != nil {
		a.schedulerCancel()
	}
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
