package app

import (
	"context"
	"fmt"
	"time"

	"github.com/drew/praxis/internal/api"
	"github.com/drew/praxis/internal/config"
	"github.com/drew/praxis/internal/crypto"
	"github.com/drew/praxis/internal/logger"
	"github.com/drew/praxis/internal/repository"
	"github.com/drew/praxis/internal/service"
)

// App is the dependency injection container for all application components
type App struct {
	Config  *config.Config
	Keyring crypto.Keyring

	// Transport
	API *api.Client

	// Repositories
	ClientRepo  repository.ClientRepository
	BillingRepo repository.BillingRepository

	// Services
	BillingService service.BillingService
	SummaryService service.SummaryService
}

// New creates a new App instance, initializing all dependencies:
// 1. Loading config (file + environment)
// 2. Setting up logging
// 3. Wiring the API transport with keyring-backed credentials
// 4. Creating repositories and services
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	if err := logger.Setup(cfg.Log.Level, cfg.Log.Output); err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	// API credentials come from the keyring; an absent token just means
	// requests go out unauthenticated until the user logs in.
	keyring := crypto.NewKeyring()
	tokens := crypto.NewTokenSource(keyring)

	timeout := time.Duration(cfg.API.TimeoutSeconds) * time.Second
	transport := api.NewClient(cfg.API.BaseURL, tokens, timeout, logger.Get())

	clientRepo := repository.NewClientRepo(transport)
	billingRepo := repository.NewBillingRepo(transport)

	billingService := service.NewBillingService(billingRepo)
	summaryService := service.NewSummaryService(billingRepo)

	return &App{
		Config:         cfg,
		Keyring:        keyring,
		API:            transport,
		ClientRepo:     clientRepo,
		BillingRepo:    billingRepo,
		BillingService: billingService,
		SummaryService: summaryService,
	}, nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}
