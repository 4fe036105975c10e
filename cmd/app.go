package cmd

import (
	"context"
	"fmt"

	"source-manager/core/config"
	"source-manager/core/database"
	"source-manager/core/logger"
	"source-manager/core/settings"
	"source-manager/core/storage"
	"source-manager/core/volume"
	"source-manager/feature/datasource"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// app bundles what every command needs.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	manager *datasource.Manager
}

// bootstrap loads configuration, builds the logger and wires the data source manager.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := openSettings(ctx, cfg, l)
	if err != nil {
		return nil, err
	}

	scanner := volume.NewSystemScanner(cfg.Volume)
	manager := datasource.NewManager(afero.NewOsFs(), scanner, store, cfg.Volume, l)

	return &app{cfg: cfg, logger: l, manager: manager}, nil
}

// openSettings connects only the backend the configuration selects.
func openSettings(ctx context.Context, cfg *config.Config, l *zap.Logger) (settings.Store, error) {
	var backends settings.Backends

	switch cfg.Settings.Backend {
	case settings.BackendDatabase:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		backends.DB = db
		l.Info("Using database settings backend", zap.String("driver", cfg.Database.Driver))
	case settings.BackendObject:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		backends.Storage = client
		backends.Bucket = cfg.Storage.Bucket
		l.Info("Using object settings backend", zap.String("bucket", cfg.Storage.Bucket))
	}

	store, err := settings.New(ctx, cfg.Settings, backends)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings store: %w", err)
	}
	return store, nil
}
