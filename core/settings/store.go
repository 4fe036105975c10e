package settings

import (
	"context"
	"fmt"

	"source-manager/core/database"
	"source-manager/core/storage"

	"gorm.io/gorm"
)

// Store is a process-wide key/value settings store.
type Store interface {
	// Get returns the value stored under key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key.
	Set(ctx context.Context, key, value string) error
}

// Backends carries the optional connections a backend may need.
type Backends struct {
	DB      *gorm.DB
	Storage storage.Client
	Bucket  string
}

// New creates the store selected by cfg.Backend.
func New(ctx context.Context, cfg Config, b Backends) (Store, error) {
	switch cfg.Backend {
	case BackendFile, "":
		return NewFileStore(cfg.Path)
	case BackendDatabase:
		if b.DB == nil {
			return nil, fmt.Errorf("settings backend %q requires a database connection", cfg.Backend)
		}
		store := database.NewSettingsStore(b.DB)
		if err := store.Migrate(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case BackendObject:
		if b.Storage == nil {
			return nil, fmt.Errorf("settings backend %q requires a storage client", cfg.Backend)
		}
		store := NewObjectStore(b.Storage, b.Bucket, cfg.ObjectPrefix)
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown settings backend %q", cfg.Backend)
	}
}
