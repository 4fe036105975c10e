package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Setting is a single persisted key/value pair.
type Setting struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// TableName overrides the gorm table name.
func (Setting) TableName() string {
	return "source_manager_settings"
}

// SettingsStore persists settings in a database table.
type SettingsStore struct {
	db *gorm.DB
}

// NewSettingsStore creates a store on top of an open connection.
func NewSettingsStore(db *gorm.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Migrate creates the settings table when missing.
func (s *SettingsStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Setting{}); err != nil {
		return fmt.Errorf("failed to migrate settings table: %w", err)
	}
	return nil
}

// Get returns the value stored under key.
func (s *SettingsStore) Get(ctx context.Context, key string) (string, bool, error) {
	var setting Setting
	err := s.db.WithContext(ctx).Where("`key` = ?", key).Take(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return setting.Value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	setting := Setting{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}
