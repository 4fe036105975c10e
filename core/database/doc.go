// Package database handles database connections and the settings table.
//
// It provides a wrapper around GORM to configure either a MySQL server
// connection or a local SQLite file, based on the application's configuration.
//
// # Settings
//
// SettingsStore keeps process-wide settings (such as the persisted active data
// source set) as key/value rows in the source_manager_settings table.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	store := database.NewSettingsStore(db)
//	_ = store.Migrate(ctx)
package database
