// Package settings provides the process-wide key/value settings store.
//
// Three backends implement Store:
//
//   - file: a YAML map on local disk (default).
//   - database: the source_manager_settings table through GORM.
//   - object: one object per key in an S3/MinIO bucket.
//
// # Usage
//
//	store, err := settings.New(ctx, cfg.Settings, settings.Backends{DB: db})
//	blob, ok, err := store.Get(ctx, "ActiveDataSourcesKey")
package settings
